// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var (
	monitorInterval time.Duration
	monitorCount    int
	monitorCapture  string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll telemetry continuously",
	Long: `Poll the addressed EDFA module at a fixed interval and print one
summary line per cycle.

Each cycle queries operating mode, temperature, output power and alarms.
Failed exchanges are counted but do not stop the loop. A statistics summary
is printed on exit (Ctrl+C or after --count cycles).

With --capture, every cycle's telemetry is appended to the given file as a
CBOR sequence for later offline analysis.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 2*time.Second, "Polling interval")
	monitorCmd.Flags().IntVarP(&monitorCount, "count", "c", 0, "Number of cycles (0 = until interrupted)")
	monitorCmd.Flags().StringVar(&monitorCapture, "capture", "", "Append telemetry snapshots to this CBOR file")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	return withController(func(ctrl *erbium.Controller) error {
		var capture *os.File
		if monitorCapture != "" {
			f, err := os.OpenFile(monitorCapture, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open capture file: %v", err)
			}
			capture = f
			defer capture.Close()
		}

		stats := erbium.NewStatistics()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		ticker := time.NewTicker(monitorInterval)
		defer ticker.Stop()

		cycles := 0
	loop:
		for {
			snapshot := pollSnapshot(ctrl, uint8(ampIndex), stats)
			printSnapshotLine(snapshot)

			if capture != nil {
				if err := erbium.WriteSnapshot(capture, snapshot); err != nil {
					fmt.Fprintf(os.Stderr, "capture write failed: %v\n", err)
				}
			}

			cycles++
			if monitorCount > 0 && cycles >= monitorCount {
				break
			}

			select {
			case <-sigChan:
				fmt.Println()
				break loop
			case <-ticker.C:
			}
		}

		fmt.Print(stats.String())
		return nil
	})
}

// pollSnapshot runs one monitoring cycle. Each query's outcome feeds the
// statistics; failed queries leave their snapshot field empty.
func pollSnapshot(ctrl *erbium.Controller, amp uint8, stats *erbium.Statistics) *erbium.Snapshot {
	snapshot := &erbium.Snapshot{
		Taken:     time.Now(),
		Amplifier: amp,
	}

	mode, err := ctrl.GetModeStatus(amp)
	stats.Update(err)
	if err == nil {
		snapshot.Mode = &mode
	}

	temperature, err := ctrl.GetTemperature(amp)
	stats.Update(err)
	if err == nil {
		snapshot.Temperature = &temperature
	}

	output, err := ctrl.GetOutputPower(amp)
	stats.Update(err)
	if err == nil {
		snapshot.OutputPower = output
	}

	alarms, err := ctrl.GetAlarmStatus(amp)
	stats.Update(err)
	if err == nil {
		snapshot.Alarms = alarms
	}

	return snapshot
}

func printSnapshotLine(s *erbium.Snapshot) {
	line := fmt.Sprintf("[%s]", s.Taken.Format("15:04:05"))

	if s.Mode != nil {
		line += fmt.Sprintf(" mode=%s", erbium.FormatAmpMode(s.Mode.Mode))
	} else {
		line += " mode=?"
	}

	if s.Temperature != nil {
		line += fmt.Sprintf(" amb=%.1f°C coil=%.1f°C", s.Temperature.Ambient, s.Temperature.Coil)
	}

	if len(s.OutputPower) > 0 {
		idx := int(s.Amplifier) - 1
		if idx >= 0 && idx < len(s.OutputPower) {
			line += fmt.Sprintf(" out=%.2fdBm", s.OutputPower[idx])
		}
	}

	alarmCount := 0
	for _, pair := range s.Alarms {
		alarmCount += len(pair.Current.Conditions())
	}
	line += fmt.Sprintf(" alarms=%d", alarmCount)

	fmt.Println(line)
}
