// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Full telemetry summary for one amplifier",
	Long: `Query every telemetry value from the addressed EDFA module and print
a combined summary.

Each section is a separate request/response exchange. A failed exchange is
reported in its section and the remaining sections are still queried.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withController(func(ctrl *erbium.Controller) error {
		amp := byte(ampIndex)

		sections := []struct {
			title string
			op    erbium.Operation
		}{
			{"Module Status", erbium.OpGetModuleStatus},
			{"Operating Mode", erbium.OpGetModeStatus},
			{"Temperature", erbium.OpGetTemperature},
			{"Input Power", erbium.OpGetInputPower},
			{"Output Power", erbium.OpGetOutputPower},
			{"Signal Power", erbium.OpGetOutputSignalPower},
			{"Signal Gain", erbium.OpGetSignalGain},
			{"Alarms", erbium.OpGetAlarmStatus},
			{"VOA", erbium.OpGetVOAMode},
		}

		fmt.Printf("Edfastat - Module %02X%02X, amplifier %d\n\n", ctrl.Address()[0], ctrl.Address()[1], ampIndex)

		for _, section := range sections {
			fmt.Printf("%s:\n", section.title)
			record, err := ctrl.Execute(section.op, amp)
			if err != nil {
				fmt.Printf("  error: %v\n", err)
				continue
			}
			fmt.Print(erbium.FormatRecord(record))
		}

		return nil
	})
}
