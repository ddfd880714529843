// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connectivity to an EDFA module",
	Long: `Probe the addressed EDFA module by repeating a module status query
until a valid response arrives or the timeout expires.

Exit codes:
  0 - Valid response received before timeout
  1 - Timeout reached without a valid response
  2 - Connection error

Useful for scripting and for verifying wiring or a WebSocket bridge.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a valid response")
}

func runProbe(cmd *cobra.Command, args []string) error {
	address, err := parseAddress()
	if err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Edfastat - Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Device: %02X%02X\n", address[0], address[1])
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for a valid response...\n\n")

	ctrl := erbium.NewController(address, newFrameTransport(conn))
	deadline := time.Now().Add(time.Duration(probeTimeout) * time.Second)

	attempts := 0
	var lastErr error
	for time.Now().Before(deadline) {
		attempts++
		status, err := ctrl.GetModuleStatus(uint8(ampIndex))
		if err == nil {
			fmt.Printf("SUCCESS: valid response after %d attempt(s)\n", attempts)
			fmt.Print(erbium.FormatRecord(status))
			os.Exit(0)
		}
		lastErr = err

		var transportErr *erbium.TransportFailure
		if errors.As(err, &transportErr) {
			fmt.Fprintf(os.Stderr, "Transport error: %v\n", err)
			os.Exit(2)
		}

		// No response or a corrupt one; back off briefly and retry
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Fprintf(os.Stderr, "TIMEOUT: no valid response within %d seconds (%d attempts, last error: %v)\n",
		probeTimeout, attempts, lastErr)
	os.Exit(1)
	return nil
}
