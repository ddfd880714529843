// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device addressing flags
	deviceAddr string
	ampIndex   int
)

var rootCmd = &cobra.Command{
	Use:   "edfastat",
	Short: "EDFA Serial Control Utility",
	Long: `Edfastat - A CLI tool for querying and controlling EDFA modules.

Talks the EDFA point-to-point serial control protocol: CRC-checked request
frames with a one-response-per-request exchange. Provides commands for
telemetry queries, amplifier control, continuous monitoring and a live
dashboard.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the EDFASTAT_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version: "1.2.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Device addressing flags
	rootCmd.PersistentFlags().StringVarP(&deviceAddr, "address", "a", "0100", "Device address as 4 hex digits")
	rootCmd.PersistentFlags().IntVar(&ampIndex, "amp", 1, "Amplifier index within the module")
}

// parseAddress converts the --address flag into the two-byte wire form.
func parseAddress() ([2]byte, error) {
	raw, err := hex.DecodeString(deviceAddr)
	if err != nil || len(raw) != 2 {
		return [2]byte{}, fmt.Errorf("invalid device address %q (want 4 hex digits, e.g. 0100)", deviceAddr)
	}
	return [2]byte{raw[0], raw[1]}, nil
}

// withController opens the configured connection, binds a controller to it
// and runs fn. The connection is closed when fn returns.
func withController(fn func(*erbium.Controller) error) error {
	address, err := parseAddress()
	if err != nil {
		return err
	}

	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(erbium.NewController(address, newFrameTransport(conn)))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
