// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <hex-frame>",
	Short: "Send a raw frame and dump the response",
	Long: `Send a pre-built frame to the module and hex-dump whatever comes back.

The frame is given as hex digits; spaces and colons are ignored. No CRC is
added, so the input must be a complete wire frame. If the response parses as
a valid frame it is also pretty-printed.

Example:
  edfastat raw -p /dev/ttyUSB0 "68 01 00 68 34 01 09 23"`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	cleaned := strings.NewReplacer(" ", "", ":", "").Replace(args[0])
	frame, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid hex frame: %v", err)
	}
	if len(frame) == 0 {
		return fmt.Errorf("empty frame")
	}

	return withController(func(ctrl *erbium.Controller) error {
		response, err := ctrl.SendRaw(frame)
		if err != nil {
			return err
		}

		fmt.Printf("Sent:     % X\n", frame)
		fmt.Printf("Received: % X\n\n", response)

		decoded, err := erbium.DecodeFrame(response)
		if err != nil {
			fmt.Printf("Response does not parse as a valid frame: %v\n", err)
			return nil
		}

		fmt.Printf("Command: %s (0x%02X)\n", erbium.FormatCommand(decoded.Command), decoded.Command)
		fmt.Printf("Address: %02X%02X\n", decoded.Address[0], decoded.Address[1])
		fmt.Printf("Payload: % X\n", decoded.Payload)
		fmt.Printf("CRC:     0x%04X\n", decoded.CRC)
		return nil
	})
}
