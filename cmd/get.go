// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Query a single telemetry value",
	Long: `Query one telemetry value from the addressed EDFA module.

Each subcommand performs a single request/response exchange and prints the
decoded result. The amplifier index is taken from the --amp flag.`,
}

var pumpLaser int

var getPumpCmd = &cobra.Command{
	Use:   "pump",
	Short: "Pump laser diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(func(ctrl *erbium.Controller) error {
			pump, err := ctrl.GetPumpLaserStatus(uint8(ampIndex), uint8(pumpLaser))
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(pump))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.AddCommand(
		newQueryCommand("module", "Module status flags", erbium.OpGetModuleStatus),
		newQueryCommand("mode", "Operating mode", erbium.OpGetModeStatus),
		newQueryCommand("temperature", "Ambient and erbium coil temperatures", erbium.OpGetTemperature),
		newQueryCommand("input-power", "Optical input power", erbium.OpGetInputPower),
		newQueryCommand("output-power", "Total optical output power", erbium.OpGetOutputPower),
		newQueryCommand("signal-power", "Output signal power", erbium.OpGetOutputSignalPower),
		newQueryCommand("gain", "Signal gain", erbium.OpGetSignalGain),
		newQueryCommand("alarms", "Current and latched alarm conditions", erbium.OpGetAlarmStatus),
		newQueryCommand("voa", "Variable optical attenuator state", erbium.OpGetVOAMode),
		getPumpCmd,
	)
	getPumpCmd.Flags().IntVar(&pumpLaser, "laser", 1, "Pump laser index")
}

// newQueryCommand builds a get subcommand for a single-argument query
// operation. The decoded record is printed via the shared formatter so
// output matches the status summary.
func newQueryCommand(use, short string, op erbium.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(func(ctrl *erbium.Controller) error {
				record, err := ctrl.Execute(op, uint8(ampIndex))
				if err != nil {
					return err
				}
				fmt.Print(erbium.FormatRecord(record))
				return nil
			})
		},
	}
}
