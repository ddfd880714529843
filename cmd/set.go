// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change an amplifier setting",
	Long: `Change a setting on the addressed EDFA module.

Each subcommand sends a single control frame and prints the module's
acknowledgement. The amplifier index is taken from the --amp flag.`,
}

var setModeCmd = &cobra.Command{
	Use:   "mode <mode>",
	Short: "Set the amplifier operating mode",
	Long: `Set the operating mode of an amplifier.

The mode may be given by name (disable, manual, constant-power,
constant-gain, clamping, ase-constant-power, ase-constant-gain,
ase-clamping, afc-constant-power, afc-constant-gain) or as a numeric
mode code.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseAmpMode(args[0])
		if err != nil {
			return err
		}
		return withController(func(ctrl *erbium.Controller) error {
			ack, err := ctrl.SetMode(uint8(ampIndex), mode)
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(ack))
			return nil
		})
	},
}

var setPumpCurrentCmd = &cobra.Command{
	Use:   "pump-current <laser> <current>",
	Short: "Set a pump laser current setpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		laser, err := parseByte(args[0], "laser index")
		if err != nil {
			return err
		}
		current, err := parseByte(args[1], "current setpoint")
		if err != nil {
			return err
		}
		return withController(func(ctrl *erbium.Controller) error {
			ack, err := ctrl.SetPumpCurrent(uint8(ampIndex), laser, current)
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(ack))
			return nil
		})
	},
}

var setGainTiltCmd = &cobra.Command{
	Use:   "gain-tilt <tilt>",
	Short: "Set the gain tilt",
	Long: `Set the gain tilt of an amplifier.

The tilt is a signed value from -128 to 127 and travels on the wire as a
two's-complement byte.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tilt, err := strconv.ParseInt(args[0], 10, 8)
		if err != nil {
			return fmt.Errorf("invalid tilt %q (want -128..127)", args[0])
		}
		return withController(func(ctrl *erbium.Controller) error {
			ack, err := ctrl.SetGainTilt(uint8(ampIndex), int8(tilt))
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(ack))
			return nil
		})
	},
}

var setVOAModeCmd = &cobra.Command{
	Use:   "voa-mode <mode>",
	Short: "Set the variable optical attenuator mode",
	Long: `Set the operating mode of the variable optical attenuator.

The mode may be given by name (disable, constant-attenuation,
constant-output-power, fast-attenuation) or as a numeric mode code.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseVOAMode(args[0])
		if err != nil {
			return err
		}
		return withController(func(ctrl *erbium.Controller) error {
			ack, err := ctrl.SetVOAMode(uint8(ampIndex), mode)
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(ack))
			return nil
		})
	},
}

var setGainStageCmd = &cobra.Command{
	Use:   "gain-stage <mode>",
	Short: "Set the gain stage mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseByte(args[0], "gain stage mode")
		if err != nil {
			return err
		}
		return withController(func(ctrl *erbium.Controller) error {
			ack, err := ctrl.SetGainStageMode(uint8(ampIndex), mode)
			if err != nil {
				return err
			}
			fmt.Print(erbium.FormatRecord(ack))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setModeCmd, setPumpCurrentCmd, setGainTiltCmd, setVOAModeCmd, setGainStageCmd)
}

// parseByte parses an unsigned byte argument, accepting 0x-prefixed hex.
func parseByte(s, what string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q (want 0..255)", what, s)
	}
	return uint8(v), nil
}

func parseAmpMode(s string) (erbium.AmpMode, error) {
	switch strings.ToLower(s) {
	case "disable":
		return erbium.ModeDisable, nil
	case "manual":
		return erbium.ModeManual, nil
	case "constant-power":
		return erbium.ModeConstantPower, nil
	case "constant-gain":
		return erbium.ModeConstantGain, nil
	case "clamping":
		return erbium.ModeClamping, nil
	case "ase-constant-power":
		return erbium.ModeASEConstantPower, nil
	case "ase-constant-gain":
		return erbium.ModeASEConstantGain, nil
	case "ase-clamping":
		return erbium.ModeASEClamping, nil
	case "afc-constant-power":
		return erbium.ModeAFCConstantPower, nil
	case "afc-constant-gain":
		return erbium.ModeAFCConstantGain, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown mode %q (use a mode name or numeric code)", s)
	}
	return erbium.AmpMode(v), nil
}

func parseVOAMode(s string) (erbium.VOAMode, error) {
	switch strings.ToLower(s) {
	case "disable":
		return erbium.VOADisable, nil
	case "constant-attenuation":
		return erbium.VOAConstantAttenuation, nil
	case "constant-output-power":
		return erbium.VOAConstantOutputPower, nil
	case "fast-attenuation":
		return erbium.VOAFastAttenuation, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown VOA mode %q (use a mode name or numeric code)", s)
	}
	return erbium.VOAMode(v), nil
}
