// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"fmt"
	"strings"
)

// Formatting is presentation only. Decoders stay silent and pure; everything
// here turns already-decoded records into human-readable text for the CLI.

// FormatCommand returns the human-readable name for a command identifier
func FormatCommand(command byte) string {
	switch command {
	case CmdGetModuleStatus:
		return "GET_MODULE_STATUS"
	case CmdGetModeStatus:
		return "GET_MODE_STATUS"
	case CmdGetTemperature:
		return "GET_TEMPERATURE"
	case CmdGetInputPower:
		return "GET_INPUT_POWER"
	case CmdGetOutputPower:
		return "GET_OUTPUT_POWER"
	case CmdGetOutputSignalPower:
		return "GET_OUTPUT_SIGNAL_POWER"
	case CmdGetSignalGain:
		return "GET_SIGNAL_GAIN"
	case CmdGetPumpLaserStatus:
		return "GET_PUMP_LASER_STATUS"
	case CmdGetAlarmStatus:
		return "GET_ALARM_STATUS"
	case CmdGetVOAMode:
		return "GET_VOA_MODE"
	case CmdSetMode:
		return "SET_MODE"
	case CmdSetPumpCurrent:
		return "SET_PUMP_CURRENT"
	case CmdSetGainTilt:
		return "SET_GAIN_TILT"
	case CmdSetVOAMode:
		return "SET_VOA_MODE"
	case CmdSetGainStageMode:
		return "SET_GAIN_STAGE_MODE"
	default:
		return "UNKNOWN"
	}
}

// FormatAmpMode returns the human-readable name for an operating mode code
func FormatAmpMode(mode AmpMode) string {
	switch mode {
	case ModeDisable:
		return "DISABLE"
	case ModeManual:
		return "MANUAL"
	case ModeConstantPower:
		return "CONSTANT_POWER"
	case ModeConstantGain:
		return "CONSTANT_GAIN"
	case ModeClamping:
		return "CLAMPING"
	case ModeASEConstantPower:
		return "ASE_CONSTANT_POWER"
	case ModeASEConstantGain:
		return "ASE_CONSTANT_GAIN"
	case ModeASEClamping:
		return "ASE_CLAMPING"
	case ModeAFCConstantPower:
		return "AFC_CONSTANT_POWER"
	case ModeAFCConstantGain:
		return "AFC_CONSTANT_GAIN"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(mode))
	}
}

// FormatVOAMode returns the human-readable name for a VOA mode code
func FormatVOAMode(mode VOAMode) string {
	switch mode {
	case VOADisable:
		return "DISABLE"
	case VOAConstantAttenuation:
		return "CONSTANT_ATTENUATION"
	case VOAConstantOutputPower:
		return "CONSTANT_OUTPUT_POWER"
	case VOAFastAttenuation:
		return "FAST_ATTENUATION"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(mode))
	}
}

// FormatAlarmCondition returns the name of an alarm condition bit
func FormatAlarmCondition(c AlarmCondition) string {
	if name, ok := alarmNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(bit %d)", uint8(c))
}

// formatConditions renders an alarm word's set conditions, or "none".
func formatConditions(w AlarmWord) string {
	conditions := w.Conditions()
	if len(conditions) == 0 {
		return "none"
	}
	names := make([]string, len(conditions))
	for i, c := range conditions {
		names[i] = FormatAlarmCondition(c)
	}
	return strings.Join(names, ", ")
}

// FormatRecord formats a decoded record into human-readable indented lines
func FormatRecord(rec Record) string {
	switch r := rec.(type) {
	case Temperature:
		return fmt.Sprintf("  Ambient: %.1f °C\n  Erbium coil: %.1f °C\n", r.Ambient, r.Coil)

	case ModeStatus:
		return fmt.Sprintf("  Amplifier %d: %s (0x%02X)\n", r.Amplifier, FormatAmpMode(r.Mode), uint8(r.Mode))

	case ModuleStatusList:
		var b strings.Builder
		for i, s := range r {
			flags := []string{}
			if s.Disabled {
				flags = append(flags, "DISABLED")
			}
			if s.APR {
				flags = append(flags, "APR")
			}
			if s.GainLimited {
				flags = append(flags, "GAIN_LIMITED")
			}
			if s.PowerClamping {
				flags = append(flags, "POWER_CLAMPING")
			}
			if len(flags) == 0 {
				flags = append(flags, "OK")
			}
			fmt.Fprintf(&b, "  Amplifier %d: %s", i+1, strings.Join(flags, " | "))
			if s.Reserved != 0 {
				fmt.Fprintf(&b, " (reserved=0x%X)", s.Reserved)
			}
			b.WriteByte('\n')
		}
		return b.String()

	case PowerReadings:
		var b strings.Builder
		for i, p := range r {
			fmt.Fprintf(&b, "  Amplifier %d: %.2f dBm\n", i+1, p)
		}
		return b.String()

	case AlarmStatus:
		var b strings.Builder
		for i, pair := range r {
			fmt.Fprintf(&b, "  Amplifier %d:\n", i+1)
			fmt.Fprintf(&b, "    Current: %s\n", formatConditions(pair.Current))
			fmt.Fprintf(&b, "    Latched: %s\n", formatConditions(pair.Latched))
		}
		return b.String()

	case VOAStatusList:
		var b strings.Builder
		for i, v := range r {
			unit := "dB"
			if v.Mode == VOAConstantOutputPower {
				unit = "dBm"
			}
			fmt.Fprintf(&b, "  VOA %d: %s (0x%02X), %.2f %s\n", i+1, FormatVOAMode(v.Mode), uint8(v.Mode), v.Value, unit)
		}
		return b.String()

	case PumpLaserStatus:
		var b strings.Builder
		fmt.Fprintf(&b, "  Bias current:     %7.1f mA\n", r.BiasCurrent)
		fmt.Fprintf(&b, "  Output power:     %7.1f mW\n", r.OutputPower)
		fmt.Fprintf(&b, "  Chip temperature: %7.1f °C (target %.1f °C)\n", r.ChipTemperature, r.TargetChipTemperature)
		fmt.Fprintf(&b, "  TEC current:      %7.1f mA\n", r.TECCurrent)
		fmt.Fprintf(&b, "  TEC voltage:      %7.1f mV\n", r.TECVoltage)
		fmt.Fprintf(&b, "  Case temperature: %7.1f °C\n", r.CaseTemperature)
		fmt.Fprintf(&b, "  Backfacet:        %7.1f mA\n", r.BackfacetCurrent)
		fmt.Fprintf(&b, "  Target power:     %7.1f mW\n", r.TargetPower)
		fmt.Fprintf(&b, "  Hours operating:  %7d h\n", r.HoursOperating)
		fmt.Fprintf(&b, "  Bias end-of-life: %7.1f mA\n", r.BiasEndOfLife)
		return b.String()

	case Ack:
		if len(r.Payload) == 0 {
			return "  OK\n"
		}
		return fmt.Sprintf("  OK (% X)\n", r.Payload)

	default:
		return "  (unknown record)\n"
	}
}
