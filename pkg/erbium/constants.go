// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package erbium provides a reference Go implementation of the Erbium serial
// control protocol spoken by EDFA (erbium-doped fiber amplifier) modules.
//
// The protocol is a half-duplex request/response exchange over a serial
// link (115200 8N1). Each frame carries a fixed envelope, a command
// identifier, command-specific argument or payload bytes, and a CRC-16
// trailer. This package provides frame encoding/decoding, CRC validation,
// the command catalog, and typed telemetry decoders.
package erbium

// Protocol framing
const (
	SyncByte = 0x68
)

// Frame geometry. The envelope is two sync markers bracketing the 2-byte
// device address, followed by the command byte; the CRC trailer covers
// everything before it.
const (
	AddressSize     = 2
	HeaderSize      = 5 // SYNC, ADDR_HI, ADDR_LO, SYNC, CMD
	CRCSize         = 2
	MinFrameSize    = HeaderSize + CRCSize
	MaxResponseSize = 128
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Command identifiers - queries (module -> typed telemetry response)
const (
	CmdGetModuleStatus      = 0x30
	CmdGetModeStatus        = 0x31
	CmdGetTemperature       = 0x34
	CmdGetInputPower        = 0x35
	CmdGetOutputPower       = 0x36
	CmdGetOutputSignalPower = 0x37
	CmdGetSignalGain        = 0x38
	CmdGetPumpLaserStatus   = 0x3A
	CmdGetAlarmStatus       = 0x40
	CmdGetVOAMode           = 0x62
)

// Command identifiers - controls (fire-and-acknowledge)
const (
	CmdSetMode          = 0x11
	CmdSetPumpCurrent   = 0x1B
	CmdSetGainTilt      = 0x52
	CmdSetVOAMode       = 0x53
	CmdSetGainStageMode = 0x58
)

// AmpMode represents an amplifier operating mode code. Codes outside the
// table below still decode; they render as UNKNOWN with the raw value.
type AmpMode uint8

// Amplifier operating modes
const (
	ModeDisable          AmpMode = 0x00
	ModeManual           AmpMode = 0x01
	ModeConstantPower    AmpMode = 0x02
	ModeConstantGain     AmpMode = 0x03
	ModeClamping         AmpMode = 0x04
	ModeASEConstantPower AmpMode = 0x05
	ModeASEConstantGain  AmpMode = 0x06
	ModeASEClamping      AmpMode = 0x07
	ModeAFCConstantPower AmpMode = 0x08
	ModeAFCConstantGain  AmpMode = 0x09
)

// Known reports whether the mode code is in the published mode table.
func (m AmpMode) Known() bool { return m <= ModeAFCConstantGain }

// VOAMode represents a variable optical attenuator mode code
type VOAMode uint8

// VOA operating modes
const (
	VOADisable             VOAMode = 0x00 // opaque
	VOAConstantAttenuation VOAMode = 0x01
	VOAConstantOutputPower VOAMode = 0x02
	VOAFastAttenuation     VOAMode = 0x03
)

// Known reports whether the VOA mode code is in the published mode table.
func (m VOAMode) Known() bool { return m <= VOAFastAttenuation }

// Module status flag bits. Bits 4-7 are reserved and reported verbatim.
const (
	StatusDisabled      = 1 << 0
	StatusAPR           = 1 << 1 // automatic power reduction (eye-safe)
	StatusGainLimited   = 1 << 2
	StatusPowerClamping = 1 << 3
)

// Alarm bit-field geometry: the named conditions occupy bits 31 down to 10
// of each 32-bit alarm word, MSB-first; bits 9-0 are reserved.
const (
	alarmHighBit = 31
	alarmLowBit  = 10

	// AlarmCount is the number of named alarm conditions.
	AlarmCount = alarmHighBit - alarmLowBit + 1
)

// AlarmCondition identifies one alarm condition by its bit position (31..10)
// in an alarm word.
type AlarmCondition uint8

// alarmNames maps bit positions to alarm condition names, MSB-first.
var alarmNames = map[AlarmCondition]string{
	31: "PUMP1_OVER_CURRENT",
	30: "PUMP2_OVER_CURRENT",
	29: "PUMP1_OVER_TEMPERATURE",
	28: "PUMP2_OVER_TEMPERATURE",
	27: "PUMP1_END_OF_LIFE",
	26: "PUMP2_END_OF_LIFE",
	25: "INPUT_LOS",
	24: "OUTPUT_LOS",
	23: "INPUT_POWER_LOW",
	22: "INPUT_POWER_HIGH",
	21: "OUTPUT_POWER_LOW",
	20: "OUTPUT_POWER_HIGH",
	19: "GAIN_LOW",
	18: "GAIN_HIGH",
	17: "CASE_TEMPERATURE",
	16: "COIL_TEMPERATURE",
	15: "TEC_FAULT",
	14: "SUPPLY_VOLTAGE",
	13: "APR_ACTIVE",
	12: "GAIN_LIMITED",
	11: "POWER_CLAMPED",
	10: "VOA_FAULT",
}

// Known reports whether the bit position carries a named alarm condition.
func (c AlarmCondition) Known() bool {
	_, ok := alarmNames[c]
	return ok
}
