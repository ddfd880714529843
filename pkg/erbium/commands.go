// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import "sort"

// Operation names a semantic protocol operation. Callers address the catalog
// by operation; raw command identifiers stay inside this package.
type Operation string

// Query operations
const (
	OpGetModuleStatus      Operation = "get-module-status"
	OpGetModeStatus        Operation = "get-mode-status"
	OpGetTemperature       Operation = "get-temperature"
	OpGetInputPower        Operation = "get-input-power"
	OpGetOutputPower       Operation = "get-output-power"
	OpGetOutputSignalPower Operation = "get-output-signal-power"
	OpGetSignalGain        Operation = "get-signal-gain"
	OpGetPumpLaserStatus   Operation = "get-pump-laser-status"
	OpGetAlarmStatus       Operation = "get-alarm-status"
	OpGetVOAMode           Operation = "get-voa-mode"
)

// Control operations
const (
	OpSetMode          Operation = "set-mode"
	OpSetPumpCurrent   Operation = "set-pump-current"
	OpSetGainTilt      Operation = "set-gain-tilt"
	OpSetVOAMode       Operation = "set-voa-mode"
	OpSetGainStageMode Operation = "set-gain-stage-mode"
)

// Descriptor is one catalog entry: the wire command identifier, the request
// argument arity, and the response decoding rule. A nil decoder marks a
// fire-and-acknowledge control operation whose response is only
// envelope/CRC-validated.
type Descriptor struct {
	Command    byte
	ArgCount   int
	MinPayload int
	decode     func([]byte) (Record, error)
}

// asRecord lifts a typed decoder into the catalog's Record-returning form.
func asRecord[T Record](decode func([]byte) (T, error)) func([]byte) (Record, error) {
	return func(payload []byte) (Record, error) {
		rec, err := decode(payload)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// catalog is the fixed operation table. Read-only after initialization;
// protocol magic numbers live here and in constants.go only.
var catalog = map[Operation]Descriptor{
	OpGetModuleStatus:      {Command: CmdGetModuleStatus, ArgCount: 1, MinPayload: 1, decode: asRecord(DecodeModuleStatus)},
	OpGetModeStatus:        {Command: CmdGetModeStatus, ArgCount: 1, MinPayload: modeStatusSize, decode: asRecord(DecodeModeStatus)},
	OpGetTemperature:       {Command: CmdGetTemperature, ArgCount: 1, MinPayload: temperatureSize, decode: asRecord(DecodeTemperature)},
	OpGetInputPower:        {Command: CmdGetInputPower, ArgCount: 1, MinPayload: powerReadingSize, decode: asRecord(DecodePowerReadings)},
	OpGetOutputPower:       {Command: CmdGetOutputPower, ArgCount: 1, MinPayload: powerReadingSize, decode: asRecord(DecodePowerReadings)},
	OpGetOutputSignalPower: {Command: CmdGetOutputSignalPower, ArgCount: 1, MinPayload: powerReadingSize, decode: asRecord(DecodePowerReadings)},
	OpGetSignalGain:        {Command: CmdGetSignalGain, ArgCount: 1, MinPayload: powerReadingSize, decode: asRecord(DecodePowerReadings)},
	OpGetPumpLaserStatus:   {Command: CmdGetPumpLaserStatus, ArgCount: 2, MinPayload: pumpLaserStatusSize, decode: asRecord(DecodePumpLaserStatus)},
	OpGetAlarmStatus:       {Command: CmdGetAlarmStatus, ArgCount: 1, MinPayload: alarmPairSize, decode: asRecord(DecodeAlarmStatus)},
	OpGetVOAMode:           {Command: CmdGetVOAMode, ArgCount: 1, MinPayload: voaRecordSize, decode: asRecord(DecodeVOAStatus)},

	OpSetMode:          {Command: CmdSetMode, ArgCount: 2},
	OpSetPumpCurrent:   {Command: CmdSetPumpCurrent, ArgCount: 3},
	OpSetGainTilt:      {Command: CmdSetGainTilt, ArgCount: 2},
	OpSetVOAMode:       {Command: CmdSetVOAMode, ArgCount: 2},
	OpSetGainStageMode: {Command: CmdSetGainStageMode, ArgCount: 2},
}

// Lookup resolves an operation's catalog entry.
func Lookup(op Operation) (Descriptor, error) {
	desc, ok := catalog[op]
	if !ok {
		return Descriptor{}, &UnknownOperationError{Op: op}
	}
	return desc, nil
}

// Operations returns every catalog operation in stable (sorted) order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(catalog))
	for op := range catalog {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// EncodeRequest resolves the operation, checks the argument arity, and builds
// the request frame.
func EncodeRequest(address [2]byte, op Operation, args []byte) ([]byte, error) {
	desc, err := Lookup(op)
	if err != nil {
		return nil, err
	}
	if len(args) != desc.ArgCount {
		return nil, &ArgumentCountError{Op: op, Want: desc.ArgCount, Got: len(args)}
	}
	return EncodeFrame(address, desc.Command, args), nil
}
