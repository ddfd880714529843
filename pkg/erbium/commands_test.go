// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"bytes"
	"errors"
	"testing"
)

func TestCatalog_CommandIdentifiers(t *testing.T) {
	tests := []struct {
		op       Operation
		command  byte
		argCount int
	}{
		{OpGetModuleStatus, 0x30, 1},
		{OpGetModeStatus, 0x31, 1},
		{OpGetTemperature, 0x34, 1},
		{OpGetInputPower, 0x35, 1},
		{OpGetOutputPower, 0x36, 1},
		{OpGetOutputSignalPower, 0x37, 1},
		{OpGetSignalGain, 0x38, 1},
		{OpGetPumpLaserStatus, 0x3A, 2},
		{OpGetAlarmStatus, 0x40, 1},
		{OpGetVOAMode, 0x62, 1},
		{OpSetMode, 0x11, 2},
		{OpSetPumpCurrent, 0x1B, 3},
		{OpSetGainTilt, 0x52, 2},
		{OpSetVOAMode, 0x53, 2},
		{OpSetGainStageMode, 0x58, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			desc, err := Lookup(tt.op)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if desc.Command != tt.command {
				t.Errorf("command = 0x%02X, want 0x%02X", desc.Command, tt.command)
			}
			if desc.ArgCount != tt.argCount {
				t.Errorf("arg count = %d, want %d", desc.ArgCount, tt.argCount)
			}
		})
	}
}

func TestCatalog_QueriesHaveDecoders(t *testing.T) {
	queries := []Operation{
		OpGetModuleStatus, OpGetModeStatus, OpGetTemperature,
		OpGetInputPower, OpGetOutputPower, OpGetOutputSignalPower,
		OpGetSignalGain, OpGetPumpLaserStatus, OpGetAlarmStatus, OpGetVOAMode,
	}
	for _, op := range queries {
		desc, _ := Lookup(op)
		if desc.decode == nil {
			t.Errorf("%s: query operation missing a decoder", op)
		}
		if desc.MinPayload == 0 {
			t.Errorf("%s: query operation missing a minimum payload length", op)
		}
	}

	controls := []Operation{OpSetMode, OpSetPumpCurrent, OpSetGainTilt, OpSetVOAMode, OpSetGainStageMode}
	for _, op := range controls {
		desc, _ := Lookup(op)
		if desc.decode != nil {
			t.Errorf("%s: control operation should be acknowledge-only", op)
		}
	}
}

func TestLookup_UnknownOperation(t *testing.T) {
	_, err := Lookup("get-coffee")
	var unknownErr *UnknownOperationError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownOperationError, got %v", err)
	}
	if unknownErr.Op != "get-coffee" {
		t.Errorf("error op = %q", unknownErr.Op)
	}
}

func TestEncodeRequest(t *testing.T) {
	addr := [2]byte{0x01, 0x00}
	frame, err := EncodeRequest(addr, OpGetModeStatus, []byte{0x01})
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}
	want := EncodeFrame(addr, CmdGetModeStatus, []byte{0x01})
	if !bytes.Equal(frame, want) {
		t.Errorf("frame = % X, want % X", frame, want)
	}
}

func TestEncodeRequest_ArgumentCount(t *testing.T) {
	_, err := EncodeRequest([2]byte{0x01, 0x00}, OpGetPumpLaserStatus, []byte{0x01})
	var argErr *ArgumentCountError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentCountError, got %v", err)
	}
	if argErr.Want != 2 || argErr.Got != 1 {
		t.Errorf("error details = %+v", argErr)
	}
}

func TestOperations_Complete(t *testing.T) {
	ops := Operations()
	if len(ops) != len(catalog) {
		t.Fatalf("Operations() returned %d entries, catalog has %d", len(ops), len(catalog))
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1] >= ops[i] {
			t.Errorf("Operations() not sorted: %q before %q", ops[i-1], ops[i])
		}
	}
}
