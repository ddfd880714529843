// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"errors"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a point-in-time capture of one amplifier's telemetry, as
// written to monitor capture files. Fields are optional; a nil/empty field
// means the corresponding query was not made or failed that cycle. Integer
// keys keep capture files compact and stable across field renames.
type Snapshot struct {
	Taken       time.Time        `cbor:"0,keyasint"`
	Amplifier   uint8            `cbor:"1,keyasint"`
	Mode        *ModeStatus      `cbor:"2,keyasint,omitempty"`
	Module      ModuleStatusList `cbor:"3,keyasint,omitempty"`
	Temperature *Temperature     `cbor:"4,keyasint,omitempty"`
	InputPower  PowerReadings    `cbor:"5,keyasint,omitempty"`
	OutputPower PowerReadings    `cbor:"6,keyasint,omitempty"`
	SignalPower PowerReadings    `cbor:"7,keyasint,omitempty"`
	Gain        PowerReadings    `cbor:"8,keyasint,omitempty"`
	Alarms      AlarmStatus      `cbor:"9,keyasint,omitempty"`
	VOA         VOAStatusList    `cbor:"10,keyasint,omitempty"`
}

// EncodeSnapshot serializes a snapshot to CBOR.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return cbor.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot from CBOR.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteSnapshot appends one snapshot to w. Capture files are a plain CBOR
// sequence: concatenated top-level items, no framing.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	return cbor.NewEncoder(w).Encode(s)
}

// ReadSnapshots decodes a CBOR sequence of snapshots until EOF.
func ReadSnapshots(r io.Reader) ([]*Snapshot, error) {
	dec := cbor.NewDecoder(r)
	var out []*Snapshot
	for {
		var s Snapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, &s)
	}
}
