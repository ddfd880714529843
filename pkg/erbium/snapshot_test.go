// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func sampleSnapshot(taken time.Time) *Snapshot {
	return &Snapshot{
		Taken:       taken,
		Amplifier:   1,
		Mode:        &ModeStatus{Amplifier: 1, Mode: ModeConstantGain},
		Temperature: &Temperature{Ambient: 23.4, Coil: 25.1},
		OutputPower: PowerReadings{1.00, -1.00},
		Alarms:      AlarmStatus{{Current: 1 << 31}},
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	taken := time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC)
	snap := sampleSnapshot(taken)

	data, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if !decoded.Taken.Equal(taken) {
		t.Errorf("taken = %v, want %v", decoded.Taken, taken)
	}
	if decoded.Mode == nil || decoded.Mode.Mode != ModeConstantGain {
		t.Errorf("mode = %+v", decoded.Mode)
	}
	if decoded.Temperature == nil || decoded.Temperature.Ambient != 23.4 {
		t.Errorf("temperature = %+v", decoded.Temperature)
	}
	if len(decoded.OutputPower) != 2 || decoded.OutputPower[1] != -1.00 {
		t.Errorf("output power = %v", decoded.OutputPower)
	}
	if len(decoded.Alarms) != 1 || decoded.Alarms[0].Current != 1<<31 {
		t.Errorf("alarms = %v", decoded.Alarms)
	}
	if decoded.InputPower != nil {
		t.Errorf("absent field decoded as %v, want nil", decoded.InputPower)
	}
}

func TestSnapshot_Sequence(t *testing.T) {
	var buf bytes.Buffer
	t0 := time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := WriteSnapshot(&buf, sampleSnapshot(t0.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("WriteSnapshot %d: %v", i, err)
		}
	}

	snaps, err := ReadSnapshots(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("snapshot count = %d, want 3", len(snaps))
	}
	for i, s := range snaps {
		want := t0.Add(time.Duration(i) * time.Second)
		if !s.Taken.Equal(want) {
			t.Errorf("snapshot %d taken = %v, want %v", i, s.Taken, want)
		}
	}
}

func TestStatistics_Classification(t *testing.T) {
	stats := NewStatistics()

	stats.Update(nil)
	stats.Update(ErrNoResponse)
	stats.Update(&CRCMismatchError{Want: 0x1234, Got: 0x5678})
	stats.Update(&FrameTooShortError{ExpectedMin: MinFrameSize, Actual: 3})
	stats.Update(&TransportFailure{Err: errors.New("port unplugged")})
	stats.Update(&MisalignedPayloadError{RecordSize: 2, Actual: 3})
	stats.Update(&PayloadTooShortError{Min: 4, Actual: 1})

	if stats.TotalExchanges != 7 {
		t.Errorf("total = %d, want 7", stats.TotalExchanges)
	}
	if stats.Completed != 1 {
		t.Errorf("completed = %d, want 1", stats.Completed)
	}
	if stats.Timeouts != 1 {
		t.Errorf("timeouts = %d, want 1", stats.Timeouts)
	}
	if stats.CRCErrors != 1 {
		t.Errorf("crc errors = %d, want 1", stats.CRCErrors)
	}
	if stats.ShortFrames != 1 {
		t.Errorf("short frames = %d, want 1", stats.ShortFrames)
	}
	if stats.TransportErrors != 1 {
		t.Errorf("transport errors = %d, want 1", stats.TransportErrors)
	}
	if stats.DecodeErrors != 2 {
		t.Errorf("decode errors = %d, want 2", stats.DecodeErrors)
	}

	stats.Reset()
	if stats.TotalExchanges != 0 || stats.Completed != 0 {
		t.Errorf("reset left counters: %+v", stats)
	}
}
