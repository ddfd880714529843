// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================
// Temperature
// ============================================================

func TestDecodeTemperature(t *testing.T) {
	tests := []struct {
		name        string
		payload     []byte
		wantAmbient float64
		wantCoil    float64
	}{
		{"positive", []byte{0x00, 0xEA, 0x00, 0xFB}, 23.4, 25.1},
		{"negative ambient", []byte{0xFF, 0x9C, 0x01, 0x2C}, -10.0, 30.0},
		{"zero", []byte{0x00, 0x00, 0x00, 0x00}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeTemperature(tt.payload)
			if err != nil {
				t.Fatalf("DecodeTemperature: %v", err)
			}
			if rec.Ambient != tt.wantAmbient {
				t.Errorf("ambient = %v, want %v", rec.Ambient, tt.wantAmbient)
			}
			if rec.Coil != tt.wantCoil {
				t.Errorf("coil = %v, want %v", rec.Coil, tt.wantCoil)
			}
		})
	}
}

// ============================================================
// Mode Status
// ============================================================

func TestDecodeModeStatus_KnownMode(t *testing.T) {
	rec, err := DecodeModeStatus([]byte{0x01, 0x03})
	if err != nil {
		t.Fatalf("DecodeModeStatus: %v", err)
	}
	if rec.Amplifier != 1 {
		t.Errorf("amplifier = %d, want 1", rec.Amplifier)
	}
	if rec.Mode != ModeConstantGain {
		t.Errorf("mode = 0x%02X, want ModeConstantGain", uint8(rec.Mode))
	}
	if !rec.Mode.Known() {
		t.Error("ModeConstantGain should be a known mode")
	}
}

func TestDecodeModeStatus_UnknownMode(t *testing.T) {
	// An unmapped mode code decodes successfully, never errors
	rec, err := DecodeModeStatus([]byte{0x01, 0x63})
	if err != nil {
		t.Fatalf("DecodeModeStatus: %v", err)
	}
	if rec.Mode != AmpMode(0x63) {
		t.Errorf("mode = 0x%02X, want 0x63 carried through", uint8(rec.Mode))
	}
	if rec.Mode.Known() {
		t.Error("0x63 should not be a known mode")
	}
	if got := FormatAmpMode(rec.Mode); got != "UNKNOWN(0x63)" {
		t.Errorf("FormatAmpMode = %q", got)
	}
}

// ============================================================
// Module Status
// ============================================================

func TestDecodeModuleStatus_Flags(t *testing.T) {
	rec, err := DecodeModuleStatus([]byte{0x0D}) // 0b00001101
	if err != nil {
		t.Fatalf("DecodeModuleStatus: %v", err)
	}
	if len(rec) != 1 {
		t.Fatalf("record count = %d, want 1", len(rec))
	}
	s := rec[0]
	if !s.Disabled || s.APR || !s.GainLimited || !s.PowerClamping {
		t.Errorf("flags = %+v, want disabled/gain-limited/power-clamping", s)
	}
	if s.Reserved != 0 {
		t.Errorf("reserved = 0x%X, want 0", s.Reserved)
	}
}

func TestDecodeModuleStatus_ReservedVerbatim(t *testing.T) {
	rec, err := DecodeModuleStatus([]byte{0xF0})
	if err != nil {
		t.Fatalf("DecodeModuleStatus: %v", err)
	}
	if rec[0].Reserved != 0x0F {
		t.Errorf("reserved = 0x%X, want 0x0F", rec[0].Reserved)
	}
	if rec[0].Disabled || rec[0].APR || rec[0].GainLimited || rec[0].PowerClamping {
		t.Errorf("no flag bits set, got %+v", rec[0])
	}
}

func TestDecodeModuleStatus_MultiAmplifier(t *testing.T) {
	rec, err := DecodeModuleStatus([]byte{0x01, 0x00, 0x0A})
	if err != nil {
		t.Fatalf("DecodeModuleStatus: %v", err)
	}
	if len(rec) != 3 {
		t.Fatalf("record count = %d, want 3", len(rec))
	}
	if !rec[0].Disabled || rec[1].Disabled || !rec[2].APR || !rec[2].PowerClamping {
		t.Errorf("per-amplifier flags wrong: %+v", rec)
	}
}

// ============================================================
// Power Readings
// ============================================================

func TestDecodePowerReadings(t *testing.T) {
	rec, err := DecodePowerReadings([]byte{0x00, 0x64, 0xFF, 0x9C})
	if err != nil {
		t.Fatalf("DecodePowerReadings: %v", err)
	}
	if len(rec) != 2 {
		t.Fatalf("reading count = %d, want 2", len(rec))
	}
	if rec[0] != 1.00 {
		t.Errorf("reading 0 = %v, want 1.00", rec[0])
	}
	if rec[1] != -1.00 {
		t.Errorf("reading 1 = %v, want -1.00", rec[1])
	}
}

func TestDecodePowerReadings_Misaligned(t *testing.T) {
	_, err := DecodePowerReadings([]byte{0x00, 0x64, 0xFF})
	var misErr *MisalignedPayloadError
	if !errors.As(err, &misErr) {
		t.Fatalf("expected MisalignedPayloadError, got %v", err)
	}
	if misErr.RecordSize != 2 || misErr.Actual != 3 {
		t.Errorf("error details = %+v", misErr)
	}
}

// ============================================================
// Alarm Status
// ============================================================

func TestDecodeAlarmStatus_SingleCondition(t *testing.T) {
	payload := []byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	rec, err := DecodeAlarmStatus(payload)
	if err != nil {
		t.Fatalf("DecodeAlarmStatus: %v", err)
	}
	if len(rec) != 1 {
		t.Fatalf("pair count = %d, want 1", len(rec))
	}

	current := rec[0].Current.Conditions()
	if len(current) != 1 || current[0] != AlarmCondition(31) {
		t.Errorf("current conditions = %v, want [bit 31]", current)
	}
	if got := FormatAlarmCondition(current[0]); got != "PUMP1_OVER_CURRENT" {
		t.Errorf("first named condition = %q", got)
	}
	if latched := rec[0].Latched.Conditions(); len(latched) != 0 {
		t.Errorf("latched conditions = %v, want none", latched)
	}
}

func TestDecodeAlarmStatus_MultiAmplifier(t *testing.T) {
	payload := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x00, // amp 1: latched bit 10
		0x40, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, // amp 2: current+latched bit 30
	}
	rec, err := DecodeAlarmStatus(payload)
	if err != nil {
		t.Fatalf("DecodeAlarmStatus: %v", err)
	}
	if len(rec) != 2 {
		t.Fatalf("pair count = %d, want 2", len(rec))
	}
	if got := rec[0].Latched.Conditions(); len(got) != 1 || got[0] != AlarmCondition(10) {
		t.Errorf("amp 1 latched = %v, want [bit 10]", got)
	}
	if got := rec[1].Current.Conditions(); len(got) != 1 || got[0] != AlarmCondition(30) {
		t.Errorf("amp 2 current = %v, want [bit 30]", got)
	}
}

func TestAlarmWord_MSBFirstOrder(t *testing.T) {
	w := AlarmWord(1<<31 | 1<<17 | 1<<10)
	got := w.Conditions()
	want := []AlarmCondition{31, 17, 10}
	if len(got) != len(want) {
		t.Fatalf("conditions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("condition %d = %d, want %d (MSB-first)", i, got[i], want[i])
		}
	}
}

func TestAlarmWord_ReservedBitsIgnored(t *testing.T) {
	// Bits 9..0 are reserved and never map to a condition
	if got := AlarmWord(0x000003FF).Conditions(); len(got) != 0 {
		t.Errorf("reserved bits produced conditions: %v", got)
	}
}

func TestAlarmNames_CoverAllPositions(t *testing.T) {
	if len(alarmNames) != AlarmCount {
		t.Fatalf("alarm table has %d names, want %d", len(alarmNames), AlarmCount)
	}
	for bit := alarmLowBit; bit <= alarmHighBit; bit++ {
		if !AlarmCondition(bit).Known() {
			t.Errorf("bit %d has no name", bit)
		}
	}
}

func TestDecodeAlarmStatus_Misaligned(t *testing.T) {
	_, err := DecodeAlarmStatus(make([]byte, 12))
	var misErr *MisalignedPayloadError
	if !errors.As(err, &misErr) {
		t.Fatalf("expected MisalignedPayloadError, got %v", err)
	}
}

// ============================================================
// VOA Status
// ============================================================

func TestDecodeVOAStatus(t *testing.T) {
	rec, err := DecodeVOAStatus([]byte{0x01, 0x00, 0xC8})
	if err != nil {
		t.Fatalf("DecodeVOAStatus: %v", err)
	}
	if len(rec) != 1 {
		t.Fatalf("record count = %d, want 1", len(rec))
	}
	if rec[0].Mode != VOAConstantAttenuation {
		t.Errorf("mode = 0x%02X, want VOAConstantAttenuation", uint8(rec[0].Mode))
	}
	if rec[0].Value != 2.00 {
		t.Errorf("value = %v, want 2.00", rec[0].Value)
	}
}

func TestDecodeVOAStatus_UnknownMode(t *testing.T) {
	rec, err := DecodeVOAStatus([]byte{0x63, 0xFF, 0x38})
	if err != nil {
		t.Fatalf("DecodeVOAStatus: %v", err)
	}
	if rec[0].Mode.Known() {
		t.Error("0x63 should not be a known VOA mode")
	}
	if rec[0].Value != -2.00 {
		t.Errorf("value = %v, want -2.00", rec[0].Value)
	}
	if got := FormatVOAMode(rec[0].Mode); !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("FormatVOAMode = %q", got)
	}
}

func TestDecodeVOAStatus_MultiRecord(t *testing.T) {
	rec, err := DecodeVOAStatus([]byte{0x00, 0x00, 0x00, 0x02, 0x01, 0x2C})
	if err != nil {
		t.Fatalf("DecodeVOAStatus: %v", err)
	}
	if len(rec) != 2 {
		t.Fatalf("record count = %d, want 2", len(rec))
	}
	if rec[1].Mode != VOAConstantOutputPower || rec[1].Value != 3.00 {
		t.Errorf("record 1 = %+v, want constant output power 3.00", rec[1])
	}
}

func TestDecodeVOAStatus_Misaligned(t *testing.T) {
	_, err := DecodeVOAStatus(make([]byte, 4))
	var misErr *MisalignedPayloadError
	if !errors.As(err, &misErr) {
		t.Fatalf("expected MisalignedPayloadError, got %v", err)
	}
}

// ============================================================
// Pump Laser Status
// ============================================================

func TestDecodePumpLaserStatus(t *testing.T) {
	payload := []byte{
		0x04, 0xD2, // bias current 1234 -> 123.4 mA
		0x02, 0x37, // output power 567 -> 56.7 mW
		0x00, 0xFB, // chip temperature 251 -> 25.1 °C
		0x00, 0x7B, // TEC current 123 -> 12.3 mA
		0xF6, 0x3C, // TEC voltage -2500 -> -250.0 mV
		0x01, 0x2C, // case temperature 300 -> 30.0 °C
		0x00, 0x37, // backfacet 55 -> 5.5 mA
		0x02, 0x58, // target power 600 -> 60.0 mW
		0x00, 0x01, 0xE2, 0x40, // hours operating 123456
		0x00, 0xFA, // target chip temperature 250 -> 25.0 °C
		0x07, 0xD0, // bias end-of-life 2000 -> 200.0 mA
	}
	rec, err := DecodePumpLaserStatus(payload)
	if err != nil {
		t.Fatalf("DecodePumpLaserStatus: %v", err)
	}

	if rec.BiasCurrent != 123.4 {
		t.Errorf("bias current = %v, want 123.4", rec.BiasCurrent)
	}
	if rec.OutputPower != 56.7 {
		t.Errorf("output power = %v, want 56.7", rec.OutputPower)
	}
	if rec.ChipTemperature != 25.1 {
		t.Errorf("chip temperature = %v, want 25.1", rec.ChipTemperature)
	}
	if rec.TECCurrent != 12.3 {
		t.Errorf("TEC current = %v, want 12.3", rec.TECCurrent)
	}
	if rec.TECVoltage != -250.0 {
		t.Errorf("TEC voltage = %v, want -250.0", rec.TECVoltage)
	}
	if rec.CaseTemperature != 30.0 {
		t.Errorf("case temperature = %v, want 30.0", rec.CaseTemperature)
	}
	if rec.BackfacetCurrent != 5.5 {
		t.Errorf("backfacet = %v, want 5.5", rec.BackfacetCurrent)
	}
	if rec.TargetPower != 60.0 {
		t.Errorf("target power = %v, want 60.0", rec.TargetPower)
	}
	if rec.HoursOperating != 123456 {
		t.Errorf("hours = %d, want 123456", rec.HoursOperating)
	}
	if rec.TargetChipTemperature != 25.0 {
		t.Errorf("target chip temperature = %v, want 25.0", rec.TargetChipTemperature)
	}
	if rec.BiasEndOfLife != 200.0 {
		t.Errorf("bias end-of-life = %v, want 200.0", rec.BiasEndOfLife)
	}
}

// ============================================================
// Short Payload Policy
// ============================================================

func TestDecoders_ShortPayload(t *testing.T) {
	tests := []struct {
		name   string
		min    int
		decode func([]byte) (Record, error)
	}{
		{"temperature", temperatureSize, asRecord(DecodeTemperature)},
		{"mode status", modeStatusSize, asRecord(DecodeModeStatus)},
		{"module status", 1, asRecord(DecodeModuleStatus)},
		{"power readings", powerReadingSize, asRecord(DecodePowerReadings)},
		{"alarm status", alarmPairSize, asRecord(DecodeAlarmStatus)},
		{"voa status", voaRecordSize, asRecord(DecodeVOAStatus)},
		{"pump laser status", pumpLaserStatusSize, asRecord(DecodePumpLaserStatus)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.min; n++ {
				_, err := tt.decode(make([]byte, n))
				var shortErr *PayloadTooShortError
				if !errors.As(err, &shortErr) {
					t.Fatalf("payload length %d: expected PayloadTooShortError, got %v", n, err)
				}
			}
		})
	}
}
