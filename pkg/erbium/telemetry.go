// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import "encoding/binary"

// Record is a decoded device response. One concrete type exists per response
// shape; every record is a fresh value produced by a single decode call.
type Record interface {
	record()
}

// Decoders follow one shared policy: all multi-byte fields are big-endian,
// signed fields are two's-complement, and tenths/hundredths fixed-point
// fields are scaled to float64 on the way out. A decoder either returns a
// complete record or an error; it never returns partial data and never reads
// past the payload slice.

func s16(payload []byte, off int) int16 {
	return int16(binary.BigEndian.Uint16(payload[off:]))
}

// repeatCount validates a repeated-record payload: at least one full record,
// and an exact multiple of the record width.
func repeatCount(payload []byte, width int) (int, error) {
	if len(payload) < width {
		return 0, &PayloadTooShortError{Min: width, Actual: len(payload)}
	}
	if len(payload)%width != 0 {
		return 0, &MisalignedPayloadError{RecordSize: width, Actual: len(payload)}
	}
	return len(payload) / width, nil
}

// Temperature is the response to CmdGetTemperature.
type Temperature struct {
	Ambient float64 // °C
	Coil    float64 // °C, erbium coil
}

func (Temperature) record() {}

const temperatureSize = 4

// DecodeTemperature decodes two signed tenths-of-degree values.
func DecodeTemperature(payload []byte) (Temperature, error) {
	if len(payload) < temperatureSize {
		return Temperature{}, &PayloadTooShortError{Min: temperatureSize, Actual: len(payload)}
	}
	return Temperature{
		Ambient: float64(s16(payload, 0)) / 10,
		Coil:    float64(s16(payload, 2)) / 10,
	}, nil
}

// ModeStatus is the response to CmdGetModeStatus.
type ModeStatus struct {
	Amplifier uint8
	Mode      AmpMode
}

func (ModeStatus) record() {}

const modeStatusSize = 2

// DecodeModeStatus decodes the amplifier index and mode code. Codes outside
// the mode table decode successfully; Mode.Known reports false for them.
func DecodeModeStatus(payload []byte) (ModeStatus, error) {
	if len(payload) < modeStatusSize {
		return ModeStatus{}, &PayloadTooShortError{Min: modeStatusSize, Actual: len(payload)}
	}
	return ModeStatus{
		Amplifier: payload[0],
		Mode:      AmpMode(payload[1]),
	}, nil
}

// ModuleStatus is one amplifier's status flags.
type ModuleStatus struct {
	Disabled      bool
	APR           bool // automatic power reduction (eye-safe)
	GainLimited   bool
	PowerClamping bool
	Reserved      uint8 // bits 4-7, verbatim
}

// ModuleStatusList is the response to CmdGetModuleStatus, one entry per
// queried amplifier.
type ModuleStatusList []ModuleStatus

func (ModuleStatusList) record() {}

// DecodeModuleStatus decodes one status byte per amplifier.
func DecodeModuleStatus(payload []byte) (ModuleStatusList, error) {
	count, err := repeatCount(payload, 1)
	if err != nil {
		return nil, err
	}
	out := make(ModuleStatusList, count)
	for i := 0; i < count; i++ {
		b := payload[i]
		out[i] = ModuleStatus{
			Disabled:      b&StatusDisabled != 0,
			APR:           b&StatusAPR != 0,
			GainLimited:   b&StatusGainLimited != 0,
			PowerClamping: b&StatusPowerClamping != 0,
			Reserved:      b >> 4,
		}
	}
	return out, nil
}

// PowerReadings is a sequence of optical power levels in dBm (or gain in dB
// for CmdGetSignalGain), one per amplifier.
type PowerReadings []float64

func (PowerReadings) record() {}

const powerReadingSize = 2

// DecodePowerReadings decodes a sequence of signed hundredths values.
func DecodePowerReadings(payload []byte) (PowerReadings, error) {
	count, err := repeatCount(payload, powerReadingSize)
	if err != nil {
		return nil, err
	}
	out := make(PowerReadings, count)
	for i := 0; i < count; i++ {
		out[i] = float64(s16(payload, i*powerReadingSize)) / 100
	}
	return out, nil
}

// AlarmWord is one 32-bit alarm bit-field.
type AlarmWord uint32

// Conditions returns the conditions set in the word, MSB-first from bit 31
// down to bit 10. Reserved low bits are ignored.
func (w AlarmWord) Conditions() []AlarmCondition {
	var out []AlarmCondition
	for bit := alarmHighBit; bit >= alarmLowBit; bit-- {
		if w&(1<<uint(bit)) != 0 {
			out = append(out, AlarmCondition(bit))
		}
	}
	return out
}

// AlarmPair is one amplifier's alarm state.
type AlarmPair struct {
	Current AlarmWord // conditions active right now
	Latched AlarmWord // conditions seen since the last acknowledge
}

// AlarmStatus is the response to CmdGetAlarmStatus, one pair per queried
// amplifier.
type AlarmStatus []AlarmPair

func (AlarmStatus) record() {}

const alarmPairSize = 8

// DecodeAlarmStatus decodes (current, latched) 32-bit word pairs.
func DecodeAlarmStatus(payload []byte) (AlarmStatus, error) {
	count, err := repeatCount(payload, alarmPairSize)
	if err != nil {
		return nil, err
	}
	out := make(AlarmStatus, count)
	for i := 0; i < count; i++ {
		off := i * alarmPairSize
		out[i] = AlarmPair{
			Current: AlarmWord(binary.BigEndian.Uint32(payload[off:])),
			Latched: AlarmWord(binary.BigEndian.Uint32(payload[off+4:])),
		}
	}
	return out, nil
}

// VOAStatus is one attenuator's state. Value is an attenuation in dB or an
// output power in dBm depending on Mode.
type VOAStatus struct {
	Mode  VOAMode
	Value float64
}

// VOAStatusList is the response to CmdGetVOAMode, one entry per attenuator.
type VOAStatusList []VOAStatus

func (VOAStatusList) record() {}

const voaRecordSize = 3

// DecodeVOAStatus decodes (mode, signed hundredths value) records.
func DecodeVOAStatus(payload []byte) (VOAStatusList, error) {
	count, err := repeatCount(payload, voaRecordSize)
	if err != nil {
		return nil, err
	}
	out := make(VOAStatusList, count)
	for i := 0; i < count; i++ {
		off := i * voaRecordSize
		out[i] = VOAStatus{
			Mode:  VOAMode(payload[off]),
			Value: float64(s16(payload, off+1)) / 100,
		}
	}
	return out, nil
}

// PumpLaserStatus is the response to CmdGetPumpLaserStatus.
type PumpLaserStatus struct {
	BiasCurrent           float64 // mA
	OutputPower           float64 // mW
	ChipTemperature       float64 // °C
	TECCurrent            float64 // mA
	TECVoltage            float64 // mV
	CaseTemperature       float64 // °C
	BackfacetCurrent      float64 // mA, monitor photodiode
	TargetPower           float64 // mW
	HoursOperating        uint32
	TargetChipTemperature float64 // °C
	BiasEndOfLife         float64 // mA
}

func (PumpLaserStatus) record() {}

const pumpLaserStatusSize = 24

// DecodePumpLaserStatus decodes the 24-byte pump diagnostic block: eight
// signed tenths fields, an unsigned 32-bit hours counter, and two trailing
// signed tenths fields.
func DecodePumpLaserStatus(payload []byte) (PumpLaserStatus, error) {
	if len(payload) < pumpLaserStatusSize {
		return PumpLaserStatus{}, &PayloadTooShortError{Min: pumpLaserStatusSize, Actual: len(payload)}
	}
	return PumpLaserStatus{
		BiasCurrent:           float64(s16(payload, 0)) / 10,
		OutputPower:           float64(s16(payload, 2)) / 10,
		ChipTemperature:       float64(s16(payload, 4)) / 10,
		TECCurrent:            float64(s16(payload, 6)) / 10,
		TECVoltage:            float64(s16(payload, 8)) / 10,
		CaseTemperature:       float64(s16(payload, 10)) / 10,
		BackfacetCurrent:      float64(s16(payload, 12)) / 10,
		TargetPower:           float64(s16(payload, 14)) / 10,
		HoursOperating:        binary.BigEndian.Uint32(payload[16:20]),
		TargetChipTemperature: float64(s16(payload, 20)) / 10,
		BiasEndOfLife:         float64(s16(payload, 22)) / 10,
	}, nil
}

// Ack is the response to a set-side command. The envelope and CRC have been
// validated; the payload is carried through uninterpreted.
type Ack struct {
	Payload []byte
}

func (Ack) record() {}
