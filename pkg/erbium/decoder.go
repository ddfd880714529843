// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

// Frame is a validated protocol frame with its envelope fields split out.
// Payload is a copy; it does not alias the receive buffer.
type Frame struct {
	Address [2]byte
	Command byte
	Payload []byte
	CRC     uint16
}

// DecodeFrame validates a received buffer and splits it into envelope fields
// and payload. Validation order: length, CRC trailer (big-endian, recomputed
// over everything before it), sync markers. Never panics on malformed input;
// every failure is a typed error.
func DecodeFrame(raw []byte) (*Frame, error) {
	if len(raw) < MinFrameSize {
		return nil, &FrameTooShortError{ExpectedMin: MinFrameSize, Actual: len(raw)}
	}

	body := raw[:len(raw)-CRCSize]
	want := CalculateCRC(body)
	got := uint16(raw[len(raw)-2])<<8 | uint16(raw[len(raw)-1])
	if want != got {
		return nil, &CRCMismatchError{Want: want, Got: got}
	}

	if raw[0] != SyncByte {
		return nil, &BadSyncError{Offset: 0, Got: raw[0]}
	}
	if raw[3] != SyncByte {
		return nil, &BadSyncError{Offset: 3, Got: raw[3]}
	}

	f := &Frame{
		Address: [2]byte{raw[1], raw[2]},
		Command: raw[4],
		CRC:     got,
	}
	f.Payload = append([]byte(nil), body[HeaderSize:]...)
	return f, nil
}

// DecodeEnvelope validates a received buffer and returns only the payload
// slice between the envelope and the CRC trailer.
func DecodeEnvelope(raw []byte) ([]byte, error) {
	f, err := DecodeFrame(raw)
	if err != nil {
		return nil, err
	}
	return f.Payload, nil
}
