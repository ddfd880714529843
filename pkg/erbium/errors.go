// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"errors"
	"fmt"
)

// ErrNoResponse is returned when the transport reports a successful read of
// zero bytes: the device did not answer within the transport's deadline.
// Callers may retry on this error; received-but-invalid frames are reported
// with the distinct error types below and should not be blindly retried.
var ErrNoResponse = errors.New("no response from device")

// FrameTooShortError reports a received buffer too small to hold the frame
// envelope and CRC trailer.
type FrameTooShortError struct {
	ExpectedMin int
	Actual      int
}

func (e *FrameTooShortError) Error() string {
	return fmt.Sprintf("frame too short: %d bytes (need at least %d)", e.Actual, e.ExpectedMin)
}

// BadSyncError reports a frame whose envelope does not carry the sync marker
// at the expected offset.
type BadSyncError struct {
	Offset int
	Got    byte
}

func (e *BadSyncError) Error() string {
	return fmt.Sprintf("bad sync marker at offset %d: 0x%02X (want 0x%02X)", e.Offset, e.Got, SyncByte)
}

// CRCMismatchError reports a frame whose CRC trailer does not match the CRC
// recomputed over the received bytes.
type CRCMismatchError struct {
	Want uint16 // recomputed over the received bytes
	Got  uint16 // carried in the frame trailer
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("CRC mismatch: expected 0x%04X, got 0x%04X", e.Want, e.Got)
}

// PayloadTooShortError reports a payload below a decoder's minimum length.
type PayloadTooShortError struct {
	Min    int
	Actual int
}

func (e *PayloadTooShortError) Error() string {
	return fmt.Sprintf("payload too short: %d bytes (need at least %d)", e.Actual, e.Min)
}

// MisalignedPayloadError reports a repeated-record payload whose length is
// not an exact multiple of the record width.
type MisalignedPayloadError struct {
	RecordSize int
	Actual     int
}

func (e *MisalignedPayloadError) Error() string {
	return fmt.Sprintf("misaligned payload: %d bytes is not a multiple of record size %d", e.Actual, e.RecordSize)
}

// UnknownOperationError reports an operation missing from the command catalog.
type UnknownOperationError struct {
	Op Operation
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", string(e.Op))
}

// ArgumentCountError reports a request built with the wrong number of
// argument bytes for its operation.
type ArgumentCountError struct {
	Op   Operation
	Want int
	Got  int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("operation %q takes %d argument bytes, got %d", string(e.Op), e.Want, e.Got)
}

// TransportFailure wraps an error reported by the transport layer.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}
