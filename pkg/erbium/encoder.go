// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

// EncodeFrame builds a complete wire frame:
//
//	SYNC, ADDR_HI, ADDR_LO, SYNC, CMD, ARG..., CRC_HI, CRC_LO
//
// The CRC covers every byte before the trailer and is appended big-endian.
// Encoding is deterministic and has no failure modes; any argument slice of
// bounded length produces a well-formed frame.
func EncodeFrame(address [2]byte, command byte, args []byte) []byte {
	frame := make([]byte, 0, HeaderSize+len(args)+CRCSize)
	frame = append(frame, SyncByte, address[0], address[1], SyncByte, command)
	frame = append(frame, args...)
	crc := CalculateCRC(frame)
	return append(frame, byte(crc>>8), byte(crc&0xFF))
}
