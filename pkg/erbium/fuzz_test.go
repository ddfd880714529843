// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func randomFrame(rng *rand.Rand) ([2]byte, byte, []byte) {
	addr := [2]byte{byte(rng.Intn(256)), byte(rng.Intn(256))}
	command := byte(rng.Intn(256))
	args := make([]byte, rng.Intn(61))
	rng.Read(args)
	return addr, command, args
}

func TestFuzzEncodeDecodeRoundTrip(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		addr, command, args := randomFrame(rng)
		frame := EncodeFrame(addr, command, args)

		decoded, err := DecodeFrame(frame)
		if err != nil {
			t.Fatalf("round %d: DecodeFrame(% X): %v", round, frame, err)
		}
		if decoded.Address != addr {
			t.Fatalf("round %d: address = % X, want % X", round, decoded.Address, addr)
		}
		if decoded.Command != command {
			t.Fatalf("round %d: command = 0x%02X, want 0x%02X", round, decoded.Command, command)
		}
		if !bytes.Equal(decoded.Payload, args) {
			t.Fatalf("round %d: payload = % X, want % X", round, decoded.Payload, args)
		}
	}
}

func TestFuzzBitFlipDetection(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		addr, command, args := randomFrame(rng)
		frame := EncodeFrame(addr, command, args)

		// Flip one bit anywhere before the CRC trailer; CCITT-FALSE
		// detects all single-bit errors, so decoding must fail.
		pos := rng.Intn(len(frame) - CRCSize)
		frame[pos] ^= 1 << uint(rng.Intn(8))

		if _, err := DecodeFrame(frame); err == nil {
			t.Fatalf("round %d: corrupted frame at byte %d decoded cleanly: % X", round, pos, frame)
		}
	}
}

func TestFuzzDecodersNeverPanic(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	decoders := []func([]byte) (Record, error){
		asRecord(DecodeTemperature),
		asRecord(DecodeModeStatus),
		asRecord(DecodeModuleStatus),
		asRecord(DecodePowerReadings),
		asRecord(DecodeAlarmStatus),
		asRecord(DecodeVOAStatus),
		asRecord(DecodePumpLaserStatus),
	}

	for round := 0; round < rounds; round++ {
		payload := make([]byte, rng.Intn(65))
		rng.Read(payload)

		for i, decode := range decoders {
			rec, err := decode(payload)
			// All-or-nothing: either a record or an error, never both
			if (rec == nil) == (err == nil) {
				t.Fatalf("round %d: decoder %d returned rec=%v err=%v for % X", round, i, rec, err, payload)
			}
		}
	}
}

func TestFuzzRandomBuffersNeverPanic(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		raw := make([]byte, rng.Intn(80))
		rng.Read(raw)
		// Random garbage must come back as a typed error, never a panic.
		// (A random valid frame needs a matching 16-bit CRC: vanishingly rare.)
		if f, err := DecodeFrame(raw); err == nil {
			t.Logf("round %d: random buffer happened to decode: %+v", round, f)
		}
	}
}
