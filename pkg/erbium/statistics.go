// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package erbium

import (
	"errors"
	"fmt"
	"time"
)

// Statistics tracks exchange outcomes and error rates over a session
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalExchanges  uint64
	Completed       uint64
	CRCErrors       uint64
	ShortFrames     uint64
	DecodeErrors    uint64
	Timeouts        uint64
	TransportErrors uint64

	// Rates (calculated)
	ExchangeRate float64 // exchanges/sec
	ErrorRate    float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update classifies the outcome of one exchange
func (s *Statistics) Update(err error) {
	s.TotalExchanges++
	s.LastUpdateTime = time.Now()

	if err == nil {
		s.Completed++
		return
	}

	var crcErr *CRCMismatchError
	var shortErr *FrameTooShortError
	var transportErr *TransportFailure
	switch {
	case errors.Is(err, ErrNoResponse):
		s.Timeouts++
	case errors.As(err, &crcErr):
		s.CRCErrors++
	case errors.As(err, &shortErr):
		s.ShortFrames++
	case errors.As(err, &transportErr):
		s.TransportErrors++
	default:
		// Payload-level decode failures (short/misaligned payloads, bad sync)
		s.DecodeErrors++
	}
}

// CalculateRates calculates exchange and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ExchangeRate = float64(s.TotalExchanges) / elapsed
		errorCount := s.TotalExchanges - s.Completed
		s.ErrorRate = float64(errorCount) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var completedPercent float64
	if s.TotalExchanges > 0 {
		completedPercent = float64(s.Completed) * 100.0 / float64(s.TotalExchanges)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Exchanges: %8d\n", s.TotalExchanges)
	result += fmt.Sprintf("Completed:       %8d (%.1f%%)\n", s.Completed, completedPercent)

	if s.Timeouts > 0 {
		result += fmt.Sprintf("Timeouts:        %8d\n", s.Timeouts)
	}
	if s.CRCErrors > 0 {
		result += fmt.Sprintf("CRC Errors:      %8d\n", s.CRCErrors)
	}
	if s.ShortFrames > 0 {
		result += fmt.Sprintf("Short Frames:    %8d\n", s.ShortFrames)
	}
	if s.DecodeErrors > 0 {
		result += fmt.Sprintf("Decode Errors:   %8d\n", s.DecodeErrors)
	}
	if s.TransportErrors > 0 {
		result += fmt.Sprintf("Transport Errors:%8d\n", s.TransportErrors)
	}

	result += fmt.Sprintf("Exchange Rate:   %8.1f exch/sec\n", s.ExchangeRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.TotalExchanges = 0
	s.Completed = 0
	s.CRCErrors = 0
	s.ShortFrames = 0
	s.DecodeErrors = 0
	s.Timeouts = 0
	s.TransportErrors = 0
	s.ExchangeRate = 0
	s.ErrorRate = 0
}
