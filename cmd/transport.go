// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"time"

	"github.com/Thermoquad/edfastat/pkg/erbium"
)

const (
	// How long to wait for the first response byte after a request.
	responseWait = 1 * time.Second

	// Responses carry no length field, so end-of-frame is detected by the
	// line going idle. This is the idle gap that ends a response.
	interByteWait = 50 * time.Millisecond
)

// frameTransport adapts a Connection to the erbium.Transport exchange model:
// write one request, then collect response bytes until the device stops
// transmitting.
type frameTransport struct {
	conn Connection
}

var _ erbium.Transport = (*frameTransport)(nil)

func newFrameTransport(conn Connection) *frameTransport {
	return &frameTransport{conn: conn}
}

func (t *frameTransport) Write(p []byte) error {
	_, err := t.conn.Write(p)
	return err
}

func (t *frameTransport) Read(maxLen int) ([]byte, error) {
	response := make([]byte, 0, maxLen)
	chunk := make([]byte, maxLen)

	wait := responseWait
	for len(response) < maxLen {
		if err := t.conn.SetReadTimeout(wait); err != nil {
			return nil, err
		}

		n, err := t.conn.Read(chunk[:maxLen-len(response)])
		if n > 0 {
			response = append(response, chunk[:n]...)
		}
		if err != nil {
			if len(response) > 0 {
				// The device already answered; let frame validation
				// judge what we collected.
				break
			}
			return nil, err
		}
		if n == 0 {
			// Timed out: no response at all, or the line went idle
			// after the last byte of the frame.
			break
		}

		wait = interByteWait
	}

	return response, nil
}
