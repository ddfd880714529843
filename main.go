// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Edfastat - EDFA Serial Control Utility
//
// A CLI tool for querying and controlling erbium-doped fiber amplifier
// modules over their point-to-point serial control protocol.

package main

import (
	"os"

	"github.com/Thermoquad/edfastat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
