// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// tic-collector decodes the French electrical-meter TIC telemetry
// protocol from a serial port, a WebSocket bridge, or standard input.

package main

import (
	"fmt"
	"os"

	"github.com/Thermoquad/tic-collector/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
