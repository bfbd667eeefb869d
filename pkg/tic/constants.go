// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package tic decodes the French meter telemetry protocol (Télé-Information
// Client): a byte-driven scanner recognizes frame/dataset control bytes and
// accumulates a per-dataset checksum, and a dialect-specific grammar driver
// assembles well-formed datasets into typed Fields, handing them to a
// pluggable Sink.
//
// The package is single-threaded, synchronous, and allocation-disciplined:
// a Decoder owns exactly one in-flight label buffer and one in-flight
// data/horodate buffer, sized for the longest label or wire value in any
// dialect. It never retains a Field after the Sink's PrintField returns.
package tic

// Control bytes recognized by the scanner (§4.1).
const (
	STX byte = 0x02 // frame start
	ETX byte = 0x03 // frame end
	EOT byte = 0x04 // frame abort (V01 / V01PME only)
	LF  byte = 0x0A // dataset start
	CR  byte = 0x0D // dataset end, precedes the checksum byte
)

// Separator bytes. V02 uses horizontal tab; V01 and V01PME use space.
const (
	SepHT byte = 0x09
	SepSP byte = 0x20
)

// maxLabelLen bounds the scanner's label accumulation buffer. No dialect
// label (including the expanded V01PME DATEPAx/PAx_s/PAx_i family) exceeds
// this.
const maxLabelLen = 16

// maxFieldLen bounds the horodate/data accumulation buffer between two
// separators. The longest wire value is not the V01PME horodate (17
// bytes) but a PJOURF+1/PPOINTE day-profile payload (§4.5): up to 11
// whitespace-separated 8-char blocks, ~98 bytes including the
// in-payload spaces (those spaces are profile content, not dataset
// SEPs, so they never split the token). 112 leaves a little slack
// without growing the buffer on the heap per §5's BAREBUILD discipline.
const maxFieldLen = 112
