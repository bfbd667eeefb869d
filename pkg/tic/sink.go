// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

// Sink is the external boundary of the core (§4.7). JSON rendering, UDP
// dispatch, and the CLI's own filters are built on top of it; the core
// never imports any of them.
type Sink interface {
	// PrintField is called once per valid dataset that the driver
	// assembled. Datasets under a T_IGN etiquette are dropped by the
	// driver and never reach it. Implementations decide independently
	// whether the field survives their own filters (tag allow-list,
	// zero-masking).
	PrintField(Field)
	// FrameSep is called exactly once per frame, regardless of validity.
	FrameSep()
	// FrameErr sets the frame's error flag. Safe to call more than once
	// per frame; the driver itself also dedupes the call.
	FrameErr()
}
