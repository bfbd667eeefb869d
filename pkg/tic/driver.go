// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

// Decoder is the grammar driver (§4.2), the syntactic layer that sits on
// top of the scanner. It is reentrant on distinct instances; the Dialect
// it is constructed with is read-only shared state (§5).
//
// A Decoder is fed one wire byte at a time via Feed and drives its Sink
// inline, synchronously, from the same goroutine that calls Feed. There
// is no internal buffering beyond the current dataset's horodate/data
// bytes, so Decoder's peak memory is independent of frame size (§4.2
// "left-recursive grammar choice").
type Decoder struct {
	dialect *Dialect
	scanner *scanner
	sink    Sink

	horodate []byte
	data     []byte
	haveData bool

	etiq       Etiquette
	haveEtiq   bool
	datasetErr bool

	frameInvalid bool
	frameErrSent bool
}

// NewDecoder builds a Decoder for the given dialect and sink. diag may be
// nil to discard diagnostics (§7).
func NewDecoder(d *Dialect, sink Sink, diag DiagHook) *Decoder {
	return &Decoder{
		dialect: d,
		scanner: newScanner(d, diag),
		sink:    sink,
	}
}

// Feed advances the decoder by one wire byte.
func (dec *Decoder) Feed(b byte) {
	dec.scanner.feed(b, dec.handleToken)
}

func (dec *Decoder) handleToken(tok Token) {
	switch tok.Kind {
	case TokFrameStart:
		dec.frameInvalid = false
		dec.frameErrSent = false

	case TokDatasetStart:
		dec.horodate = dec.horodate[:0]
		dec.data = dec.data[:0]
		dec.haveData = false
		dec.haveEtiq = false
		dec.datasetErr = false

	case TokLabel:
		dec.etiq = tok.Label
		dec.haveEtiq = true

	case TokHorodate:
		dec.horodate = append(dec.horodate[:0], tok.Bytes...)

	case TokData:
		// A payload that itself contains the separator byte (a V01PME
		// "36 kW" value) arrives as several TokData segments; they are
		// joined back together with the separator between them.
		if dec.haveData {
			dec.data = append(dec.data, dec.dialect.Separator)
		} else {
			dec.data = dec.data[:0]
		}
		dec.data = append(dec.data, tok.Bytes...)
		dec.haveData = true

	case TokBadToken:
		// A label-not-found error does not by itself invalidate the
		// frame: per §4.2's grammar, "DATASET_START error DATASET_OK"
		// is not a frame error. It only becomes one if the checksum
		// also fails, handled in TokDatasetBadCRC below.
		dec.datasetErr = true

	case TokDatasetOK:
		if !dec.datasetErr && dec.haveEtiq && !dec.etiq.IsIgnored() {
			field := makeField(dec.etiq, dec.horodate, dec.data)
			dec.sink.PrintField(field)
		}

	case TokDatasetBadCRC:
		dec.setFrameErr()

	case TokFrameAbort:
		dec.setFrameErr()
		dec.sink.FrameSep()

	case TokFrameEnd:
		dec.sink.FrameSep()
	}
}

func (dec *Decoder) setFrameErr() {
	dec.frameInvalid = true
	if !dec.frameErrSent {
		dec.frameErrSent = true
		dec.sink.FrameErr()
	}
}

// FrameValid reports whether the frame most recently closed (or
// currently open) has seen no dataset error, no bad checksum, and no EOT
// termination — the condition dict-mode JSON output reports as
// "_tvalide": 1 (§6).
func (dec *Decoder) FrameValid() bool {
	return !dec.frameInvalid
}

// Dialect returns the dialect this decoder was constructed with.
func (dec *Decoder) Dialect() *Dialect {
	return dec.dialect
}
