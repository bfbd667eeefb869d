// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import "testing"

type recordingSink struct {
	fields    []Field
	frameSeps int
	frameErrs int
}

func (s *recordingSink) PrintField(f Field) { s.fields = append(s.fields, f) }
func (s *recordingSink) FrameSep()          { s.frameSeps++ }
func (s *recordingSink) FrameErr()          { s.frameErrs++ }

func feedFrame(dec *Decoder, body []byte) {
	dec.Feed(STX)
	for _, b := range body {
		dec.Feed(b)
	}
	dec.Feed(ETX)
}

func TestDecoder_ValidDataset(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V02, sink, nil)

	ds := buildDataset(V02, "ADSC", nil, []byte("012345678901"))
	feedFrame(dec, ds)

	if len(sink.fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(sink.fields))
	}
	f := sink.fields[0]
	if f.Etiq.Label != "ADSC" || f.Str != "012345678901" {
		t.Errorf("unexpected field: %+v", f)
	}
	if sink.frameSeps != 1 {
		t.Errorf("expected 1 frame_sep call, got %d", sink.frameSeps)
	}
	if sink.frameErrs != 0 {
		t.Errorf("expected no frame_err calls, got %d", sink.frameErrs)
	}
	if !dec.FrameValid() {
		t.Errorf("expected frame to be valid")
	}
}

func TestDecoder_BadChecksumDropsFieldAndInvalidatesFrame(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V02, sink, nil)

	ds := buildDataset(V02, "ADSC", nil, []byte("012345678901"))
	ds[len(ds)-2] ^= 0xFF // corrupt the checksum byte
	feedFrame(dec, ds)

	if len(sink.fields) != 0 {
		t.Fatalf("expected no fields for a bad checksum, got %d", len(sink.fields))
	}
	if sink.frameErrs != 1 {
		t.Errorf("expected exactly 1 frame_err call, got %d", sink.frameErrs)
	}
	if dec.FrameValid() {
		t.Errorf("expected frame to be invalid")
	}
}

func TestDecoder_HorodateOnlyField(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V02, sink, nil)

	ds := buildDataset(V02, "DATE", []byte("E230601120000"), nil)
	feedFrame(dec, ds)

	if len(sink.fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(sink.fields))
	}
	f := sink.fields[0]
	if f.Horodate != "E230601120000" {
		t.Errorf("expected horodate to be captured, got %q", f.Horodate)
	}
	if f.Str != "" {
		t.Errorf("expected empty data alongside horodate-only field, got %q", f.Str)
	}
}

func TestDecoder_V01HistoriqueIntegerField(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V01, sink, nil)

	ds := buildDataset(V01, "HCHC", nil, []byte("012345678"))
	feedFrame(dec, ds)

	if len(sink.fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(sink.fields))
	}
	f := sink.fields[0]
	if f.Int != 12345678 {
		t.Errorf("expected 12345678, got %d", f.Int)
	}
	if f.Etiq.UnitType.Unit() != UnitWh {
		t.Errorf("expected Wh unit, got %v", f.Etiq.UnitType.Unit())
	}
}

func TestDecoder_V01PMETrailingSuffixReclassifiesUnit(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V01PME, sink, nil)

	ds := buildDataset(V01PME, "PS", nil, []byte("36 kW"))
	feedFrame(dec, ds)

	if len(sink.fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(sink.fields))
	}
	f := sink.fields[0]
	if f.Int != 36 {
		t.Errorf("expected numeric value 36, got %d", f.Int)
	}
	if f.Etiq.UnitType.Unit() != UnitKW {
		t.Errorf("expected unit reclassified to kW, got %v", f.Etiq.UnitType.Unit())
	}
}

func TestDecoder_UnrecognizedLabelWithGoodChecksumIsNotAFrameError(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V02, sink, nil)

	ds := buildDataset(V02, "NOTALABEL", nil, []byte("1"))
	feedFrame(dec, ds)

	if len(sink.fields) != 0 {
		t.Errorf("expected no field for an unrecognized label, got %d", len(sink.fields))
	}
	if sink.frameErrs != 0 {
		t.Errorf("§4.2 grammar: a label error with a good checksum is not a frame error, got %d frame_err calls", sink.frameErrs)
	}
}

func TestDecoder_IgnoredFieldContributesToChecksumButIsNotPrinted(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V01PME, sink, nil)

	ds := buildDataset(V01PME, "TGPHI", nil, []byte("42"))
	feedFrame(dec, ds)

	if len(sink.fields) != 0 {
		t.Errorf("expected T_IGN field not to be printed, got %d", len(sink.fields))
	}
	if sink.frameErrs != 0 {
		t.Errorf("a correctly-checksummed ignored dataset must not mark the frame invalid, got %d", sink.frameErrs)
	}
}

func TestDecoder_EOTAbortsV01PMEFrame(t *testing.T) {
	sink := &recordingSink{}
	dec := NewDecoder(V01PME, sink, nil)

	dec.Feed(STX)
	ds := buildDataset(V01PME, "ADCO", nil, []byte("123456789012"))
	for _, b := range ds {
		dec.Feed(b)
	}
	dec.Feed(EOT)

	if sink.frameErrs != 1 {
		t.Errorf("expected EOT to mark the frame invalid, got %d frame_err calls", sink.frameErrs)
	}
	if sink.frameSeps != 1 {
		t.Errorf("expected frame_sep to still be called once on EOT, got %d", sink.frameSeps)
	}
	if dec.FrameValid() {
		t.Errorf("expected frame to be invalid after EOT")
	}
}
