// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ticjson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Thermoquad/tic-collector/pkg/tic"
)

func decodeOneFrame(t *testing.T, d *tic.Dialect, sink tic.Sink, frame []byte) {
	t.Helper()
	dec := tic.NewDecoder(d, sink, nil)
	for _, b := range frame {
		dec.Feed(b)
	}
}

// buildFrame assembles STX <dataset> ETX around an already-correct
// dataset body, mirroring §8 scenario 1's minimal V02 frame.
func buildFrame(body []byte) []byte {
	out := []byte{tic.STX}
	out = append(out, body...)
	out = append(out, tic.ETX)
	return out
}

func foldSum(d *tic.Dialect, covered []byte) byte {
	sum := 0
	for _, b := range covered {
		sum += int(b)
	}
	if d.Name != "V02" {
		sum -= int(d.Separator)
	}
	return byte((sum & 0x3F) + 0x20)
}

func datasetBytes(d *tic.Dialect, label string, data []byte) []byte {
	sep := d.Separator
	var covered []byte
	covered = append(covered, label...)
	covered = append(covered, sep)
	covered = append(covered, data...)
	covered = append(covered, sep)
	ck := foldSum(d, covered)

	out := []byte{tic.LF}
	out = append(out, label...)
	out = append(out, sep)
	out = append(out, data...)
	out = append(out, sep)
	out = append(out, ck)
	out = append(out, tic.CR)
	return out
}

func TestSink_DictMode_MinimalV02Frame(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeDict})

	body := datasetBytes(tic.V02, "ADSC", []byte("012345678901"))
	decodeOneFrame(t, tic.V02, sink, buildFrame(body))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v (%s)", err, buf.String())
	}

	entry, ok := got["ADSC"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected ADSC entry, got %v", got)
	}
	if entry["data"] != "012345678901" {
		t.Errorf("data = %v", entry["data"])
	}
	if got["_tvalide"] != float64(1) {
		t.Errorf("_tvalide = %v", got["_tvalide"])
	}
}

func TestSink_DictMode_BadChecksumYieldsInvalidEmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeDict})

	body := datasetBytes(tic.V02, "ADSC", []byte("012345678901"))
	body[len(body)-2] ^= 0xFF // corrupt the checksum byte
	decodeOneFrame(t, tic.V02, sink, buildFrame(body))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v (%s)", err, buf.String())
	}
	if _, present := got["ADSC"]; present {
		t.Errorf("expected no ADSC entry after checksum failure, got %v", got)
	}
	if got["_tvalide"] != float64(0) {
		t.Errorf("_tvalide = %v", got["_tvalide"])
	}
}

func TestSink_ListMode_EmitsArray(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeList})

	body := datasetBytes(tic.V02, "ADSC", []byte("012345678901"))
	decodeOneFrame(t, tic.V02, sink, buildFrame(body))

	trimmed := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(trimmed, "[") {
		t.Fatalf("expected a JSON array, got %s", trimmed)
	}
}

func TestSink_MaskZero_OmitsZeroValuedField(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeDict, MaskZero: true})

	body := datasetBytes(tic.V01, "HCHC", []byte("000000000"))
	decodeOneFrame(t, tic.V01, sink, buildFrame(body))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := got["HCHC"]; present {
		t.Errorf("expected zero-valued HCHC to be masked, got %v", got)
	}
}

func TestSink_IDTag_IsCopiedOntoEveryField(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeDict, ID: "meter-7"})

	body := datasetBytes(tic.V02, "ADSC", []byte("012345678901"))
	decodeOneFrame(t, tic.V02, sink, buildFrame(body))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	entry := got["ADSC"].(map[string]interface{})
	if entry["id"] != "meter-7" {
		t.Errorf("id = %v", entry["id"])
	}
}

func TestSink_EveryNth_SkipsIntermediateFrames(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf, Options{Mode: ModeDict, EveryNth: 2})

	body := datasetBytes(tic.V02, "ADSC", []byte("012345678901"))
	for i := 0; i < 4; i++ {
		decodeOneFrame(t, tic.V02, sink, buildFrame(body))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 emitted frames out of 4, got %d: %v", len(lines), lines)
	}
}
