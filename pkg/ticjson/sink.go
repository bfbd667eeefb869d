// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package ticjson renders each decoded frame as one JSON value (an array
// in list mode, an object in dict mode) followed by a newline (§6 "JSON
// output"). It is an external collaborator: it depends on
// pkg/tic, never the reverse.
package ticjson

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/Thermoquad/tic-collector/pkg/tic"
)

// Mode selects list-mode or dict-mode rendering (§6).
type Mode int

const (
	ModeList Mode = iota
	ModeDict
)

// Options configures a Sink's rendering, one knob per CLI output
// modifier named in §6.
type Options struct {
	Mode Mode

	// Descriptions adds "desc"/"unit" to every emitted field (-l).
	Descriptions bool
	// Newline, when true, separates each field's JSON object within a
	// frame with a newline instead of a space, so each field lands on
	// its own line (-n). The frame is still one JSON value terminated
	// by a single trailing newline either way.
	Newline bool
	// DecodeProfile renders PJOURF+1/PPOINTE payloads as an array of
	// {"start_time","action"} objects instead of the raw string (-p).
	DecodeProfile bool
	// LongDate reformats horodates to ISO-8601 (-r).
	LongDate bool
	// DecodeSTGE renders the STGE field as its decoded struct instead
	// of the raw integer (-u).
	DecodeSTGE bool
	// MaskZero skips numeric fields whose value is exactly zero (-z).
	MaskZero bool
	// Filter, when non-nil, drops any field whose tag it disallows.
	Filter *tic.FilterBitmap
	// ID, when non-empty, is copied onto every emitted field as "id"
	// (-i).
	ID string
	// EveryNth, when > 1, emits only every Nth frame (-s); frames that
	// are skipped still advance the counter but produce no output.
	EveryNth int
}

// fieldRecord is the per-dataset JSON shape shared by list and dict
// mode, module the key under which it is nested in dict mode.
type fieldRecord struct {
	Label    string      `json:"label,omitempty"`
	Data     interface{} `json:"data"`
	Horodate string      `json:"horodate,omitempty"`
	Desc     string      `json:"desc,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	ID       string      `json:"id,omitempty"`
}

type dayProfileEntry struct {
	StartTime string `json:"start_time"`
	Action    int    `json:"action"`
}

// dictEntry is a dict-mode field value: the same data a fieldRecord
// carries, minus the label (which becomes the map key instead).
type dictEntry struct {
	Data     interface{} `json:"data"`
	Horodate string      `json:"horodate,omitempty"`
	Desc     string      `json:"desc,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	ID       string      `json:"id,omitempty"`
}

// Sink renders a single frame's worth of tic.Field callbacks into one
// JSON value written to w when the frame closes (§6). It is not safe
// for concurrent use; pair one Sink with one tic.Decoder.
type Sink struct {
	w    io.Writer
	opts Options

	frameIdx int
	fields   []fieldRecord
	valid    bool
}

// NewSink returns a Sink that writes newline-delimited JSON frames to w.
func NewSink(w io.Writer, opts Options) *Sink {
	return &Sink{w: w, opts: opts, valid: true}
}

// PrintField implements tic.Sink.
func (s *Sink) PrintField(f tic.Field) {
	if s.opts.Filter != nil && !s.opts.Filter.Allows(f.Etiq.ID) {
		return
	}
	if s.opts.MaskZero && !f.Etiq.UnitType.IsString() && f.Int == 0 {
		return
	}

	rec := fieldRecord{
		Label:    f.Etiq.Label,
		Horodate: f.Horodate,
		ID:       s.opts.ID,
	}

	if s.opts.Descriptions {
		rec.Desc = f.Etiq.Desc
		rec.Unit = f.Etiq.UnitType.Unit().String()
	}

	if s.opts.LongDate && rec.Horodate != "" {
		if formatted, ok := FormatHorodateV02(rec.Horodate); ok {
			rec.Horodate = formatted
		} else if formatted, ok := FormatHorodateV01PME(rec.Horodate); ok {
			rec.Horodate = formatted
		}
	}

	rec.Data = s.fieldData(f)

	s.fields = append(s.fields, rec)
}

func (s *Sink) fieldData(f tic.Field) interface{} {
	if f.Etiq.Label == "STGE" && s.opts.DecodeSTGE {
		return tic.DecodeSTGE(uint32(f.Int))
	}
	if s.opts.DecodeProfile && f.Etiq.UnitType.DataType() == tic.TypeProfile {
		entries := tic.DecodeDayProfile(f.Str)
		out := make([]dayProfileEntry, len(entries))
		for i, e := range entries {
			out[i] = dayProfileEntry{StartTime: e.StartTime, Action: e.Action}
		}
		return out
	}
	if f.Etiq.UnitType.IsString() {
		return f.Str
	}
	return f.Int
}

// FrameErr implements tic.Sink.
func (s *Sink) FrameErr() {
	s.valid = false
}

// FrameSep implements tic.Sink, rendering and flushing the accumulated
// frame and resetting state for the next one (§6).
func (s *Sink) FrameSep() {
	defer s.reset()

	s.frameIdx++
	if s.opts.EveryNth > 1 && (s.frameIdx-1)%s.opts.EveryNth != 0 {
		return
	}

	// sep separates fields within the frame: a single space by default,
	// or a newline when -n ("newline per field") is set, so each field
	// object lands on its own line instead of sharing the frame's line.
	// The frame itself is still exactly one JSON value (§6), and still
	// followed by exactly one trailing newline.
	sep := " "
	if s.opts.Newline {
		sep = "\n"
	}

	var body string
	if s.opts.Mode == ModeDict {
		body = s.renderDict(sep)
	} else {
		body = s.renderList(sep)
	}

	io.WriteString(s.w, body)
	io.WriteString(s.w, "\n")
}

func (s *Sink) renderList(sep string) string {
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		b, _ := json.Marshal(f)
		parts[i] = string(b)
	}
	return "[" + strings.Join(parts, ","+sep) + "]"
}

func (s *Sink) renderDict(sep string) string {
	parts := make([]string, 0, len(s.fields)+1)
	for _, f := range s.fields {
		entry := dictEntry{
			Data:     f.Data,
			Horodate: f.Horodate,
			Desc:     f.Desc,
			Unit:     f.Unit,
			ID:       f.ID,
		}
		key, _ := json.Marshal(f.Label)
		val, _ := json.Marshal(entry)
		parts = append(parts, string(key)+":"+string(val))
	}

	tvalide := "0"
	if s.valid {
		tvalide = "1"
	}
	parts = append(parts, `"_tvalide":`+tvalide)

	return "{" + strings.Join(parts, ","+sep) + "}"
}

func (s *Sink) reset() {
	s.fields = s.fields[:0]
	s.valid = true
}
