// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FilterBitmap is a tag-indexed boolean predicate (etiq_en in the
// reference design, §4.6). A nil *FilterBitmap is the "no filter, every
// tag enabled" predicate.
type FilterBitmap struct {
	enabled []bool
}

// NewFilterBitmap returns a bitmap with every tag in d disabled.
func NewFilterBitmap(d *Dialect) *FilterBitmap {
	return &FilterBitmap{enabled: make([]bool, d.TagCount())}
}

// Enable sets the bit for the given tag id.
func (f *FilterBitmap) Enable(id uint8) {
	if int(id) < len(f.enabled) {
		f.enabled[id] = true
	}
}

// Allows reports whether the given tag id passes the filter. A nil
// receiver allows everything.
func (f *FilterBitmap) Allows(id uint8) bool {
	if f == nil {
		return true
	}
	return int(id) < len(f.enabled) && f.enabled[id]
}

const filterMagic = "#ticfilter"

// LoadFilter parses a filter allow-list file (§4.6). The file's first
// line must be the literal "#ticfilter" magic; every subsequent
// whitespace-separated token must be a label recognized by d, or LoadFilter
// aborts with a configuration error, matching the "any other token
// aborts" rule. This is a fatal, start-up-only error per §7 — never a
// condition the running decoder can hit mid-stream.
func LoadFilter(d *Dialect, r io.Reader) (*FilterBitmap, error) {
	scan := bufio.NewScanner(r)
	scan.Split(bufio.ScanWords)

	if !scan.Scan() {
		return nil, fmt.Errorf("tic: empty filter file")
	}
	if strings.TrimSpace(scan.Text()) != filterMagic {
		return nil, fmt.Errorf("tic: filter file missing %q magic line", filterMagic)
	}

	bitmap := NewFilterBitmap(d)
	for scan.Scan() {
		label := scan.Text()
		etiq, ok := d.Lookup(label)
		if !ok {
			return nil, fmt.Errorf("tic: filter file: unrecognized label %q for dialect %s", label, d.Name)
		}
		bitmap.Enable(etiq.ID)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("tic: reading filter file: %w", err)
	}
	return bitmap, nil
}
