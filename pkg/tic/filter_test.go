// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import (
	"strings"
	"testing"
)

func exampleFilter() (*FilterBitmap, error) {
	return LoadFilter(V02, strings.NewReader("#ticfilter\nADSC VTIC\n"))
}

func TestLoadFilter_EnablesOnlyListedTags(t *testing.T) {
	bitmap, err := exampleFilter()
	if err != nil {
		t.Fatalf("LoadFilter: %v", err)
	}

	adsc, _ := V02.Lookup("ADSC")
	vtic, _ := V02.Lookup("VTIC")
	date, _ := V02.Lookup("DATE")

	if !bitmap.Allows(adsc.ID) || !bitmap.Allows(vtic.ID) {
		t.Errorf("expected ADSC and VTIC to be allowed")
	}
	if bitmap.Allows(date.ID) {
		t.Errorf("expected DATE to be filtered out")
	}
}

func TestLoadFilter_RejectsMissingMagic(t *testing.T) {
	_, err := LoadFilter(V02, strings.NewReader("ADSC\n"))
	if err == nil {
		t.Errorf("expected an error for a file missing the #ticfilter magic line")
	}
}

func TestLoadFilter_RejectsUnrecognizedLabel(t *testing.T) {
	_, err := LoadFilter(V02, strings.NewReader("#ticfilter\nNOTALABEL\n"))
	if err == nil {
		t.Errorf("expected an error for an unrecognized label")
	}
}
