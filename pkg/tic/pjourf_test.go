// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import "testing"

func TestDecodeDayProfile(t *testing.T) {
	payload := "00004003 06004004 22004003 NONUTILE NONUTILE NONUTILE NONUTILE NONUTILE NONUTILE NONUTILE NONUTILE"

	got := DecodeDayProfile(payload)
	want := []DayProfileEntry{
		{StartTime: "00:00", Action: 16387},
		{StartTime: "06:00", Action: 16388},
		{StartTime: "22:00", Action: 16387},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeDayProfile_LeadingNonUtile(t *testing.T) {
	got := DecodeDayProfile("NONUTILE NONUTILE")
	if len(got) != 0 {
		t.Errorf("expected no entries, got %+v", got)
	}
}

// TestDecoder_PJOURFMaximalPayloadSurvivesScanner feeds a full 11-block
// PJOURF+1 payload (§4.5's documented worst case) through the scanner and
// driver, not just DecodeDayProfile directly, so a regression in the
// field buffer's size (maxFieldLen) would truncate the string before
// DecodeDayProfile ever sees it.
func TestDecoder_PJOURFMaximalPayloadSurvivesScanner(t *testing.T) {
	payload := "00004003 02004004 04004003 06004004 08004003 10004004 12004003 14004004 16004003 18004004 20004003"

	sink := &recordingSink{}
	dec := NewDecoder(V02, sink, nil)
	ds := buildDataset(V02, "PJOURF+1", nil, []byte(payload))
	feedFrame(dec, ds)

	if len(sink.fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(sink.fields))
	}
	if sink.fields[0].Str != payload {
		t.Fatalf("payload truncated: got %q (%d bytes), want %q (%d bytes)",
			sink.fields[0].Str, len(sink.fields[0].Str), payload, len(payload))
	}

	entries := DecodeDayProfile(sink.fields[0].Str)
	if len(entries) != 11 {
		t.Fatalf("expected 11 decoded entries, got %d: %+v", len(entries), entries)
	}
}
