// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import "strings"

// DayProfileEntry is one schedule change in a decoded PJOURF+1/PPOINTE
// day profile (§4.5).
type DayProfileEntry struct {
	StartTime string // "HH:MM"
	Action    int    // decoded from the 16-bit hex action code
}

// DecodeDayProfile parses up to 11 whitespace-separated 8-char blocks of
// the form HHMMSSSS, stopping at (and not including) the first literal
// NONUTILE block. HHMM is a start time; SSSS is the 16-bit hex action
// code (§4.5, §8 scenario 6).
func DecodeDayProfile(payload string) []DayProfileEntry {
	var entries []DayProfileEntry
	for _, block := range strings.Fields(payload) {
		if block == "NONUTILE" {
			break
		}
		if len(block) != 8 {
			continue
		}
		hh, mm := block[0:2], block[2:4]
		action := parseHexUint16(block[4:8])
		entries = append(entries, DayProfileEntry{
			StartTime: hh + ":" + mm,
			Action:    action,
		})
	}
	return entries
}

func parseHexUint16(s string) int {
	v := 0
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		}
	}
	return v
}
