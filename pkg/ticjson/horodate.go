// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ticjson

// FormatHorodateV02 reformats a V02 horodate ("SAAMMJJhhmmss", 13 bytes)
// into ISO-8601 with the season-derived UTC offset (§6, §8 horodate
// formatting test). ok is false when s does not have the expected shape.
func FormatHorodateV02(s string) (string, bool) {
	if len(s) != 13 {
		return "", false
	}
	offset := ""
	switch s[0] {
	case 'E', 'e':
		offset = "+02:00"
	case 'H', 'h':
		offset = "+01:00"
	case ' ':
		offset = ""
	default:
		return "", false
	}
	digits := s[1:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	yy, mm, dd := digits[0:2], digits[2:4], digits[4:6]
	hh, mi, ss := digits[6:8], digits[8:10], digits[10:12]
	return "20" + yy + "-" + mm + "-" + dd + "T" + hh + ":" + mi + ":" + ss + offset, true
}

// FormatHorodateV01PME reformats a V01PME horodate
// ("DD/MM/YY HH:MM:SS", 17 bytes) into ISO-8601 with no offset, since
// V01PME carries no DST hint (§6).
func FormatHorodateV01PME(s string) (string, bool) {
	if len(s) != 17 {
		return "", false
	}
	if s[2] != '/' || s[5] != '/' || s[8] != ' ' || s[11] != ':' || s[14] != ':' {
		return "", false
	}
	dd, mm, yy := s[0:2], s[3:5], s[6:8]
	hh, mi, ss := s[9:11], s[12:14], s[15:17]
	return "20" + yy + "-" + mm + "-" + dd + "T" + hh + ":" + mi + ":" + ss, true
}
