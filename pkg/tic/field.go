// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import "strconv"

// Field is a decoded dataset: an etiquette, a payload discriminated by
// the etiquette's UnitType, and an optional horodate string (§3).
//
// Str and Horodate are copied out of the Decoder's buffers when the
// Field is built, so a Field holds no reference to them and stays valid
// after the Sink callback that receives it returns. The Decoder itself
// keeps no Field once the callback returns (§3 "Lifecycle").
type Field struct {
	Etiq     Etiquette
	Str      string // populated when Etiq.UnitType.IsString()
	Int      int64  // populated otherwise
	Horodate string // empty when the dataset carries no horodate
}

// makeField constructs a Field from raw payload bytes per §4.2's
// construction rules. horodate and data are borrowed slices owned by the
// Decoder; makeField copies out only what it keeps.
func makeField(etiq Etiquette, horodate, data []byte) Field {
	f := Field{Etiq: etiq}
	if len(horodate) > 0 {
		f.Horodate = string(horodate)
	}

	switch etiq.UnitType.DataType() {
	case TypeIgnore:
		// payload discarded; no Str/Int populated.
	case TypeString, TypeProfile:
		f.Str = string(data)
	case TypeHex:
		v, _ := strconv.ParseInt(string(data), 16, 64)
		f.Int = v
	default:
		f.Etiq.UnitType = f.Etiq.UnitType.WithUnit(reclassifiedUnit(etiq, data))
		f.Int = parseV01PMESuffixedInt(etiq, data)
	}
	return f
}

// parseV01PMESuffixedInt implements the V01PME special case (§4.3): a
// unitless label whose numeric payload carries a trailing unit letter
// ('A' or 'W') must have its field's unit reclassified; the numeric value
// itself excludes the suffix. Dialects other than V01PME never attach a
// suffix, so this degrades to a plain base-10 parse for them.
func parseV01PMESuffixedInt(etiq Etiquette, data []byte) int64 {
	numeric := data
	if last := lastByte(data); etiq.UnitType.Unit() == UnitNone && (last == 'A' || last == 'W') {
		numeric = trimTrailingNonDigits(data)
	}
	v, _ := strconv.ParseInt(string(numeric), 10, 64)
	return v
}

func lastByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}

// trimTrailingNonDigits strips a trailing unit suffix like " kW" or
// " kVA" down to the bare numeric prefix.
func trimTrailingNonDigits(data []byte) []byte {
	end := len(data)
	for end > 0 && !(data[end-1] >= '0' && data[end-1] <= '9') {
		end--
	}
	return data[:end]
}

// reclassifiedUnit returns the unit a field's etiquette should report
// once the V01PME trailing-suffix rule (§4.3, scenario 5) has fired, or
// the etiquette's own unit when it did not.
func reclassifiedUnit(etiq Etiquette, data []byte) Unit {
	if len(data) == 0 || etiq.UnitType.Unit() != UnitNone {
		return etiq.UnitType.Unit()
	}
	switch data[len(data)-1] {
	case 'A':
		return UnitKVA
	case 'W':
		return UnitKW
	default:
		return etiq.UnitType.Unit()
	}
}
