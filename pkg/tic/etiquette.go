// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

// Etiquette is a dialect-local, immutable tag description: a dense tag id,
// the packed unit/type octet, the literal label the scanner matches on the
// wire, whether the grammar permits a horodate for this label, and a
// human-readable description (§3, §4.3).
type Etiquette struct {
	ID          uint8
	Label       string
	UnitType    UnitType
	HasHorodate bool
	Desc        string
}

// IsIgnored reports whether datasets under this tag are parsed and
// dropped rather than surfaced to the sink (§4.3, V01PME tangent-phi and
// tariff-dynamic labels).
func (e Etiquette) IsIgnored() bool {
	return e.UnitType.DataType() == TypeIgnore
}

// Dialect is a static, read-only table of etiquettes plus the framing
// parameters that distinguish V01 "historique", V02 "standard", and
// V01PME (§4.3, §6). Dialect values never mutate after construction and
// may be shared across concurrently-running Decoders (§5).
type Dialect struct {
	Name        string
	Separator   byte
	HasEOT      bool // interrupted frames terminate with EOT, not just ETX
	HasHorodate bool // grammar has a horodate production at all (false for V01)
	// trailingSepCompensation, when true, subtracts one separator byte's
	// value from the running sum before folding the checksum (§4.1's V01/
	// V01PME compensation for the separator preceding the checksum byte).
	trailingSepCompensation bool

	byLabel map[string]Etiquette
	byID    []Etiquette
}

// NewDialect builds a Dialect's lookup tables from a flat list of
// etiquettes. Tag ids must be dense starting at zero (§4.3).
func NewDialect(name string, sep byte, hasEOT, hasHorodate, sepCompensation bool, entries []Etiquette) *Dialect {
	d := &Dialect{
		Name:                    name,
		Separator:               sep,
		HasEOT:                  hasEOT,
		HasHorodate:             hasHorodate,
		trailingSepCompensation: sepCompensation,
		byLabel:                 make(map[string]Etiquette, len(entries)),
		byID:                    make([]Etiquette, len(entries)),
	}
	for _, e := range entries {
		d.byLabel[e.Label] = e
		if int(e.ID) >= len(d.byID) {
			panic("tic: etiquette id out of range for dialect " + name)
		}
		d.byID[e.ID] = e
	}
	return d
}

// Lookup resolves a literal wire label to its etiquette. ok is false when
// the label has no exact match in the dialect (§4.1 BAD_TOKEN).
func (d *Dialect) Lookup(label string) (Etiquette, bool) {
	e, ok := d.byLabel[label]
	return e, ok
}

// ByID resolves a dense tag id to its etiquette, used by the filter
// bitmap (§4.6).
func (d *Dialect) ByID(id uint8) (Etiquette, bool) {
	if int(id) >= len(d.byID) {
		return Etiquette{}, false
	}
	return d.byID[id], true
}

// TagCount returns the number of etiquettes in the dialect, i.e. the size
// a filter bitmap must have.
func (d *Dialect) TagCount() int {
	return len(d.byID)
}
