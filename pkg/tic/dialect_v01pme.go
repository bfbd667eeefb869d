// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

// V01PME is the PME-PMI variant of V01 used by commercial meters (§4.3).
// It adds horodates to the fundamental labels, carries energies in
// kWh/kVArh and powers in kW, and expands the DATEPAx/PAx_{s,i}
// parameterised families into concrete table rows rather than patching a
// label template in place at scan time.
var V01PME = buildV01PME()

func buildV01PME() *Dialect {
	b := &v02Builder{}

	str := MakeUnitType(TypeString, UnitNone)
	amp := MakeUnitType(TypeInt, UnitA)
	kwh := MakeUnitType(TypeInt, UnitKWh)
	kvarh := MakeUnitType(TypeInt, UnitKVArh)
	kw := MakeUnitType(TypeInt, UnitNone) // reclassified kW/kVA via trailing-suffix rule (§4.3)
	ign := MakeUnitType(TypeIgnore, UnitNone)

	b.add("ADCO", str, false, "adresse du compteur")
	b.add("OPTARIF", str, false, "option tarifaire choisie")
	b.add("ISOUSC", amp, false, "intensité souscrite")
	b.add("DATE", str, true, "date et heure courante")
	b.add("DEBP", str, true, "début de la période de pointe")
	b.add("DEBP-1", str, true, "début de la période de pointe précédente")
	b.add("FINP-1", str, true, "fin de la période de pointe précédente")

	b.add("EAPS", kwh, false, "énergie active soutirée")
	b.add("EAPPS", kvarh, false, "énergie réactive soutirée")
	b.add("PS", kw, false, "puissance soutirée (unité reclassée selon suffixe)")

	for _, suffix := range []string{"1", "2", "3", "4"} {
		b.add("DATEPA"+suffix, str, true, "date de la période d'application "+suffix)
		b.add("PA"+suffix+"_S", kw, false, "puissance souscrite, période "+suffix)
		b.add("PA"+suffix+"_I", kw, false, "puissance interrompue, période "+suffix)
	}

	// Tariff-dynamic and tangent-phi labels are present on the wire but
	// must be parsed-and-dropped: their bytes still contribute to the
	// checksum (§4.3), hence TypeIgnore rather than simply omitting them
	// from the table (an omitted label would be a BAD_TOKEN instead).
	b.add("TGPHI", ign, false, "tangente phi (ignoré)")
	b.add("DYN", ign, false, "paramètre tarifaire dynamique (ignoré)")

	return NewDialect("V01PME", SepSP, true, true, true, b.entries)
}
