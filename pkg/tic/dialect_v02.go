// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

import "fmt"

// V02 is the "standard" dialect table used by Linky in native mode
// (§4.3). Built once at package init; read-only thereafter (§5).
var V02 = buildV02()

type v02Builder struct {
	entries []Etiquette
	nextID  uint8
}

func (b *v02Builder) add(label string, ut UnitType, horodate bool, desc string) {
	b.entries = append(b.entries, Etiquette{
		ID:          b.nextID,
		Label:       label,
		UnitType:    ut,
		HasHorodate: horodate,
		Desc:        desc,
	})
	b.nextID++
}

func (b *v02Builder) addSeries(prefix string, from, to int, width int, ut UnitType, desc string) {
	for i := from; i <= to; i++ {
		label := fmt.Sprintf("%s%0*d", prefix, width, i)
		b.add(label, ut, false, desc)
	}
}

func buildV02() *Dialect {
	b := &v02Builder{}

	str := MakeUnitType(TypeString, UnitNone)
	hexu := MakeUnitType(TypeHex, UnitNone)
	prof := MakeUnitType(TypeProfile, UnitNone)
	dimensionless := MakeUnitType(TypeInt, UnitNone)

	b.add("ADSC", str, false, "adresse secondaire du compteur")
	b.add("VTIC", str, false, "version de la TIC")
	b.add("DATE", str, true, "date et heure courante")
	b.add("NGTF", str, false, "nom du calendrier tarifaire fournisseur")
	b.add("LTARF", str, false, "libellé tarif fournisseur en cours")
	b.add("PRM", str, false, "point référence mesure")
	b.add("MSG1", str, false, "message court")
	b.add("MSG2", str, false, "message ultra court")
	b.add("NTARF", dimensionless, false, "numéro de l'index tarifaire en cours")
	b.add("NJOURF", dimensionless, false, "numéro du jour en cours calendrier fournisseur")
	b.add("NJOURF+1", dimensionless, false, "numéro du prochain jour calendrier fournisseur")
	b.add("PJOURF+1", prof, false, "profil du prochain jour calendrier fournisseur")
	b.add("PPOINTE", prof, false, "profil du prochain jour de pointe")
	b.add("RELAIS", dimensionless, false, "état des relais")
	b.add("STGE", hexu, false, "registre de statuts")

	b.add("DPM1", str, true, "début pointe mobile 1")
	b.add("FPM1", str, true, "fin pointe mobile 1")
	b.add("DPM2", str, true, "début pointe mobile 2")
	b.add("FPM2", str, true, "fin pointe mobile 2")
	b.add("DPM3", str, true, "début pointe mobile 3")
	b.add("FPM3", str, true, "fin pointe mobile 3")

	wh := MakeUnitType(TypeInt, UnitWh)
	varh := MakeUnitType(TypeInt, UnitVArh)
	b.add("EAST", wh, false, "énergie active soutirée totale")
	b.addSeries("EASF", 1, 10, 2, wh, "énergie active soutirée fournisseur, index")
	b.addSeries("EASD", 1, 4, 2, wh, "énergie active soutirée distributeur, index")
	b.add("EAIT", wh, false, "énergie active injectée totale")
	b.addSeries("ERQ", 1, 4, 1, varh, "énergie réactive, quadrant")

	amp := MakeUnitType(TypeInt, UnitA)
	volt := MakeUnitType(TypeInt, UnitV)
	b.addSeries("IRMS", 1, 3, 1, amp, "courant efficace, phase")
	b.addSeries("URMS", 1, 3, 1, volt, "tension efficace, phase")
	b.addSeries("UMOY", 1, 3, 1, volt, "tension moyenne, phase")

	kva := MakeUnitType(TypeInt, UnitKVA)
	va := MakeUnitType(TypeInt, UnitVA)
	w := MakeUnitType(TypeInt, UnitW)
	b.add("PREF", kva, false, "puissance apparente de référence")
	b.add("PCOUP", kva, false, "puissance apparente de coupure")

	b.add("SINSTS", va, false, "puissance apparente instantanée soutirée")
	b.addSeries("SINSTS", 1, 3, 1, va, "puissance apparente instantanée soutirée, phase")
	b.add("SINSTI", w, false, "puissance active instantanée injectée")
	b.add("SMAXSN", va, false, "puissance apparente max soutirée, jour courant")
	b.addSeries("SMAXSN", 1, 3, 1, va, "puissance apparente max soutirée, jour courant, phase")
	b.add("SMAXIN", w, false, "puissance active max injectée, jour courant")
	b.addSeries("SMAXIN", 1, 3, 1, w, "puissance active max injectée, jour courant, phase")
	b.add("CCASN", w, false, "point n de la courbe de charge active soutirée")
	b.add("CCASN-1", w, false, "point n-1 de la courbe de charge active soutirée")
	b.add("CCAIN", w, false, "point n de la courbe de charge active injectée")
	b.add("CCAIN-1", w, false, "point n-1 de la courbe de charge active injectée")

	return NewDialect("V02", SepHT, false, true, false, b.entries)
}
