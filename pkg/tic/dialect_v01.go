// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tic

// V01 is the "historique" dialect table used by legacy and Linky-in-
// compatibility-mode meters (§4.3). It carries no horodate production at
// all — HasHorodate is false for the dialect as a whole.
var V01 = buildV01()

func buildV01() *Dialect {
	b := &v02Builder{}

	str := MakeUnitType(TypeString, UnitNone)
	amp := MakeUnitType(TypeInt, UnitA)
	wh := MakeUnitType(TypeInt, UnitWh)
	w := MakeUnitType(TypeInt, UnitW)
	va := MakeUnitType(TypeInt, UnitVA)
	min := MakeUnitType(TypeInt, UnitMin)

	b.add("ADCO", str, false, "adresse du compteur")
	b.add("OPTARIF", str, false, "option tarifaire choisie")
	b.add("ISOUSC", amp, false, "intensité souscrite")
	b.add("BASE", wh, false, "index si option base")
	b.add("HCHC", wh, false, "index heures creuses si option heures creuses")
	b.add("HCHP", wh, false, "index heures pleines si option heures creuses")
	b.add("EJPHN", wh, false, "index heures normales si option EJP")
	b.add("EJPHPM", wh, false, "index heures de pointe mobile si option EJP")
	for _, suffix := range []string{"1", "2", "3", "4", "5", "6"} {
		b.add("BBRHCJB"+suffix, wh, false, "index heures creuses jours bleus (tempo)")
	}
	b.add("PTEC", str, false, "période tarifaire en cours")
	b.add("DEMAIN", str, false, "couleur du lendemain si option tempo")
	b.add("IINST", amp, false, "intensité instantanée")
	for _, suffix := range []string{"1", "2", "3"} {
		b.add("IINST"+suffix, amp, false, "intensité instantanée, phase")
	}
	b.add("ADPS", amp, false, "avertissement de dépassement de puissance souscrite")
	b.add("IMAX", amp, false, "intensité maximale appelée")
	for _, suffix := range []string{"1", "2", "3"} {
		b.add("IMAX"+suffix, amp, false, "intensité maximale appelée, phase")
	}
	b.add("PMAX", w, false, "puissance maximale triphasée atteinte")
	b.add("PAPP", va, false, "puissance apparente")
	b.add("HHPHC", str, false, "horaire heures pleines/creuses")
	b.add("MOTDETAT", str, false, "mot d'état du compteur")
	b.add("PPOT", str, false, "présence potentiels")
	b.add("PEJP", min, false, "préavis heures de pointe mobile si option EJP")
	b.add("ADIR1", amp, false, "avertissement de dépassement, phase 1")
	b.add("ADIR2", amp, false, "avertissement de dépassement, phase 2")
	b.add("ADIR3", amp, false, "avertissement de dépassement, phase 3")
	b.add("GAZ", str, false, "relevé du module gaz")
	b.add("AUTRE", str, false, "relevé auxiliaire")

	return NewDialect("V01", SepSP, true, false, true, b.entries)
}
