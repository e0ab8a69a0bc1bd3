// internal/thermo/melt.go
// Nearest-neighbor melting temperature for short DNA oligos (SantaLucia
// unified set). Units: ΔH in kcal/mol, ΔS in cal/(K·mol), Tm in °C.
//
// Steps:
//  1) Sum initiation + per-stack ΔH/ΔS, plus the symmetry correction for
//     self-complementary oligos.
//  2) Fold Mg²⁺ and dNTPs into an effective monovalent concentration
//     (von Ahsen 2001): Na_eff = Na + 120·sqrt(Mg − dNTPs), all in mM.
//  3) Salt-correct ΔS: ΔS(Na) = ΔS(1M) + 0.368·(n−1)·ln[Na_eff].
//  4) Two-state Tm (K): Tm = ΔH·1000 / (ΔS_Na + R·ln(CT/x)) − 273.15 (°C).
//
// This package has no app/output deps; design can import it cleanly.
package thermo

import (
	"fmt"
	"math"
	"strings"

	"headloop/internal/oligo"
)

// Gas constant in cal/(K·mol).
const rcal = 1.9872

var nnDH = map[string]float64{
	"AA": -7.9, "TT": -7.9, "AT": -7.2, "TA": -7.2,
	"CA": -8.5, "TG": -8.5, "GT": -8.4, "AC": -8.4,
	"CT": -7.8, "AG": -7.8, "GA": -8.2, "TC": -8.2,
	"CG": -10.6, "GC": -9.8, "GG": -8.0, "CC": -8.0,
}

var nnDS = map[string]float64{
	"AA": -22.2, "TT": -22.2, "AT": -20.4, "TA": -21.3,
	"CA": -22.7, "TG": -22.7, "GT": -22.4, "AC": -22.4,
	"CT": -21.0, "AG": -21.0, "GA": -22.2, "TC": -22.2,
	"CG": -27.2, "GC": -24.4, "GG": -19.9, "CC": -19.9,
}

const (
	initDH     = 0.2
	initDS     = -5.7
	symmetryDS = -1.4
)

// Conditions holds the wet-lab knobs the Tm depends on.
type Conditions struct {
	OligoNM float64 // total oligo concentration, nM
	NaMM    float64 // monovalent cations, mM
	MgMM    float64 // magnesium, mM
	DNTPsMM float64 // dNTPs, mM
}

// Default returns the reagent conditions used for headloop design:
// 1000 nM oligo, 50 mM Na⁺, 1.5 mM Mg²⁺, 0.2 mM dNTPs.
func Default() Conditions {
	return Conditions{OligoNM: 1000, NaMM: 50, MgMM: 1.5, DNTPsMM: 0.2}
}

// Temp computes the melting temperature (°C) of seq under cond.
// Accepts upper- or lowercase A/C/G/T; anything else is an error.
func Temp(seq string, cond Conditions) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(seq))
	if len(s) < 2 {
		return 0, fmt.Errorf("thermo: sequence %q too short for nearest-neighbor Tm", seq)
	}
	dH := initDH
	dS := initDS
	for i := 0; i < len(s)-1; i++ {
		st := s[i : i+2]
		dh, okH := nnDH[st]
		ds, okS := nnDS[st]
		if !okH || !okS {
			return 0, fmt.Errorf("thermo: invalid base in %q at %d (need A/C/G/T)", seq, i+1)
		}
		dH += dh
		dS += ds
	}
	cfactor := 4.0
	if strings.EqualFold(s, oligo.RevComp(s)) {
		dS += symmetryDS
		cfactor = 1.0
	}

	naEff := effectiveMonovalentM(cond)
	dS += 0.368 * float64(len(s)-1) * math.Log(naEff)

	ct := cond.OligoNM * 1e-9
	if ct <= 0 {
		ct = 1e-12
	}
	tmK := (dH * 1000.0) / (dS + rcal*math.Log(ct/cfactor))
	return tmK - 273.15, nil
}

// effectiveMonovalentM folds divalents into a single Na⁺ equivalent (mol/L).
// dNTPs chelate Mg²⁺, so only the excess counts.
func effectiveMonovalentM(c Conditions) float64 {
	na := c.NaMM
	if d := c.MgMM - c.DNTPsMM; d > 0 {
		na += 120.0 * math.Sqrt(d)
	}
	if na <= 0 {
		na = 1e-3
	}
	return na * 1e-3
}
