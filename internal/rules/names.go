package rules

import (
	"strings"

	"github.com/gnolang/fitch/internal/formula"
)

// Canonical rule tags.
const (
	Premise      = "Pr"
	Hyp          = "Hyp"
	ImplElim     = "→E"
	ImplIntro    = "→I"
	AndIntro     = "∧I"
	AndElim      = "∧E"
	OrIntro      = "∨I"
	OrElim       = "∨E"
	IffIntro     = "↔I"
	IffElim      = "↔E"
	NotIntro     = "¬I"
	IndirectPf   = "IP"
	NotElim      = "¬E"
	BottomIntro  = "⊥I"
	BottomElim   = "⊥E"
	Reiteration  = "R"
	LEM          = "LEM"
	DNE          = "DNE"
	DeMorgan     = "DeM"
	ModusTollens = "MT"
	DisjSyll     = "DS"
)

// aliases maps lower-cased alternate tags, after symbol normalization,
// to the canonical tag.
var aliases = map[string]string{
	"premise":     Premise,
	"premiss":     Premise,
	"p":           Premise,
	"pr":          Premise,
	"prem":        Premise,
	"hyp":         Hyp,
	"hypothesis":  Hyp,
	"assumption":  Hyp,
	"assume":      Hyp,
	"ass":         Hyp,
	"as":          Hyp,
	"a":           Hyp,
	"r":           Reiteration,
	"reit":        Reiteration,
	"reiteration": Reiteration,
	"tnd":         LEM,
	"lem":         LEM,
	"dne":         DNE,
	"¬¬e":         DNE,
	"dem":         DeMorgan,
	"dm":          DeMorgan,
	"mt":          ModusTollens,
	"ds":          DisjSyll,
	"ip":          IndirectPf,
	"raa":         IndirectPf,
	"ve":          OrElim,
	"vi":          OrIntro,
	"x":           BottomElim,
	"mp":          ImplElim,
	"cp":          ImplIntro,
}

var canonical = map[string]bool{
	Premise: true, Hyp: true,
	ImplElim: true, ImplIntro: true,
	AndIntro: true, AndElim: true,
	OrIntro: true, OrElim: true,
	IffIntro: true, IffElim: true,
	NotIntro: true, IndirectPf: true, NotElim: true,
	BottomIntro: true, BottomElim: true,
	Reiteration: true, LEM: true, DNE: true, DeMorgan: true,
	ModusTollens: true, DisjSyll: true,
}

// Canonical maps a rule tag as written in a justification to its
// canonical form. It reports false for unknown tags.
func Canonical(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	norm := formula.Normalize(tag)
	if canonical[norm] {
		return norm, true
	}
	if c, ok := aliases[strings.ToLower(norm)]; ok {
		return c, true
	}
	// "∧i", "ip", ...
	for c := range canonical {
		if strings.EqualFold(c, norm) {
			return c, true
		}
	}
	return "", false
}
