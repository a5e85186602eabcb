package formula

import (
	"strings"
	"unicode"
)

// Canonical connective symbols.
const (
	SymNot     = "¬"
	SymAnd     = "∧"
	SymOr      = "∨"
	SymImplies = "→"
	SymIff     = "↔"
	SymBottom  = "⊥"
)

type spelling struct {
	text      string
	canonical string
	// standalone spellings only count when not glued to an atom.
	standalone bool
}

// spellings is ordered so that longer spellings win over their prefixes.
var spellings = []spelling{
	{text: "<->", canonical: SymIff},
	{text: "<=>", canonical: SymIff},
	{text: "_|_", canonical: SymBottom},
	{text: "->", canonical: SymImplies},
	{text: "=>", canonical: SymImplies},
	{text: "&&", canonical: SymAnd},
	{text: "||", canonical: SymOr},
	{text: "≡", canonical: SymIff},
	{text: "⇔", canonical: SymIff},
	{text: "⊃", canonical: SymImplies},
	{text: "⇒", canonical: SymImplies},
	{text: "&", canonical: SymAnd},
	{text: "^", canonical: SymAnd},
	{text: "·", canonical: SymAnd},
	{text: "|", canonical: SymOr},
	{text: "v", canonical: SymOr, standalone: true},
	{text: "~", canonical: SymNot},
	{text: "!", canonical: SymNot},
	{text: "-", canonical: SymNot},
	{text: "#", canonical: SymBottom},
}

// Normalize rewrites every alternate spelling of a connective to its
// canonical symbol. Everything else is copied through untouched.
func Normalize(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		matched := false
		for _, sp := range spellings {
			sr := []rune(sp.text)
			if !hasPrefixAt(runes, i, sr) {
				continue
			}
			if sp.standalone && !isolated(runes, i, len(sr)) {
				continue
			}
			b.WriteString(sp.canonical)
			i += len(sr)
			matched = true
			break
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

func hasPrefixAt(runes []rune, i int, prefix []rune) bool {
	if i+len(prefix) > len(runes) {
		return false
	}
	for j, r := range prefix {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}

// isolated reports whether runes[i:i+n] is bounded by non-atom characters.
func isolated(runes []rune, i, n int) bool {
	if i > 0 && isAtomRune(runes[i-1]) {
		return false
	}
	if end := i + n; end < len(runes) && isAtomRune(runes[end]) {
		return false
	}
	return true
}

var studentSpellings = strings.NewReplacer(
	SymIff, "<->",
	SymImplies, "->",
	SymAnd, "&",
	SymOr, "v",
	SymNot, "~",
	SymBottom, "_|_",
)

// Standardize converts canonical symbols into the plain ASCII spellings used
// when displaying problems to students. Normalize reverses it.
func Standardize(text string) string {
	return studentSpellings.Replace(text)
}

// isAtomRune reports whether r may appear in a sentence letter.
func isAtomRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}
