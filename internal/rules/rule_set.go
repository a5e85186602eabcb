package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnolang/fitch/internal/formula"
)

// Range is a cited subproof, reduced to its assumption and its last line.
type Range struct {
	Hyp  formula.Formula
	Last formula.Formula
}

// Cited holds the resolved citations of one justification, split by kind
// and kept in citation order.
type Cited struct {
	Lines  []formula.Formula
	Ranges []Range
}

// Shape is the citation arity a rule requires.
type Shape struct {
	Lines  int
	Ranges int
}

func (s Shape) String() string {
	var parts []string
	if s.Lines > 0 {
		parts = append(parts, plural(s.Lines, "line"))
	}
	if s.Ranges > 0 {
		parts = append(parts, plural(s.Ranges, "range"))
	}
	if len(parts) == 0 {
		return "no citations"
	}
	return strings.Join(parts, " and ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Rule is a named inference pattern.
type Rule interface {
	// Name returns the canonical tag of the rule.
	Name() string
	// Shape returns the citations the rule consumes.
	Shape() Shape
	// Check reports whether target follows from cited. cited always has
	// the rule's Shape.
	Check(target formula.Formula, cited Cited) error
}

// ArityError reports a justification whose citations do not have the
// shape the rule requires.
type ArityError struct {
	Rule string
	Want Shape
	Got  Shape
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s requires %s, got %s", e.Rule, e.Want, e.Got)
}

// MismatchError reports correctly shaped citations that do not
// instantiate the rule.
type MismatchError struct {
	Rule   string
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Reason)
}

func mismatch(rule, format string, args ...any) error {
	return &MismatchError{Rule: rule, Reason: fmt.Sprintf(format, args...)}
}

// IPMode selects how strictly indirect proof is read.
type IPMode int

const (
	// IPPermissive accepts a subproof from A to ⊥ concluding ¬A, and one
	// from ¬A to ⊥ concluding A.
	IPPermissive IPMode = iota
	// IPStrict only accepts a subproof from ¬A to ⊥ concluding A.
	IPStrict
)

func (m IPMode) String() string {
	switch m {
	case IPPermissive:
		return "permissive"
	case IPStrict:
		return "strict"
	default:
		return "?"
	}
}

// ParseIPMode parses the textual form of an IPMode. The empty string is
// the default.
func ParseIPMode(s string) (IPMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return IPPermissive, nil
	case "strict":
		return IPStrict, nil
	default:
		return IPPermissive, fmt.Errorf("unknown ip mode %q", s)
	}
}

type ruleConstructor func(opts Options) Rule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	Premise:      newPremiseRule,
	Hyp:          newHypRule,
	ImplElim:     newImplElimRule,
	ImplIntro:    newImplIntroRule,
	AndIntro:     newAndIntroRule,
	AndElim:      newAndElimRule,
	OrIntro:      newOrIntroRule,
	OrElim:       newOrElimRule,
	IffIntro:     newIffIntroRule,
	IffElim:      newIffElimRule,
	NotIntro:     newNotIntroRule,
	IndirectPf:   newIndirectProofRule,
	NotElim:      newContradictionRule(NotElim),
	BottomIntro:  newContradictionRule(BottomIntro),
	BottomElim:   newBottomElimRule,
	Reiteration:  newReiterationRule,
	LEM:          newLEMRule,
	DNE:          newDNERule,
	DeMorgan:     newDeMorganRule,
	ModusTollens: newModusTollensRule,
	DisjSyll:     newDisjSyllRule,
}

// Options configures rule behaviour that admits more than one reading.
type Options struct {
	IPMode IPMode
}

// Set is an immutable collection of rules, safe for concurrent use.
type Set struct {
	rules map[string]Rule
}

// NewSet builds the full rule table.
func NewSet(opts Options) *Set {
	s := &Set{rules: make(map[string]Rule, len(allRuleConstructors))}
	for name, cstr := range allRuleConstructors {
		s.rules[name] = cstr(opts)
	}
	return s
}

// Lookup returns the rule with the given canonical name.
func (s *Set) Lookup(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Check validates target against cited under the named rule.
func (s *Set) Check(name string, target formula.Formula, cited Cited) error {
	r, ok := s.rules[name]
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}
	got := Shape{Lines: len(cited.Lines), Ranges: len(cited.Ranges)}
	if got != r.Shape() {
		return &ArityError{Rule: name, Want: r.Shape(), Got: got}
	}
	return r.Check(target, cited)
}

// Names returns every canonical rule tag, sorted.
func Names() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
