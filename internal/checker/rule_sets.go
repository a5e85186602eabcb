package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnolang/fitch/internal/rules"
)

var alwaysAllowed = []string{rules.Premise, rules.Hyp, rules.Reiteration}

var (
	week1 = []string{rules.AndIntro, rules.AndElim, rules.ImplIntro, rules.ImplElim}
	week2 = append(clone(week1), rules.OrIntro, rules.OrElim, rules.IffIntro, rules.IffElim)
	week3 = append(clone(week2), rules.NotIntro, rules.NotElim, rules.BottomIntro, rules.BottomElim)
)

// ruleSets are cumulative, one per week of the course.
var ruleSets = map[string][]string{
	"week1": week1,
	"week2": week2,
	"week3": week3,
	"all":   rules.Names(),
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// RuleSet returns the canonical rule names of a named rule set.
func RuleSet(name string) ([]string, error) {
	set, ok := ruleSets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown rule set %q (want one of %s)", name, strings.Join(RuleSetNames(), ", "))
	}
	return clone(set), nil
}

// RuleSetNames lists the named rule sets.
func RuleSetNames() []string {
	names := make([]string, 0, len(ruleSets))
	for name := range ruleSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
