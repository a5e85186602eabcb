package checker

import (
	"github.com/gnolang/fitch/internal/formula"
	"github.com/gnolang/fitch/internal/proof"
	"github.com/gnolang/fitch/internal/rules"
)

type options struct {
	maxDepth       int
	maxNesting     int
	ipMode         rules.IPMode
	strictPremises bool
	// allowed is nil when every rule may be used.
	allowed map[string]bool
}

func defaultOptions() options {
	return options{
		maxDepth:       proof.DefaultMaxDepth,
		maxNesting:     formula.DefaultMaxNesting,
		ipMode:         rules.IPPermissive,
		strictPremises: true,
	}
}

// Option configures a single validation.
type Option func(*options)

// WithMaxDepth bounds subproof nesting. Values below one restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = proof.DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// WithMaxFormulaNesting bounds how deeply parentheses and negations may
// nest inside any one formula. Values below one restore the default.
func WithMaxFormulaNesting(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = formula.DefaultMaxNesting
		}
		o.maxNesting = n
	}
}

// WithIPMode selects how indirect proof is read.
func WithIPMode(m rules.IPMode) Option {
	return func(o *options) { o.ipMode = m }
}

// WithStrictPremises controls whether every Pr line must restate one of
// the problem's premises. It is on by default.
func WithStrictPremises(on bool) Option {
	return func(o *options) { o.strictPremises = on }
}

// WithAllowedRules restricts the proof to the named rules. Pr, Hyp and R
// are always allowed. Names may be given in any accepted spelling; unknown
// names are ignored.
func WithAllowedRules(names ...string) Option {
	return func(o *options) {
		o.allowed = make(map[string]bool, len(names)+len(alwaysAllowed))
		for _, name := range alwaysAllowed {
			o.allowed[name] = true
		}
		for _, name := range names {
			if c, ok := rules.Canonical(name); ok {
				o.allowed[c] = true
			}
		}
	}
}

func (o *options) permits(rule string) bool {
	return o.allowed == nil || o.allowed[rule]
}
