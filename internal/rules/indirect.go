package rules

import (
	f "github.com/gnolang/fitch/internal/formula"
)

// IndirectProofRule closes a subproof that ends in ⊥. How the assumption
// and the conclusion must relate depends on Mode.
type IndirectProofRule struct {
	Mode IPMode
}

func newIndirectProofRule(opts Options) Rule {
	return &IndirectProofRule{Mode: opts.IPMode}
}

func (r *IndirectProofRule) Name() string { return IndirectPf }
func (r *IndirectProofRule) Shape() Shape { return oneRange }

func (r *IndirectProofRule) Check(target f.Formula, c Cited) error {
	rng := c.Ranges[0]
	if _, ok := rng.Last.(f.Bottom); !ok {
		return mismatch(IndirectPf, "subproof assuming %s ends with %s, not %s", rng.Hyp, rng.Last, f.SymBottom)
	}

	// [¬A ... ⊥] ⊢ A
	if f.Equal(rng.Hyp, f.Neg(target)) {
		return nil
	}
	if r.Mode == IPStrict {
		return mismatch(IndirectPf, "assumption %s is not the negation of %s", rng.Hyp, target)
	}

	// [A ... ⊥] ⊢ ¬A
	if f.Equal(f.Neg(rng.Hyp), target) {
		return nil
	}
	return mismatch(IndirectPf, "%s is neither the negation of assumption %s nor negated by it", target, rng.Hyp)
}
