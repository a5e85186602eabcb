package rules

import (
	f "github.com/gnolang/fitch/internal/formula"
)

type checkFunc func(name string, target f.Formula, c Cited) error

type basicRule struct {
	name  string
	shape Shape
	check checkFunc
}

func (r *basicRule) Name() string { return r.name }
func (r *basicRule) Shape() Shape { return r.shape }
func (r *basicRule) Check(target f.Formula, c Cited) error {
	return r.check(r.name, target, c)
}

func newBasic(name string, shape Shape, check checkFunc) ruleConstructor {
	return func(Options) Rule {
		return &basicRule{name: name, shape: shape, check: check}
	}
}

var (
	noCitations = Shape{}
	oneLine     = Shape{Lines: 1}
	twoLines    = Shape{Lines: 2}
	oneRange    = Shape{Ranges: 1}
)

var (
	newPremiseRule      = newBasic(Premise, noCitations, accept)
	newHypRule          = newBasic(Hyp, noCitations, accept)
	newImplElimRule     = newBasic(ImplElim, twoLines, checkImplElim)
	newImplIntroRule    = newBasic(ImplIntro, oneRange, checkImplIntro)
	newAndIntroRule     = newBasic(AndIntro, twoLines, checkAndIntro)
	newAndElimRule      = newBasic(AndElim, oneLine, checkAndElim)
	newOrIntroRule      = newBasic(OrIntro, oneLine, checkOrIntro)
	newOrElimRule       = newBasic(OrElim, Shape{Lines: 1, Ranges: 2}, checkOrElim)
	newIffIntroRule     = newBasic(IffIntro, Shape{Ranges: 2}, checkIffIntro)
	newIffElimRule      = newBasic(IffElim, twoLines, checkIffElim)
	newNotIntroRule     = newBasic(NotIntro, oneRange, checkNotIntro)
	newBottomElimRule   = newBasic(BottomElim, oneLine, checkBottomElim)
	newReiterationRule  = newBasic(Reiteration, oneLine, checkReiteration)
	newLEMRule          = newBasic(LEM, noCitations, checkLEM)
	newDNERule          = newBasic(DNE, oneLine, checkDNE)
	newDeMorganRule     = newBasic(DeMorgan, oneLine, checkDeMorgan)
	newModusTollensRule = newBasic(ModusTollens, twoLines, checkModusTollens)
	newDisjSyllRule     = newBasic(DisjSyll, twoLines, checkDisjSyll)
)

func newContradictionRule(name string) ruleConstructor {
	return newBasic(name, twoLines, checkContradiction)
}

func accept(string, f.Formula, Cited) error { return nil }

// A → B, A ⊢ B
func checkImplElim(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	cond, minor, ok := pick[f.Implies](a, b)
	if !ok {
		return mismatch(name, "neither %s nor %s is a conditional", a, b)
	}
	if !f.Equal(cond.Left, minor) {
		// both might be conditionals, try the other way round
		if alt, ok := b.(f.Implies); ok && f.Equal(alt.Left, a) {
			cond = alt
		} else {
			return mismatch(name, "%s is not the antecedent of %s", minor, cond)
		}
	}
	if !f.Equal(cond.Right, target) {
		return mismatch(name, "expected %s, the consequent of %s", cond.Right, cond)
	}
	return nil
}

// [A ... B] ⊢ A → B
func checkImplIntro(name string, target f.Formula, c Cited) error {
	r := c.Ranges[0]
	want := f.Cond(r.Hyp, r.Last)
	if !f.Equal(want, target) {
		return mismatch(name, "subproof from %s to %s yields %s", r.Hyp, r.Last, want)
	}
	return nil
}

// A, B ⊢ A ∧ B
func checkAndIntro(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	conj, ok := target.(f.And)
	if !ok {
		return mismatch(name, "%s is not a conjunction", target)
	}
	if f.Equal(conj.Left, a) && f.Equal(conj.Right, b) ||
		f.Equal(conj.Left, b) && f.Equal(conj.Right, a) {
		return nil
	}
	return mismatch(name, "expected the conjunction of %s and %s", a, b)
}

// A ∧ B ⊢ A, A ∧ B ⊢ B
func checkAndElim(name string, target f.Formula, c Cited) error {
	conj, ok := c.Lines[0].(f.And)
	if !ok {
		return mismatch(name, "%s is not a conjunction", c.Lines[0])
	}
	if f.Equal(conj.Left, target) || f.Equal(conj.Right, target) {
		return nil
	}
	return mismatch(name, "%s is not a conjunct of %s", target, conj)
}

// A ⊢ A ∨ B, A ⊢ B ∨ A
func checkOrIntro(name string, target f.Formula, c Cited) error {
	disj, ok := target.(f.Or)
	if !ok {
		return mismatch(name, "%s is not a disjunction", target)
	}
	if f.Equal(disj.Left, c.Lines[0]) || f.Equal(disj.Right, c.Lines[0]) {
		return nil
	}
	return mismatch(name, "%s is not a disjunct of %s", c.Lines[0], disj)
}

// A ∨ B, [A ... C], [B ... C] ⊢ C
func checkOrElim(name string, target f.Formula, c Cited) error {
	disj, ok := c.Lines[0].(f.Or)
	if !ok {
		return mismatch(name, "%s is not a disjunction", c.Lines[0])
	}
	r1, r2 := c.Ranges[0], c.Ranges[1]
	covers := f.Equal(r1.Hyp, disj.Left) && f.Equal(r2.Hyp, disj.Right) ||
		f.Equal(r1.Hyp, disj.Right) && f.Equal(r2.Hyp, disj.Left)
	if !covers {
		return mismatch(name, "subproofs assuming %s and %s do not cover the disjuncts of %s", r1.Hyp, r2.Hyp, disj)
	}
	for _, r := range c.Ranges {
		if !f.Equal(r.Last, target) {
			return mismatch(name, "subproof assuming %s ends with %s, not %s", r.Hyp, r.Last, target)
		}
	}
	return nil
}

// [A ... B], [B ... A] ⊢ A ↔ B
func checkIffIntro(name string, target f.Formula, c Cited) error {
	iff, ok := target.(f.Iff)
	if !ok {
		return mismatch(name, "%s is not a biconditional", target)
	}
	r1, r2 := c.Ranges[0], c.Ranges[1]
	proves := func(r Range, from, to f.Formula) bool {
		return f.Equal(r.Hyp, from) && f.Equal(r.Last, to)
	}
	if proves(r1, iff.Left, iff.Right) && proves(r2, iff.Right, iff.Left) ||
		proves(r1, iff.Right, iff.Left) && proves(r2, iff.Left, iff.Right) {
		return nil
	}
	return mismatch(name, "subproofs %s to %s and %s to %s do not establish %s", r1.Hyp, r1.Last, r2.Hyp, r2.Last, iff)
}

// A ↔ B, A ⊢ B and A ↔ B, B ⊢ A
func checkIffElim(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	for _, pair := range [][2]f.Formula{{a, b}, {b, a}} {
		iff, ok := pair[0].(f.Iff)
		if !ok {
			continue
		}
		if f.Equal(iff.Left, pair[1]) && f.Equal(iff.Right, target) ||
			f.Equal(iff.Right, pair[1]) && f.Equal(iff.Left, target) {
			return nil
		}
	}
	if _, _, ok := pick[f.Iff](a, b); !ok {
		return mismatch(name, "neither %s nor %s is a biconditional", a, b)
	}
	return mismatch(name, "%s does not follow from %s and %s", target, a, b)
}

// [A ... ⊥] ⊢ ¬A
func checkNotIntro(name string, target f.Formula, c Cited) error {
	r := c.Ranges[0]
	if _, ok := r.Last.(f.Bottom); !ok {
		return mismatch(name, "subproof assuming %s ends with %s, not %s", r.Hyp, r.Last, f.SymBottom)
	}
	if !f.Equal(f.Neg(r.Hyp), target) {
		return mismatch(name, "expected %s", f.Neg(r.Hyp))
	}
	return nil
}

// A, ¬A ⊢ ⊥
func checkContradiction(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	if !f.Equal(f.Neg(a), b) && !f.Equal(f.Neg(b), a) {
		return mismatch(name, "%s and %s do not contradict each other", a, b)
	}
	if _, ok := target.(f.Bottom); !ok {
		return mismatch(name, "expected %s, got %s", f.SymBottom, target)
	}
	return nil
}

// ⊥ ⊢ anything
func checkBottomElim(name string, _ f.Formula, c Cited) error {
	if _, ok := c.Lines[0].(f.Bottom); !ok {
		return mismatch(name, "%s is not %s", c.Lines[0], f.SymBottom)
	}
	return nil
}

func checkReiteration(name string, target f.Formula, c Cited) error {
	if !f.Equal(c.Lines[0], target) {
		return mismatch(name, "%s is not identical to %s", target, c.Lines[0])
	}
	return nil
}

// ⊢ A ∨ ¬A
func checkLEM(name string, target f.Formula, _ Cited) error {
	disj, ok := target.(f.Or)
	if !ok || !f.Equal(f.Neg(disj.Left), disj.Right) {
		return mismatch(name, "%s does not have the form A %s %sA", target, f.SymOr, f.SymNot)
	}
	return nil
}

// ¬¬A ⊢ A
func checkDNE(name string, target f.Formula, c Cited) error {
	outer, ok := c.Lines[0].(f.Not)
	if !ok {
		return mismatch(name, "%s is not a double negation", c.Lines[0])
	}
	inner, ok := outer.Sub.(f.Not)
	if !ok {
		return mismatch(name, "%s is not a double negation", c.Lines[0])
	}
	if !f.Equal(inner.Sub, target) {
		return mismatch(name, "expected %s", inner.Sub)
	}
	return nil
}

func checkDeMorgan(name string, target f.Formula, c Cited) error {
	want := deMorgan(c.Lines[0])
	if want == nil {
		return mismatch(name, "%s has no De Morgan rewrite", c.Lines[0])
	}
	if !f.Equal(want, target) {
		return mismatch(name, "expected %s", want)
	}
	return nil
}

// deMorgan returns the De Morgan rewrite of x, or nil:
//
//	¬(A ∧ B) ⇒ ¬A ∨ ¬B    ¬A ∨ ¬B ⇒ ¬(A ∧ B)
//	¬(A ∨ B) ⇒ ¬A ∧ ¬B    ¬A ∧ ¬B ⇒ ¬(A ∨ B)
func deMorgan(x f.Formula) f.Formula {
	switch v := x.(type) {
	case f.Not:
		switch in := v.Sub.(type) {
		case f.And:
			return f.Disj(f.Neg(in.Left), f.Neg(in.Right))
		case f.Or:
			return f.Conj(f.Neg(in.Left), f.Neg(in.Right))
		}
	case f.Or:
		l, lok := v.Left.(f.Not)
		r, rok := v.Right.(f.Not)
		if lok && rok {
			return f.Neg(f.Conj(l.Sub, r.Sub))
		}
	case f.And:
		l, lok := v.Left.(f.Not)
		r, rok := v.Right.(f.Not)
		if lok && rok {
			return f.Neg(f.Disj(l.Sub, r.Sub))
		}
	}
	return nil
}

// A → B, ¬B ⊢ ¬A
func checkModusTollens(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	for _, pair := range [][2]f.Formula{{a, b}, {b, a}} {
		cond, ok := pair[0].(f.Implies)
		if !ok || !f.Equal(f.Neg(cond.Right), pair[1]) {
			continue
		}
		if f.Equal(f.Neg(cond.Left), target) {
			return nil
		}
		return mismatch(name, "expected %s", f.Neg(cond.Left))
	}
	if _, _, ok := pick[f.Implies](a, b); !ok {
		return mismatch(name, "neither %s nor %s is a conditional", a, b)
	}
	return mismatch(name, "no cited line negates the consequent of the conditional")
}

// A ∨ B, ¬A ⊢ B and A ∨ B, ¬B ⊢ A
func checkDisjSyll(name string, target f.Formula, c Cited) error {
	a, b := c.Lines[0], c.Lines[1]
	for _, pair := range [][2]f.Formula{{a, b}, {b, a}} {
		disj, ok := pair[0].(f.Or)
		if !ok {
			continue
		}
		switch {
		case f.Equal(f.Neg(disj.Left), pair[1]):
			if f.Equal(disj.Right, target) {
				return nil
			}
			return mismatch(name, "expected %s", disj.Right)
		case f.Equal(f.Neg(disj.Right), pair[1]):
			if f.Equal(disj.Left, target) {
				return nil
			}
			return mismatch(name, "expected %s", disj.Left)
		}
	}
	if _, _, ok := pick[f.Or](a, b); !ok {
		return mismatch(name, "neither %s nor %s is a disjunction", a, b)
	}
	return mismatch(name, "no cited line negates a disjunct of the disjunction")
}

// pick returns whichever of a and b has type T, together with the other
// one. a is preferred when both match.
func pick[T f.Formula](a, b f.Formula) (T, f.Formula, bool) {
	if x, ok := a.(T); ok {
		return x, b, true
	}
	if x, ok := b.(T); ok {
		return x, a, true
	}
	var zero T
	return zero, nil, false
}
