package formula

// Formula is a propositional formula. The set of implementations is closed;
// every switch over a Formula handles each of them.
type Formula interface {
	isFormula()
	String() string
}

// Atom is a sentence letter.
type Atom struct {
	Name string
}

func (Atom) isFormula()       {}
func (a Atom) String() string { return a.Name }

// Not is a negation.
type Not struct {
	Sub Formula
}

func (Not) isFormula() {}
func (n Not) String() string {
	return SymNot + n.Sub.String()
}

// And is a conjunction.
type And struct {
	Left, Right Formula
}

func (And) isFormula() {}
func (a And) String() string {
	return binary(a.Left, SymAnd, a.Right)
}

// Or is a disjunction.
type Or struct {
	Left, Right Formula
}

func (Or) isFormula() {}
func (o Or) String() string {
	return binary(o.Left, SymOr, o.Right)
}

// Implies is a material conditional.
type Implies struct {
	Left, Right Formula
}

func (Implies) isFormula() {}
func (i Implies) String() string {
	return binary(i.Left, SymImplies, i.Right)
}

// Iff is a biconditional.
type Iff struct {
	Left, Right Formula
}

func (Iff) isFormula() {}
func (i Iff) String() string {
	return binary(i.Left, SymIff, i.Right)
}

// Bottom is the contradiction constant.
type Bottom struct{}

func (Bottom) isFormula()     {}
func (Bottom) String() string { return SymBottom }

func binary(l Formula, op string, r Formula) string {
	return "(" + l.String() + " " + op + " " + r.String() + ")"
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Formula) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Name == y.Name
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.Sub, y.Sub)
	case And:
		y, ok := b.(And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Or:
		y, ok := b.(Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Implies:
		y, ok := b.(Implies)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Iff:
		y, ok := b.(Iff)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Bottom:
		_, ok := b.(Bottom)
		return ok
	default:
		panic("formula: unknown variant " + a.String())
	}
}

// Depth returns the height of the formula tree. Atoms and ⊥ have depth 0.
func Depth(f Formula) int {
	switch x := f.(type) {
	case Atom, Bottom:
		return 0
	case Not:
		return 1 + Depth(x.Sub)
	case And:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	case Or:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	case Implies:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	case Iff:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	default:
		panic("formula: unknown variant " + f.String())
	}
}

// Helper constructors.

// A creates an atom.
func A(name string) Formula { return Atom{Name: name} }

// Neg creates a negation.
func Neg(f Formula) Formula { return Not{Sub: f} }

// Conj creates a conjunction.
func Conj(l, r Formula) Formula { return And{Left: l, Right: r} }

// Disj creates a disjunction.
func Disj(l, r Formula) Formula { return Or{Left: l, Right: r} }

// Cond creates a conditional.
func Cond(l, r Formula) Formula { return Implies{Left: l, Right: r} }

// Bicond creates a biconditional.
func Bicond(l, r Formula) Formula { return Iff{Left: l, Right: r} }

// Falsum returns ⊥.
func Falsum() Formula { return Bottom{} }
