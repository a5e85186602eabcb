package proof

import "fmt"

// ScopeError reports a citation that is not visible from the citing line.
type ScopeError struct {
	Line     int
	Citation Citation
	Reason   string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("citation %s: %s", e.Citation, e.Reason)
}

// Resolve checks that c is visible from line at.
func (t *Tree) Resolve(at int, c Citation) error {
	if c.Range {
		_, err := t.ResolveRange(at, c.Start, c.End)
		return err
	}
	_, err := t.ResolveLine(at, c.Start)
	return err
}

// ResolveLine returns cited line n if it is visible from line at: it must
// come earlier and sit in at's own subproof or one enclosing it.
func (t *Tree) ResolveLine(at, n int) (Line, error) {
	cite := Citation{Start: n, End: n}
	from, ok := t.Line(at)
	if !ok {
		return Line{}, &ScopeError{Line: at, Citation: cite, Reason: fmt.Sprintf("no line %d", at)}
	}
	l, ok := t.Line(n)
	if !ok {
		return Line{}, &ScopeError{Line: at, Citation: cite, Reason: fmt.Sprintf("there is no line %d", n)}
	}
	if l.Coord.Compare(from.Coord) >= 0 {
		return Line{}, &ScopeError{Line: at, Citation: cite, Reason: fmt.Sprintf("line %d does not precede line %d", n, at)}
	}
	if !from.Coord.Path().HasPrefix(l.Coord.Path()) {
		sp := t.closedAround(l, from)
		return Line{}, &ScopeError{
			Line:     at,
			Citation: cite,
			Reason:   fmt.Sprintf("line %d is inside the closed subproof %d-%d", n, sp.First, sp.End),
		}
	}
	return l, nil
}

// ResolveRange returns the subproof spanning start..end if it is visible
// from line at: the range must cover exactly one closed subproof that is a
// direct child of the subproof containing at, and that lies before at.
func (t *Tree) ResolveRange(at, start, end int) (Subproof, error) {
	cite := Citation{Start: start, End: end, Range: true}
	fail := func(format string, args ...any) (Subproof, error) {
		return Subproof{}, &ScopeError{Line: at, Citation: cite, Reason: fmt.Sprintf(format, args...)}
	}

	from, ok := t.Line(at)
	if !ok {
		return fail("no line %d", at)
	}
	if start > end {
		return fail("range is reversed")
	}
	if _, ok := t.Line(end); !ok {
		return fail("there is no line %d", end)
	}
	if end >= at {
		return fail("range does not precede line %d", at)
	}

	first, _ := t.Line(start)
	if !t.OpensSubproof(start) {
		return fail("line %d does not open a subproof", start)
	}
	sp, _ := t.subproofOf(first)
	if sp.End != end {
		return fail("subproof opened at line %d spans %d-%d", start, sp.First, sp.End)
	}
	if sp.Last == 0 {
		return fail("subproof %d-%d ends inside a nested subproof", sp.First, sp.End)
	}

	// The subproof's parent must be the container of the citing line.
	if !sp.Coord.Path().HasPrefix(from.Coord.Path()) || len(sp.Coord) != len(from.Coord) {
		if len(sp.Coord) > len(from.Coord) && sp.Coord.HasPrefix(from.Coord.Path()) {
			return fail("subproof %d-%d is nested too deeply to be cited from line %d", sp.First, sp.End, at)
		}
		return fail("subproof %d-%d is not in scope at line %d", sp.First, sp.End, at)
	}
	return *sp, nil
}

// closedAround returns the outermost subproof containing l but not from.
func (t *Tree) closedAround(l, from Line) *Subproof {
	n := t.nodes[l.node].parent
	var found *Subproof
	for n > 0 {
		sp := t.subproofs[n]
		if !from.Coord.HasPrefix(sp.Coord) {
			found = sp
		}
		n = t.nodes[n].parent
	}
	return found
}
