package proof

import (
	"fmt"

	"github.com/gnolang/fitch/internal/rules"
	"github.com/gnolang/fitch/internal/types"
)

// DefaultMaxDepth bounds subproof nesting when no limit is configured.
const DefaultMaxDepth = 64

// Coordinate locates a line in the subproof tree: element k is the index
// of the child taken at nesting level k. All but the last element form the
// line's subproof path.
type Coordinate []int

// Path returns the coordinate of the subproof that directly contains the
// line.
func (c Coordinate) Path() Coordinate {
	if len(c) == 0 {
		return nil
	}
	return c[:len(c)-1]
}

// Compare orders coordinates by document position.
func (c Coordinate) Compare(o Coordinate) int {
	for i := 0; i < len(c) && i < len(o); i++ {
		switch {
		case c[i] < o[i]:
			return -1
		case c[i] > o[i]:
			return 1
		}
	}
	switch {
	case len(c) < len(o):
		return -1
	case len(c) > len(o):
		return 1
	}
	return 0
}

// HasPrefix reports whether p is a prefix of c.
func (c Coordinate) HasPrefix(p Coordinate) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

func (c Coordinate) String() string {
	return fmt.Sprint([]int(c))
}

// Line is one placed proof line. Number is 1-based.
type Line struct {
	Number        int
	Formula       string
	Justification string
	Depth         int
	Coord         Coordinate

	node int
}

type nodeKind int

const (
	nodeLine nodeKind = iota
	nodeSubproof
)

// node is an arena entry. The root is nodes[0].
type node struct {
	kind     nodeKind
	parent   int
	index    int // position among the parent's children
	children []int
	line     int // nodeLine: index into Tree.lines
}

// Subproof describes one subproof of a Tree.
type Subproof struct {
	// First is the number of the assumption line.
	First int
	// Last is the number of the final line at the subproof's own depth,
	// or 0 when the subproof ends inside a nested subproof.
	Last int
	// End is the number of the final line anywhere inside the subproof.
	End   int
	Depth int
	Coord Coordinate
	// Open is set when the subproof was never closed before the end of
	// the proof.
	Open bool

	node int
}

// Tree is a proof reconstructed from its flat line list. A Tree is built
// once per check and never shared.
type Tree struct {
	nodes     []node
	lines     []Line
	subproofs map[int]*Subproof // keyed by node index
	open      []int
}

// StructureError reports inconsistent depth annotations.
type StructureError struct {
	Line   int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Load builds the subproof tree for lines. A maxDepth of zero or less means
// DefaultMaxDepth.
func Load(lines []types.SolutionLine, maxDepth int) (*Tree, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	t := &Tree{
		nodes:     []node{{kind: nodeSubproof, parent: -1}},
		lines:     make([]Line, 0, len(lines)),
		subproofs: make(map[int]*Subproof),
	}

	stack := []int{0}
	for i, in := range lines {
		number := i + 1
		depth := in.Assumeno
		current := len(stack) - 1

		switch {
		case depth < 0:
			return nil, &StructureError{Line: number, Reason: fmt.Sprintf("negative depth %d", depth)}
		case depth > maxDepth:
			return nil, &StructureError{Line: number, Reason: fmt.Sprintf("depth %d exceeds the nesting limit of %d", depth, maxDepth)}
		case depth > current+1:
			return nil, &StructureError{Line: number, Reason: fmt.Sprintf("depth jumps from %d to %d", current, depth)}
		}

		hyp := isHyp(in.Justification)
		opened := false
		switch {
		case depth == current+1:
			if !hyp {
				return nil, &StructureError{
					Line:   number,
					Reason: fmt.Sprintf("line opens a subproof but is justified by %q, not %s", in.Justification, rules.Hyp),
				}
			}
			stack = t.push(stack)
			opened = true
		case depth < current:
			stack = stack[:depth+1]
		}

		// A Hyp at an already-open depth closes the previous sibling and
		// starts a new one.
		if hyp && !opened && depth > 0 {
			stack = t.push(stack[:len(stack)-1])
		}

		t.place(stack, in, number)
	}

	t.open = append(t.open, stack[1:]...)
	for _, n := range t.open {
		t.subproofs[n].Open = true
	}
	return t, nil
}

func isHyp(justification string) bool {
	j, err := ParseJustification(justification)
	return err == nil && j.Rule == rules.Hyp
}

func (t *Tree) push(stack []int) []int {
	parent := stack[len(stack)-1]
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		kind:   nodeSubproof,
		parent: parent,
		index:  len(t.nodes[parent].children),
	})
	t.nodes[parent].children = append(t.nodes[parent].children, idx)

	stack = append(stack, idx)
	t.subproofs[idx] = &Subproof{
		Depth: len(stack) - 1,
		Coord: t.coordOf(stack, len(stack)),
		node:  idx,
	}
	return stack
}

func (t *Tree) place(stack []int, in types.SolutionLine, number int) {
	parent := stack[len(stack)-1]
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		kind:   nodeLine,
		parent: parent,
		index:  len(t.nodes[parent].children),
		line:   len(t.lines),
	})
	t.nodes[parent].children = append(t.nodes[parent].children, idx)

	coord := append(t.coordOf(stack, len(stack)), t.nodes[idx].index)
	t.lines = append(t.lines, Line{
		Number:        number,
		Formula:       in.Formula,
		Justification: in.Justification,
		Depth:         len(stack) - 1,
		Coord:         coord,
		node:          idx,
	})

	// Keep the enclosing subproofs' extents current.
	for _, n := range stack[1:] {
		sp := t.subproofs[n]
		if sp.First == 0 {
			sp.First = number
		}
		sp.End = number
	}
	if sp, ok := t.subproofs[parent]; ok {
		sp.Last = number
	}
	if len(stack) > 2 {
		for _, n := range stack[1 : len(stack)-1] {
			// a nested subproof now ends the ancestors
			t.subproofs[n].Last = 0
		}
	}
}

// coordOf returns the coordinate of stack[n-1], built from the child index
// of every subproof on the way down.
func (t *Tree) coordOf(stack []int, n int) Coordinate {
	coord := make(Coordinate, 0, n)
	for _, idx := range stack[1:n] {
		coord = append(coord, t.nodes[idx].index)
	}
	return coord
}

// Lines returns the placed lines in document order.
func (t *Tree) Lines() []Line {
	return t.lines
}

// Line returns the line with the given 1-based number.
func (t *Tree) Line(number int) (Line, bool) {
	if number < 1 || number > len(t.lines) {
		return Line{}, false
	}
	return t.lines[number-1], true
}

// Len returns the number of lines.
func (t *Tree) Len() int {
	return len(t.lines)
}

// Subproofs returns every subproof ordered by its assumption line.
func (t *Tree) Subproofs() []Subproof {
	out := make([]Subproof, 0, len(t.subproofs))
	for i := range t.nodes {
		if sp, ok := t.subproofs[i]; ok {
			out = append(out, *sp)
		}
	}
	return out
}

// Open returns the subproofs still open at the end of the proof, outermost
// first.
func (t *Tree) Open() []Subproof {
	out := make([]Subproof, 0, len(t.open))
	for _, n := range t.open {
		out = append(out, *t.subproofs[n])
	}
	return out
}

// OpensSubproof reports whether the line is the assumption of a subproof.
func (t *Tree) OpensSubproof(number int) bool {
	l, ok := t.Line(number)
	if !ok {
		return false
	}
	n := t.nodes[l.node]
	return n.parent != 0 && n.index == 0
}

// TopLevel returns the lines outside every subproof.
func (t *Tree) TopLevel() []Line {
	var out []Line
	for _, child := range t.nodes[0].children {
		if n := t.nodes[child]; n.kind == nodeLine {
			out = append(out, t.lines[n.line])
		}
	}
	return out
}

// MaxDepth returns the deepest nesting level reached.
func (t *Tree) MaxDepth() int {
	depth := 0
	for _, l := range t.lines {
		depth = max(depth, l.Depth)
	}
	return depth
}

// subproofOf returns the subproof directly containing the line, if any.
func (t *Tree) subproofOf(l Line) (*Subproof, bool) {
	sp, ok := t.subproofs[t.nodes[l.node].parent]
	return sp, ok
}
