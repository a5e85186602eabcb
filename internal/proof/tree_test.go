package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/fitch/internal/types"
)

// ln builds a solution line; the formula is irrelevant to the tree.
func ln(depth int, justification string) types.SolutionLine {
	return types.SolutionLine{Formula: "P", Justification: justification, Assumeno: depth}
}

func coords(t *Tree) []Coordinate {
	out := make([]Coordinate, 0, t.Len())
	for _, l := range t.Lines() {
		out = append(out, l.Coord)
	}
	return out
}

func TestLoadCoordinates(t *testing.T) {
	t.Parallel()
	tree, err := Load([]types.SolutionLine{
		ln(0, "Pr"),
		ln(1, "Hyp"),
		ln(1, "→E 1,2"),
		ln(0, "→I 2-3"),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{0}, {1, 0}, {1, 1}, {2}}, coords(tree))
	assert.Equal(t, 1, tree.MaxDepth())
	assert.Empty(t, tree.Open())

	sps := tree.Subproofs()
	require.Len(t, sps, 1)
	assert.Equal(t, 2, sps[0].First)
	assert.Equal(t, 3, sps[0].Last)
	assert.Equal(t, 3, sps[0].End)
	assert.Equal(t, Coordinate{1}, sps[0].Coord)
	assert.False(t, sps[0].Open)

	top := tree.TopLevel()
	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Number)
	assert.Equal(t, 4, top[1].Number)

	assert.True(t, tree.OpensSubproof(2))
	assert.False(t, tree.OpensSubproof(1))
	assert.False(t, tree.OpensSubproof(3))
	assert.False(t, tree.OpensSubproof(9))
}

func TestLoadTopLevelOnly(t *testing.T) {
	t.Parallel()
	tree, err := Load([]types.SolutionLine{
		ln(0, "Pr"),
		ln(0, "Pr"),
		ln(0, "→E 1, 2"),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{0}, {1}, {2}}, coords(tree))
	assert.Equal(t, 0, tree.MaxDepth())
	assert.Empty(t, tree.Subproofs())
	assert.Len(t, tree.TopLevel(), 3)
}

func TestLoadSiblingHypothesis(t *testing.T) {
	t.Parallel()
	tree, err := Load([]types.SolutionLine{
		ln(0, "Pr"),
		ln(1, "Hyp"),
		ln(1, "Hyp"),
		ln(1, "R 3"),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{0}, {1, 0}, {2, 0}, {2, 1}}, coords(tree))
	sps := tree.Subproofs()
	require.Len(t, sps, 2)
	assert.Equal(t, Subproof{First: 2, Last: 2, End: 2, Depth: 1, Coord: Coordinate{1}, node: sps[0].node}, sps[0])
	assert.Equal(t, 3, sps[1].First)
	assert.Equal(t, 4, sps[1].End)
	assert.True(t, sps[1].Open)
}

func TestLoadNested(t *testing.T) {
	t.Parallel()
	tree, err := Load([]types.SolutionLine{
		ln(1, "Hyp"),
		ln(2, "Hyp"),
		ln(2, "R 1"),
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{0, 0}, {0, 1, 0}, {0, 1, 1}}, coords(tree))
	open := tree.Open()
	require.Len(t, open, 2)
	assert.Equal(t, 1, open[0].First)
	assert.Equal(t, 0, open[0].Last, "outer subproof ends inside the nested one")
	assert.Equal(t, 3, open[0].End)
	assert.Equal(t, 2, open[1].First)
	assert.Equal(t, 3, open[1].Last)
	assert.Equal(t, 2, tree.MaxDepth())
	assert.Empty(t, tree.TopLevel())
}

func TestLoadStructureErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		lines    []types.SolutionLine
		maxDepth int
		line     int
		reason   string
	}{
		{
			name:   "negative depth",
			lines:  []types.SolutionLine{ln(-1, "Pr")},
			line:   1,
			reason: "negative depth -1",
		},
		{
			name:   "depth jump",
			lines:  []types.SolutionLine{ln(0, "Pr"), ln(2, "Hyp")},
			line:   2,
			reason: "depth jumps from 0 to 2",
		},
		{
			name:   "subproof without hypothesis",
			lines:  []types.SolutionLine{ln(0, "Pr"), ln(1, "∧I 1,1")},
			line:   2,
			reason: `line opens a subproof but is justified by "∧I 1,1", not Hyp`,
		},
		{
			name:     "nesting limit",
			lines:    []types.SolutionLine{ln(1, "Hyp"), ln(2, "Hyp")},
			maxDepth: 1,
			line:     2,
			reason:   "depth 2 exceeds the nesting limit of 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.lines, tt.maxDepth)
			var sErr *StructureError
			require.ErrorAs(t, err, &sErr)
			assert.Equal(t, tt.line, sErr.Line)
			assert.Equal(t, tt.reason, sErr.Reason)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()
	tree, err := Load(nil, 0)
	require.NoError(t, err)
	assert.Zero(t, tree.Len())
	assert.Empty(t, tree.Subproofs())
	_, ok := tree.Line(1)
	assert.False(t, ok)
}

func TestCoordinateCompare(t *testing.T) {
	t.Parallel()
	assert.Equal(t, -1, Coordinate{0}.Compare(Coordinate{1, 0}))
	assert.Equal(t, 1, Coordinate{1, 1}.Compare(Coordinate{1, 0}))
	assert.Equal(t, -1, Coordinate{1}.Compare(Coordinate{1, 0}))
	assert.Equal(t, 0, Coordinate{2, 3}.Compare(Coordinate{2, 3}))
	assert.True(t, Coordinate{1, 2, 3}.HasPrefix(Coordinate{1, 2}))
	assert.True(t, Coordinate{1}.HasPrefix(nil))
	assert.False(t, Coordinate{1}.HasPrefix(Coordinate{1, 2}))
	assert.Equal(t, Coordinate{1, 2}, Coordinate{1, 2, 3}.Path())
}
