package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnolang/fitch/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func modusPonens(last string) types.Problem {
	return types.Problem{
		Premises:   []string{"P → Q", "P"},
		Conclusion: "Q",
		Solution: []types.SolutionLine{
			{Formula: "P → Q", Justification: "Pr"},
			{Formula: "P", Justification: "Pr"},
			{Formula: "Q", Justification: last},
		},
	}
}

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()
	issues := []types.Issue{
		{Kind: types.KindArity, Line: 3, Rule: "→E", Message: "→E requires 2 lines, got 1 line"},
		{Kind: types.KindConclusion, Message: "no top-level line states the conclusion Q"},
	}

	expected := `error: ArityError (→E)
 --> proof:3
  |
3 | Q       →E 1
  = →E requires 2 lines, got 1 line

error: ConclusionMismatchError
 --> proof
  = no top-level line states the conclusion Q
  = note: the proof must end at depth 0 with the conclusion

`

	result := GenerateFormattedIssue(issues, modusPonens("→E 1"))
	assert.Equal(t, expected, result, "Formatted output does not match expected")
}

func TestGenerateFormattedIssueNested(t *testing.T) {
	t.Parallel()
	problem := types.Problem{
		ID:         "q12",
		Conclusion: "P → P",
		Solution: []types.SolutionLine{
			{Formula: "P", Justification: "Hyp", Assumeno: 1},
			{Formula: "P", Justification: "R 1", Assumeno: 1},
		},
	}
	issues := []types.Issue{
		{Kind: types.KindUndischarged, Line: 1, Message: "assumption at line 1 is never discharged"},
	}

	expected := `error: UndischargedAssumptionError
 --> q12:1
  |
1 | | P   Hyp
  = assumption at line 1 is never discharged
  = note: close the subproof with →I, ¬I, IP, ↔I or ∨E at the enclosing depth

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, problem))
}

func TestGenerateFormattedIssueWideGutter(t *testing.T) {
	t.Parallel()
	var problem types.Problem
	for range 10 {
		problem.Solution = append(problem.Solution, types.SolutionLine{Formula: "P", Justification: "R 1"})
	}
	issues := []types.Issue{{Kind: types.KindScope, Line: 10, Rule: "R", Message: "citation 11: there is no line 11"}}

	expected := `error: ScopeError (R)
  --> proof:10
   |
10 | P   R 1
   = citation 11: there is no line 11
   = note: only lines of enclosing subproofs, and closed subproofs at the citing depth, are visible

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, problem))
}

func TestFormatProof(t *testing.T) {
	t.Parallel()
	expected := `premises:   P → Q, P
conclusion: Q
1 | P → Q   Pr
2 | P       Pr
3 | Q       →E 1, 2
`
	assert.Equal(t, expected, FormatProof(modusPonens("→E 1, 2")))
}

func TestVerdict(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "proof accepted\n", Verdict(types.Result{ConcReached: true}))
	assert.Equal(t, "proof rejected: 1 issue, conclusion not reached\n", Verdict(types.Result{
		Issues: []types.Issue{{Kind: types.KindArity, Line: 3}},
	}))
	assert.Equal(t, "proof rejected: 2 issues, conclusion reached\n", Verdict(types.Result{
		Issues:      []types.Issue{{Kind: types.KindScope, Line: 1}, {Kind: types.KindScope, Line: 2}},
		ConcReached: true,
	}))
}
