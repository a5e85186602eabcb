package checker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/fitch/internal/formula"
	"github.com/gnolang/fitch/internal/rules"
	"github.com/gnolang/fitch/internal/types"
)

func sl(f, j string, depth int) types.SolutionLine {
	return types.SolutionLine{Formula: f, Justification: j, Assumeno: depth}
}

func modusPonens() types.Problem {
	return types.Problem{
		Premises:   []string{"(P → Q)", "P"},
		Conclusion: "Q",
		Solution: []types.SolutionLine{
			sl("P → Q", "Pr", 0),
			sl("P", "Pr", 0),
			sl("Q", "→E 1, 2", 0),
		},
	}
}

func kinds(r types.Result) []types.Kind {
	out := make([]types.Kind, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.Kind
	}
	return out
}

func TestValidateWorkedExamples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		problem types.Problem
	}{
		{name: "modus ponens", problem: modusPonens()},
		{
			name: "conditional introduction",
			problem: types.Problem{
				Premises:   []string{"P → Q", "Q → R"},
				Conclusion: "P → R",
				Solution: []types.SolutionLine{
					sl("P → Q", "Pr", 0),
					sl("Q → R", "Pr", 0),
					sl("P", "Hyp", 1),
					sl("Q", "→E 1,3", 1),
					sl("R", "→E 2,4", 1),
					sl("P → R", "→I 3-5", 0),
				},
			},
		},
		{
			name: "disjunction elimination",
			problem: types.Problem{
				Premises:   []string{"P ∨ Q", "P → R", "Q → R"},
				Conclusion: "R",
				Solution: []types.SolutionLine{
					sl("P ∨ Q", "Pr", 0),
					sl("P → R", "Pr", 0),
					sl("Q → R", "Pr", 0),
					sl("P", "Hyp", 1),
					sl("R", "→E 2,4", 1),
					sl("Q", "Hyp", 1),
					sl("R", "→E 3,6", 1),
					sl("R", "∨E 1, 4-5, 6-7", 0),
				},
			},
		},
		{
			name: "nested negation introduction",
			problem: types.Problem{
				Conclusion: "P → ¬¬P",
				Solution: []types.SolutionLine{
					sl("P", "Hyp", 1),
					sl("¬P", "Hyp", 2),
					sl("⊥", "¬E 1,2", 2),
					sl("¬¬P", "¬I 2-3", 1),
					sl("P → ¬¬P", "→I 1-4", 0),
				},
			},
		},
		{
			name: "ascii spellings",
			problem: types.Problem{
				Premises:   []string{"P -> Q", "~Q"},
				Conclusion: "~P",
				Solution: []types.SolutionLine{
					sl("P -> Q", "Premise", 0),
					sl("~Q", "PR", 0),
					sl("P", "Assumption", 1),
					sl("Q", "->E 1,3", 1),
					sl("_|_", "~E 2,4", 1),
					sl("~P", "~I 3-5", 0),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Validate(tt.problem)
			require.NoError(t, err)
			assert.Empty(t, got.Messages())
			assert.True(t, got.ConcReached)
			assert.True(t, got.Valid())
		})
	}
}

func TestValidateArity(t *testing.T) {
	t.Parallel()
	p := modusPonens()
	p.Solution[2].Justification = "→E 1"

	got, err := Validate(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"ArityError: line 3: →E requires 2 lines, got 1 line"}, got.Messages())
	assert.False(t, got.ConcReached)
	assert.False(t, got.Valid())
}

func TestValidateRuleMismatch(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P", "Q"},
		Conclusion: "R",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q", "Pr", 0),
			sl("R", "→E 1,2", 0),
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, types.KindRuleMismatch, got.Issues[0].Kind)
	assert.Equal(t, 3, got.Issues[0].Line)
	assert.Equal(t, rules.ImplElim, got.Issues[0].Rule)
	assert.False(t, got.ConcReached)
}

func TestValidateUndischargedAssumption(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "P",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q", "Hyp", 1),
			sl("P", "R 1", 1),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"UndischargedAssumptionError: line 2: assumption at line 2 is never discharged"}, got.Messages())
	assert.False(t, got.ConcReached)
}

func TestValidateClosedSubproofNeverDischarged(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "P",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q", "Hyp", 1),
			sl("Q", "R 2", 1),
			sl("P", "R 1", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"UndischargedAssumptionError: line 2: subproof 2-3 is closed without being discharged"}, got.Messages())
	assert.True(t, got.ConcReached)
	assert.False(t, got.Valid())
}

func TestValidateDoubleDischarge(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Conclusion: "P → P",
		Solution: []types.SolutionLine{
			sl("P", "Hyp", 1),
			sl("P", "R 1", 1),
			sl("P → P", "→I 1-2", 0),
			sl("P → P", "→I 1-2", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"StructureError: line 4: subproof 1-2 was already discharged at line 3"}, got.Messages())
	assert.False(t, got.ConcReached)
}

func TestValidateClosedSiblingCitation(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P ∨ Q", "P → R", "Q → R"},
		Conclusion: "R",
		Solution: []types.SolutionLine{
			sl("P ∨ Q", "Pr", 0),
			sl("P → R", "Pr", 0),
			sl("Q → R", "Pr", 0),
			sl("P", "Hyp", 1),
			sl("R", "→E 2,4", 1),
			sl("Q", "Hyp", 1),
			sl("R", "→E 2,4", 1),
			sl("R", "∨E 1, 4-5, 6-7", 0),
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, types.KindScope, got.Issues[0].Kind)
	assert.Equal(t, 7, got.Issues[0].Line)
	assert.Equal(t, "citation 4: line 4 is inside the closed subproof 4-5", got.Issues[0].Message)
}

func TestValidateStructureError(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "P",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q", "Hyp", 2),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Kind{types.KindStructure}, kinds(got))
	assert.False(t, got.ConcReached)
}

func TestValidateNestingLimit(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Conclusion: "P",
		Solution:   []types.SolutionLine{sl("P", "Hyp", 1), sl("P", "Hyp", 2)},
	}, WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"StructureError: line 2: depth 2 exceeds the nesting limit of 1"}, got.Messages())
}

func TestValidateFatalParseError(t *testing.T) {
	t.Parallel()
	p := modusPonens()
	p.Premises[0] = "P →"
	_, err := Validate(p)
	var pErr *formula.ParseError
	require.ErrorAs(t, err, &pErr)
	assert.Contains(t, err.Error(), "premise 1")

	p = modusPonens()
	p.Conclusion = "(Q"
	_, err = Validate(p)
	require.ErrorAs(t, err, &pErr)
	assert.Contains(t, err.Error(), "conclusion")
}

func TestValidateLineParseErrors(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P", "Q"},
		Conclusion: "P ∧ Q",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q ∧", "Pr", 0),
			sl("P ∧ Q", "∧I 1,2", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Kind{types.KindParse, types.KindParse}, kinds(got))
	assert.Equal(t, 2, got.Issues[0].Line)
	assert.Equal(t, "cited line 2 has no well-formed formula", got.Issues[1].Message)
	assert.False(t, got.ConcReached)

	got, err = Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "P",
		Solution:   []types.SolutionLine{sl("P", "Magic 1", 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`ParseError: line 1: justification "Magic 1": unknown rule "Magic"`}, got.Messages())
}

func TestValidateFaultyLineStaysCitable(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "Q",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("Q", "R 1", 0),
			sl("Q", "R 2", 0),
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, 2, got.Issues[0].Line)
	assert.True(t, got.ConcReached)
}

func TestValidatePremises(t *testing.T) {
	t.Parallel()
	p := types.Problem{
		Premises:   []string{"P"},
		Conclusion: "Q",
		Solution:   []types.SolutionLine{sl("Q", "Pr", 0)},
	}

	got, err := Validate(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"PremiseError: line 1: Q is not one of the premises"}, got.Messages())

	got, err = Validate(p, WithStrictPremises(false))
	require.NoError(t, err)
	assert.True(t, got.Valid())

	got, err = Validate(types.Problem{
		Premises:   []string{"P"},
		Conclusion: "Q → P",
		Solution: []types.SolutionLine{
			sl("Q", "Hyp", 1),
			sl("P", "Pr", 1),
			sl("Q → P", "→I 1-2", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"StructureError: line 2: a premise cannot appear inside a subproof"}, got.Messages())
}

func TestValidateTopLevelAssumption(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Conclusion: "P",
		Solution:   []types.SolutionLine{sl("P", "Hyp", 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"StructureError: line 1: an assumption must open a subproof"}, got.Messages())
	assert.False(t, got.ConcReached)
}

func TestValidateConclusionMismatch(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Premises:   []string{"P ∧ Q"},
		Conclusion: "Q",
		Solution: []types.SolutionLine{
			sl("P ∧ Q", "Pr", 0),
			sl("P", "∧E 1", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ConclusionMismatchError: line 2: last top-level line states P, but the conclusion is Q"}, got.Messages())
	assert.False(t, got.ConcReached)

	got, err = Validate(types.Problem{Conclusion: "Q"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ConclusionMismatchError: no top-level line states the conclusion Q"}, got.Messages())
}

func TestValidateFailedDischargeDoesNotConsume(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Conclusion: "P → P",
		Solution: []types.SolutionLine{
			sl("P", "Hyp", 1),
			sl("P", "R 1", 1),
			sl("P", "R 1-2", 0),
			sl("P → P", "→I 1-2", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ArityError: line 3: R requires 1 line, got 1 range"}, got.Messages())
	assert.True(t, got.ConcReached)

	got, err = Validate(types.Problem{
		Conclusion: "P → P",
		Solution: []types.SolutionLine{
			sl("P", "Hyp", 1),
			sl("P", "R 1", 1),
			sl("Q → P", "→I 1-2", 0),
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Issues, 2)
	assert.Equal(t, types.KindRuleMismatch, got.Issues[0].Kind)
	assert.Equal(t, types.KindConclusion, got.Issues[1].Kind)
}

func TestValidateDisallowedDischarge(t *testing.T) {
	t.Parallel()
	got, err := Validate(types.Problem{
		Conclusion: "P → P",
		Solution: []types.SolutionLine{
			sl("P", "Hyp", 1),
			sl("P", "R 1", 1),
			sl("P → P", "→I 1-2", 0),
		},
	}, WithAllowedRules(rules.AndIntro))
	require.NoError(t, err)
	assert.Equal(t, []string{"DisallowedRuleError: line 3: rule →I is not allowed"}, got.Messages())
	assert.False(t, got.ConcReached)
}

func TestValidateFormulaNesting(t *testing.T) {
	t.Parallel()
	problem := types.Problem{
		Premises:   []string{"¬¬P"},
		Conclusion: "P",
		Solution: []types.SolutionLine{
			sl("¬¬P", "Pr", 0),
			sl("((P))", "DNE 1", 0),
		},
	}

	got, err := Validate(problem)
	require.NoError(t, err)
	assert.True(t, got.Valid())

	_, err = Validate(problem, WithMaxFormulaNesting(1))
	assert.ErrorContains(t, err, "premise 1")

	problem.Premises = []string{"¬P"}
	problem.Conclusion = "¬P"
	problem.Solution = []types.SolutionLine{sl("((¬P))", "Pr", 0)}
	got, err = Validate(problem, WithMaxFormulaNesting(2))
	require.NoError(t, err)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, types.KindParse, got.Issues[0].Kind)
	assert.Contains(t, got.Issues[0].Message, "nested too deeply")
}

func TestValidateAllowedRules(t *testing.T) {
	t.Parallel()
	problem := types.Problem{
		Premises:   []string{"P"},
		Conclusion: "P ∨ Q",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("P ∨ Q", "∨I 1", 0),
		},
	}
	week1, err := RuleSet("week1")
	require.NoError(t, err)

	got, err := Validate(problem, WithAllowedRules(week1...))
	require.NoError(t, err)
	assert.Equal(t, []string{"DisallowedRuleError: line 2: rule ∨I is not allowed"}, got.Messages())
	assert.False(t, got.ConcReached)

	week2, err := RuleSet("week2")
	require.NoError(t, err)
	got, err = Validate(problem, WithAllowedRules(week2...))
	require.NoError(t, err)
	assert.True(t, got.Valid())

	got, err = Validate(problem, WithAllowedRules("vI"))
	require.NoError(t, err)
	assert.True(t, got.Valid())
}

func TestValidateIPMode(t *testing.T) {
	t.Parallel()
	problem := types.Problem{
		Premises:   []string{"P", "¬P"},
		Conclusion: "¬Q",
		Solution: []types.SolutionLine{
			sl("P", "Pr", 0),
			sl("¬P", "Pr", 0),
			sl("Q", "Hyp", 1),
			sl("⊥", "⊥I 1,2", 1),
			sl("¬Q", "IP 3-4", 0),
		},
	}

	got, err := Validate(problem)
	require.NoError(t, err)
	assert.True(t, got.Valid())

	got, err = Validate(problem, WithIPMode(rules.IPStrict))
	require.NoError(t, err)
	assert.Equal(t, []types.Kind{types.KindRuleMismatch}, kinds(got))
}

func TestValidateIdempotent(t *testing.T) {
	t.Parallel()
	p := modusPonens()
	p.Solution = append(p.Solution, sl("R", "∧E 7", 0))

	first, err := Validate(p)
	require.NoError(t, err)
	second, err := Validate(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Issues)
}

func TestValidateConcurrent(t *testing.T) {
	t.Parallel()
	want, err := Validate(modusPonens())
	require.NoError(t, err)

	const workers = 16
	results := make([]types.Result, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Validate(modusPonens())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRuleSet(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"all", "week1", "week2", "week3"}, RuleSetNames())

	all, err := RuleSet("ALL")
	require.NoError(t, err)
	assert.Equal(t, rules.Names(), all)

	week3, err := RuleSet("week3")
	require.NoError(t, err)
	assert.Len(t, week3, 12)
	assert.Contains(t, week3, rules.BottomElim)

	_, err = RuleSet("week9")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	got := Summarize([]types.SolutionLine{
		sl("P ∨ Q", "Pr", 0),
		sl("P", "Hyp", 1),
		sl("P", "R 2", 1),
		sl("Q", "Hyp", 1),
		sl("P", "bogus", 1),
		sl("P", "vE 1, 2-3, 4-5", 0),
		sl("P", "->E 1,2", 0),
		sl("P", "→E 1,2", 0),
	})
	assert.Equal(t, Summary{
		RulesUsed:     []string{rules.Reiteration, rules.ImplElim, rules.OrElim},
		TotalSteps:    8,
		SubproofDepth: 1,
	}, got)

	empty := Summarize(nil)
	assert.NotNil(t, empty.RulesUsed)
	assert.Zero(t, empty.TotalSteps)
}
