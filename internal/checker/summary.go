package checker

import (
	"sort"

	"github.com/gnolang/fitch/internal/proof"
	"github.com/gnolang/fitch/internal/rules"
	"github.com/gnolang/fitch/internal/types"
)

// Summary is the metadata recorded alongside a harvested proof.
type Summary struct {
	RulesUsed     []string `json:"rules_used"`
	TotalSteps    int      `json:"total_steps"`
	SubproofDepth int      `json:"subproof_depth"`
}

// Summarize describes the shape of a solution without validating it.
// Justifications that do not parse are skipped.
func Summarize(solution []types.SolutionLine) Summary {
	seen := make(map[string]bool)
	s := Summary{RulesUsed: []string{}, TotalSteps: len(solution)}
	for _, line := range solution {
		s.SubproofDepth = max(s.SubproofDepth, line.Assumeno)

		j, err := proof.ParseJustification(line.Justification)
		if err != nil || j.Rule == rules.Premise || j.Rule == rules.Hyp || seen[j.Rule] {
			continue
		}
		seen[j.Rule] = true
		s.RulesUsed = append(s.RulesUsed, j.Rule)
	}
	sort.Strings(s.RulesUsed)
	return s
}
