package types

import "fmt"

// Kind classifies an issue found while checking a proof.
type Kind string

const (
	KindParse          Kind = "ParseError"
	KindStructure      Kind = "StructureError"
	KindScope          Kind = "ScopeError"
	KindArity          Kind = "ArityError"
	KindRuleMismatch   Kind = "RuleMismatchError"
	KindUndischarged   Kind = "UndischargedAssumptionError"
	KindConclusion     Kind = "ConclusionMismatchError"
	KindPremise        Kind = "PremiseError"
	KindDisallowedRule Kind = "DisallowedRuleError"
)

// Issue represents a single problem found in a proof.
// Line is the 1-based document line number, or 0 for proof-wide issues.
type Issue struct {
	Kind    Kind
	Line    int
	Rule    string
	Message string
}

func (i Issue) String() string {
	if i.Line == 0 {
		return fmt.Sprintf("%s: %s", i.Kind, i.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", i.Kind, i.Line, i.Message)
}

// SolutionLine is one flat proof line as produced by the transcript
// extractor. Assumeno is the nesting depth, 0 for the outermost level.
type SolutionLine struct {
	Formula       string `json:"formula" yaml:"formula"`
	Justification string `json:"justification" yaml:"justification"`
	Assumeno      int    `json:"assumeno" yaml:"assumeno"`
}

// Problem is the input record: a problem statement plus a candidate proof.
type Problem struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Premises   []string       `json:"premises" yaml:"premises"`
	Conclusion string         `json:"conclusion" yaml:"conclusion"`
	Solution   []SolutionLine `json:"solution" yaml:"solution"`
}

// Result is the outcome of checking one Problem.
type Result struct {
	Issues      []Issue
	ConcReached bool
}

// Valid reports whether the proof is accepted.
func (r Result) Valid() bool {
	return len(r.Issues) == 0 && r.ConcReached
}

// Messages renders every issue as a diagnostic string.
func (r Result) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.String()
	}
	return out
}

// Report is the output record consumed by downstream tools.
type Report struct {
	Issues      []string `json:"issues"`
	ConcReached bool     `json:"concReached"`
	Valid       bool     `json:"valid"`
}

// Report converts r into its wire form. Issues is never nil.
func (r Result) Report() Report {
	return Report{
		Issues:      r.Messages(),
		ConcReached: r.ConcReached,
		Valid:       r.Valid(),
	}
}
