// Package checker validates Fitch-style natural deduction proofs.
//
// Validate is a pure function of its input: every call builds its own
// proof tree and issue list, so it may be called from many goroutines at
// once.
package checker

import (
	"errors"
	"fmt"

	"github.com/gnolang/fitch/internal/formula"
	"github.com/gnolang/fitch/internal/proof"
	"github.com/gnolang/fitch/internal/rules"
	"github.com/gnolang/fitch/internal/types"
)

var ruleTables = map[rules.IPMode]*rules.Set{
	rules.IPPermissive: rules.NewSet(rules.Options{IPMode: rules.IPPermissive}),
	rules.IPStrict:     rules.NewSet(rules.Options{IPMode: rules.IPStrict}),
}

// Validate checks the candidate proof of problem.
//
// Problems with individual proof lines are collected in the result and
// never abort the walk. The returned error is non-nil only when a premise
// or the conclusion cannot be parsed; it wraps the *formula.ParseError.
func Validate(problem types.Problem, opts ...Option) (types.Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	premises := make([]formula.Formula, len(problem.Premises))
	for i, text := range problem.Premises {
		p, err := formula.ParseWithLimit(text, o.maxNesting)
		if err != nil {
			return types.Result{}, fmt.Errorf("premise %d %q: %w", i+1, text, err)
		}
		premises[i] = p
	}
	conclusion, err := formula.ParseWithLimit(problem.Conclusion, o.maxNesting)
	if err != nil {
		return types.Result{}, fmt.Errorf("conclusion %q: %w", problem.Conclusion, err)
	}

	tree, err := proof.Load(problem.Solution, o.maxDepth)
	if err != nil {
		var sErr *proof.StructureError
		if !errors.As(err, &sErr) {
			return types.Result{}, err
		}
		return types.Result{Issues: []types.Issue{{
			Kind:    types.KindStructure,
			Line:    sErr.Line,
			Message: sErr.Reason,
		}}}, nil
	}

	w := &walker{
		opts:       o,
		rules:      ruleTables[o.ipMode],
		tree:       tree,
		premises:   premises,
		formulas:   make([]formula.Formula, tree.Len()),
		faulty:     make([]bool, tree.Len()),
		discharged: make(map[int]int),
		attempted:  make(map[int]bool),
	}
	w.walk()
	w.checkDischarges()
	reached := w.checkConclusion(conclusion)

	return types.Result{Issues: w.issues, ConcReached: reached}, nil
}

type walker struct {
	opts     options
	rules    *rules.Set
	tree     *proof.Tree
	premises []formula.Formula

	// formulas[n-1] is the parsed formula of line n, nil when it did not
	// parse.
	formulas []formula.Formula
	faulty   []bool
	// discharged maps the first line of a subproof to the line whose
	// citation discharged it.
	discharged map[int]int
	// attempted holds the first lines of subproofs cited by a faulty line.
	// They already carry that line's issue.
	attempted map[int]bool
	issues    []types.Issue
}

func (w *walker) report(line int, rule string, kind types.Kind, msg string) {
	w.issues = append(w.issues, types.Issue{Kind: kind, Line: line, Rule: rule, Message: msg})
	if line > 0 {
		w.faulty[line-1] = true
	}
}

func (w *walker) reportErr(line int, rule string, err error) {
	w.report(line, rule, kindOf(err), err.Error())
}

func (w *walker) walk() {
	for _, l := range w.tree.Lines() {
		w.checkLine(l)
	}
}

func (w *walker) checkLine(l proof.Line) {
	target, err := formula.ParseWithLimit(l.Formula, w.opts.maxNesting)
	if err != nil {
		w.report(l.Number, "", types.KindParse, fmt.Sprintf("formula %q: %v", l.Formula, err))
	} else {
		w.formulas[l.Number-1] = target
	}

	j, err := proof.ParseJustification(l.Justification)
	if err != nil {
		w.reportErr(l.Number, "", err)
		return
	}
	if !w.opts.permits(j.Rule) {
		w.report(l.Number, j.Rule, types.KindDisallowedRule, fmt.Sprintf("rule %s is not allowed", j.Rule))
		w.markAttempted(l, j)
		return
	}

	switch j.Rule {
	case rules.Hyp:
		if !w.tree.OpensSubproof(l.Number) {
			w.report(l.Number, j.Rule, types.KindStructure, "an assumption must open a subproof")
			return
		}
	case rules.Premise:
		if l.Depth > 0 {
			w.report(l.Number, j.Rule, types.KindStructure, "a premise cannot appear inside a subproof")
			return
		}
		if target != nil && w.opts.strictPremises && !w.isPremise(target) {
			w.report(l.Number, j.Rule, types.KindPremise, fmt.Sprintf("%s is not one of the premises", target))
			return
		}
	}

	cited, pending, ok := w.resolve(l, j)
	if ok && target != nil {
		if err := w.rules.Check(j.Rule, target, cited); err != nil {
			w.reportErr(l.Number, j.Rule, err)
			ok = false
		}
	}
	for _, first := range pending {
		if ok && target != nil {
			w.discharged[first] = l.Number
		} else {
			w.attempted[first] = true
		}
	}
}

// markAttempted records the subproofs that l cites without checking them.
func (w *walker) markAttempted(l proof.Line, j proof.Justification) {
	for _, c := range j.Citations {
		if !c.Range {
			continue
		}
		if sp, err := w.tree.ResolveRange(l.Number, c.Start, c.End); err == nil {
			w.attempted[sp.First] = true
		}
	}
}

func (w *walker) isPremise(f formula.Formula) bool {
	for _, p := range w.premises {
		if formula.Equal(p, f) {
			return true
		}
	}
	return false
}

// resolve looks up every citation of l. It reports false when a citation
// is out of scope or points at a line without a formula, in which case
// the rule itself is not checked. pending lists the first lines of the
// cited subproofs; they are discharged only once the rule check passes.
func (w *walker) resolve(l proof.Line, j proof.Justification) (cited rules.Cited, pending []int, ok bool) {
	ok = true
	broken := 0

	formulaOf := func(n int) formula.Formula {
		f := w.formulas[n-1]
		if f == nil && broken == 0 {
			broken = n
		}
		return f
	}

	for _, c := range j.Citations {
		if !c.Range {
			line, err := w.tree.ResolveLine(l.Number, c.Start)
			if err != nil {
				w.reportErr(l.Number, j.Rule, err)
				ok = false
				continue
			}
			cited.Lines = append(cited.Lines, formulaOf(line.Number))
			continue
		}

		sp, err := w.tree.ResolveRange(l.Number, c.Start, c.End)
		if err != nil {
			w.reportErr(l.Number, j.Rule, err)
			ok = false
			continue
		}
		if by, done := w.discharged[sp.First]; done {
			w.report(l.Number, j.Rule, types.KindStructure,
				fmt.Sprintf("subproof %d-%d was already discharged at line %d", sp.First, sp.End, by))
			ok = false
			continue
		}
		pending = append(pending, sp.First)
		cited.Ranges = append(cited.Ranges, rules.Range{
			Hyp:  formulaOf(sp.First),
			Last: formulaOf(sp.Last),
		})
	}

	if broken > 0 && ok {
		w.report(l.Number, j.Rule, types.KindParse, fmt.Sprintf("cited line %d has no well-formed formula", broken))
		return cited, pending, false
	}
	return cited, pending, ok
}

func (w *walker) checkDischarges() {
	for _, sp := range w.tree.Subproofs() {
		switch {
		case sp.Open:
			w.issues = append(w.issues, types.Issue{
				Kind:    types.KindUndischarged,
				Line:    sp.First,
				Message: fmt.Sprintf("assumption at line %d is never discharged", sp.First),
			})
		case w.discharged[sp.First] == 0 && !w.attempted[sp.First]:
			w.issues = append(w.issues, types.Issue{
				Kind:    types.KindUndischarged,
				Line:    sp.First,
				Message: fmt.Sprintf("subproof %d-%d is closed without being discharged", sp.First, sp.End),
			})
		}
	}
}

// checkConclusion reports whether the last top-level line is an accepted
// line stating the conclusion while no subproof remains open.
func (w *walker) checkConclusion(conclusion formula.Formula) bool {
	top := w.tree.TopLevel()
	if len(top) == 0 {
		w.issues = append(w.issues, types.Issue{
			Kind:    types.KindConclusion,
			Message: fmt.Sprintf("no top-level line states the conclusion %s", conclusion),
		})
		return false
	}

	last := top[len(top)-1]
	got := w.formulas[last.Number-1]
	if got == nil {
		return false
	}
	if !formula.Equal(got, conclusion) {
		w.issues = append(w.issues, types.Issue{
			Kind:    types.KindConclusion,
			Line:    last.Number,
			Message: fmt.Sprintf("last top-level line states %s, but the conclusion is %s", got, conclusion),
		})
		return false
	}
	return !w.faulty[last.Number-1] && len(w.tree.Open()) == 0
}

func kindOf(err error) types.Kind {
	var (
		parseErr     *formula.ParseError
		justErr      *proof.JustificationError
		structureErr *proof.StructureError
		scopeErr     *proof.ScopeError
		arityErr     *rules.ArityError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &justErr):
		return types.KindParse
	case errors.As(err, &structureErr):
		return types.KindStructure
	case errors.As(err, &scopeErr):
		return types.KindScope
	case errors.As(err, &arityErr):
		return types.KindArity
	default:
		// *rules.MismatchError
		return types.KindRuleMismatch
	}
}
