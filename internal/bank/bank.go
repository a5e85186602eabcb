// Package bank keeps a JSONL problem bank of accepted proofs.
package bank

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gnolang/fitch/check"
	"github.com/gnolang/fitch/internal/checker"
	"github.com/gnolang/fitch/internal/types"
)

// Solution is the proof stored with a bank entry.
type Solution struct {
	Premises   []string             `json:"premises"`
	Conclusion string               `json:"conclusion"`
	Solution   []types.SolutionLine `json:"solution"`
}

// Entry is one line of the bank.
type Entry struct {
	ID               string          `json:"id"`
	Premises         []string        `json:"premises"`
	Conclusion       string          `json:"conclusion"`
	JSONSolution     Solution        `json:"json_solution"`
	Metadata         checker.Summary `json:"metadata"`
	ValidationResult types.Report    `json:"validation_result"`
	SolvedAt         time.Time       `json:"solved_at"`
}

// NewEntry builds the bank entry for an accepted outcome.
func NewEntry(o check.Outcome, now time.Time) Entry {
	premises := o.Problem.Premises
	if premises == nil {
		premises = []string{}
	}
	return Entry{
		ID:         o.Problem.ID,
		Premises:   premises,
		Conclusion: o.Problem.Conclusion,
		JSONSolution: Solution{
			Premises:   premises,
			Conclusion: o.Problem.Conclusion,
			Solution:   o.Problem.Solution,
		},
		Metadata:         o.Summary,
		ValidationResult: o.Result.Report(),
		SolvedAt:         now.UTC(),
	}
}

// Writer appends entries to a bank.
type Writer struct {
	enc *json.Encoder
	now func() time.Time
}

// NewWriter returns a Writer that encodes entries to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc, now: time.Now}
}

// Append writes the accepted outcomes and skips the rest. It returns the
// number of entries written.
func (w *Writer) Append(outcomes ...check.Outcome) (int, error) {
	n := 0
	for _, o := range outcomes {
		if !o.Accepted() {
			continue
		}
		if err := w.enc.Encode(NewEntry(o, w.now())); err != nil {
			return n, fmt.Errorf("write bank entry %q: %w", o.Problem.ID, err)
		}
		n++
	}
	return n, nil
}

// AppendFile appends the accepted outcomes to the bank at path, creating it
// if needed.
func AppendFile(path string, outcomes ...check.Outcome) (int, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open bank %s: %w", path, err)
	}
	n, err := NewWriter(f).Append(outcomes...)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return n, err
}
