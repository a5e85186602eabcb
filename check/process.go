package check

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/internal/checker"
	"github.com/gnolang/fitch/internal/types"
)

// maxRecordSize bounds a single JSONL line.
const maxRecordSize = 4 << 20

// Outcome is the result of checking one record.
type Outcome struct {
	Problem types.Problem
	Result  types.Result
	Summary checker.Summary
	// Err is set when the problem itself is malformed; Result is then empty.
	Err error
}

// Accepted reports whether the record's proof was accepted.
func (o Outcome) Accepted() bool {
	return o.Err == nil && o.Result.Valid()
}

// OutputRecord is the JSON form of an Outcome.
type OutputRecord struct {
	ID string `json:"id,omitempty"`
	types.Report
	Metadata checker.Summary `json:"metadata"`
	Error    string          `json:"error,omitempty"`
}

// Record converts o into its JSON form.
func (o Outcome) Record() OutputRecord {
	rec := OutputRecord{
		ID:       o.Problem.ID,
		Report:   o.Result.Report(),
		Metadata: o.Summary,
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}
	return rec
}

// ProcessRecord checks a single problem.
func ProcessRecord(engine Engine, problem types.Problem) Outcome {
	result, err := engine.Check(problem)
	return Outcome{
		Problem: problem,
		Result:  result,
		Summary: checker.Summarize(problem.Solution),
		Err:     err,
	}
}

type processOptions struct {
	workers  int
	progress io.Writer
}

// ProcessOption configures ProcessRecords.
type ProcessOption func(*processOptions)

// WithWorkers bounds the number of records checked at once. The default is
// the number of CPUs.
func WithWorkers(n int) ProcessOption {
	return func(o *processOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) ProcessOption {
	return func(o *processOptions) { o.progress = w }
}

// ProcessRecords checks every problem with a bounded pool of workers. The
// outcomes are returned in input order. A malformed problem does not stop
// the batch; it is logged and carried in its Outcome. Cancelling ctx
// stops scheduling new work and returns ctx.Err().
func ProcessRecords(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	problems []types.Problem,
	opts ...ProcessOption,
) ([]Outcome, error) {
	o := processOptions{workers: runtime.NumCPU(), progress: io.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	outcomes := make([]Outcome, len(problems))

	// limit the number of workers
	sem := make(chan struct{}, o.workers)

	bar := progressbar.NewOptions(len(problems),
		progressbar.OptionSetWriter(o.progress),
		progressbar.OptionSetDescription("checking"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	var cancelled error
schedule:
	for i, problem := range problems {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break schedule
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, problem types.Problem) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := ProcessRecord(engine, problem)
			if outcome.Err != nil && logger != nil {
				logger.Error("Error checking record",
					zap.Int("index", i),
					zap.String("id", problem.ID),
					zap.Error(outcome.Err))
			}
			outcomes[i] = outcome
			_ = bar.Add(1)
		}(i, problem)
	}
	wg.Wait()
	_ = bar.Finish()

	if cancelled != nil {
		return outcomes, cancelled
	}
	return outcomes, nil
}

// ReadRecords decodes one problem per non-blank line of r.
func ReadRecords(r io.Reader) ([]types.Problem, error) {
	var problems []types.Problem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var p types.Problem
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("record on line %d: %w", line, err)
		}
		problems = append(problems, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return problems, nil
}

// ReadRecordsFile is ReadRecords over the file at path.
func ReadRecordsFile(path string) ([]types.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadProblemFile decodes a single JSON problem from the file at path.
func ReadProblemFile(path string) (types.Problem, error) {
	var p types.Problem
	d, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if err := json.Unmarshal(d, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

// WriteOutcomes writes one OutputRecord per line.
func WriteOutcomes(w io.Writer, outcomes []Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, o := range outcomes {
		if err := enc.Encode(o.Record()); err != nil {
			return err
		}
	}
	return nil
}
