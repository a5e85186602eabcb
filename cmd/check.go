package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
	"github.com/gnolang/fitch/formatter"
)

var checkJSONOutput bool

var checkCmd = &cobra.Command{
	Use:   "check <problem.json>",
	Short: "Check a single proof",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		accepted, err := runCheck(ctx, os.Stdout, newEngine(), args[0], checkJSONOutput)
		if err != nil {
			logger.Error("Error checking proof", zap.String("path", args[0]), zap.Error(err))
			os.Exit(1)
		}
		if !accepted {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output the result as a JSON record")
}

// runCheck checks the problem stored at path and writes the result to w.
// It reports whether the proof was accepted.
func runCheck(ctx context.Context, w io.Writer, engine check.Engine, path string, isJSON bool) (bool, error) {
	problem, err := check.ReadProblemFile(path)
	if err != nil {
		return false, err
	}

	var outcome check.Outcome
	if err := runWithTimeout(ctx, func() {
		outcome = check.ProcessRecord(engine, problem)
	}); err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if isJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(outcome.Record()); err != nil {
			return false, err
		}
		return outcome.Accepted(), outcome.Err
	}

	if outcome.Err != nil {
		return false, outcome.Err
	}
	fmt.Fprintln(w, formatter.FormatProof(problem))
	if len(outcome.Result.Issues) > 0 {
		fmt.Fprint(w, formatter.GenerateFormattedIssue(outcome.Result.Issues, problem))
	}
	fmt.Fprint(w, formatter.Verdict(outcome.Result))
	return outcome.Accepted(), nil
}
