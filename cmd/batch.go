package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
)

var (
	outPath string
	workers int
	quiet   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <records.jsonl>",
	Short: "Regrade a JSONL file of proof records",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		out := io.Writer(os.Stdout)
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.String("path", outPath), zap.Error(err))
			}
			defer f.Close()
			out = f
		}

		stats, err := runBatch(ctx, logger, newEngine(), args[0], out, progressWriter())
		if err != nil {
			logger.Error("Error processing records", zap.String("path", args[0]), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Batch checked",
			zap.Int("records", stats.Records),
			zap.Int("accepted", stats.Accepted),
			zap.Int("failed", stats.Failed))
	},
}

func init() {
	batchCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write result records to this file instead of stdout")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Number of records checked at once (default: number of CPUs)")
	batchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
}

type batchStats struct {
	Records  int
	Accepted int
	// Failed counts records whose premises or conclusion did not parse.
	Failed int
}

func progressWriter() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stderr
}

func checkRecords(
	ctx context.Context,
	logger *zap.Logger,
	engine check.Engine,
	path string,
	progress io.Writer,
) ([]check.Outcome, batchStats, error) {
	var stats batchStats
	problems, err := check.ReadRecordsFile(path)
	if err != nil {
		return nil, stats, err
	}

	outcomes, err := check.ProcessRecords(ctx, logger, engine, problems,
		check.WithWorkers(workers),
		check.WithProgress(progress))
	if err != nil {
		return nil, stats, err
	}

	stats.Records = len(outcomes)
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			stats.Failed++
		case o.Accepted():
			stats.Accepted++
		}
	}
	return outcomes, stats, nil
}

// runBatch checks every record of the JSONL file at path and writes one
// result record per line to out.
func runBatch(
	ctx context.Context,
	logger *zap.Logger,
	engine check.Engine,
	path string,
	out io.Writer,
	progress io.Writer,
) (batchStats, error) {
	outcomes, stats, err := checkRecords(ctx, logger, engine, path, progress)
	if err != nil {
		return stats, err
	}
	return stats, check.WriteOutcomes(out, outcomes)
}
