package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
	"github.com/gnolang/fitch/internal/bank"
)

const defaultBankPath = "problem_bank.jsonl"

var bankPath string

var harvestCmd = &cobra.Command{
	Use:   "harvest <records.jsonl>",
	Short: "Append the accepted proofs of a JSONL file to the problem bank",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stats, added, err := runHarvest(ctx, logger, newEngine(), args[0], bankPath)
		if err != nil {
			logger.Error("Error harvesting records", zap.String("path", args[0]), zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("%d of %d proofs added to %s\n", added, stats.Records, bankPath)
	},
}

func init() {
	harvestCmd.Flags().StringVar(&bankPath, "bank", defaultBankPath, "Problem bank to append to")
	harvestCmd.Flags().IntVar(&workers, "workers", 0, "Number of records checked at once (default: number of CPUs)")
	harvestCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
}

func runHarvest(
	ctx context.Context,
	logger *zap.Logger,
	engine check.Engine,
	path string,
	bankPath string,
) (batchStats, int, error) {
	outcomes, stats, err := checkRecords(ctx, logger, engine, path, progressWriter())
	if err != nil {
		return stats, 0, err
	}
	added, err := bank.AppendFile(bankPath, outcomes...)
	if err != nil {
		return stats, added, err
	}
	logger.Info("Harvested proofs",
		zap.String("bank", bankPath),
		zap.Int("added", added),
		zap.Int("skipped", stats.Records-added))
	return stats, added, nil
}
