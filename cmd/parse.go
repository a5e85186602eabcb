package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/fitch/internal/formula"
)

var asciiOutput bool

var parseCmd = &cobra.Command{
	Use:   "parse <formula>",
	Short: "Parse a formula and print its canonical form",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runParse(os.Stdout, args[0], asciiOutput); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	parseCmd.Flags().BoolVar(&asciiOutput, "ascii", false, "Print ASCII connectives instead of Unicode")
}

func runParse(w io.Writer, text string, ascii bool) error {
	f, err := formula.Parse(text)
	if err != nil {
		return err
	}
	out := f.String()
	if ascii {
		out = formula.Standardize(out)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
