package formatter

import (
	"fmt"
	"strings"

	"github.com/gnolang/fitch/internal/types"
)

// FormatProof renders a problem and its numbered proof.
func FormatProof(problem types.Problem) string {
	var b strings.Builder
	if problem.ID != "" {
		b.WriteString(fileStyle.Sprintf("%s\n", problem.ID))
	}
	b.WriteString(fmt.Sprintf("premises:   %s\n", strings.Join(problem.Premises, ", ")))
	b.WriteString(fmt.Sprintf("conclusion: %s\n", problem.Conclusion))

	lines := snippetLines(problem.Solution)
	width := gutterWidth(len(lines))
	for i, l := range lines {
		b.WriteString(lineStyle.Sprintf("%*d | ", width, i+1))
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

// Verdict is the one-line summary printed after the issues.
func Verdict(result types.Result) string {
	if result.Valid() {
		return acceptStyle.Sprint("proof accepted") + "\n"
	}

	reached := "conclusion not reached"
	if result.ConcReached {
		reached = "conclusion reached"
	}
	return errorStyle.Sprintf("proof rejected: %s, %s", plural(len(result.Issues), "issue"), reached) + "\n"
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
