package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gnolang/fitch/internal/types"
)

const defaultSource = "proof"

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
	acceptStyle  = color.New(color.FgGreen, color.Bold)
)

// issueFormatter is the interface that wraps the IssueTemplate method.
// Implementations are responsible for formatting specific kinds of issues.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter returns the formatter for an issue. Issues that are not
// tied to a line are rendered without a snippet.
func getIssueFormatter(issue types.Issue) issueFormatter {
	switch {
	case issue.Line == 0:
		return &ProofWideIssueFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// GenerateFormattedIssue renders every issue of a checked problem,
// quoting the offending proof line.
func GenerateFormattedIssue(issues []types.Issue, problem types.Problem) string {
	lines := snippetLines(problem.Solution)
	source := problem.ID
	if source == "" {
		source = defaultSource
	}

	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue, source, lines, getIssueFormatter(issue)))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Heading      string
	Location     string
	Gutter       string
	Message      string
	Note         string
	Line         int
	SnippetLines []string
}

func buildIssue(issue types.Issue, source string, lines []string, formatter issueFormatter) string {
	gutter := strings.Repeat(" ", gutterWidth(issue.Line))
	data := IssueData{
		Heading:      heading(issue),
		Location:     location(source, issue.Line),
		Gutter:       gutter,
		Message:      issue.Message,
		Note:         noteFor(issue.Kind),
		Line:         issue.Line,
		SnippetLines: lines,
	}

	funcMap := template.FuncMap{
		"arrow":   arrow,
		"snippet": proofSnippet,
		"message": message,
		"note":    note,
	}

	tmpl := template.Must(template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// heading names the issue kind and, when there is one, the rule the
// offending line cites.
func heading(issue types.Issue) string {
	text := string(issue.Kind)
	if issue.Rule != "" {
		text += " (" + issue.Rule + ")"
	}
	return errorStyle.Sprint("error: ") + ruleStyle.Sprint(text) + "\n"
}

// location is "source:line", or just the source for proof-wide issues.
func location(source string, line int) string {
	if line > 0 {
		return fileStyle.Sprintf("%s:%d", source, line)
	}
	return fileStyle.Sprint(source)
}

// utils functions used in the text templates

func arrow(gutter, loc string) string {
	return lineStyle.Sprintf("%s--> ", gutter) + loc + "\n"
}

func proofSnippet(lines []string, line int, gutter string) string {
	endString := lineStyle.Sprintf("%s |\n", gutter)
	if line < 1 || line > len(lines) {
		return endString
	}
	endString += lineStyle.Sprintf("%d | ", line)
	endString += lines[line-1] + "\n"
	return endString
}

func message(msg, gutter string) string {
	return lineStyle.Sprintf("%s = ", gutter) + messageStyle.Sprintf("%s\n", msg)
}

func note(text, gutter string) string {
	if text == "" {
		return ""
	}
	return lineStyle.Sprintf("%s = ", gutter) + noteStyle.Sprint("note: ") + text + "\n"
}

func noteFor(kind types.Kind) string {
	switch kind {
	case types.KindUndischarged:
		return "close the subproof with →I, ¬I, IP, ↔I or ∨E at the enclosing depth"
	case types.KindScope:
		return "only lines of enclosing subproofs, and closed subproofs at the citing depth, are visible"
	case types.KindConclusion:
		return "the proof must end at depth 0 with the conclusion"
	default:
		return ""
	}
}

// gutterWidth is the width of the line-number column, never less than one
// so that proof-wide issues line up with line-bound ones.
func gutterWidth(line int) int {
	return max(len(strconv.Itoa(line)), 1)
}

// snippetLines renders each solution line with one bar per nesting level,
// the formula and its justification aligned in columns.
func snippetLines(solution []types.SolutionLine) []string {
	bodies := make([]string, len(solution))
	width := 0
	for i, l := range solution {
		bodies[i] = strings.Repeat("| ", max(l.Assumeno, 0)) + l.Formula
		width = max(width, utf8.RuneCountInString(bodies[i]))
	}

	out := make([]string, len(solution))
	for i, l := range solution {
		pad := width - utf8.RuneCountInString(bodies[i])
		out[i] = bodies[i] + strings.Repeat(" ", pad) + "   " + l.Justification
	}
	return out
}
