package proof

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gnolang/fitch/internal/rules"
)

// Citation refers to one earlier line, or to the closed subproof spanning
// lines Start..End. For a single line Start == End and Range is false.
type Citation struct {
	Start int
	End   int
	Range bool
}

func (c Citation) String() string {
	if c.Range {
		return fmt.Sprintf("%d-%d", c.Start, c.End)
	}
	return strconv.Itoa(c.Start)
}

// Justification is a parsed justification string.
type Justification struct {
	Rule      string
	Citations []Citation
}

func (j Justification) String() string {
	if len(j.Citations) == 0 {
		return j.Rule
	}
	parts := make([]string, len(j.Citations))
	for i, c := range j.Citations {
		parts[i] = c.String()
	}
	return j.Rule + " " + strings.Join(parts, ", ")
}

// JustificationError reports a justification string that does not follow
// the grammar `TAG [CITE {"," CITE}]` with `CITE = INT | INT "-" INT`.
type JustificationError struct {
	Text   string
	Reason string
}

func (e *JustificationError) Error() string {
	return fmt.Sprintf("justification %q: %s", e.Text, e.Reason)
}

// ParseJustification splits text into a canonical rule tag and its
// citations.
func ParseJustification(text string) (Justification, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Justification{}, &JustificationError{Text: text, Reason: "empty justification"}
	}

	split := strings.IndexFunc(trimmed, unicode.IsDigit)
	tag, rest := trimmed, ""
	if split >= 0 {
		tag, rest = trimmed[:split], trimmed[split:]
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Justification{}, &JustificationError{Text: text, Reason: "missing rule name"}
	}

	name, ok := rules.Canonical(tag)
	if !ok {
		return Justification{}, &JustificationError{Text: text, Reason: fmt.Sprintf("unknown rule %q", tag)}
	}

	j := Justification{Rule: name}
	if rest == "" {
		return j, nil
	}

	for _, item := range strings.Split(rest, ",") {
		c, err := parseCitation(strings.TrimSpace(item))
		if err != nil {
			return Justification{}, &JustificationError{Text: text, Reason: err.Error()}
		}
		j.Citations = append(j.Citations, c)
	}
	return j, nil
}

func parseCitation(item string) (Citation, error) {
	if item == "" {
		return Citation{}, fmt.Errorf("empty citation")
	}
	if strings.ContainsAny(item, "–—") {
		return Citation{}, fmt.Errorf("citation %q uses a dash; ranges are written with a plain hyphen", item)
	}

	start, end, isRange := strings.Cut(item, "-")
	a, err := lineNumber(start)
	if err != nil {
		return Citation{}, err
	}
	if !isRange {
		return Citation{Start: a, End: a}, nil
	}
	b, err := lineNumber(end)
	if err != nil {
		return Citation{}, err
	}
	return Citation{Start: a, End: b, Range: true}, nil
}

func lineNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%q is not a line number", s)
	}
	return n, nil
}
