package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{.Heading}}{{arrow .Gutter .Location -}}
{{snippet .SnippetLines .Line .Gutter -}}
{{message .Message .Gutter -}}
{{note .Note .Gutter}}
`
}

// ProofWideIssueFormatter renders issues about the proof as a whole.
type ProofWideIssueFormatter struct{}

func (f *ProofWideIssueFormatter) IssueTemplate() string {
	return `{{.Heading}}{{arrow .Gutter .Location -}}
{{message .Message .Gutter -}}
{{note .Note .Gutter}}
`
}
