package review

import (
	"fmt"
	"strings"
	"text/template"
)

// Context is the pack guidance layered onto the local prompt. Either field may
// be empty.
type Context struct {
	Overlay    string
	Checklists string
}

// Prompt is a rendered review prompt together with the diff it embeds, so the
// invoker can bound the diff size before sending anything.
type Prompt struct {
	Text string
	Diff string
}

// footer is shared by both variants so the severity scale and output format
// cannot drift between them.
const footer = `{{define "footer"}}Severity levels:
- Critical: Must fix (security vulns, data loss)
- Major: Should fix (bugs, error handling)
- Minor: Worth addressing (style, optimization)
- Info: Suggestions

Provide your review in this format:

## Summary
[1-3 sentence assessment]

## Findings

### Critical
[List findings or "None"]

### Major
[List findings or "None"]

### Minor
[List findings or "None"]

### Info
[List findings or "None"]

## Recommendation
**[Approve / Request Changes]**
[Brief explanation]

## Positive Observations
[What was done well]

For each finding, use this format:
**[Dimension]** - ` + "`path/to/file:L##`" + `
[Issue description]
**Suggestion:** [Specific recommendation]
{{end}}`

const localText = `You are an expert code reviewer.

Review the following code changes across these dimensions:
1. Correctness - Logic, edge cases, error handling
2. Readability - Clarity, naming, documentation
3. Architecture - Structure, boundaries, patterns
4. Security - Input validation, auth, secrets
5. Dependencies - Necessity, security, versioning
6. Performance - Efficiency, resources
7. Operations - Logging, monitoring, configuration
8. Tests - Coverage, quality
9. Documentation - Docs in sync with code, examples accurate

{{template "footer"}}
Project guidance:
{{.Overlay}}

Reference checklists:
{{.Checklists}}

Review the following diff:

` + "```" + `
{{.Diff}}
` + "```" + `
`

const ciText = `You are an expert code reviewer for Python AI agent solutions built on Azure AI Foundry using the Microsoft Agent Framework.

Review the following code changes across these dimensions:
1. Correctness - Logic, edge cases, error handling
2. Readability - Clarity, naming, documentation
3. Architecture - Structure, boundaries, patterns
4. Python Patterns - Type hints, async, idioms
5. Security - Input validation, auth, secrets
6. AI Security - Prompt injection, tool safety, data leakage, agent bounds
7. Azure AI Foundry - Managed Identity, configuration, connections
8. Agent Framework - Agent config, tools, threads, workflows
9. Dependencies - Necessity, security, versioning
10. Performance - Efficiency, async, resources
11. Operations - Logging, monitoring, configuration
12. Tests - Coverage, quality, AI testing
13. Documentation - Docs in sync with code, examples accurate, changelog updated

{{template "footer"}}
Changed files:
{{range .Files}}- {{.}}
{{end}}
Diff:
` + "```" + `
{{.Diff}}
` + "```" + `
`

// Template variants selected by entry point.
var (
	LocalTemplate = mustTemplate("local", localText)
	CITemplate    = mustTemplate("ci", ciText)
)

func mustTemplate(name, text string) *template.Template {
	t := template.Must(template.New(name).Parse(footer))
	return template.Must(t.Parse(text))
}

type promptData struct {
	Diff       string
	Files      []string
	Overlay    string
	Checklists string
}

// BuildLocal renders the generic prompt used by the interactive review
// command.
func BuildLocal(diff string, rc Context) (Prompt, error) {
	return render(LocalTemplate, promptData{
		Diff:       diff,
		Overlay:    rc.Overlay,
		Checklists: rc.Checklists,
	})
}

// BuildCI renders the pull-request prompt with the list of changed files.
func BuildCI(diff string, files []string) (Prompt, error) {
	return render(CITemplate, promptData{Diff: diff, Files: files})
}

func render(t *template.Template, data promptData) (Prompt, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return Prompt{}, fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return Prompt{Text: b.String(), Diff: data.Diff}, nil
}
