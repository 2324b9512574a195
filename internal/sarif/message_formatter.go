package sarif

import (
	"strings"

	"github.com/scan-io-git/axe-sarif/internal/findings"
)

const (
	headingFixAll = "Fix all of the following:"
	headingFixAny = "Fix any of the following:"
	headingPassed = "The following tests passed:"
)

// markdownEscaper keeps element names in check messages from being rendered
// as HTML by markdown viewers.
var markdownEscaper = strings.NewReplacer("<", "&lt;")

type checkGroup struct {
	heading string
	checks  []findings.Check
}

// checkGroups splits the checks of a node into the groups a reader has to
// act on. Failing and undecided nodes separate checks that must all pass from
// checks of which one is enough; other nodes list every check as passed.
func checkGroups(category findings.Category, node findings.Node) []checkGroup {
	var groups []checkGroup
	switch category {
	case findings.Violation, findings.Incomplete:
		groups = append(groups,
			checkGroup{heading: headingFixAll, checks: concatChecks(node.All, node.None)},
			checkGroup{heading: headingFixAny, checks: node.Any},
		)
	default:
		groups = append(groups,
			checkGroup{heading: headingPassed, checks: concatChecks(node.All, node.None, node.Any)},
		)
	}

	nonEmpty := groups[:0]
	for _, group := range groups {
		if len(group.checks) > 0 {
			nonEmpty = append(nonEmpty, group)
		}
	}
	return nonEmpty
}

func concatChecks(lists ...[]findings.Check) []findings.Check {
	var checks []findings.Check
	for _, list := range lists {
		checks = append(checks, list...)
	}
	return checks
}

func checkMessage(check findings.Check) string {
	if msg := strings.TrimSpace(check.Message); msg != "" {
		return msg
	}
	return check.ID
}

// FormatResultMessage builds the plain text and markdown message of the result
// reported for one node. A node without checks falls back to the rule help.
func FormatResultMessage(finding findings.Finding, node findings.Node) Message {
	groups := checkGroups(finding.Category, node)
	if len(groups) == 0 {
		return Message{Text: withTrailingPeriod(finding.Help)}
	}

	texts := make([]string, 0, len(groups))
	richTexts := make([]string, 0, len(groups))
	for _, group := range groups {
		texts = append(texts, formatTextGroup(group))
		richTexts = append(richTexts, formatMarkdownGroup(group))
	}
	return Message{
		Text:     strings.Join(texts, " "),
		RichText: strings.Join(richTexts, "\n\n"),
	}
}

func formatTextGroup(group checkGroup) string {
	parts := make([]string, 0, len(group.checks)+1)
	parts = append(parts, group.heading)
	for _, check := range group.checks {
		parts = append(parts, withTrailingPeriod(checkMessage(check)))
	}
	return strings.Join(parts, " ")
}

func formatMarkdownGroup(group checkGroup) string {
	lines := make([]string, 0, len(group.checks)+1)
	lines = append(lines, group.heading)
	for _, check := range group.checks {
		lines = append(lines, "- "+markdownEscaper.Replace(checkMessage(check)))
	}
	return strings.Join(lines, "\n")
}
