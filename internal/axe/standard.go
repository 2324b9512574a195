// Package axe decodes the result documents produced by axe-core and adapts
// them to the shape-independent findings model.
package axe

import (
	"encoding/json"

	"github.com/scan-io-git/axe-sarif/internal/findings"
)

// Results is the standard axe-core result document returned by axe.run with
// the default (v2) reporter. TargetPageURL and TargetPageTitle are set by
// callers that decorate the document with page details.
type Results struct {
	TestEngine      TestEngine      `json:"testEngine"`
	TestRunner      TestRunner      `json:"testRunner"`
	TestEnvironment TestEnvironment `json:"testEnvironment"`
	Timestamp       string          `json:"timestamp"`
	URL             string          `json:"url"`
	TargetPageURL   string          `json:"targetPageUrl,omitempty"`
	TargetPageTitle string          `json:"targetPageTitle,omitempty"`
	ToolOptions     json.RawMessage `json:"toolOptions,omitempty"`

	Violations   []Result `json:"violations"`
	Passes       []Result `json:"passes"`
	Incomplete   []Result `json:"incomplete"`
	Inapplicable []Result `json:"inapplicable"`
}

type TestEngine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type TestRunner struct {
	Name string `json:"name"`
}

type TestEnvironment struct {
	UserAgent        string `json:"userAgent"`
	WindowWidth      int    `json:"windowWidth"`
	WindowHeight     int    `json:"windowHeight"`
	OrientationAngle int    `json:"orientationAngle,omitempty"`
	OrientationType  string `json:"orientationType,omitempty"`
}

// Result is one rule outcome inside a standard result category.
type Result struct {
	ID          string       `json:"id"`
	Impact      string       `json:"impact"`
	Tags        []string     `json:"tags"`
	Description string       `json:"description"`
	Help        string       `json:"help"`
	HelpURL     string       `json:"helpUrl"`
	Nodes       []NodeResult `json:"nodes"`
}

type NodeResult struct {
	HTML           string          `json:"html"`
	Target         findings.Target `json:"target"`
	Impact         string          `json:"impact"`
	Any            []CheckResult   `json:"any"`
	All            []CheckResult   `json:"all"`
	None           []CheckResult   `json:"none"`
	FailureSummary string          `json:"failureSummary,omitempty"`
}

// CheckResult is shared by the standard and raw shapes.
type CheckResult struct {
	ID           string          `json:"id"`
	Impact       string          `json:"impact"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data,omitempty"`
	RelatedNodes []RelatedNode   `json:"relatedNodes,omitempty"`
}

type RelatedNode struct {
	Target findings.Target `json:"target"`
	HTML   string          `json:"html"`
}

// PageURL returns the decorated target page URL, falling back to the URL axe recorded.
func (r *Results) PageURL() string {
	if r.TargetPageURL != "" {
		return r.TargetPageURL
	}
	return r.URL
}

// Findings adapts the standard document to the canonical finding set, in
// category order.
func (r *Results) Findings() findings.Set {
	set := findings.Set{}
	if r == nil {
		return set
	}
	set = appendResults(set, r.Violations, findings.Violation)
	set = appendResults(set, r.Passes, findings.Pass)
	set = appendResults(set, r.Inapplicable, findings.Inapplicable)
	set = appendResults(set, r.Incomplete, findings.Incomplete)
	return set
}

func appendResults(set findings.Set, results []Result, category findings.Category) findings.Set {
	for _, result := range results {
		nodes := make([]findings.Node, 0, len(result.Nodes))
		for _, node := range result.Nodes {
			nodes = append(nodes, findings.Node{
				Target:  node.Target,
				Snippet: node.HTML,
				Impact:  node.Impact,
				Any:     convertChecks(node.Any),
				All:     convertChecks(node.All),
				None:    convertChecks(node.None),
			})
		}
		set = append(set, findings.Finding{
			RuleID:      result.ID,
			Help:        result.Help,
			Description: result.Description,
			HelpURL:     result.HelpURL,
			Impact:      result.Impact,
			Tags:        result.Tags,
			Category:    category,
			Nodes:       nodes,
		})
	}
	return set
}

func convertChecks(checks []CheckResult) []findings.Check {
	if len(checks) == 0 {
		return nil
	}
	converted := make([]findings.Check, 0, len(checks))
	for _, check := range checks {
		converted = append(converted, findings.Check{
			ID:      check.ID,
			Impact:  check.Impact,
			Message: check.Message,
		})
	}
	return converted
}
