package axe

import (
	"github.com/scan-io-git/axe-sarif/internal/findings"
)

// Outcomes a raw result reports for the rule as a whole.
const (
	RawPassed       = "passed"
	RawFailed       = "failed"
	RawInapplicable = "inapplicable"
	RawCantTell     = "cantTell"
)

// RawResult is one rule entry of the pre-aggregation document axe-core emits
// with the raw reporter. Nodes are grouped per outcome on the rule itself.
type RawResult struct {
	ID          string   `json:"id"`
	Result      string   `json:"result"`
	PageLevel   bool     `json:"pageLevel"`
	Impact      string   `json:"impact"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Help        string   `json:"help"`
	HelpURL     string   `json:"helpUrl"`

	Violations   []RawNodeResult `json:"violations"`
	Passes       []RawNodeResult `json:"passes"`
	Incomplete   []RawNodeResult `json:"incomplete"`
	Inapplicable []RawNodeResult `json:"inapplicable"`
}

type RawNodeResult struct {
	Node   RawNode       `json:"node"`
	Impact string        `json:"impact"`
	Result string        `json:"result"`
	Any    []CheckResult `json:"any"`
	All    []CheckResult `json:"all"`
	None   []CheckResult `json:"none"`
}

// RawNode is the serialized DOM node reference of a raw node result.
type RawNode struct {
	Selector findings.Target `json:"selector"`
	Source   string          `json:"source"`
}

// RawResults is the whole raw document.
type RawResults []RawResult

var rawOutcomeCategories = map[string]findings.Category{
	RawFailed:       findings.Violation,
	RawPassed:       findings.Pass,
	RawInapplicable: findings.Inapplicable,
	RawCantTell:     findings.Incomplete,
}

// Findings adapts the raw document to the canonical finding set. Every
// non-empty node bucket becomes one finding of the matching category. A rule
// without any nodes still yields a single node-less finding, categorised by
// its overall outcome, so that it reaches the rule catalog.
func (rr RawResults) Findings() findings.Set {
	set := findings.Set{}
	for _, raw := range rr {
		buckets := []struct {
			category findings.Category
			nodes    []RawNodeResult
		}{
			{findings.Violation, raw.Violations},
			{findings.Pass, raw.Passes},
			{findings.Inapplicable, raw.Inapplicable},
			{findings.Incomplete, raw.Incomplete},
		}

		emitted := false
		for _, bucket := range buckets {
			if len(bucket.nodes) == 0 {
				continue
			}
			set = append(set, raw.toFinding(bucket.category, bucket.nodes))
			emitted = true
		}
		if !emitted {
			set = append(set, raw.toFinding(raw.outcomeCategory(), nil))
		}
	}
	return set
}

func (r RawResult) outcomeCategory() findings.Category {
	if category, ok := rawOutcomeCategories[r.Result]; ok {
		return category
	}
	return findings.Inapplicable
}

func (r RawResult) toFinding(category findings.Category, nodeResults []RawNodeResult) findings.Finding {
	nodes := make([]findings.Node, 0, len(nodeResults))
	for _, nodeResult := range nodeResults {
		nodes = append(nodes, findings.Node{
			Target:  nodeResult.Node.Selector,
			Snippet: nodeResult.Node.Source,
			Impact:  nodeResult.Impact,
			Any:     convertChecks(nodeResult.Any),
			All:     convertChecks(nodeResult.All),
			None:    convertChecks(nodeResult.None),
		})
	}
	return findings.Finding{
		RuleID:      r.ID,
		Help:        r.Help,
		Description: r.Description,
		HelpURL:     r.HelpURL,
		Impact:      r.Impact,
		Tags:        r.Tags,
		Category:    category,
		Nodes:       nodes,
	}
}
