package sarif

import (
	"sort"
	"strings"

	"github.com/scan-io-git/axe-sarif/internal/findings"
	"github.com/scan-io-git/axe-sarif/pkg/shared/errors"
)

const relationshipKindSuperset = "superset"

// RuleCatalog is the deduplicated rule dictionary of one scan together with
// its sorted order.
type RuleCatalog struct {
	entries map[string]*Rule
	ids     []string
	indices map[string]int
}

// NewRuleCatalog builds the catalog of every rule referenced by ordered,
// which must already be in Set.Ordered order. The first finding of a rule
// defines its entry; later findings of the same rule are ignored, even when
// their tags differ.
func NewRuleCatalog(ordered []findings.Finding, vocabulary Vocabulary, taxonomy ToolComponentReference) *RuleCatalog {
	entries := collectRules(ordered, vocabulary, taxonomy)
	ids, indices := indexRuleIDs(entries)
	return &RuleCatalog{
		entries: entries,
		ids:     ids,
		indices: indices,
	}
}

// collectRules maps every rule id to the entry built from its first finding.
func collectRules(ordered []findings.Finding, vocabulary Vocabulary, taxonomy ToolComponentReference) map[string]*Rule {
	entries := make(map[string]*Rule)
	for _, finding := range ordered {
		if _, seen := entries[finding.RuleID]; seen {
			continue
		}
		entries[finding.RuleID] = newRule(finding, vocabulary, taxonomy)
	}
	return entries
}

// indexRuleIDs sorts the rule ids byte-wise and assigns each its position.
func indexRuleIDs(entries map[string]*Rule) ([]string, map[string]int) {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	indices := make(map[string]int, len(ids))
	for i, id := range ids {
		indices[id] = i
	}
	return ids, indices
}

func newRule(finding findings.Finding, vocabulary Vocabulary, taxonomy ToolComponentReference) *Rule {
	return &Rule{
		ID:              finding.RuleID,
		Name:            finding.Help,
		FullDescription: &Message{Text: withTrailingPeriod(finding.Description)},
		HelpURI:         finding.HelpURL,
		Relationships:   relationships(finding.Tags, vocabulary, taxonomy),
	}
}

// relationships relates the rule to every recognized tag. Unknown tags are
// skipped. The result is never nil so it serialises as an array.
func relationships(tags []string, vocabulary Vocabulary, taxonomy ToolComponentReference) []*Relationship {
	related := make([]*Relationship, 0, len(tags))
	for _, tag := range tags {
		if !vocabulary.Contains(tag) {
			continue
		}
		related = append(related, &Relationship{
			Target: ReportingDescriptorReference{
				ID:            tag,
				Index:         vocabulary.Indices[tag],
				ToolComponent: taxonomy,
			},
			Kinds: []string{relationshipKindSuperset},
		})
	}
	return related
}

func withTrailingPeriod(text string) string {
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}

// Rules returns the catalog entries in index order.
func (c *RuleCatalog) Rules() []*Rule {
	rules := make([]*Rule, 0, len(c.ids))
	for _, id := range c.ids {
		rules = append(rules, c.entries[id])
	}
	return rules
}

// Len returns the number of rules in the catalog.
func (c *RuleCatalog) Len() int {
	return len(c.ids)
}

// Index returns the position of id in the catalog.
func (c *RuleCatalog) Index(id string) (int, error) {
	index, ok := c.indices[id]
	if !ok {
		return 0, errors.NewRuleIndexError(id)
	}
	return index, nil
}
