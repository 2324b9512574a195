package sarif

import (
	"github.com/scan-io-git/axe-sarif/internal/findings"
)

// FingerprintKey is the partial fingerprint every result carries.
const FingerprintKey = "fullyQualifiedLogicalName"

// ResultMapper turns findings into results. It is shared by both input
// shapes; only the adapters producing findings differ.
type ResultMapper struct {
	catalog *RuleCatalog
	levels  levelTable
	pageURL string
}

func newResultMapper(catalog *RuleCatalog, levels levelTable, pageURL string) *ResultMapper {
	return &ResultMapper{
		catalog: catalog,
		levels:  levels,
		pageURL: pageURL,
	}
}

// Map returns one result per node of finding. A finding without nodes maps
// to no results. A rule id missing from the catalog is returned as a
// RuleIndexError.
func (m *ResultMapper) Map(finding findings.Finding) ([]*Result, error) {
	if len(finding.Nodes) == 0 {
		return nil, nil
	}

	ruleIndex, err := m.catalog.Index(finding.RuleID)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(finding.Nodes))
	for _, node := range finding.Nodes {
		fingerprint := node.Target.FullyQualifiedLogicalName()
		impact := node.Impact
		if impact == "" {
			impact = finding.Impact
		}
		results = append(results, &Result{
			RuleID:    finding.RuleID,
			RuleIndex: ruleIndex,
			Level:     m.levels.level(finding.Category, impact),
			Message:   FormatResultMessage(finding, node),
			Locations: []*Location{m.location(node, fingerprint)},
			PartialFingerprints: map[string]string{
				FingerprintKey: fingerprint,
			},
		})
	}
	return results, nil
}

// MapAll maps every finding in encounter order.
func (m *ResultMapper) MapAll(ordered []findings.Finding) ([]*Result, error) {
	results := make([]*Result, 0, len(ordered))
	for _, finding := range ordered {
		mapped, err := m.Map(finding)
		if err != nil {
			return nil, err
		}
		results = append(results, mapped...)
	}
	return results, nil
}

func (m *ResultMapper) location(node findings.Node, fingerprint string) *Location {
	physical := &PhysicalLocation{
		FileLocation: FileLocation{URI: m.pageURL},
	}
	if node.Snippet != "" {
		physical.Region = &Region{Snippet: &Snippet{Text: node.Snippet}}
	}
	return &Location{
		PhysicalLocation:          physical,
		FullyQualifiedLogicalName: fingerprint,
	}
}
