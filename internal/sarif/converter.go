package sarif

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/axe-sarif/internal/axe"
	"github.com/scan-io-git/axe-sarif/internal/findings"
)

// Converter turns axe results into SARIF 2.0.0 logs. A Converter holds no
// per-conversion state and may be shared between goroutines.
type Converter struct {
	toolProvider       ToolPropertyProvider
	invocationProvider InvocationProvider
	taxonomyProvider   TaxonomyReferenceProvider
	vocabulary         Vocabulary
	logger             hclog.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithTaxonomy relates rules to the taxonomy identified by provider. Only
// tags present in vocabulary produce relationships.
func WithTaxonomy(provider TaxonomyReferenceProvider, vocabulary Vocabulary) ConverterOption {
	return func(c *Converter) {
		c.taxonomyProvider = provider
		c.vocabulary = vocabulary
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger hclog.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConverter creates a Converter with the given providers. Rules are
// related to the WCAG taxonomy unless WithTaxonomy says otherwise.
func NewConverter(toolProvider ToolPropertyProvider, invocationProvider InvocationProvider, opts ...ConverterOption) *Converter {
	c := &Converter{
		toolProvider:       toolProvider,
		invocationProvider: invocationProvider,
		taxonomyProvider:   WcagTaxonomyReference,
		vocabulary:         WcagVocabulary(),
		logger:             hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConverter returns a Converter with the axe tool properties, the
// default invocation provider and the WCAG taxonomy.
func DefaultConverter() *Converter {
	return NewConverter(AxeToolProperties, Invocations)
}

// EnvironmentFromResults extracts the scanned page description of a standard
// result document.
func EnvironmentFromResults(results *axe.Results) EnvironmentData {
	if results == nil {
		return EnvironmentData{}
	}
	return EnvironmentData{
		Timestamp:       results.Timestamp,
		TargetPageURL:   results.PageURL(),
		TargetPageTitle: results.TargetPageTitle,
	}
}

// Convert converts a standard axe result document.
func (c *Converter) Convert(results *axe.Results, opts ConverterOptions) (*Log, error) {
	return c.ConvertFindings(results.Findings(), opts, EnvironmentFromResults(results))
}

// ConvertRaw converts a raw axe result document. The raw shape carries no
// page description, so env supplies it.
func (c *Converter) ConvertRaw(results []axe.RawResult, opts ConverterOptions, env EnvironmentData) (*Log, error) {
	return c.ConvertFindings(axe.RawResults(results).Findings(), opts, env)
}

// ConvertFindings converts an already adapted finding set.
func (c *Converter) ConvertFindings(set findings.Set, opts ConverterOptions, env EnvironmentData) (*Log, error) {
	ordered := set.Ordered()
	catalog := NewRuleCatalog(ordered, c.vocabulary, c.taxonomyProvider())

	mapper := newResultMapper(catalog, resolveLevels(opts, c.logger), env.TargetPageURL)
	results, err := mapper.MapAll(ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to map axe findings: %w", err)
	}

	nodes := set.CountNodes()
	c.logger.Debug("converted axe findings",
		"findings", len(ordered),
		"rules", catalog.Len(),
		"results", len(results),
		"violation_nodes", nodes[findings.Violation],
		"pass_nodes", nodes[findings.Pass],
		"inapplicable_nodes", nodes[findings.Inapplicable],
		"incomplete_nodes", nodes[findings.Incomplete],
	)

	return AssembleLog(catalog.Rules(), results, c.toolProvider(), c.invocationProvider(env), targetFiles(env)), nil
}
