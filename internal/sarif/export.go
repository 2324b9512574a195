package sarif

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/axe-sarif/pkg/shared/errors"
)

const (
	KindFail          = "fail"
	KindPass          = "pass"
	KindOpen          = "open"
	KindNotApplicable = "notApplicable"

	levelNone = "none"
)

// SARIF 2.1.0 moved the non-failing outcomes from level to kind.
var exportKinds = map[string]string{
	LevelPass:          KindPass,
	LevelOpen:          KindOpen,
	LevelNotApplicable: KindNotApplicable,
}

// resultNamespace seeds the deterministic result GUIDs.
var resultNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.deque.com/axe/"))

// ToSarif210 re-encodes a converted log as SARIF 2.1.0, the version code
// scanning services accept. taxa describes the taxonomy rule relationships
// point to; it may be empty, in which case no taxonomy is emitted.
func ToSarif210(log *Log, taxa []Taxon) (*gosarif.Report, error) {
	if log == nil {
		return nil, fmt.Errorf("no log to export")
	}

	report, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF 2.1.0 report: %w", err)
	}

	for _, run := range log.Runs {
		exported, err := exportRun(run, taxa)
		if err != nil {
			return nil, err
		}
		report.AddRun(exported)
	}
	return report, nil
}

func exportRun(run *Run, taxa []Taxon) (*gosarif.Run, error) {
	var rules []*Rule
	if run.Resources != nil {
		rules = run.Resources.Rules
	}

	driver := exportDriver(run.Tool)
	for _, rule := range rules {
		driver.AddRule(exportRule(rule))
	}

	exported := gosarif.NewRun(*gosarif.NewTool(driver))
	if taxonomy := exportTaxonomy(rules, taxa); taxonomy != nil {
		exported.AddTaxonomy(taxonomy)
		driver.WithSupportedTaxonomies([]*gosarif.ToolComponentReference{
			gosarif.NewToolComponentReference().
				WithName(taxonomy.Name).
				WithGuid(*taxonomy.GUID),
		})
	}

	for _, invocation := range run.Invocations {
		exported.AddInvocations(exportInvocation(invocation))
	}

	uris := make([]string, 0, len(run.Files))
	for uri := range run.Files {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		file := run.Files[uri]
		artifact := exported.AddDistinctArtifact(uri)
		if file == nil {
			continue
		}
		if file.MimeType != "" {
			artifact.WithMimeType(file.MimeType)
		}
		if len(file.Properties) > 0 {
			artifact.Properties = gosarif.Properties(file.Properties)
		}
	}

	for _, result := range run.Results {
		if result.RuleIndex < 0 || result.RuleIndex >= len(rules) || rules[result.RuleIndex].ID != result.RuleID {
			return nil, errors.NewRuleIndexError(result.RuleID)
		}
		exported.AddResult(exportResult(result, rules[result.RuleIndex]))
	}
	return exported, nil
}

func exportDriver(tool Tool) *gosarif.ToolComponent {
	driver := gosarif.NewDriver(tool.Name)
	if tool.FullName != "" {
		driver.WithFullName(tool.FullName)
	}
	if tool.Version != "" {
		driver.WithVersion(tool.Version)
	}
	if tool.SemanticVersion != "" {
		driver.WithSemanticVersion(tool.SemanticVersion)
	}
	if downloadURI, ok := tool.Properties["downloadUri"].(string); ok && downloadURI != "" {
		driver.WithDownloadURI(downloadURI)
		driver.WithInformationURI(downloadURI)
	}
	return driver
}

func exportRule(rule *Rule) *gosarif.ReportingDescriptor {
	exported := gosarif.NewRule(rule.ID).
		WithName(rule.Name).
		WithShortDescription(gosarif.NewMultiformatMessageString(rule.Name))
	if rule.FullDescription != nil {
		exported.WithFullDescription(gosarif.NewMultiformatMessageString(rule.FullDescription.Text))
	}
	if rule.HelpURI != "" {
		exported.WithHelpURI(rule.HelpURI)
	}
	return exported
}

// exportTaxonomy builds the taxonomy component the rule relationships point
// to, taking its identity from the first relationship found.
func exportTaxonomy(rules []*Rule, taxa []Taxon) *gosarif.ToolComponent {
	if len(taxa) == 0 {
		return nil
	}

	reference := WcagTaxonomyReference()
	for _, rule := range rules {
		if len(rule.Relationships) > 0 {
			reference = rule.Relationships[0].Target.ToolComponent
			break
		}
	}

	taxonomy := &gosarif.ToolComponent{
		Name: reference.Name,
		GUID: &reference.GUID,
		Taxa: make([]*gosarif.ReportingDescriptor, 0, len(taxa)),
	}
	for _, taxon := range taxa {
		descriptor := gosarif.NewRule(taxon.ID).
			WithName(taxon.Name).
			WithShortDescription(gosarif.NewMultiformatMessageString(taxon.Name))
		if taxon.HelpURI != "" {
			descriptor.WithHelpURI(taxon.HelpURI)
		}
		taxonomy.Taxa = append(taxonomy.Taxa, descriptor)
	}
	return taxonomy
}

func exportInvocation(invocation *Invocation) *gosarif.Invocation {
	exported := gosarif.NewInvocation().WithExecutionSuccess(true)
	if start, err := time.Parse(time.RFC3339, invocation.StartTime); err == nil {
		exported.WithStartTimeUTC(start.UTC())
	}
	if end, err := time.Parse(time.RFC3339, invocation.EndTime); err == nil {
		exported.WithEndTimeUTC(end.UTC())
	}
	return exported
}

// exportLevel splits a 2.0.0 level into a 2.1.0 level and kind.
func exportLevel(level string) (string, string) {
	if kind, ok := exportKinds[level]; ok {
		return levelNone, kind
	}
	return level, KindFail
}

func exportResult(result *Result, rule *Rule) *gosarif.Result {
	level, kind := exportLevel(result.Level)
	fingerprint := result.PartialFingerprints[FingerprintKey]

	message := gosarif.NewTextMessage(result.Message.Text)
	if result.Message.RichText != "" {
		message.WithMarkdown(result.Message.RichText)
	}

	exported := gosarif.NewRuleResult(result.RuleID).
		WithRuleIndex(result.RuleIndex).
		WithGuid(resultGUID(result, fingerprint).String()).
		WithLevel(level).
		WithKind(kind).
		WithMessage(message)

	if fingerprint != "" {
		exported.WithPartialFingerPrints(map[string]interface{}{FingerprintKey: fingerprint})
	}

	locations := make([]*gosarif.Location, 0, len(result.Locations))
	for _, location := range result.Locations {
		locations = append(locations, exportLocation(location))
	}
	if len(locations) > 0 {
		exported.WithLocations(locations)
	}

	if len(rule.Relationships) > 0 {
		taxa := make([]*gosarif.ReportingDescriptorReference, 0, len(rule.Relationships))
		for _, relationship := range rule.Relationships {
			target := relationship.Target
			taxa = append(taxa, gosarif.NewReportingDescriptorReference().
				WithId(target.ID).
				WithIndex(target.Index).
				WithToolComponentReference(gosarif.NewToolComponentReference().
					WithName(target.ToolComponent.Name).
					WithIndex(target.ToolComponent.Index).
					WithGuid(target.ToolComponent.GUID)))
		}
		exported.WithTaxa(taxa)
	}
	return exported
}

func exportLocation(location *Location) *gosarif.Location {
	exported := gosarif.NewLocation()
	if physical := location.PhysicalLocation; physical != nil {
		exportedPhysical := gosarif.NewPhysicalLocation().
			WithArtifactLocation(gosarif.NewSimpleArtifactLocation(physical.FileLocation.URI))
		if physical.Region != nil && physical.Region.Snippet != nil {
			exportedPhysical.WithRegion(gosarif.NewRegion().
				WithSnippet(gosarif.NewArtifactContent().WithText(physical.Region.Snippet.Text)))
		}
		exported.WithPhysicalLocation(exportedPhysical)
	}
	if location.FullyQualifiedLogicalName != "" {
		exported.WithLogicalLocations([]*gosarif.LogicalLocation{
			gosarif.NewLogicalLocation().
				WithFullyQualifiedName(location.FullyQualifiedLogicalName).
				WithKind("element"),
		})
	}
	return exported
}

// resultGUID derives a stable identity from what makes a result unique so
// that repeated exports of one scan agree.
func resultGUID(result *Result, fingerprint string) uuid.UUID {
	uri := ""
	if len(result.Locations) > 0 && result.Locations[0].PhysicalLocation != nil {
		uri = result.Locations[0].PhysicalLocation.FileLocation.URI
	}
	name := uri + "\x00" + result.RuleID + "\x00" + fingerprint + "\x00" + result.Level
	return uuid.NewSHA1(resultNamespace, []byte(name))
}
