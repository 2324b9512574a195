package sarif

import (
	"bytes"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/axe-sarif/internal/axe"
	"github.com/scan-io-git/axe-sarif/internal/findings"
)

const (
	standardFixture = "testdata/axe-standard.json"
	rawFixture      = "testdata/axe-raw.json"
)

func loadStandard(t *testing.T) *axe.Results {
	t.Helper()
	doc, err := axe.Load(standardFixture, axe.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, axe.FormatStandard, doc.Format)
	return doc.Standard
}

func loadRaw(t *testing.T) []axe.RawResult {
	t.Helper()
	doc, err := axe.Load(rawFixture, axe.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, axe.FormatRaw, doc.Format)
	return doc.Raw
}

func singleRun(t *testing.T, log *Log) *Run {
	t.Helper()
	require.NotNil(t, log)
	require.Len(t, log.Runs, 1)
	return log.Runs[0]
}

func ruleIDs(run *Run) []string {
	ids := make([]string, 0, len(run.Resources.Rules))
	for _, rule := range run.Resources.Rules {
		ids = append(ids, rule.ID)
	}
	return ids
}

func TestConvertStandardFixture(t *testing.T) {
	log, err := DefaultConverter().Convert(loadStandard(t), ConverterOptions{})
	require.NoError(t, err)

	assert.Equal(t, Version200, log.Version)
	assert.Equal(t, Schema200, log.Schema)

	run := singleRun(t, log)
	assert.Equal(t, []string{"accesskeys", "color-contrast", "html-has-lang", "image-alt", "link-name", "region"}, ruleIDs(run))
	require.Len(t, run.Results, 7)

	first := run.Results[0]
	assert.Equal(t, "image-alt", first.RuleID)
	assert.Equal(t, 3, first.RuleIndex)
	assert.Equal(t, LevelError, first.Level)
	assert.Equal(t, "img.logo", first.PartialFingerprints[FingerprintKey])
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "https://example.com/", first.Locations[0].PhysicalLocation.FileLocation.URI)
	assert.Equal(t, `<img src="logo.png">`, first.Locations[0].PhysicalLocation.Region.Snippet.Text)
	assert.Equal(t, "img.logo", first.Locations[0].FullyQualifiedLogicalName)

	assert.Equal(t, "#ad-frame;img", run.Results[1].PartialFingerprints[FingerprintKey])

	levels := map[string]string{}
	for _, result := range run.Results {
		levels[result.RuleID+" "+result.PartialFingerprints[FingerprintKey]] = result.Level
	}
	assert.Equal(t, LevelPass, levels["color-contrast h1"])
	assert.Equal(t, LevelError, levels["color-contrast p.muted"])
	assert.Equal(t, LevelOpen, levels["link-name x-menu|a.more"])

	assert.Equal(t, AxeToolProperties(), run.Tool)
	require.Len(t, run.Invocations, 1)
	assert.Equal(t, "2019-04-15T21:58:23.927Z", run.Invocations[0].StartTime)
	assert.Equal(t, "2019-04-15T21:58:23.927Z", run.Invocations[0].EndTime)

	require.Contains(t, run.Files, "https://example.com/")
	page := run.Files["https://example.com/"]
	assert.Equal(t, "text/html", page.MimeType)
	assert.Equal(t, "Example Domain", page.Properties["title"])
	assert.Equal(t, []string{"target"}, page.Properties["tags"])
}

func TestConvertRuleIndexMatchesCatalogPosition(t *testing.T) {
	log, err := DefaultConverter().Convert(loadStandard(t), ConverterOptions{})
	require.NoError(t, err)
	run := singleRun(t, log)

	ids := ruleIDs(run)
	assert.True(t, sort.StringsAreSorted(ids))
	for _, result := range run.Results {
		require.Less(t, result.RuleIndex, len(ids))
		assert.Equal(t, result.RuleID, ids[result.RuleIndex])
	}
}

func TestConvertDeduplicatesRulesAcrossCategories(t *testing.T) {
	log, err := DefaultConverter().Convert(loadStandard(t), ConverterOptions{})
	require.NoError(t, err)

	count := 0
	for _, rule := range singleRun(t, log).Resources.Rules {
		if rule.ID == "color-contrast" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestConvertIsDeterministic(t *testing.T) {
	results := loadStandard(t)
	converter := DefaultConverter()

	var first, second bytes.Buffer
	log, err := converter.Convert(results, ConverterOptions{})
	require.NoError(t, err)
	require.NoError(t, log.Write(&first, true))

	log, err = converter.Convert(results, ConverterOptions{})
	require.NoError(t, err)
	require.NoError(t, log.Write(&second, true))

	assert.Equal(t, first.String(), second.String())
}

func TestConvertStandardAndRawAreEquivalent(t *testing.T) {
	converter := DefaultConverter()
	standard := loadStandard(t)

	fromStandard, err := converter.Convert(standard, ConverterOptions{})
	require.NoError(t, err)
	fromRaw, err := converter.ConvertRaw(loadRaw(t), ConverterOptions{}, EnvironmentFromResults(standard))
	require.NoError(t, err)

	byIdentity := cmpopts.SortSlices(func(a, b *Result) bool {
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		fa, fb := a.PartialFingerprints[FingerprintKey], b.PartialFingerprints[FingerprintKey]
		if fa != fb {
			return fa < fb
		}
		return a.Level < b.Level
	})
	byID := cmpopts.SortSlices(func(a, b *Rule) bool { return a.ID < b.ID })

	if diff := cmp.Diff(fromStandard, fromRaw, byIdentity, byID); diff != "" {
		t.Errorf("standard and raw conversions differ (-standard +raw):\n%s", diff)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	toolCalls, invocationCalls := 0, 0
	converter := NewConverter(
		func() Tool {
			toolCalls++
			return AxeToolProperties()
		},
		func(env EnvironmentData) []*Invocation {
			invocationCalls++
			return Invocations(env)
		},
	)

	log, err := converter.Convert(&axe.Results{Timestamp: "2019-04-15T21:58:23.927Z", URL: "https://example.com/"}, ConverterOptions{})
	require.NoError(t, err)

	run := singleRun(t, log)
	assert.Empty(t, run.Results)
	assert.NotNil(t, run.Results)
	assert.Empty(t, run.Resources.Rules)
	assert.NotNil(t, run.Resources.Rules)
	assert.Equal(t, "axe", run.Tool.Name)
	require.Len(t, run.Invocations, 1)
	assert.Equal(t, "2019-04-15T21:58:23.927Z", run.Invocations[0].StartTime)
	assert.Equal(t, 1, toolCalls)
	assert.Equal(t, 1, invocationCalls)

	var out bytes.Buffer
	require.NoError(t, log.Write(&out, false))
	assert.Contains(t, out.String(), `"results":[]`)
	assert.Contains(t, out.String(), `"rules":[]`)
}

func TestConvertNilResults(t *testing.T) {
	log, err := DefaultConverter().Convert(nil, ConverterOptions{})
	require.NoError(t, err)

	run := singleRun(t, log)
	assert.Empty(t, run.Results)
	assert.Nil(t, run.Files)
	require.Len(t, run.Invocations, 1)
	assert.Empty(t, run.Invocations[0].StartTime)
}

func TestConvertRawWithoutNodesStillCatalogsRule(t *testing.T) {
	raw := []axe.RawResult{
		{ID: "accesskeys", Result: axe.RawInapplicable, Description: "Ensures every accesskey attribute value is unique"},
	}

	log, err := DefaultConverter().ConvertRaw(raw, ConverterOptions{}, EnvironmentData{TargetPageURL: "https://example.com/"})
	require.NoError(t, err)

	run := singleRun(t, log)
	assert.Equal(t, []string{"accesskeys"}, ruleIDs(run))
	assert.Empty(t, run.Results)
}

func TestConvertViolationLevelOption(t *testing.T) {
	tests := []struct {
		name string
		opts ConverterOptions
		want map[string]string
	}{
		{
			name: "default",
			opts: ConverterOptions{},
			want: map[string]string{"image-alt": LevelError, "color-contrast": LevelError, "region": LevelError},
		},
		{
			name: "override",
			opts: ConverterOptions{ViolationLevel: "warning"},
			want: map[string]string{"image-alt": LevelWarning, "color-contrast": LevelWarning, "region": LevelWarning},
		},
		{
			name: "invalid falls back to default",
			opts: ConverterOptions{ViolationLevel: "fatal"},
			want: map[string]string{"image-alt": LevelError, "color-contrast": LevelError, "region": LevelError},
		},
		{
			name: "non failing level is rejected",
			opts: ConverterOptions{ViolationLevel: LevelPass},
			want: map[string]string{"image-alt": LevelError, "color-contrast": LevelError, "region": LevelError},
		},
		{
			name: "impact levels",
			opts: ConverterOptions{ImpactLevels: true, ViolationLevel: "note"},
			want: map[string]string{"image-alt": LevelError, "color-contrast": LevelError, "region": LevelWarning},
		},
	}

	results := loadStandard(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converter := NewConverter(AxeToolProperties, Invocations, WithLogger(hclog.NewNullLogger()))
			log, err := converter.Convert(results, tt.opts)
			require.NoError(t, err)

			got := map[string]string{}
			for _, result := range singleRun(t, log).Results {
				if _, violation := tt.want[result.RuleID]; !violation {
					continue
				}
				if result.Level == LevelPass {
					continue
				}
				got[result.RuleID] = result.Level
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFirstOccurrenceOfRuleWins(t *testing.T) {
	// A rule reported under several categories takes its metadata from the
	// first category in canonical order. Tags of later occurrences are not merged.
	set := findings.Set{
		{RuleID: "color-contrast", Help: "from pass", Tags: []string{"wcag2aa", "wcag143"}, Category: findings.Pass,
			Nodes: []findings.Node{{Target: findings.NewTarget("h1")}}},
		{RuleID: "color-contrast", Help: "from violation", Tags: []string{"wcag2aa"}, Category: findings.Violation,
			Nodes: []findings.Node{{Target: findings.NewTarget("p")}}},
	}

	log, err := DefaultConverter().ConvertFindings(set, ConverterOptions{}, EnvironmentData{})
	require.NoError(t, err)

	rules := singleRun(t, log).Resources.Rules
	require.Len(t, rules, 1)
	assert.Equal(t, "from violation", rules[0].Name)
	require.Len(t, rules[0].Relationships, 1)
	assert.Equal(t, "wcag2aa", rules[0].Relationships[0].Target.ID)
}

func TestConvertWithCustomTaxonomy(t *testing.T) {
	reference := ToolComponentReference{Name: "internal", Index: 2, GUID: "00000000-0000-0000-0000-000000000001"}
	vocabulary := NewVocabulary([]Taxon{{ID: "best-practice"}, {ID: "cat.keyboard"}})
	converter := NewConverter(AxeToolProperties, Invocations,
		WithTaxonomy(func() ToolComponentReference { return reference }, vocabulary))

	log, err := converter.Convert(loadStandard(t), ConverterOptions{})
	require.NoError(t, err)

	for _, rule := range singleRun(t, log).Resources.Rules {
		if rule.ID != "region" {
			continue
		}
		require.Len(t, rule.Relationships, 2)
		assert.Equal(t, "cat.keyboard", rule.Relationships[0].Target.ID)
		assert.Equal(t, 1, rule.Relationships[0].Target.Index)
		assert.Equal(t, reference, rule.Relationships[0].Target.ToolComponent)
		assert.Equal(t, "best-practice", rule.Relationships[1].Target.ID)
		assert.Equal(t, 0, rule.Relationships[1].Target.Index)
	}
}

func TestConvertLogsNodeCounts(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug, DisableTime: true})

	converter := NewConverter(AxeToolProperties, Invocations, WithLogger(logger))
	_, err := converter.Convert(loadStandard(t), ConverterOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "converted axe findings")
	assert.Contains(t, out, "violation_nodes=4")
	assert.Contains(t, out, "pass_nodes=2")
	assert.Contains(t, out, "inapplicable_nodes=0")
	assert.Contains(t, out, "incomplete_nodes=1")
}
