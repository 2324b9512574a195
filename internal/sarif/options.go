package sarif

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/axe-sarif/internal/findings"
)

// SARIF 2.0.0 result levels.
const (
	LevelError         = "error"
	LevelWarning       = "warning"
	LevelNote          = "note"
	LevelPass          = "pass"
	LevelOpen          = "open"
	LevelNotApplicable = "notApplicable"
)

// Levels lists every level in severity order.
var Levels = []string{LevelError, LevelWarning, LevelNote, LevelOpen, LevelPass, LevelNotApplicable}

// ViolationLevels lists the levels a violation may be reported at.
var ViolationLevels = []string{LevelError, LevelWarning, LevelNote}

var categoryLevels = map[findings.Category]string{
	findings.Violation:    LevelError,
	findings.Pass:         LevelPass,
	findings.Incomplete:   LevelOpen,
	findings.Inapplicable: LevelNotApplicable,
}

var impactLevels = map[string]string{
	"critical": LevelError,
	"serious":  LevelError,
	"moderate": LevelWarning,
	"minor":    LevelNote,
}

// ConverterOptions tunes the level mapping of a conversion. The zero value
// selects the defaults.
type ConverterOptions struct {
	// ViolationLevel replaces "error" for violations.
	ViolationLevel string
	// ImpactLevels derives violation levels from the node impact.
	ImpactLevels bool
}

// IsViolationLevel reports whether level may be used for violations.
func IsViolationLevel(level string) bool {
	for _, l := range ViolationLevels {
		if l == level {
			return true
		}
	}
	return false
}

// levelTable is the category to level mapping resolved from options.
type levelTable struct {
	violation    string
	impactLevels bool
}

func resolveLevels(opts ConverterOptions, logger hclog.Logger) levelTable {
	table := levelTable{
		violation:    categoryLevels[findings.Violation],
		impactLevels: opts.ImpactLevels,
	}
	if opts.ViolationLevel == "" {
		return table
	}

	level := strings.ToLower(strings.TrimSpace(opts.ViolationLevel))
	if !IsViolationLevel(level) {
		logger.Warn("ignoring unsupported violation level", "level", opts.ViolationLevel, "default", table.violation)
		return table
	}
	table.violation = level
	return table
}

// level returns the result level of a node of a finding in the given category.
func (t levelTable) level(category findings.Category, impact string) string {
	if category != findings.Violation {
		if level, ok := categoryLevels[category]; ok {
			return level
		}
		return LevelNote
	}
	if t.impactLevels {
		if level, ok := impactLevels[strings.ToLower(impact)]; ok {
			return level
		}
	}
	return t.violation
}
