package sarif

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayLevel turns a result level into a label for humans.
func DisplayLevel(level string) string {
	normalized := strings.TrimSpace(level)
	switch normalized {
	case LevelNotApplicable:
		return "Not Applicable"
	case "":
		return ""
	default:
		return cases.Title(language.Und).String(strings.ToLower(normalized))
	}
}

// CollectLevelInfo counts the results of every run per level. The "total"
// key holds the number of results.
func (l *Log) CollectLevelInfo() map[string]int {
	levelInfo := map[string]int{"total": 0}
	for _, level := range Levels {
		levelInfo[level] = 0
	}

	for _, run := range l.Runs {
		for _, result := range run.Results {
			levelInfo[result.Level]++
			levelInfo["total"]++
		}
	}
	return levelInfo
}

// LevelSummary renders the non-zero level counts in severity order, for
// example "Error: 3, Pass: 12".
func LevelSummary(levelInfo map[string]int) string {
	parts := make([]string, 0, len(Levels))
	for _, level := range Levels {
		if count := levelInfo[level]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", DisplayLevel(level), count))
		}
	}
	if len(parts) == 0 {
		return "no results"
	}
	return strings.Join(parts, ", ")
}
