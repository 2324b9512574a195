package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayLevel(t *testing.T) {
	tests := map[string]string{
		LevelError:         "Error",
		LevelNote:          "Note",
		LevelNotApplicable: "Not Applicable",
		"  open ":          "Open",
		"":                 "",
	}
	for level, want := range tests {
		assert.Equal(t, want, DisplayLevel(level), "level %q", level)
	}
}

func TestCollectLevelInfo(t *testing.T) {
	log := AssembleLog(nil, []*Result{
		{Level: LevelError},
		{Level: LevelError},
		{Level: LevelPass},
		{Level: LevelOpen},
	}, AxeToolProperties(), nil, nil)

	info := log.CollectLevelInfo()

	assert.Equal(t, 2, info[LevelError])
	assert.Equal(t, 1, info[LevelPass])
	assert.Equal(t, 1, info[LevelOpen])
	assert.Equal(t, 0, info[LevelWarning])
	assert.Equal(t, 4, info["total"])
	assert.Equal(t, "Error: 2, Open: 1, Pass: 1", LevelSummary(info))
}

func TestLevelSummaryEmpty(t *testing.T) {
	assert.Equal(t, "no results", LevelSummary(map[string]int{"total": 0}))
}
