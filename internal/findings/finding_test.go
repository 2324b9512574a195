package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOrderedGroupsByCategory(t *testing.T) {
	set := Set{
		{RuleID: "c", Category: Incomplete},
		{RuleID: "a", Category: Pass},
		{RuleID: "b", Category: Violation},
		{RuleID: "d", Category: Pass},
		{RuleID: "e", Category: Inapplicable},
	}

	ordered := set.Ordered()

	var ids []string
	for _, f := range ordered {
		ids = append(ids, f.RuleID)
	}
	assert.Equal(t, []string{"b", "a", "d", "e", "c"}, ids)
	assert.Equal(t, "c", set[0].RuleID, "Ordered must not reorder the receiver")
}

func TestSetCountNodes(t *testing.T) {
	set := Set{
		{RuleID: "a", Category: Violation, Nodes: []Node{{}, {}}},
		{RuleID: "b", Category: Violation, Nodes: []Node{{}}},
		{RuleID: "c", Category: Pass, Nodes: []Node{{}}},
		{RuleID: "d", Category: Inapplicable},
	}

	counts := set.CountNodes()
	assert.Equal(t, 3, counts[Violation])
	assert.Equal(t, 1, counts[Pass])
	assert.Equal(t, 0, counts[Inapplicable])
}

func TestCategoryStringUnknown(t *testing.T) {
	assert.Equal(t, "category(42)", Category(42).String())
}
