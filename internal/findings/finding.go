package findings

import (
	"fmt"
	"sort"
)

// Category is the outcome group an axe rule evaluation was reported under.
type Category int

const (
	Violation Category = iota
	Pass
	Inapplicable
	Incomplete
)

// Categories lists every category in canonical iteration order.
var Categories = []Category{Violation, Pass, Inapplicable, Incomplete}

var categoryNames = map[Category]string{
	Violation:    "violation",
	Pass:         "pass",
	Inapplicable: "inapplicable",
	Incomplete:   "incomplete",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Check is a single evaluated axe check attached to a node.
type Check struct {
	ID      string `json:"id"`
	Impact  string `json:"impact,omitempty"`
	Message string `json:"message,omitempty"`
}

// Node is the evidence for one finding instance: one concrete DOM element.
type Node struct {
	Target  Target `json:"target"`
	Snippet string `json:"snippet,omitempty"`
	Impact  string `json:"impact,omitempty"`

	Any  []Check `json:"any,omitempty"`
	All  []Check `json:"all,omitempty"`
	None []Check `json:"none,omitempty"`
}

// Finding is the shape-independent form of one rule evaluation outcome.
// Both the standard and the raw axe result shapes are adapted to it.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Help        string   `json:"help"`
	Description string   `json:"description"`
	HelpURL     string   `json:"help_url"`
	Impact      string   `json:"impact,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	Category Category `json:"category"`
	Nodes    []Node   `json:"nodes,omitempty"`
}

// Set is every finding produced by one scan.
type Set []Finding

// Ordered returns a copy of the set sorted by category in canonical order.
// Findings within one category keep their encounter order.
func (s Set) Ordered() []Finding {
	ordered := make([]Finding, len(s))
	copy(ordered, s)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Category < ordered[j].Category
	})
	return ordered
}

// CountNodes returns the number of nodes per category.
func (s Set) CountNodes() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, f := range s {
		counts[f.Category] += len(f.Nodes)
	}
	return counts
}
