package findings

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	frameSeparator  = ";"
	shadowSeparator = "|"
)

var selectorEscaper = strings.NewReplacer(
	`\`, `\\`,
	frameSeparator, `\`+frameSeparator,
	shadowSeparator, `\`+shadowSeparator,
)

// Selector addresses an element inside one frame. A selector with more than
// one part walks into shadow roots, outermost host first.
type Selector []string

// UnmarshalJSON accepts both axe encodings: a plain string, or an array of
// strings for shadow DOM.
func (s *Selector) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Selector{single}
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("selector must be a string or an array of strings: %w", err)
	}
	*s = Selector(parts)
	return nil
}

// MarshalJSON writes single-part selectors back as plain strings.
func (s Selector) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// Target is the full path to an element, one selector per frame, outermost
// document first.
type Target []Selector

// NewTarget builds a target of plain single-part selectors.
func NewTarget(selectors ...string) Target {
	target := make(Target, 0, len(selectors))
	for _, selector := range selectors {
		target = append(target, Selector{selector})
	}
	return target
}

// FullyQualifiedLogicalName builds the fingerprint used to correlate a result
// across scans. Inside every selector part, backslash, ';' and '|' are
// escaped with a backslash. Shadow parts are joined with '|' and frames with
// ';', so a plain single-frame target yields the axe selectors joined by ';'.
func (t Target) FullyQualifiedLogicalName() string {
	frames := make([]string, 0, len(t))
	for _, selector := range t {
		parts := make([]string, 0, len(selector))
		for _, part := range selector {
			parts = append(parts, selectorEscaper.Replace(part))
		}
		frames = append(frames, strings.Join(parts, shadowSeparator))
	}
	return strings.Join(frames, frameSeparator)
}
