package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/axe-sarif/internal/findings"
)

func TestFormatResultMessageViolation(t *testing.T) {
	finding := findings.Finding{RuleID: "image-alt", Help: "Images must have alternate text", Category: findings.Violation}
	node := findings.Node{
		Target: findings.NewTarget("img"),
		Any: []findings.Check{
			{ID: "has-alt", Message: "Element does not have an alt attribute"},
			{ID: "aria-label", Message: "aria-label attribute does not exist or is empty"},
		},
		None: []findings.Check{
			{ID: "presentation-role", Message: "Element's default semantics were not overridden with role=\"presentation\""},
		},
	}

	msg := FormatResultMessage(finding, node)

	assert.Equal(t,
		"Fix all of the following: Element's default semantics were not overridden with role=\"presentation\". "+
			"Fix any of the following: Element does not have an alt attribute. aria-label attribute does not exist or is empty.",
		msg.Text)
	assert.Equal(t,
		"Fix all of the following:\n- Element's default semantics were not overridden with role=\"presentation\"\n\n"+
			"Fix any of the following:\n- Element does not have an alt attribute\n- aria-label attribute does not exist or is empty",
		msg.RichText)
}

func TestFormatResultMessagePassListsEveryCheck(t *testing.T) {
	finding := findings.Finding{RuleID: "html-has-lang", Category: findings.Pass}
	node := findings.Node{
		All:  []findings.Check{{ID: "a", Message: "First"}},
		None: []findings.Check{{ID: "b", Message: "Second."}},
		Any:  []findings.Check{{ID: "c", Message: "Third"}},
	}

	msg := FormatResultMessage(finding, node)

	assert.Equal(t, "The following tests passed: First. Second. Third.", msg.Text)
	assert.Equal(t, "The following tests passed:\n- First\n- Second.\n- Third", msg.RichText)
}

func TestFormatResultMessageEscapesMarkupInRichText(t *testing.T) {
	finding := findings.Finding{Category: findings.Incomplete}
	node := findings.Node{
		Any: []findings.Check{{ID: "c", Message: "<video> element must have captions"}},
	}

	msg := FormatResultMessage(finding, node)

	assert.Equal(t, "Fix any of the following: <video> element must have captions.", msg.Text)
	assert.Equal(t, "Fix any of the following:\n- &lt;video> element must have captions", msg.RichText)
}

func TestFormatResultMessageFallsBackToCheckID(t *testing.T) {
	finding := findings.Finding{Category: findings.Violation}
	node := findings.Node{All: []findings.Check{{ID: "has-lang"}}}

	msg := FormatResultMessage(finding, node)

	assert.Equal(t, "Fix all of the following: has-lang.", msg.Text)
}

func TestFormatResultMessageWithoutChecksUsesHelp(t *testing.T) {
	finding := findings.Finding{Help: "Document should have one main landmark", Category: findings.Violation}

	msg := FormatResultMessage(finding, findings.Node{})

	assert.Equal(t, "Document should have one main landmark.", msg.Text)
	assert.Empty(t, msg.RichText)
}
