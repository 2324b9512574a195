package sarif

import (
	"github.com/google/uuid"
)

const (
	wcagTaxonomyName  = "WCAG"
	wcagTaxonomyIndex = 0
	wcagUnderstanding = "https://www.w3.org/WAI/WCAG21/Understanding/"
	wcagConformance   = "https://www.w3.org/TR/WCAG21/#conformance-reqs"
)

// wcagTaxonomyGUID identifies the WCAG taxonomy document. Parsed once so a
// malformed constant fails at start-up.
var wcagTaxonomyGUID = uuid.MustParse("ca34e0e1-5faf-4f55-a989-cdae42a98f18")

// Taxon is one entry of a taxonomy document.
type Taxon struct {
	ID      string
	Name    string
	HelpURI string
}

// Vocabulary is the set of tags recognized as taxonomy members together with
// their index in the taxonomy document.
type Vocabulary struct {
	Indices map[string]int
}

// Contains reports whether tag is a recognized taxonomy member.
func (v Vocabulary) Contains(tag string) bool {
	_, ok := v.Indices[tag]
	return ok
}

// NewVocabulary indexes taxa by position.
func NewVocabulary(taxa []Taxon) Vocabulary {
	vocabulary := Vocabulary{
		Indices: make(map[string]int, len(taxa)),
	}
	for i, taxon := range taxa {
		vocabulary.Indices[taxon.ID] = i
	}
	return vocabulary
}

type wcagCriterion struct {
	tag    string
	number string
	title  string
	slug   string
}

// axe-core tags every rule with the conformance levels and success criteria
// it tests. Order defines the taxon index; append only.
var wcagCriteria = []wcagCriterion{
	{"wcag2a", "", "WCAG 2.0 Level A", ""},
	{"wcag2aa", "", "WCAG 2.0 Level AA", ""},
	{"wcag2aaa", "", "WCAG 2.0 Level AAA", ""},
	{"wcag21a", "", "WCAG 2.1 Level A", ""},
	{"wcag21aa", "", "WCAG 2.1 Level AA", ""},
	{"wcag22aa", "", "WCAG 2.2 Level AA", ""},
	{"wcag111", "1.1.1", "Non-text Content", "non-text-content"},
	{"wcag121", "1.2.1", "Audio-only and Video-only (Prerecorded)", "audio-only-and-video-only-prerecorded"},
	{"wcag122", "1.2.2", "Captions (Prerecorded)", "captions-prerecorded"},
	{"wcag123", "1.2.3", "Audio Description or Media Alternative (Prerecorded)", "audio-description-or-media-alternative-prerecorded"},
	{"wcag124", "1.2.4", "Captions (Live)", "captions-live"},
	{"wcag125", "1.2.5", "Audio Description (Prerecorded)", "audio-description-prerecorded"},
	{"wcag131", "1.3.1", "Info and Relationships", "info-and-relationships"},
	{"wcag132", "1.3.2", "Meaningful Sequence", "meaningful-sequence"},
	{"wcag133", "1.3.3", "Sensory Characteristics", "sensory-characteristics"},
	{"wcag134", "1.3.4", "Orientation", "orientation"},
	{"wcag135", "1.3.5", "Identify Input Purpose", "identify-input-purpose"},
	{"wcag141", "1.4.1", "Use of Color", "use-of-color"},
	{"wcag142", "1.4.2", "Audio Control", "audio-control"},
	{"wcag143", "1.4.3", "Contrast (Minimum)", "contrast-minimum"},
	{"wcag144", "1.4.4", "Resize Text", "resize-text"},
	{"wcag145", "1.4.5", "Images of Text", "images-of-text"},
	{"wcag146", "1.4.6", "Contrast (Enhanced)", "contrast-enhanced"},
	{"wcag1410", "1.4.10", "Reflow", "reflow"},
	{"wcag1411", "1.4.11", "Non-text Contrast", "non-text-contrast"},
	{"wcag1412", "1.4.12", "Text Spacing", "text-spacing"},
	{"wcag1413", "1.4.13", "Content on Hover or Focus", "content-on-hover-or-focus"},
	{"wcag211", "2.1.1", "Keyboard", "keyboard"},
	{"wcag212", "2.1.2", "No Keyboard Trap", "no-keyboard-trap"},
	{"wcag214", "2.1.4", "Character Key Shortcuts", "character-key-shortcuts"},
	{"wcag221", "2.2.1", "Timing Adjustable", "timing-adjustable"},
	{"wcag222", "2.2.2", "Pause, Stop, Hide", "pause-stop-hide"},
	{"wcag224", "2.2.4", "Interruptions", "interruptions"},
	{"wcag231", "2.3.1", "Three Flashes or Below Threshold", "three-flashes-or-below-threshold"},
	{"wcag241", "2.4.1", "Bypass Blocks", "bypass-blocks"},
	{"wcag242", "2.4.2", "Page Titled", "page-titled"},
	{"wcag243", "2.4.3", "Focus Order", "focus-order"},
	{"wcag244", "2.4.4", "Link Purpose (In Context)", "link-purpose-in-context"},
	{"wcag245", "2.4.5", "Multiple Ways", "multiple-ways"},
	{"wcag246", "2.4.6", "Headings and Labels", "headings-and-labels"},
	{"wcag247", "2.4.7", "Focus Visible", "focus-visible"},
	{"wcag249", "2.4.9", "Link Purpose (Link Only)", "link-purpose-link-only"},
	{"wcag251", "2.5.1", "Pointer Gestures", "pointer-gestures"},
	{"wcag252", "2.5.2", "Pointer Cancellation", "pointer-cancellation"},
	{"wcag253", "2.5.3", "Label in Name", "label-in-name"},
	{"wcag254", "2.5.4", "Motion Actuation", "motion-actuation"},
	{"wcag258", "2.5.8", "Target Size (Minimum)", "target-size-minimum"},
	{"wcag311", "3.1.1", "Language of Page", "language-of-page"},
	{"wcag312", "3.1.2", "Language of Parts", "language-of-parts"},
	{"wcag321", "3.2.1", "On Focus", "on-focus"},
	{"wcag322", "3.2.2", "On Input", "on-input"},
	{"wcag331", "3.3.1", "Error Identification", "error-identification"},
	{"wcag332", "3.3.2", "Labels or Instructions", "labels-or-instructions"},
	{"wcag411", "4.1.1", "Parsing", "parsing"},
	{"wcag412", "4.1.2", "Name, Role, Value", "name-role-value"},
	{"wcag413", "4.1.3", "Status Messages", "status-messages"},
}

var (
	wcagTaxa       = buildWcagTaxa()
	wcagVocabulary = NewVocabulary(wcagTaxa)
)

func buildWcagTaxa() []Taxon {
	taxa := make([]Taxon, 0, len(wcagCriteria))
	for _, criterion := range wcagCriteria {
		taxon := Taxon{ID: criterion.tag, Name: criterion.title, HelpURI: wcagConformance}
		if criterion.number != "" {
			taxon.Name = "WCAG " + criterion.number + " " + criterion.title
			taxon.HelpURI = wcagUnderstanding + criterion.slug
		}
		taxa = append(taxa, taxon)
	}
	return taxa
}

// WcagTaxonomyReference identifies the WCAG taxonomy rules relate to.
func WcagTaxonomyReference() ToolComponentReference {
	return ToolComponentReference{
		Name:  wcagTaxonomyName,
		Index: wcagTaxonomyIndex,
		GUID:  wcagTaxonomyGUID.String(),
	}
}

// WcagVocabulary returns the recognized axe WCAG tags and their taxon indices.
func WcagVocabulary() Vocabulary {
	return wcagVocabulary
}

// WcagTaxa returns a copy of the WCAG taxa table.
func WcagTaxa() []Taxon {
	taxa := make([]Taxon, len(wcagTaxa))
	copy(taxa, wcagTaxa)
	return taxa
}
