package sarif

import (
	"encoding/json"
	"io"
)

const (
	Version200 = "2.0.0"
	Schema200  = "http://json.schemastore.org/sarif-2.0.0"

	// Version210 is the version ToSarif210 writes.
	Version210 = "2.1.0"
)

// Log is a SARIF 2.0.0 log document.
type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []*Run `json:"runs"`
}

// Run is one analysis run: tool metadata, the rule catalog and the results.
type Run struct {
	Tool        Tool             `json:"tool"`
	Invocations []*Invocation    `json:"invocations,omitempty"`
	Files       map[string]*File `json:"files,omitempty"`
	Results     []*Result        `json:"results"`
	Resources   *Resources       `json:"resources"`
}

type Tool struct {
	Name            string     `json:"name"`
	FullName        string     `json:"fullName,omitempty"`
	SemanticVersion string     `json:"semanticVersion,omitempty"`
	Version         string     `json:"version,omitempty"`
	Properties      Properties `json:"properties,omitempty"`
}

type Invocation struct {
	CommandLine string     `json:"commandLine,omitempty"`
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	Properties  Properties `json:"properties,omitempty"`
}

// File describes an analysed artifact. Runs produced here describe the
// scanned page.
type File struct {
	MimeType   string     `json:"mimeType,omitempty"`
	Properties Properties `json:"properties,omitempty"`
}

type Resources struct {
	Rules []*Rule `json:"rules"`
}

// Rule is one entry of the rule catalog.
type Rule struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	FullDescription *Message        `json:"fullDescription"`
	HelpURI         string          `json:"helpUri"`
	Relationships   []*Relationship `json:"relationships"`
}

// Relationship links a rule to an entry of an external taxonomy.
type Relationship struct {
	Target ReportingDescriptorReference `json:"target"`
	Kinds  []string                     `json:"kinds"`
}

type ReportingDescriptorReference struct {
	ID            string                 `json:"id"`
	Index         int                    `json:"index"`
	ToolComponent ToolComponentReference `json:"toolComponent"`
}

// ToolComponentReference identifies a tool component such as a taxonomy.
type ToolComponentReference struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	GUID  string `json:"guid"`
}

type Message struct {
	Text     string `json:"text"`
	RichText string `json:"richText,omitempty"`
}

type Result struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             Message           `json:"message"`
	Locations           []*Location       `json:"locations,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type Location struct {
	PhysicalLocation          *PhysicalLocation `json:"physicalLocation,omitempty"`
	FullyQualifiedLogicalName string            `json:"fullyQualifiedLogicalName,omitempty"`
}

type PhysicalLocation struct {
	FileLocation FileLocation `json:"fileLocation"`
	Region       *Region      `json:"region,omitempty"`
}

type FileLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	Snippet *Snippet `json:"snippet,omitempty"`
}

type Snippet struct {
	Text string `json:"text"`
}

type Properties map[string]interface{}

// Write serialises the log as JSON, indented when pretty is set.
func (l *Log) Write(w io.Writer, pretty bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(l)
}
