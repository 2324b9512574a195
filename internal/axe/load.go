package axe

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/scan-io-git/axe-sarif/internal/findings"
	"github.com/scan-io-git/axe-sarif/pkg/shared/errors"
	"github.com/scan-io-git/axe-sarif/pkg/shared/files"
)

// Format names an axe result document shape.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatStandard Format = "standard"
	FormatRaw      Format = "raw"
)

// Formats lists the accepted values of a Format option.
var Formats = []Format{FormatAuto, FormatStandard, FormatRaw}

var utf8BOM = []byte("\ufeff")

// Document is a decoded axe result file of either shape.
type Document struct {
	Format   Format
	Standard *Results
	Raw      RawResults
}

// Findings adapts whichever shape the document holds.
func (d *Document) Findings() findings.Set {
	if d.Format == FormatRaw {
		return d.Raw.Findings()
	}
	return d.Standard.Findings()
}

// DetectFormat inspects the first JSON token: the raw reporter emits an
// array, the standard reporter an object.
func DetectFormat(data []byte) (Format, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return "", errors.NewInputFormatError("", "empty document")
	}
	switch trimmed[0] {
	case '[':
		return FormatRaw, nil
	case '{':
		return FormatStandard, nil
	default:
		return "", errors.NewInputFormatError("", fmt.Sprintf("expected a JSON object or array, found %q", trimmed[0]))
	}
}

// Parse decodes data as the given format, detecting it first when format is
// FormatAuto or empty. source is only used in error messages.
func Parse(data []byte, format Format, source string) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if format == "" || format == FormatAuto {
		detected, err := DetectFormat(data)
		if err != nil {
			if formatErr, ok := err.(*errors.InputFormatError); ok {
				formatErr.Source = source
			}
			return nil, err
		}
		format = detected
	}

	doc := &Document{Format: format}
	switch format {
	case FormatStandard:
		doc.Standard = &Results{}
		if err := json.Unmarshal(data, doc.Standard); err != nil {
			return nil, fmt.Errorf("failed to decode standard axe results from %q: %w", source, err)
		}
	case FormatRaw:
		if err := json.Unmarshal(data, &doc.Raw); err != nil {
			return nil, fmt.Errorf("failed to decode raw axe results from %q: %w", source, err)
		}
	default:
		return nil, errors.NewInputFormatError(source, fmt.Sprintf("unsupported format %q, expected one of %v", format, Formats))
	}
	return doc, nil
}

// Load reads and decodes an axe result file.
func Load(path string, format Format) (*Document, error) {
	data, err := files.ReadValidatedFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, path)
}
