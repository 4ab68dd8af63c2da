package document

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies the serialization of a document.
type Format string

const (
	// FormatJSON indicates JSON
	FormatJSON Format = "json"
	// FormatYAML indicates YAML
	FormatYAML Format = "yaml"
	// FormatUnknown indicates the format could not be determined
	FormatUnknown Format = "unknown"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatUnknown, false
	}
}

// DetectFormatFromPath detects the format from a file extension.
func DetectFormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent guesses the format from the first non-blank byte.
// JSON documents start with '{' or '['; anything else is treated as YAML.
func DetectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}
