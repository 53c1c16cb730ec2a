package layoutfile

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported layout input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a plain JSON layout document.
	JSON
	// HTML indicates an HTML page with an embedded layout document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect determines the layout format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectData determines the layout format by sniffing file content: a JSON
// object starts with '{', an HTML page with a doctype or tag.
func DetectData(data []byte) Format {
	trimmed := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return Unknown
	case trimmed[0] == '{':
		return JSON
	case trimmed[0] == '<':
		return HTML
	default:
		return Unknown
	}
}
