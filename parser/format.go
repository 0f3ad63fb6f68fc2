package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat represents the serialization format of an OpenAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source is YAML
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source is JSON
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates no format could be declared. GuessFormat
	// never returns it; the path and content-type hints do.
	SourceFormatUnknown SourceFormat = "unknown"
)

// String implements fmt.Stringer.
func (f SourceFormat) String() string {
	return string(f)
}

// ParseSourceFormat maps a user-supplied name ("json", "yaml", "yml") to a
// SourceFormat. Matching is case-insensitive.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return SourceFormatJSON, nil
	case "yaml", "yml":
		return SourceFormatYAML, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("parser: unknown source format %q (want json or yaml)", s)
	}
}

// GuessFormat picks the codec to try first for content.
//
// After trimming surrounding whitespace, text starting with '{' or '['
// is JSON. Anything else is YAML: text containing ':' or '-' looks like a
// mapping or sequence, and everything left over (including empty input)
// falls back to YAML because JSON is a subset of YAML 1.2 and the YAML
// codec gives the better diagnostic for prose.
//
// The guess only orders decode attempts. It never rejects input.
func GuessFormat(content []byte) SourceFormat {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	if bytes.ContainsAny(trimmed, ":-") {
		return SourceFormatYAML
	}
	return SourceFormatYAML
}

// GuessFormatString is GuessFormat for string content.
func GuessFormatString(content string) SourceFormat {
	return GuessFormat([]byte(content))
}

// FormatFromPath returns the format declared by a file extension, or
// SourceFormatUnknown.
func FormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// FormatFromContentType returns the format declared by a Content-Type header
// value, or SourceFormatUnknown. Parameters such as charset are ignored.
func FormatFromContentType(contentType string) SourceFormat {
	ct := strings.ToLower(contentType)
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	ct = strings.TrimSpace(ct)

	switch ct {
	case "application/json", "text/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	// application/vnd.oai.openapi+json and friends
	switch {
	case strings.HasSuffix(ct, "+json"):
		return SourceFormatJSON
	case strings.HasSuffix(ct, "+yaml"):
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
