package convert

import (
	"fmt"
	"strings"
)

// Format selects an output serialization.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatTXT    Format = "txt"
	FormatBibTeX Format = "bibtex"
	FormatSQLite Format = "sqlite"
)

// PromptFormats are the formats offered by the interactive prompt.
var PromptFormats = []Format{FormatCSV, FormatJSON, FormatTXT}

// AllFormats lists every supported format.
var AllFormats = []Format{FormatCSV, FormatJSON, FormatTXT, FormatBibTeX, FormatSQLite}

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q (valid: %s)", ErrInvalidArgument, s, formatList(AllFormats))
}

// ParsePromptFormat is ParseFormat restricted to PromptFormats.
func ParsePromptFormat(s string) (Format, error) {
	for _, f := range PromptFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q (valid: %s)", ErrInvalidArgument, s, formatList(PromptFormats))
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatBibTeX:
		return ".bib"
	case FormatSQLite:
		return ".db"
	default:
		return "." + string(f)
	}
}

// Label returns the upper-case name used in status messages.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

func formatList(formats []Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
