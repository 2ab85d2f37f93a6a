package opus

import "errors"

// Common errors returned by the loader.
var (
	// ErrNoSourceFound indicates no XML file was given and none exists in the directory.
	ErrNoSourceFound = errors.New("no XML source file found")

	// ErrParse indicates the XML content could not be parsed.
	ErrParse = errors.New("parsing XML")
)
