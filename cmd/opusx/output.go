package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		outputError(code, "%s", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SavedResponse reports a written output file.
type SavedResponse struct {
	Status  string `json:"status"`
	Format  string `json:"format"`
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// TypesResponse lists the document types of an export.
type TypesResponse struct {
	DocTypes []string `json:"doc_types"`
}

// SearchResult is one document matched in a SQLite export.
type SearchResult struct {
	Position int    `json:"position"`
	Type     string `json:"type"`
	Year     string `json:"year"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
}

// savedMessage is the human-readable confirmation after writing a file.
func savedMessage(label, path string) string {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}
	return fmt.Sprintf("%s saved to %s.", label, dir)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// SearchTitleMaxLen limits titles in human search output.
const SearchTitleMaxLen = 70
