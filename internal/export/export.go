// Package export writes records to CSV, JSON and plain-text files.
package export

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/opus4tools/opusx/internal/record"
)

// Header returns the union of record keys in order of first appearance.
func Header(records []record.Record) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var header []string
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if seen.Add(k) {
				header = append(header, k)
			}
		}
	}
	return header
}

// withFile opens path with flag, runs fn and always closes the file.
// A close error is returned only when fn succeeded.
func withFile(path string, flag int, fn func(f *os.File) error) (err error) {
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return fn(f)
}
