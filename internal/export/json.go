package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opus4tools/opusx/internal/record"
)

// WriteJSON writes records as a single JSON array, replacing any existing file.
func WriteJSON(path string, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	return withFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, func(f *os.File) error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	})
}
