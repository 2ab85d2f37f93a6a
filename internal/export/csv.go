package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/opus4tools/opusx/internal/record"
)

// WriteCSV appends records to the CSV file at path.
//
// The header is the union of keys across records and is written only when the
// file is empty. Rows fill absent keys with "". Existing rows are neither
// deduplicated nor checked against the new header.
func WriteCSV(path string, records []record.Record) error {
	header := Header(records)

	return withFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, func(f *os.File) error {
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		w := csv.NewWriter(f)
		w.UseCRLF = true

		if info.Size() == 0 && len(header) > 0 {
			if err := w.Write(header); err != nil {
				return fmt.Errorf("writing header: %w", err)
			}
		}

		row := make([]string, len(header))
		for i, rec := range records {
			for j, k := range header {
				row[j] = rec.Value(k)
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		return nil
	})
}
