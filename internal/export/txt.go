package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opus4tools/opusx/internal/record"
)

// DocumentSeparator starts every record in a text dump.
const DocumentSeparator = "---\n"

// WriteTXT appends a human-readable YAML dump of each record to path.
func WriteTXT(path string, records []record.Record) error {
	return withFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, func(f *os.File) error {
		for i, rec := range records {
			data, err := yaml.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encoding record %d: %w", i+1, err)
			}
			if _, err := f.WriteString(DocumentSeparator); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if _, err := f.Write(data); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		return nil
	})
}
