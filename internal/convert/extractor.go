// Package convert selects documents from an OPUS4 export and writes them as
// CSV, JSON, plain text, BibTeX or SQLite.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/opus4tools/opusx/internal/export"
	"github.com/opus4tools/opusx/internal/extract"
	"github.com/opus4tools/opusx/internal/opus"
	"github.com/opus4tools/opusx/internal/record"
	"github.com/opus4tools/opusx/internal/storage"
)

// Extractor holds one loaded export for the lifetime of a conversion.
type Extractor struct {
	Source *opus.Source
	Dir    string // Directory output files are written to

	assembler extract.Assembler
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDir writes output files into dir instead of the working directory.
func WithDir(dir string) Option {
	return func(e *Extractor) {
		e.Dir = dir
	}
}

// WithLocation sets the time zone for thesis acceptance dates.
func WithLocation(loc *time.Location) Option {
	return func(e *Extractor) {
		e.assembler.Location = loc
	}
}

// Open loads the export at path. An empty path picks the first XML file in
// the working directory.
func Open(path string, opts ...Option) (*Extractor, error) {
	if path == "" {
		found, err := opus.FindSource(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	src, err := opus.Load(path)
	if err != nil {
		return nil, err
	}
	return New(src, opts...), nil
}

// New wraps an already loaded source.
func New(src *opus.Source, opts ...Option) *Extractor {
	e := &Extractor{Source: src, Dir: "."}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DocTypes returns the distinct document types in the export, sorted.
// Documents without a type are listed as "greylit".
func (e *Extractor) DocTypes() []string {
	set := treeset.NewWithStringComparator()
	for _, doc := range e.Source.Documents {
		set.Add(extract.TypeLabel(doc))
	}

	types := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		types = append(types, v.(string))
	}
	return types
}

// Records builds one record per selected document, in source order.
// A nil docTypes selects every document; otherwise a document is selected
// when its type label is listed.
func (e *Extractor) Records(docTypes []string) []record.Record {
	var wanted map[string]bool
	if docTypes != nil {
		wanted = make(map[string]bool, len(docTypes))
		for _, t := range docTypes {
			wanted[t] = true
		}
	}

	records := make([]record.Record, 0, len(e.Source.Documents))
	for _, doc := range e.Source.Documents {
		if wanted != nil && !wanted[extract.TypeLabel(doc)] {
			continue
		}
		records = append(records, e.assembler.Assemble(doc, extract.DocType(doc)))
	}
	return records
}

// Convert writes the selected documents in format to <name><ext> inside Dir
// and returns the written path. An empty name is replaced by a random UUID.
func (e *Extractor) Convert(format Format, name string, docTypes []string) (string, error) {
	return e.Write(format, name, e.Records(docTypes))
}

// Write is Convert for records the caller has already built.
func (e *Extractor) Write(format Format, name string, records []record.Record) (string, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("%w: file name %q must not contain a path separator", ErrInvalidArgument, name)
	}
	path := filepath.Join(e.Dir, name+format.Extension())

	var err error
	switch format {
	case FormatCSV:
		err = export.WriteCSV(path, records)
	case FormatJSON:
		err = export.WriteJSON(path, records)
	case FormatTXT:
		err = export.WriteTXT(path, records)
	case FormatBibTeX:
		err = export.WriteBibTeX(path, records)
	case FormatSQLite:
		err = storage.WriteSQLite(path, records)
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	log.Debug().Str("format", string(format)).Str("path", path).Int("records", len(records)).Msg("saved")
	return path, nil
}

// ToCSV appends the selected documents to <name>.csv.
func (e *Extractor) ToCSV(name string, docTypes []string) (string, error) {
	return e.Convert(FormatCSV, name, docTypes)
}

// ToJSON writes the selected documents to <name>.json, replacing it.
func (e *Extractor) ToJSON(name string, docTypes []string) (string, error) {
	return e.Convert(FormatJSON, name, docTypes)
}

// ToTXT appends a readable dump of the selected documents to <name>.txt.
func (e *Extractor) ToTXT(name string, docTypes []string) (string, error) {
	return e.Convert(FormatTXT, name, docTypes)
}

// Info summarizes a loaded export.
type Info struct {
	Path         string   `json:"path"`
	Modified     string   `json:"modified"`
	Publications int      `json:"publications"`
	DocTypes     []string `json:"doc_types"`
}

// Info returns a summary of the loaded export.
func (e *Extractor) Info() Info {
	return Info{
		Path:         e.Source.Path,
		Modified:     e.Source.ModTime.Format("2006-01-02"),
		Publications: len(e.Source.Documents),
		DocTypes:     e.DocTypes(),
	}
}

func (e *Extractor) String() string {
	info := e.Info()
	return fmt.Sprintf("OPUS XML file:           %s\n"+
		"Last file modification:  %s\n"+
		"Number of publications:  %d\n",
		info.Path, info.Modified, info.Publications)
}
