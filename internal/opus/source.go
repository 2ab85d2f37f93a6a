package opus

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

// DocumentTag is the element name of a single bibliographic record in an OPUS4 export.
const DocumentTag = "Opus_Document"

// SourcePattern matches candidate export files when no path is given.
const SourcePattern = "*.xml"

// Source is a parsed OPUS4 export held in memory.
type Source struct {
	Path      string    // File the documents were read from
	ModTime   time.Time // Last modification time of Path
	Documents []Node    // Opus_Document elements in source order
}

// FindSource returns the first XML file in dir.
// Returns ErrNoSourceFound if dir contains none.
func FindSource(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, SourcePattern))
	if err != nil {
		return "", fmt.Errorf("searching for XML files: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoSourceFound, dir)
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		log.Debug().Strs("candidates", matches).Str("chosen", matches[0]).Msg("multiple XML files found")
	}
	return matches[0], nil
}

// Load reads and parses the export at path.
func Load(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	docs, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("documents", len(docs)).Msg("loaded OPUS export")

	return &Source{
		Path:      path,
		ModTime:   info.ModTime(),
		Documents: docs,
	}, nil
}

// Parse reads XML from r and returns every Opus_Document element in document order.
func Parse(r io.Reader) ([]Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := checkWellFormed(doc); err != nil {
		return nil, err
	}

	found := doc.FindElements("//" + DocumentTag)
	docs := make([]Node, len(found))
	for i, el := range found {
		docs[i] = Wrap(el)
	}
	return docs, nil
}

// checkWellFormed rejects documents the tokenizer accepts but XML does not:
// no root element, several root elements, or text outside the root.
func checkWellFormed(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return fmt.Errorf("%w: text outside the root element", ErrParse)
			}
		}
	}
	switch {
	case roots == 0:
		return fmt.Errorf("%w: no root element", ErrParse)
	case roots > 1:
		return fmt.Errorf("%w: %d root elements", ErrParse, roots)
	}
	return nil
}
