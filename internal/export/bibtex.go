package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opus4tools/opusx/internal/extract"
	"github.com/opus4tools/opusx/internal/record"
)

// bibtexFields maps record fields to BibTeX field names, in output order.
var bibtexFields = []struct {
	field string
	name  string
}{
	{"year", "year"},
	{"parent_title", "journal"},
	{"collection_title", "booktitle"},
	{"volume", "volume"},
	{"issue", "number"},
	{"publisher", "publisher"},
	{"place", "address"},
	{"contributingcorporation", "institution"},
	{"doi", "doi"},
	{"issn", "issn"},
	{"isbn", "isbn"},
}

// ToBibTeX converts a record to a BibTeX entry keyed by key.
func ToBibTeX(rec record.Record, key string) string {
	entryType := determineEntryType(rec.Value(extract.FieldType))
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	if authors := rec.Value(extract.FieldAuthors); authors != "" {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(rec.Value(extract.FieldTitle))))

	for _, f := range bibtexFields {
		v := rec.Value(f.field)
		if v == "" {
			continue
		}
		name := f.name
		if name == "journal" && entryType == "inproceedings" {
			name = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escapeLatex(v)))
	}

	if first := rec.Value("page_first"); first != "" {
		pages := first
		if last := rec.Value("page_last"); last != "" {
			pages += "--" + last
		}
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", pages))
	}

	if referees := rec.Value("referees"); referees != "" {
		b.WriteString(fmt.Sprintf("  note = {Referees: %s},\n", escapeLatex(strings.ReplaceAll(referees, extract.PersonSeparator, ", "))))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts records to BibTeX, keying each entry by its position.
func ToBibTeXList(records []record.Record) string {
	var entries []string
	for i, rec := range records {
		entries = append(entries, ToBibTeX(rec, "opus"+strconv.Itoa(i+1)))
	}
	return strings.Join(entries, "\n")
}

// WriteBibTeX writes records to a BibTeX file, replacing any existing file.
func WriteBibTeX(path string, records []record.Record) error {
	return withFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, func(f *os.File) error {
		if _, err := f.WriteString(ToBibTeXList(records)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	})
}

// determineEntryType returns the BibTeX entry type for an OPUS4 document type.
func determineEntryType(docType string) string {
	switch extract.FamilyOf(docType) {
	case extract.FamilyJournal:
		return "article"
	case extract.FamilyConference:
		return "inproceedings"
	case extract.FamilyBookPart:
		return "incollection"
	case extract.FamilyBook:
		return "book"
	case extract.FamilyThesis:
		if docType == "doctoralthesis" {
			return "phdthesis"
		}
		return "mastersthesis"
	default:
		return "misc"
	}
}

// formatAuthors converts "First Last|First Last" to "Last, First and Last, First".
func formatAuthors(authors string) string {
	var formatted []string
	for _, a := range strings.Split(authors, extract.PersonSeparator) {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if i := strings.LastIndex(a, " "); i > 0 {
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(a[i+1:]), escapeLatex(a[:i])))
		} else {
			formatted = append(formatted, escapeLatex(a))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
