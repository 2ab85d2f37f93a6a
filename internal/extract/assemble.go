package extract

import (
	"time"

	"github.com/opus4tools/opusx/internal/opus"
	"github.com/opus4tools/opusx/internal/record"
)

// Basic field names shared by every record.
const (
	FieldType    = "type"
	FieldYear    = "year"
	FieldAuthors = "author(s)"
	FieldTitle   = "title"
)

// Assembler builds one record per document.
type Assembler struct {
	// Location sets the time zone for thesis acceptance dates. Nil means time.Local.
	Location *time.Location
}

// DocType returns the raw Type attribute, "" when absent.
func DocType(doc opus.Node) string {
	return doc.Attr("Type", "")
}

// TypeLabel returns the Type attribute, or GreyLiteratureLabel when absent.
func TypeLabel(doc opus.Node) string {
	return doc.Attr("Type", GreyLiteratureLabel)
}

// BasicFields returns the fields every document type shares.
func BasicFields(doc opus.Node, docType string) record.Record {
	return record.FromPairs(
		FieldType, docType,
		FieldYear, PublicationYear(doc),
		FieldAuthors, Persons(doc, RoleAuthor),
		FieldTitle, MainTitle(doc),
	)
}

// TypeFields returns the type-specific fields for the document's family.
func (a Assembler) TypeFields(doc opus.Node, docType string) record.Record {
	switch FamilyOf(docType) {
	case FamilyJournal:
		return journalFields(doc)
	case FamilyConference:
		return conferenceFields(doc)
	case FamilyBookPart:
		return bookPartFields(doc)
	case FamilyBook:
		return bookFields(doc)
	case FamilyThesis:
		return thesisFields(doc, a.Location)
	default:
		return greyLiteratureFields(doc)
	}
}

// Assemble merges basic, type-specific, enrichment and collection fields, in
// that order, into one record. Later sources win on key collision.
func (a Assembler) Assemble(doc opus.Node, docType string) record.Record {
	rec := BasicFields(doc, docType)
	rec.Merge(a.TypeFields(doc, docType))
	rec.Merge(Enrichments(doc))
	rec.Merge(Collections(doc))
	return rec
}
