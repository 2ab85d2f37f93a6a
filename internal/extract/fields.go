// Package extract turns OPUS4 document nodes into flat records.
//
// Every extractor returns an empty string for missing data so the set of
// fields in a record depends only on the document's type family.
package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/opus4tools/opusx/internal/opus"
	"github.com/opus4tools/opusx/internal/record"
)

// Person roles used in Person<Role> element names.
const (
	RoleAuthor  = "author"
	RoleReferee = "referee"
	RoleAdvisor = "advisor"
)

// Identifier types.
const (
	IdentifierDOI  = "doi"
	IdentifierISSN = "issn"
	IdentifierISBN = "isbn"
)

// PersonSeparator joins multiple persons in one field.
const PersonSeparator = "|"

// EnrichmentPrefix prefixes every enrichment field name.
const EnrichmentPrefix = "enrichment_"

// Collection roles from the Kerndatensatz-Forschung classification that are
// copied into records.
const (
	CollectionPublicationType = "kds_type_publicationtype"
	CollectionDocumentType    = "kds_type_documenttype"
)

// CollectionRoles is the allow-list of collection roles.
var CollectionRoles = []string{CollectionPublicationType, CollectionDocumentType}

// PersonTag returns the element name for a person role, e.g. "PersonAuthor".
func PersonTag(role string) string {
	return "Person" + cases.Title(language.Und).String(role)
}

// Persons returns all persons with the given role as "First Last", joined by "|".
func Persons(doc opus.Node, role string) string {
	persons := doc.FindChildren(PersonTag(role))
	names := make([]string, len(persons))
	for i, p := range persons {
		names[i] = p.Attr("FirstName", "") + " " + p.Attr("LastName", "")
	}
	return strings.Join(names, PersonSeparator)
}

// PublicationYear prefers the PublishedYear attribute and falls back to the
// Year of a PublishedDate element.
func PublicationYear(doc opus.Node) string {
	if year := doc.Attr("PublishedYear", ""); year != "" {
		return year
	}
	date, ok := doc.FindChild("PublishedDate")
	if !ok {
		return ""
	}
	return date.Attr("Year", "")
}

// MainTitle returns the Value of the first TitleMain element.
func MainTitle(doc opus.Node) string {
	return childAttr(doc, "TitleMain", "Value")
}

// ParentTitle returns the Value of the TitleParent element.
func ParentTitle(doc opus.Node) string {
	return childAttr(doc, "TitleParent", "Value")
}

// Identifier returns the Value of the first Identifier whose Type equals typ.
func Identifier(doc opus.Node, typ string) string {
	for _, id := range doc.FindChildren("Identifier") {
		if id.HasAttr("Type") && id.Attr("Type", "") == typ {
			return id.Attr("Value", "")
		}
	}
	return ""
}

// Enrichments maps every Enrichment element to enrichment_<lowercased KeyName>.
func Enrichments(doc opus.Node) record.Record {
	lower := cases.Lower(language.Und)
	fields := record.New()
	for _, e := range doc.FindChildren("Enrichment") {
		key := EnrichmentPrefix + lower.String(e.Attr("KeyName", ""))
		fields.Set(key, e.Attr("Value", ""))
	}
	return fields
}

// Collections maps allow-listed collection roles to the collection Name.
func Collections(doc opus.Node) record.Record {
	fields := record.New()
	for _, c := range doc.FindChildren("Collection") {
		role := c.Attr("RoleName", "")
		if !isCollectionRole(role) {
			continue
		}
		fields.Set(role, c.Attr("Name", ""))
	}
	return fields
}

func isCollectionRole(role string) bool {
	for _, allowed := range CollectionRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// childAttr returns attr of the first descendant tag, or "" if either is missing.
func childAttr(doc opus.Node, tag, attr string) string {
	child, ok := doc.FindChild(tag)
	if !ok {
		return ""
	}
	return child.Attr(attr, "")
}
