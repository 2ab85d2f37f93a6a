package extract

import (
	"strconv"
	"time"

	"github.com/opus4tools/opusx/internal/opus"
	"github.com/opus4tools/opusx/internal/record"
)

// AcceptedDateLayout formats the thesis acceptance date.
const AcceptedDateLayout = "2006-01-02"

func journalFields(doc opus.Node) record.Record {
	return record.FromPairs(
		"parent_title", ParentTitle(doc),
		"issue", doc.Attr("Issue", ""),
		"volume", doc.Attr("Volume", ""),
		"page_first", doc.Attr("PageFirst", ""),
		"page_last", doc.Attr("PageLast", ""),
		"doi", Identifier(doc, IdentifierDOI),
		"issn", Identifier(doc, IdentifierISSN),
	)
}

func conferenceFields(doc opus.Node) record.Record {
	return record.FromPairs(
		"parent_title", ParentTitle(doc),
		"doi", Identifier(doc, IdentifierDOI),
	)
}

func bookPartFields(doc opus.Node) record.Record {
	return record.FromPairs(
		"collection_title", ParentTitle(doc),
		"page_first", doc.Attr("PageFirst", ""),
		"page_last", doc.Attr("PageLast", ""),
		"doi", Identifier(doc, IdentifierDOI),
	)
}

func bookFields(doc opus.Node) record.Record {
	return record.FromPairs(
		"publisher", doc.Attr("PublisherName", ""),
		"place", doc.Attr("PublisherPlace", ""),
		"isbn", Identifier(doc, IdentifierISBN),
	)
}

func thesisFields(doc opus.Node, loc *time.Location) record.Record {
	return record.FromPairs(
		"accepted", AcceptedDate(doc, loc),
		"doi", Identifier(doc, IdentifierDOI),
		"referees", Persons(doc, RoleReferee),
		"advisors", Persons(doc, RoleAdvisor),
	)
}

// greyLiteratureFields reads CreatingCorporation as a plain attribute. Exports
// seen so far never fill it, so the field is usually empty.
func greyLiteratureFields(doc opus.Node) record.Record {
	return record.FromPairs(
		"contributingcorporation", doc.Attr("ContributingCorporation", ""),
		"creatingcorporation", doc.Attr("CreatingCorporation", ""),
		"isbn", Identifier(doc, IdentifierISBN),
		"doi", Identifier(doc, IdentifierDOI),
	)
}

// AcceptedDate converts ThesisDateAccepted/@UnixTimestamp to YYYY-MM-DD in loc.
// The calendar day depends on loc; a nil loc means time.Local.
// Returns "" when the element is missing or the timestamp is not an integer.
func AcceptedDate(doc opus.Node, loc *time.Location) string {
	accepted, ok := doc.FindChild("ThesisDateAccepted")
	if !ok {
		return ""
	}
	secs, err := strconv.ParseInt(accepted.Attr("UnixTimestamp", ""), 10, 64)
	if err != nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(secs, 0).In(loc).Format(AcceptedDateLayout)
}
