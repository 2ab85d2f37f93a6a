package extract

// Family groups document types that share a set of type-specific fields.
type Family int

const (
	// FamilyGreyLiterature is the fallback for unknown or missing types.
	FamilyGreyLiterature Family = iota
	FamilyJournal
	FamilyConference
	FamilyBookPart
	FamilyBook
	FamilyThesis
)

// GreyLiteratureLabel names documents without a Type attribute in the type inventory.
const GreyLiteratureLabel = "greylit"

// FamilyOf returns the family for an OPUS4 document type.
func FamilyOf(docType string) Family {
	switch docType {
	case "article", "contributiontoperiodical", "periodicalpart":
		return FamilyJournal
	case "conferenceobject":
		return FamilyConference
	case "bookpart":
		return FamilyBookPart
	case "book":
		return FamilyBook
	case "bachelorthesis", "doctoralthesis", "masterthesis":
		return FamilyThesis
	default:
		return FamilyGreyLiterature
	}
}

func (f Family) String() string {
	switch f {
	case FamilyJournal:
		return "journal"
	case FamilyConference:
		return "conference"
	case FamilyBookPart:
		return "bookpart"
	case FamilyBook:
		return "book"
	case FamilyThesis:
		return "thesis"
	default:
		return "greyliterature"
	}
}
