package model

// DocumentDateUnknown is emitted when no date could be extracted.
const DocumentDateUnknown = "not found"

// DateMention is a normalized date with the text surrounding its occurrence.
type DateMention struct {
	Date               string `json:"date"`
	SurroundingContext string `json:"surrounding_context"`
}

// NamedReference is a name (person, letter) attributed to a page.
// PageNumber is -1 when the name was not found in any extracted element.
type NamedReference struct {
	Name       string `json:"name"`
	PageNumber int    `json:"page_number"`
}

// ClauseReference is a clause/article/act citation attributed to a page.
type ClauseReference struct {
	Reference  string `json:"reference"`
	Type       string `json:"type"`
	PageNumber int    `json:"page_number"`
}

// References groups the legal cross-references extracted from a document.
type References struct {
	LettersMentioned        []NamedReference  `json:"letters_mentioned"`
	LawsClausesArticlesActs []ClauseReference `json:"laws_clauses_articles_acts"`
	Persons                 []NamedReference  `json:"persons"`
}

// LegalMetadata is the derived legal-attributes artifact for one document.
type LegalMetadata struct {
	DocumentName string        `json:"document_name"`
	DocumentDate string        `json:"document_date"`
	Dates        []DateMention `json:"dates"`
	References   References    `json:"references"`
}

// LegalMetadataArtifact wraps LegalMetadata the way it is persisted as
// <id>_metadata.json.
type LegalMetadataArtifact struct {
	Metadata LegalMetadata `json:"metadata"`
}

// NewLegalMetadata returns an empty metadata record for the named document
// with all slices initialized so the JSON artifact always carries the full
// shape.
func NewLegalMetadata(documentName string) LegalMetadata {
	return LegalMetadata{
		DocumentName: documentName,
		DocumentDate: DocumentDateUnknown,
		Dates:        []DateMention{},
		References: References{
			LettersMentioned:        []NamedReference{},
			LawsClausesArticlesActs: []ClauseReference{},
			Persons:                 []NamedReference{},
		},
	}
}
