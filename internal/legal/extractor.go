// Package legal derives document-level legal metadata (dates, persons,
// letter and clause/article/act references) from extracted PDF content.
// All detection is deterministic and rule-based.
package legal

import (
	"strings"

	"lexparse/internal/model"
)

// Extractor produces the legal metadata artifact for a parsed document.
type Extractor struct{}

// NewExtractor creates a metadata extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans the parsed document's text and assembles the metadata
// record. Page attribution searches the extracted elements for each found
// value and reports -1 when the value does not occur verbatim in any
// element.
func (e *Extractor) Extract(parsed *model.ParsedDocument, documentName string) model.LegalMetadata {
	meta := model.NewLegalMetadata(documentName)
	if parsed == nil {
		return meta
	}

	text := joinedText(parsed)

	meta.Dates = extractDates(text)
	if len(meta.Dates) > 0 {
		meta.DocumentDate = meta.Dates[0].Date
	}

	for _, name := range extractPersons(text) {
		meta.References.Persons = append(meta.References.Persons, model.NamedReference{
			Name:       name,
			PageNumber: parsed.PageOf(name),
		})
	}

	for _, letter := range extractLetters(text) {
		meta.References.LettersMentioned = append(meta.References.LettersMentioned, model.NamedReference{
			Name:       letter,
			PageNumber: parsed.PageOf(letter),
		})
	}

	for _, ref := range extractClauses(text) {
		meta.References.LawsClausesArticlesActs = append(meta.References.LawsClausesArticlesActs, model.ClauseReference{
			Reference:  ref.reference,
			Type:       ref.kind,
			PageNumber: parsed.PageOf(ref.reference),
		})
	}

	return meta
}

// joinedText concatenates every element's text with single spaces, in
// extraction order.
func joinedText(parsed *model.ParsedDocument) string {
	var parts []string
	for i := range parsed.Content {
		if parsed.Content[i].Text != "" {
			parts = append(parts, parsed.Content[i].Text)
		}
	}
	return strings.Join(parts, " ")
}
