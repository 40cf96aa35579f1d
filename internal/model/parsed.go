package model

import "strings"

// Element types produced by the extraction engine.
const (
	ElementParagraph = "paragraph"
	ElementTable     = "table"
	ElementFigure    = "figure"
)

// ElementMetadata carries per-element extras. Paragraphs get a bounding box
// as [x0, top, x1, bottom] in page points with a top-left origin; tables and
// figures keep it empty.
type ElementMetadata struct {
	BBox []float64 `json:"bbox,omitempty"`
}

// Element is one piece of extracted page content. Fields that are specific
// to a single element type are omitted from JSON for the others.
type Element struct {
	Type          string          `json:"type"`
	Text          string          `json:"text,omitempty"`
	HTML          string          `json:"html,omitempty"`
	ImageFilename string          `json:"image_filename,omitempty"`
	Caption       string          `json:"caption,omitempty"`
	PageNumber    int             `json:"page_number"`
	Metadata      ElementMetadata `json:"metadata"`
}

// ParsedDocument is the structural extraction artifact persisted as
// <id>_parsed.json.
type ParsedDocument struct {
	Content []Element `json:"content"`
}

// PageOf returns the first page number whose element text contains the
// given snippet, or -1 when no element matches.
func (p *ParsedDocument) PageOf(snippet string) int {
	if snippet == "" {
		return -1
	}
	for i := range p.Content {
		if p.Content[i].Text != "" && strings.Contains(p.Content[i].Text, snippet) {
			return p.Content[i].PageNumber
		}
	}
	return -1
}
