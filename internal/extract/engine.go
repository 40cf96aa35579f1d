package extract

import (
	"fmt"

	"lexparse/internal/model"
)

// Engine turns PDF bytes into the structural element artifact: one paragraph
// element per extracted word (with its bounding box), one table element per
// detected grid, and one figure element per page.
type Engine struct {
	validator *Validator
}

// NewEngine creates an extraction engine enforcing the given file size
// limit.
func NewEngine(maxFileSize int64) *Engine {
	return &Engine{validator: NewValidator(maxFileSize)}
}

// Validate exposes the engine's PDF validation, returning the page count.
func (e *Engine) Validate(data []byte) (int, error) {
	return e.validator.Validate(data)
}

// Parse extracts the structural content of every page.
func (e *Engine) Parse(data []byte) (*model.ParsedDocument, error) {
	pages, err := readPages(data)
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}

	doc := &model.ParsedDocument{Content: []model.Element{}}
	for _, page := range pages {
		doc.Content = append(doc.Content, extractPage(page)...)
	}
	return doc, nil
}

// extractPage produces the element stream for one page: word-level
// paragraph elements first, then tables, then the page's figure stub.
// Every word gets a paragraph element, including words inside detected
// tables; the table element repeats that text in grid form.
func extractPage(page Page) []model.Element {
	lines := buildLines(page.Fragments)
	tables := detectTables(lines)

	var elements []model.Element
	for _, ln := range lines {
		for _, w := range ln.Words {
			elements = append(elements, model.Element{
				Type:       model.ElementParagraph,
				Text:       w.Text,
				PageNumber: page.Number,
				Metadata: model.ElementMetadata{
					BBox: w.BBox.PlumberBox(page.Height),
				},
			})
		}
	}

	for _, t := range tables {
		elements = append(elements, model.Element{
			Type:       model.ElementTable,
			Text:       t.Text(),
			HTML:       t.HTML(),
			PageNumber: page.Number,
		})
	}

	elements = append(elements, model.Element{
		Type:          model.ElementFigure,
		ImageFilename: figureFilename(page.Number),
		Caption:       captionFromText(pageText(lines)),
		PageNumber:    page.Number,
	})

	return elements
}
