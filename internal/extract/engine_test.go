package extract

import (
	"testing"

	"lexparse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPage(t *testing.T) {
	page := Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Fragments: []Fragment{
			// A one-word paragraph line.
			frag("Introduction", 50, 700, 60, 10),
			// Two aligned rows forming a table.
			frag("Name", 50, 680, 30, 10),
			frag("Value", 150, 680, 30, 10),
			frag("Alpha", 50, 660, 30, 10),
			frag("1", 150, 660, 10, 10),
			// A caption line far enough below the table to stand alone.
			frag("Figure", 50, 600, 30, 10),
			frag("1:", 85, 600, 10, 10),
			frag("Site", 110, 600, 20, 10),
			frag("overview", 140, 600, 40, 10),
		},
	}

	elements := extractPage(page)

	var paragraphs, tables, figures []model.Element
	for _, el := range elements {
		switch el.Type {
		case model.ElementParagraph:
			paragraphs = append(paragraphs, el)
		case model.ElementTable:
			tables = append(tables, el)
		case model.ElementFigure:
			figures = append(figures, el)
		}
	}

	// Every word is a paragraph element, table cells included; the table
	// element repeats the cell text in grid form.
	require.Len(t, paragraphs, 9)
	assert.Equal(t, "Introduction", paragraphs[0].Text)
	assert.Equal(t, "Name", paragraphs[1].Text)
	assert.Equal(t, "Figure", paragraphs[5].Text)
	assert.Equal(t, 1, paragraphs[0].PageNumber)

	// Word boxes use the top-left-origin [x0, top, x1, bottom] convention.
	assert.Equal(t, []float64{50, 82, 110, 92}, paragraphs[0].Metadata.BBox)

	require.Len(t, tables, 1)
	assert.Equal(t, "Name | Value\nAlpha | 1", tables[0].Text)
	assert.Contains(t, tables[0].HTML, "<table><tr><td>Name</td><td>Value</td></tr>")

	require.Len(t, figures, 1)
	assert.Equal(t, "page_1.png", figures[0].ImageFilename)
	assert.Equal(t, "Figure 1: Site overview", figures[0].Caption)
}

func TestExtractPageEmpty(t *testing.T) {
	elements := extractPage(Page{Number: 3, Width: 612, Height: 792})

	// Even an empty page still carries its figure stub.
	assert.Len(t, elements, 1)
	assert.Equal(t, model.ElementFigure, elements[0].Type)
	assert.Equal(t, "page_3.png", elements[0].ImageFilename)
	assert.Empty(t, elements[0].Caption)
}

func TestEngineParseRejectsGarbage(t *testing.T) {
	engine := NewEngine(1 << 20)

	_, err := engine.Parse([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
