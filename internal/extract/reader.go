package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
	defaultRunHeight  = 12.0
)

// Fragment is a single positioned text run as produced by the PDF content
// stream. X/Y locate the run's lower-left corner in bottom-left origin page
// points; H approximates the run height from the font size.
type Fragment struct {
	Text string
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Box returns the fragment's bounding box.
func (f Fragment) Box() BBox {
	return BBox{X0: f.X, Y0: f.Y, X1: f.X + f.W, Y1: f.Y + f.H}
}

// Page holds the raw extraction inputs for one PDF page.
type Page struct {
	Number    int
	Width     float64
	Height    float64
	Fragments []Fragment
}

// readPages loads every page's positioned text runs and image inventory from
// an in-memory PDF.
func readPages(data []byte) ([]Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]Page, 0, reader.NumPage())
	for num := 1; num <= reader.NumPage(); num++ {
		p, err := readPage(reader, num)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", num, err)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func readPage(reader *pdf.Reader, num int) (page Page, err error) {
	// Malformed content streams can panic inside the parser; degrade to an
	// empty page instead of failing the whole document.
	defer func() {
		if r := recover(); r != nil {
			err = nil
			page = Page{Number: num, Width: defaultPageWidth, Height: defaultPageHeight}
		}
	}()

	p := reader.Page(num)
	if p.V.IsNull() {
		return Page{}, fmt.Errorf("invalid page object")
	}

	width, height := pageSize(p)
	page = Page{Number: num, Width: width, Height: height}

	content := p.Content()
	page.Fragments = make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		h := t.FontSize
		if h == 0 {
			h = defaultRunHeight
		}
		page.Fragments = append(page.Fragments, Fragment{
			Text: t.S,
			X:    t.X,
			Y:    t.Y,
			W:    t.W,
			H:    h,
		})
	}
	return page, nil
}

// pageSize reads the MediaBox, falling back to US Letter when absent.
func pageSize(p pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight
	mb := p.V.Key("MediaBox")
	if mb.IsNull() || mb.Len() != 4 {
		return width, height
	}
	x0 := mb.Index(0).Float64()
	y0 := mb.Index(1).Float64()
	x1 := mb.Index(2).Float64()
	y1 := mb.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width, height = x1-x0, y1-y0
	}
	return width, height
}
