package extract

import "math"

// BBox is an axis-aligned box in page points with a bottom-left origin,
// matching the coordinate space of the PDF text runs.
type BBox struct {
	X0 float64 // left
	Y0 float64 // bottom
	X1 float64 // right
	Y1 float64 // top
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Union returns the smallest box covering both boxes.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// PlumberBox converts the box to the [x0, top, x1, bottom] convention with a
// top-left origin used in the persisted artifact. pageHeight is the page's
// MediaBox height.
func (b BBox) PlumberBox(pageHeight float64) []float64 {
	return []float64{b.X0, pageHeight - b.Y1, b.X1, pageHeight - b.Y0}
}
