package extract

import (
	"sort"
	"strings"
)

const (
	// Fragments whose baselines differ by less than this share a line.
	lineTolerance = 2.0
	// Horizontal gap, as a multiple of the run height, beyond which two
	// runs on the same line belong to different words.
	wordGapFactor = 0.25
	minWordGap    = 1.0
)

// Word is a whitespace-delimited token assembled from adjacent text runs.
type Word struct {
	Text string
	BBox BBox
}

// Line is a left-to-right sequence of words sharing a baseline.
type Line struct {
	Words []Word
	BBox  BBox
	Y     float64
}

// Text joins the line's words with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// buildLines clusters a page's fragments into baseline-ordered lines of
// words, top of page first.
func buildLines(frags []Fragment) []Line {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	var current []Fragment
	for _, f := range sorted {
		if len(current) == 0 || current[0].Y-f.Y <= lineTolerance {
			current = append(current, f)
			continue
		}
		lines = append(lines, assembleLine(current))
		current = []Fragment{f}
	}
	if len(current) > 0 {
		lines = append(lines, assembleLine(current))
	}
	return lines
}

// assembleLine merges a baseline cluster into words, splitting on gaps wider
// than a fraction of the run height.
func assembleLine(frags []Fragment) Line {
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

	line := Line{Y: frags[0].Y, BBox: frags[0].Box()}
	var sb strings.Builder
	wordBox := frags[0].Box()
	sb.WriteString(frags[0].Text)

	flush := func() {
		// Runs occasionally carry embedded spaces; each whitespace-separated
		// piece becomes its own word sharing the merged box.
		for _, piece := range strings.Fields(sb.String()) {
			line.Words = append(line.Words, Word{Text: piece, BBox: wordBox})
		}
		sb.Reset()
	}

	for i := 1; i < len(frags); i++ {
		f := frags[i]
		prev := frags[i-1]
		gap := f.X - (prev.X + prev.W)
		threshold := wordGapFactor * f.H
		if threshold < minWordGap {
			threshold = minWordGap
		}
		if gap > threshold || strings.HasSuffix(prev.Text, " ") || strings.HasPrefix(f.Text, " ") {
			flush()
			wordBox = f.Box()
		} else {
			wordBox = wordBox.Union(f.Box())
		}
		sb.WriteString(f.Text)
		line.BBox = line.BBox.Union(f.Box())
	}
	flush()
	return line
}
