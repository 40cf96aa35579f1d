package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var captionPattern = regexp.MustCompile(`(?i)(Figure|Fig)[\s\-:]*(\d+)?[:.\-]?\s*(.+)`)

// captionFromText returns the first figure-caption-looking run of text on a
// page, or "" when none is present.
func captionFromText(text string) string {
	if text == "" {
		return ""
	}
	return captionPattern.FindString(text)
}

// figureFilename names the rendered page image referenced by a figure
// element.
func figureFilename(pageNumber int) string {
	return fmt.Sprintf("page_%d.png", pageNumber)
}

// pageText joins a page's lines in reading order for caption scanning and
// metadata extraction.
func pageText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.Text()
	}
	return strings.Join(parts, "\n")
}
