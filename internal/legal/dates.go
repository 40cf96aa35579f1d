package legal

import (
	"regexp"
	"sort"
	"time"
	"unicode/utf8"

	"lexparse/internal/model"
)

// contextWindow is the number of bytes of surrounding text captured on each
// side of a date occurrence.
const contextWindow = 50

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2} [A-Za-z]+ \d{4}\b`),
}

// dateLayouts are tried in order; a candidate that parses under none of
// them is dropped.
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2 January 2006",
}

type dateHit struct {
	iso   string
	start int
	end   int
}

// extractDates finds all date occurrences in the text, normalizes each to
// ISO form, and returns them with context windows, ordered by date then by
// position. Duplicate (date, position) hits collapse to one.
func extractDates(text string) []model.DateMention {
	seen := make(map[dateHit]bool)
	var hits []dateHit

	for _, pattern := range datePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			iso, ok := normalizeDate(raw)
			if !ok {
				continue
			}
			hit := dateHit{iso: iso, start: loc[0], end: loc[1]}
			if !seen[hit] {
				seen[hit] = true
				hits = append(hits, hit)
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].iso != hits[j].iso {
			return hits[i].iso < hits[j].iso
		}
		return hits[i].start < hits[j].start
	})

	mentions := make([]model.DateMention, 0, len(hits))
	for _, h := range hits {
		mentions = append(mentions, model.DateMention{
			Date:               h.iso,
			SurroundingContext: contextAround(text, h.start, h.end),
		})
	}
	return mentions
}

func normalizeDate(raw string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// contextAround slices a window around [start, end), snapping to rune
// boundaries so multi-byte text is never cut mid-character.
func contextAround(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
