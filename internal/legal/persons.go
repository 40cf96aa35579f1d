package legal

import (
	"regexp"
	"strings"
)

// genericTerms are capitalized tokens that look like names but never are in
// this document domain.
var genericTerms = map[string]bool{
	"Contractor": true,
	"Request":    true,
	"Works":      true,
	"Milestones": true,
	"no.":        true,
	"Name":       true,
	"Company":    true,
}

// leadingStopwords disqualify a capitalized sequence from being a person
// name when they start it.
var leadingStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "Dear": true, "Sub": true,
	"Ref": true, "Page": true, "Section": true, "Chapter": true,
	"Figure": true, "Table": true, "Letter": true, "Clause": true,
	"Article": true, "Act": true, "Project": true, "Contract": true,
	"Agreement": true, "Annex": true, "Appendix": true,
	// Honorifics without a trailing period start runs that the honorific
	// pattern already captured.
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Eng": true, "Prof": true,
}

var (
	// Honorific-led names are the strongest signal.
	honorificName = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Eng|Prof)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)
	// Otherwise a run of two or three capitalized words is a candidate.
	capitalizedRun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}\b`)
)

// isValidName rejects empty strings and domain boilerplate.
func isValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && !genericTerms[name]
}

// extractPersons finds likely person names in order of first occurrence,
// deduplicated. Detection is rule-based: honorific-prefixed names plus
// capitalized multi-word runs filtered against stopword and generic-term
// sets.
func extractPersons(text string) []string {
	var names []string
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.TrimSpace(name)
		if !isValidName(name) || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, m := range honorificName.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	for _, candidate := range capitalizedRun.FindAllString(text, -1) {
		words := strings.Fields(candidate)
		if leadingStopwords[words[0]] {
			continue
		}
		valid := true
		for _, w := range words {
			if genericTerms[w] {
				valid = false
				break
			}
		}
		if valid {
			add(candidate)
		}
	}

	return names
}
