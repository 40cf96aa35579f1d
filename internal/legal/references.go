package legal

import (
	"regexp"
	"strings"
)

var (
	letterPattern = regexp.MustCompile(`(?i)Letter\s+(?:No\.|Number)?\s*([\w\-/]+)`)
	clausePattern = regexp.MustCompile(`\b(Clause|Article|Act)\s+\d+(?:\.\d+)?\b`)
)

// extractLetters returns the identifiers of letters referenced in the text
// ("Letter No. ABC/12-3"), in order of occurrence.
func extractLetters(text string) []string {
	var letters []string
	for _, m := range letterPattern.FindAllStringSubmatch(text, -1) {
		if isValidName(m[1]) {
			letters = append(letters, m[1])
		}
	}
	return letters
}

// clauseRef is a typed clause/article/act citation.
type clauseRef struct {
	reference string
	kind      string
}

// extractClauses returns deduplicated clause, article, and act citations
// such as "Clause 14.2", typed by their keyword.
func extractClauses(text string) []clauseRef {
	seen := make(map[string]bool)
	var refs []clauseRef
	for _, m := range clausePattern.FindAllStringSubmatch(text, -1) {
		full := strings.Join(strings.Fields(m[0]), " ")
		if seen[full] {
			continue
		}
		seen[full] = true
		refs = append(refs, clauseRef{reference: full, kind: strings.ToLower(m[1])})
	}
	return refs
}
