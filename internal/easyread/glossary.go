package easyread

import "strings"

// FindGlossaryTerms returns the glossary terms present in a text,
// case-insensitively.
func FindGlossaryTerms(text string, glossary []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range glossary {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// VerifyGlossaryTerms checks that every glossary term of the original text
// survived the rewrite. Returns the missing terms.
func VerifyGlossaryTerms(original, simplified string, terms []string) (bool, []string) {
	origLower := strings.ToLower(original)
	simpLower := strings.ToLower(simplified)

	var missing []string
	for _, term := range terms {
		t := strings.ToLower(term)
		if strings.Contains(origLower, t) && !strings.Contains(simpLower, t) {
			missing = append(missing, term)
		}
	}
	return len(missing) == 0, missing
}
