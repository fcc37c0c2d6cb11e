package i18n

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGlossary reads the glossary terms for a language. Three file shapes
// exist in the content trees: a plain list of strings, a list of objects
// with a "term" field, and a map keyed by term.
func LoadGlossary(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary file: %w", err)
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err == nil {
		return terms, nil
	}

	var objects []struct {
		Term string `json:"term"`
	}
	if err := json.Unmarshal(data, &objects); err == nil {
		for _, o := range objects {
			if o.Term != "" {
				terms = append(terms, o.Term)
			}
		}
		return terms, nil
	}

	var byTerm map[string]json.RawMessage
	if err := json.Unmarshal(data, &byTerm); err == nil {
		for term := range byTerm {
			terms = append(terms, term)
		}
		return terms, nil
	}

	return nil, fmt.Errorf("unrecognized glossary format in %s", path)
}
