package translate

import (
	"sort"
	"strings"
)

// OfflineTranslator translates with a fixed term table instead of a hosted
// API. Quality is rough; it exists for dry runs and for environments
// without credentials.
type OfflineTranslator struct {
	terms map[string]string
	// longer terms replace first to avoid clobbering substrings
	ordered []string
}

// NewOfflineTranslator builds the default Spanish-to-English term table.
func NewOfflineTranslator() *OfflineTranslator {
	return NewOfflineTranslatorWithTerms(defaultTerms)
}

// NewOfflineTranslatorWithTerms builds an offline translator from a custom
// term table.
func NewOfflineTranslatorWithTerms(terms map[string]string) *OfflineTranslator {
	ordered := make([]string, 0, len(terms))
	for term := range terms {
		ordered = append(ordered, term)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	return &OfflineTranslator{terms: terms, ordered: ordered}
}

// Translate maps a source string through the term table: exact phrase match
// first, then longest-term substring replacement. Terms of three characters
// or fewer only apply on exact match, replacing them inside words produces
// garbage.
func (o *OfflineTranslator) Translate(text string) string {
	if translated, ok := o.terms[text]; ok {
		return translated
	}

	translated := text
	for _, term := range o.ordered {
		if len(term) > 3 {
			translated = strings.ReplaceAll(translated, term, o.terms[term])
		}
	}
	return translated
}

var defaultTerms = map[string]string{
	"Manual de Autocuidado":  "Self-Care Manual",
	"Manual de autocuidado":  "Self-care manual",
	"Manual de autocuido":    "Self-care manual",
	"Autocuidado":            "Self-care",
	"autocuidado":            "self-care",
	"Autocuidado físico":     "Physical self-care",
	"Autocuidado emocional":  "Emotional self-care",
	"Autocuidado cognitivo":  "Cognitive self-care",
	"Autocuidado social":     "Social self-care",
	"Autocuidado espiritual": "Spiritual self-care",
	"Contenido":              "Contents",
	"Introducción":           "Introduction",
	"INTRODUCCIÓN":           "INTRODUCTION",

	"¿Qué es el autocuidado?":                  "What is self-care?",
	"Principios del autocuidado":               "Principles of self-care",
	"Importancia y beneficios del autocuidado": "Importance and benefits of self-care",
	"Tipos de autocuidado":                     "Types of self-care",
	"Ejercicios prácticos":                     "Practical exercises",
	"Bibliografía":                             "Bibliography",
	"Dormir y descansar lo suficiente:":        "Get enough sleep and rest:",
	"Cuidar el entorno:":                       "Take care of the environment:",
	"Ser constante:":                           "Be consistent:",
	"Emociones":                                "Emotions",
	"¿Cómo se expresan las emociones?":         "How are emotions expressed?",
	"Expresar Emociones":                       "Expressing Emotions",
	"Las Emociones":                            "The Emotions",
	"Cuidado de la higiene":                    "Hygiene care",
	"Cuidado de la higiene:":                   "Hygiene care:",
	"es recomendable":                          "it is recommended",
	"Se recomienda":                            "It is recommended",
}
