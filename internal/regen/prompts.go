package regen

import "fmt"

// ContentType selects which derived entries to regenerate.
type ContentType string

const (
	TypeEasyRead ContentType = "easyread"
	TypeELI5     ContentType = "eli5"
)

// ParseContentTypes expands a --type flag value into concrete types.
func ParseContentTypes(value string) ([]ContentType, error) {
	switch value {
	case "easyread":
		return []ContentType{TypeEasyRead}, nil
	case "eli5":
		return []ContentType{TypeELI5}, nil
	case "both":
		return []ContentType{TypeEasyRead, TypeELI5}, nil
	}
	return nil, fmt.Errorf("unknown content type %q (want easyread, eli5 or both)", value)
}

// ParseLanguages expands a --language flag value.
func ParseLanguages(value string) ([]string, error) {
	switch value {
	case "en", "es":
		return []string{value}, nil
	case "both":
		return []string{"en", "es"}, nil
	}
	return nil, fmt.Errorf("unknown language %q (want en, es or both)", value)
}

func systemPrompt(contentType ContentType, lang string) string {
	if lang == "es" {
		if contentType == TypeEasyRead {
			return "Eres un asistente que simplifica textos en español. " +
				"Debes crear versiones CONCISAS y fáciles de leer, usando lenguaje sencillo " +
				"y añadiendo algunos emojis relevantes. El texto simplificado debe ser más " +
				"corto que el original. Usa el español de El Salvador cuando sea apropiado."
		}
		return "Eres un experto en explicar conceptos complejos de manera simple " +
			"para niños de 5 años en español. Usa analogías simples, ejemplos " +
			"familiares y un lenguaje muy básico. Explica como si fueras un " +
			"maestro paciente hablando con un niño pequeño. " +
			"Usa el español de El Salvador cuando sea apropiado."
	}
	if contentType == TypeEasyRead {
		return "You are an expert in creating easy-read content in English. " +
			"Your job is to simplify complex texts to make them accessible " +
			"for people with reading or comprehension difficulties. " +
			"Use simple words, short sentences, and clear concepts. " +
			"Keep the original meaning but make it easier to understand."
	}
	return "You are an expert at explaining complex concepts in simple terms " +
		"for 5-year-old children in English. Use simple analogies, familiar " +
		"examples, and very basic language. Explain as if you were a patient " +
		"teacher talking to a young child."
}

const spanishEasyReadPrompt = `Convertir el siguiente texto a formato de lectura fácil siguiendo estas instrucciones:

INSTRUCCIONES PARA CREAR TEXTOS DE LECTURA FÁCIL:
1. Usar frases cortas y sencillas con estructura: sujeto + verbo + complementos.
2. Simplificar el vocabulario usando palabras comunes y cotidianas.
3. Explicar SOLO términos técnicos esenciales, de forma muy breve.
4. Usar listas con viñetas para ideas múltiples.
5. Reducir la longitud total, el texto simplificado debe ser más corto que el original.
6. Añadir emojis relevantes con moderación (máximo 1 por párrafo o punto de lista).
7. Eliminar información secundaria o redundante.
8. Mantener el mismo orden de las ideas del texto original.
9. No añadir información o explicaciones que no estén en el texto original.
10. No repetir conceptos que ya se han explicado.

IMPORTANTE: El texto simplificado debe ser MÁS CORTO que el original.

FORMATO DE RESPUESTA:
Devolver solo el texto simplificado con emojis apropiados. No incluir preguntas, explicaciones ni indicar que es lectura fácil.

TEXTO A CONVERTIR:
%s

Provide me the text in easy-read format. Please think carefully before responding.`

func userPrompt(text string, contentType ContentType, lang string) string {
	if lang == "es" {
		if contentType == TypeEasyRead {
			return fmt.Sprintf(spanishEasyReadPrompt, text)
		}
		return fmt.Sprintf("Explica el siguiente concepto como si fueras un maestro hablando "+
			"con un niño de 5 años. Usa ejemplos simples y familiares:\n\n%s\n\n"+
			"Explicación para niños:", text)
	}
	if contentType == TypeEasyRead {
		return fmt.Sprintf("Convert the following text into an easy-read version. "+
			"Keep the main meaning but make it simpler and clearer:\n\n%s\n\n"+
			"Easy-read version:", text)
	}
	return fmt.Sprintf("Explain the following concept as if you were a teacher talking "+
		"to a 5-year-old child. Use simple, familiar examples:\n\n%s\n\n"+
		"Explanation for children:", text)
}
