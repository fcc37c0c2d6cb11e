package alttext

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
	"codeberg.org/adtmanual/manualkit/internal/llm"
	"codeberg.org/adtmanual/manualkit/internal/translate"
)

// contextLimit caps how many same-page text entries feed the prompt.
const contextLimit = 3

type languageHint struct {
	name    string
	note    string
	example string
}

var languageHints = map[string]languageHint{
	"es": {
		name:    "Spanish",
		note:    "Este manual es en español.",
		example: `Ejemplo: "Ilustración de una mujer meditando en posición de loto"`,
	},
	"en": {
		name:    "English",
		note:    "This manual is in English.",
		example: `Example: "Illustration of a woman meditating in lotus position"`,
	},
}

func hintFor(lang string) languageHint {
	if hint, ok := languageHints[lang]; ok {
		return hint
	}
	if hint, ok := languageHints[strings.SplitN(lang, "_", 2)[0]]; ok {
		return hint
	}
	return languageHints["es"]
}

// Generator produces alt text descriptions through a vision-capable
// chat provider.
type Generator struct {
	provider llm.Provider
}

// NewGenerator wraps a vision-capable provider.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// PageContext collects up to contextLimit text entries from the image's
// page, keyed like img-10-1 -> text-10-*.
func PageContext(dataID string, table i18n.Table) string {
	parts := strings.Split(dataID, "-")
	if len(parts) < 2 || parts[0] != "img" {
		return ""
	}
	prefix := "text-" + parts[1] + "-"

	var collected []string
	for _, key := range i18n.SortedKeys(table) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if text := strings.TrimSpace(table[key]); text != "" {
			collected = append(collected, text)
			if len(collected) >= contextLimit {
				break
			}
		}
	}
	return strings.Join(collected, " ")
}

// Generate describes the image behind the data URL for accessibility,
// in the given language, optionally informed by surrounding page text.
func (g *Generator) Generate(ctx context.Context, imageDataURL, pageContext, lang string) (string, error) {
	hint := hintFor(lang)
	if pageContext == "" {
		pageContext = "No additional context available."
	}

	prompt := fmt.Sprintf(`Please provide a descriptive alt text for this image for accessibility purposes.

Context: This image appears in a self-care manual (Manual de Autocuidado).
%s

Content context: %s

Guidelines:
- Aim for under 125 characters, but go longer if absolutely necessary for clarity
- Be descriptive and focus on essential visual content
- Use %s language
- Start with "Imagen: " or "Ilustración: " as appropriate
- Don't be overly verbose but ensure key elements are described
- %s

Provide only the alt text description, nothing else.`,
		hint.note, pageContext, hint.name, hint.example)

	description, err := g.provider.Complete(ctx, llm.Request{
		Prompt:       prompt,
		ImageDataURL: imageDataURL,
		MaxTokens:    200,
		Temperature:  0.3,
	})
	if err != nil {
		return "", err
	}
	return translate.StripWrappingQuotes(strings.TrimSpace(description)), nil
}
