// Package eli5 generates child-level explanations for whole manual
// sections, one per HTML page and language.
package eli5

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/adtmanual/manualkit/internal/llm"
	"codeberg.org/adtmanual/manualkit/internal/translate"
)

// languageHints carry the per-language pieces of the prompt.
type languageHint struct {
	name    string
	context string
	intro   string
	example string
}

var languageHints = map[string]languageHint{
	"es": {
		name:    "Spanish",
		context: "Este manual es sobre autocuidado en español.",
		intro:   "Imagina que tienes",
		example: `Por ejemplo, si hablas de ejercicio, puedes decir: "Como cuando juegas en el parque y corres mucho, eso ayuda a tu cuerpo a estar fuerte."`,
	},
	"en": {
		name:    "English",
		context: "This manual is about self-care in English.",
		intro:   "Imagine you have",
		example: `For example, if talking about exercise, you could say: "Like when you play at the park and run around a lot, that helps your body stay strong."`,
	},
}

// hintFor falls back to Spanish, the manual's source language.
func hintFor(lang string) languageHint {
	if hint, ok := languageHints[lang]; ok {
		return hint
	}
	if hint, ok := languageHints[strings.SplitN(lang, "_", 2)[0]]; ok {
		return hint
	}
	return languageHints["es"]
}

// Generator produces ELI5 explanations of section text.
type Generator struct {
	provider llm.Provider
}

// NewGenerator wraps a chat provider.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate explains a section's concatenated text at a five-year-old's
// level, in the given language.
func (g *Generator) Generate(ctx context.Context, text, sectionID, lang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content for section %s", sectionID)
	}

	hint := hintFor(lang)
	prompt := fmt.Sprintf(`Please create a short "Explain Like I'm 5" (ELI5) version of the following text about self-care.

Context: This is from a self-care manual. %s

Original text: %s

Guidelines for ELI5 explanation in %s:
- Write as if explaining to a 5-year-old child
- Keep it to ONE paragraph maximum (3-5 sentences)
- Use simple words and concepts they can understand
- Include fun emojis throughout
- Use analogies with things kids know (toys, games, animals, superheroes, etc.)
- Make it engaging and friendly but CONCISE
- Keep the core message but simplify the language
- Use examples that relate to a child's world
- Start creatively like "%s..." or similar child-friendly opening
- %s
- Aim for 50-80 words total, short enough to keep a child's attention

Provide only the ELI5 explanation, nothing else.`,
		hint.context, text, hint.name, hint.intro, hint.example)

	explanation, err := g.provider.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return translate.StripWrappingQuotes(strings.TrimSpace(explanation)), nil
}
