package easyread

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/adtmanual/manualkit/internal/llm"
	"codeberg.org/adtmanual/manualkit/internal/readability"
)

const transformPrompt = `Transform the following text into an easy-to-read version following these guidelines:

EASY-READ RULES:
1. Use SHORT, SIMPLE sentences (maximum 15 words per sentence)
2. Choose COMMON, EVERYDAY words instead of difficult ones
3. Break long ideas into bullet points with - or numbered lists ONLY when necessary
4. Use emojis thoughtfully to support understanding and highlight key concepts
5. The final text should be SHORTER than the original
6. Keep the same main ideas but remove unnecessary details
7. Use active voice: "You can do this" instead of "This can be done"
8. Explain technical terms only if absolutely necessary

CONTENT GUIDELINES:
- Focus on simplifying existing content, NOT adding new bullet points
- Avoid breaking simple sentences into multiple bullet points
- Only use bullet points for genuinely complex ideas with multiple parts
- Keep the structure similar to the original when possible
- Don't expand content - make it more concise

IMPORTANT: Return ONLY the simplified text. Do not add explanations or comments.

TEXT TO TRANSFORM:
%s`

// Generator turns single entries into their easy-read version.
type Generator struct {
	provider llm.Provider
	lang     string
}

// NewGenerator creates an easy-read generator for one language.
func NewGenerator(provider llm.Provider, lang string) *Generator {
	return &Generator{provider: provider, lang: lang}
}

// Failed marks an entry whose rewrite failed; the table entry is still
// written so the 1:1 mapping holds.
func Failed(text string) string {
	return "Failed to simplify: " + text
}

// Generate produces the easy-read variant of a text according to its
// strategy. Only StrategyTransform touches the API.
func (g *Generator) Generate(ctx context.Context, text string, strategy Strategy) (string, error) {
	switch strategy {
	case StrategyCopy:
		return text, nil
	case StrategySimple:
		return Enhance(text), nil
	default:
		return g.transform(ctx, text)
	}
}

func (g *Generator) transform(ctx context.Context, text string) (string, error) {
	simplified, err := g.provider.Complete(ctx, llm.Request{
		System:      g.systemMessage(),
		Prompt:      fmt.Sprintf(transformPrompt, text),
		MaxTokens:   1000,
		Temperature: 0.5,
	})
	if err != nil {
		return "", err
	}
	simplified = strings.TrimSpace(simplified)

	before := readability.Score(text)
	after := readability.Score(simplified)
	fmt.Printf("  Readability: grade %.1f -> %.1f (ease %.1f -> %.1f, improvement %.1f)\n",
		before.FleschKincaidGrade, after.FleschKincaidGrade,
		before.FleschReadingEase, after.FleschReadingEase,
		readability.Improvement(before, after))

	return simplified, nil
}

func (g *Generator) systemMessage() string {
	if strings.HasPrefix(g.lang, "es") {
		return "Eres un experto en lectura fácil. Crea versiones MÁS CORTAS y sencillas usando palabras comunes y frases cortas. Usa emojis de manera inteligente para apoyar la comprensión. No agregues contenido extra. El texto final debe ser más fácil de entender que el original."
	}
	return "You are an expert in easy-read text. Create SHORTER and simpler versions using common words and short sentences. Use emojis thoughtfully to support understanding. Don't add extra content. The final text should be easier to understand than the original."
}
