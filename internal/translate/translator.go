package translate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
	"codeberg.org/adtmanual/manualkit/internal/llm"
)

// DefaultContextSize is the number of previous translations kept as
// prompt context.
const DefaultContextSize = 10

// contextPair is one prior translation carried as prompt context.
type contextPair struct {
	source string
	target string
	key    string
}

// Translator translates table entries sequentially with context memory.
type Translator struct {
	provider   llm.Provider
	sourceLang string
	targetLang string
	maxPairs   int
	limiter    *rate.Limiter
	context    []contextPair
}

// Options configures a Translator.
type Options struct {
	SourceLang  string // language code, e.g. "es"
	TargetLang  string // language code, e.g. "en"
	ContextSize int    // previous translations kept for context, 0 means DefaultContextSize
	Limiter     *rate.Limiter
}

// NewTranslator creates a sequential translator on the given chat provider.
func NewTranslator(provider llm.Provider, opts Options) *Translator {
	size := opts.ContextSize
	if size <= 0 {
		size = DefaultContextSize
	}
	return &Translator{
		provider:   provider,
		sourceLang: opts.SourceLang,
		targetLang: opts.TargetLang,
		maxPairs:   size,
		limiter:    opts.Limiter,
	}
}

// ContextSize returns the number of translations currently held as context.
func (t *Translator) ContextSize() int {
	return len(t.context)
}

// SourceLang returns the source language code.
func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// TargetLang returns the target language code.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// SeedContext preloads prompt context from entries already translated in a
// previous run. Keys are taken in (page, index) order up to the window size.
func (t *Translator) SeedContext(source, target i18n.Table) int {
	seeded := 0
	for _, key := range i18n.SortedTextKeys(target) {
		if seeded >= t.maxPairs {
			break
		}
		sourceText, ok := source[key]
		if !ok {
			continue
		}
		t.remember(sourceText, target[key], key)
		seeded++
	}
	return seeded
}

// TranslateEntry translates one table entry, feeding the sliding context
// window. The result has wrapping quotes stripped.
func (t *Translator) TranslateEntry(ctx context.Context, key, text string) (string, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	out, err := t.provider.Complete(ctx, llm.Request{
		System:      fmt.Sprintf("You are a professional translator specializing in self-care and wellness content. You translate from %s to %s.", languageName(t.sourceLang), languageName(t.targetLang)),
		Prompt:      t.buildPrompt(key, text),
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	translated := StripWrappingQuotes(out)
	t.remember(text, translated, key)
	return translated, nil
}

// Placeholder is stored when an entry fails to translate so the target
// table stays complete.
func Placeholder(sourceText string) string {
	return fmt.Sprintf("[TRANSLATION ERROR: %s]", sourceText)
}

// IsPlaceholder reports whether a value is a failed-translation marker.
func IsPlaceholder(value string) bool {
	return strings.HasPrefix(value, "[TRANSLATION ERROR: ")
}

func (t *Translator) buildPrompt(key, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are translating a self-care manual from %[1]s to %[2]s.
This is part of an educational resource about physical, emotional, cognitive, and social self-care.

Please translate this %[1]s text to %[2]s, maintaining:
- Professional tone appropriate for a self-care manual
- Consistency with previous translations
- Natural %[2]s phrasing
- Context-appropriate terminology
`, languageName(t.sourceLang), languageName(t.targetLang))

	if len(t.context) > 0 {
		b.WriteString("\nPrevious translations for context:\n")
		for _, pair := range t.context {
			fmt.Fprintf(&b, "- '%s' -> '%s' (ID: %s)\n", pair.source, pair.target, pair.key)
		}
	}

	fmt.Fprintf(&b, "\nText to translate (ID: %s):\n'%s'\n\nProvide only the %s translation, no explanations or additional text.",
		key, text, languageName(t.targetLang))
	return b.String()
}

func (t *Translator) remember(source, target, key string) {
	t.context = append(t.context, contextPair{source: source, target: target, key: key})
	if len(t.context) > t.maxPairs {
		t.context = t.context[len(t.context)-t.maxPairs:]
	}
}

// StripWrappingQuotes removes one layer of quotes the model sometimes adds
// around its answer.
func StripWrappingQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, `'`} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// languageName maps the language codes used in the content tree to names
// suitable for prompts. Unknown codes pass through unchanged.
func languageName(code string) string {
	switch strings.ToLower(code) {
	case "es", "es_sv", "es_uy":
		return "Spanish"
	case "en":
		return "English"
	case "fr":
		return "French"
	case "pt":
		return "Portuguese"
	default:
		return code
	}
}
