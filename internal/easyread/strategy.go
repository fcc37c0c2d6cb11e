package easyread

import (
	"strings"
	"unicode"
)

// Strategy selects how an entry is turned into its easy-read variant.
type Strategy int

const (
	// StrategyCopy keeps the text unchanged (labels, numbers, single words).
	StrategyCopy Strategy = iota
	// StrategySimple prefixes a contextual emoji but keeps the text.
	StrategySimple
	// StrategyTransform sends the text through the LLM rewrite.
	StrategyTransform
)

// String returns the strategy name used in progress output.
func (s Strategy) String() string {
	switch s {
	case StrategyCopy:
		return "copy"
	case StrategySimple:
		return "simple"
	default:
		return "transform"
	}
}

// simpleLabels are copied as-is regardless of language.
var simpleLabels = map[string]bool{
	"true": true, "false": true,
	"myth": true, "myth:": true,
	"fact": true, "fact:": true,
	"yes": true, "no": true,
	"correct": true, "incorrect": true,
}

// Classify decides the processing strategy for a text entry and returns
// the reason, which gets logged next to the key.
func Classify(text string) (Strategy, string) {
	trimmed := strings.TrimSpace(text)
	wordCount := len(strings.Fields(trimmed))

	if wordCount <= 1 || len(trimmed) <= 3 {
		return StrategyCopy, "Single word/very short"
	}

	if isNumeric(trimmed) {
		return StrategyCopy, "Number only"
	}

	if simpleLabels[strings.ToLower(trimmed)] {
		return StrategyCopy, "Simple label"
	}

	if wordCount <= 4 && len(trimmed) <= 30 {
		first, _ := firstRune(trimmed)
		if unicode.IsUpper(first) && !hasTerminalPunctuation(trimmed) {
			return StrategySimple, "Short title/heading"
		}
	}

	if startsWithListNumber(trimmed) && wordCount <= 8 {
		return StrategySimple, "Numbered list item"
	}

	if wordCount <= 6 {
		return StrategySimple, "Short phrase"
	}

	return StrategyTransform, "Complex text"
}

func isNumeric(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '.' || r == ',' {
			return -1
		}
		return r
	}, s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

func startsWithListNumber(s string) bool {
	if len(s) < 2 {
		return false
	}
	return s[0] >= '1' && s[0] <= '9' && s[1] == '.'
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
