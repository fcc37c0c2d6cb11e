// Package readability scores text with the Flesch-Kincaid measures so the
// easyread command can log how much simpler a rewrite actually is. The
// syllable counter is a vowel-group heuristic that is good enough for
// before/after comparisons in English and Spanish.
package readability

import (
	"strings"
	"unicode"
)

// Stats holds the readability measures for one text.
type Stats struct {
	FleschKincaidGrade float64
	FleschReadingEase  float64
	Syllables          int
	Words              int
	Sentences          int
}

// Score computes the readability statistics for a text.
func Score(text string) Stats {
	words := Words(text)
	sentences := SentenceCount(text)
	syllables := 0
	for _, w := range words {
		syllables += SyllableCount(w)
	}

	stats := Stats{
		Syllables: syllables,
		Words:     len(words),
		Sentences: sentences,
	}
	if len(words) == 0 || sentences == 0 {
		return stats
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	stats.FleschKincaidGrade = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	stats.FleschReadingEase = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	return stats
}

// Improvement returns how many grade levels simpler the rewritten text is.
func Improvement(original, simplified Stats) float64 {
	return original.FleschKincaidGrade - simplified.FleschKincaidGrade
}

// Words splits a text into words, dropping punctuation-only tokens.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	var words []string
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// SentenceCount counts sentence terminators, treating runs like "?!" or
// "..." as one boundary. Text without a terminator counts as one sentence.
func SentenceCount(text string) int {
	count := 0
	inRun := false
	sawContent := false
	for _, r := range text {
		switch r {
		case '.', '!', '?', '…':
			if !inRun && sawContent {
				count++
			}
			inRun = true
		default:
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				sawContent = true
				inRun = false
			}
		}
	}
	if count == 0 && sawContent {
		return 1
	}
	// Trailing content after the last terminator is a sentence too.
	if !inRun && sawContent && count > 0 {
		count++
	}
	return count
}

// SyllableCount estimates syllables in a word by counting vowel groups.
// Every word has at least one syllable; a trailing silent 'e' is dropped
// when the word has another vowel group.
func SyllableCount(word string) int {
	word = strings.ToLower(word)
	groups := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			groups++
		}
		prevVowel = v
	}
	if groups > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		groups--
	}
	if groups < 1 {
		groups = 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y',
		'á', 'é', 'í', 'ó', 'ú', 'ü',
		'à', 'è', 'ì', 'ò', 'ù':
		return true
	}
	return false
}
