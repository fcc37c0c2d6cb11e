package i18n

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a table key refers to.
type Kind int

const (
	KindUnknown Kind = iota
	KindText         // text-<page>-<index>, a source content entry
	KindEasyRead     // easyread-text-<page>-<index>
	KindELI5         // sectioneli5-<page>-<index>
	KindImage        // img-<page>-<index>, image alt text
)

// String returns the key prefix for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEasyRead:
		return "easyread"
	case KindELI5:
		return "sectioneli5"
	case KindImage:
		return "img"
	default:
		return "unknown"
	}
}

// Key is a parsed table key.
type Key struct {
	Raw   string
	Kind  Kind
	Page  int
	Index int
}

var (
	textKeyPattern     = regexp.MustCompile(`^text-(\d+)-(\d+)$`)
	easyReadKeyPattern = regexp.MustCompile(`^easyread-text-(\d+)-(\d+)$`)
	eli5KeyPattern     = regexp.MustCompile(`^sectioneli5-(\d+)-(\d+)$`)
	imageKeyPattern    = regexp.MustCompile(`^img-(\d+)-(\d+)$`)
)

// ParseKey classifies a table key by the naming convention. Keys that
// match none of the known patterns return ok=false and are skipped by
// every command.
func ParseKey(raw string) (Key, bool) {
	patterns := []struct {
		kind Kind
		re   *regexp.Regexp
	}{
		{KindText, textKeyPattern},
		{KindEasyRead, easyReadKeyPattern},
		{KindELI5, eli5KeyPattern},
		{KindImage, imageKeyPattern},
	}

	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(raw); m != nil {
			page, _ := strconv.Atoi(m[1])
			index, _ := strconv.Atoi(m[2])
			return Key{Raw: raw, Kind: p.kind, Page: page, Index: index}, true
		}
	}
	return Key{Raw: raw, Kind: KindUnknown}, false
}

// IsTextKey reports whether raw is a translatable source entry key.
func IsTextKey(raw string) bool {
	return textKeyPattern.MatchString(raw)
}

// EasyReadKey derives the easy-read key for a text key.
func EasyReadKey(textKey string) string {
	return "easyread-" + textKey
}

// ELI5Key derives the ELI5 key for a text key
// (text-10-2 becomes sectioneli5-10-2).
func ELI5Key(textKey string) string {
	return "sectioneli5-" + strings.TrimPrefix(textKey, "text-")
}

// ParseKind maps a command-line kind name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "text":
		return KindText, nil
	case "easyread":
		return KindEasyRead, nil
	case "eli5", "sectioneli5":
		return KindELI5, nil
	case "img", "image":
		return KindImage, nil
	default:
		return KindUnknown, fmt.Errorf("unknown key kind %q (want text, easyread, eli5 or img)", name)
	}
}

// position orders keys (page, index) for range comparisons.
func (k Key) position() [2]int {
	return [2]int{k.Page, k.Index}
}

// Before reports whether k sorts before other in (page, index) order.
func (k Key) Before(other Key) bool {
	a, b := k.position(), other.position()
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// InKeyRange reports whether key falls within [start, end] in (page, index)
// order. Empty start or end leaves that side of the range open.
func InKeyRange(key Key, start, end string) (bool, error) {
	if start != "" {
		s, ok := ParseKey(start)
		if !ok {
			return false, fmt.Errorf("invalid range key %q", start)
		}
		if key.Before(s) {
			return false, nil
		}
	}
	if end != "" {
		e, ok := ParseKey(end)
		if !ok {
			return false, fmt.Errorf("invalid range key %q", end)
		}
		if e.Before(key) {
			return false, nil
		}
	}
	return true, nil
}
