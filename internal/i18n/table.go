package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Table is a flat mapping from content key to string value for one language.
type Table map[string]string

// Document is the combined on-disk shape holding both the texts table and
// the audio file mapping. Some language trees keep the two in one file,
// others keep a bare texts table; LoadDocument accepts both.
type Document struct {
	Texts      Table             `json:"texts"`
	AudioFiles map[string]string `json:"audioFiles"`

	bare bool // the on-disk file held a bare table, no wrapper
}

// TextsPath returns the texts table path for a language under baseDir
// (conventionally content/i18n).
func TextsPath(baseDir, lang string) string {
	return filepath.Join(baseDir, lang, "texts.json")
}

// GlossaryPath returns the glossary path for a language under baseDir.
func GlossaryPath(baseDir, lang string) string {
	return filepath.Join(baseDir, lang, "glossary.json")
}

// Load reads a texts table from path. A file holding the combined
// texts/audioFiles document yields its texts table, so every command reads
// both on-disk shapes.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texts file: %w", err)
	}

	var table Table
	tableErr := json.Unmarshal(data, &table)
	if tableErr == nil {
		return table, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Texts != nil {
		return doc.Texts, nil
	}
	return nil, fmt.Errorf("invalid JSON in %s: %w", path, tableErr)
}

// LoadOrEmpty reads a texts table, returning an empty table if the file
// does not exist yet. Merge targets start empty on first run.
func LoadOrEmpty(path string) (Table, error) {
	table, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Table{}, nil
	}
	return table, err
}

// LoadDocument reads a combined texts+audioFiles document. A file holding a
// bare texts table (no "texts" wrapper) is accepted too.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if doc.Texts == nil {
		// Bare table shape.
		var table Table
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
		doc.Texts = table
		doc.bare = true
	}
	if doc.AudioFiles == nil {
		doc.AudioFiles = map[string]string{}
	}
	return &doc, nil
}

// Save writes a texts table to path: UTF-8 with non-ASCII preserved,
// two-space indent, sorted keys. A file already holding the combined
// texts/audioFiles wrapper keeps it, with its audio mapping intact. The
// whole file is overwritten; there is no locking, so concurrent writers
// race.
func Save(path string, table Table) error {
	if doc, err := LoadDocument(path); err == nil && !doc.bare {
		doc.Texts = table
		return writeJSON(path, doc)
	}
	return writeJSON(path, table)
}

// SaveDocument writes a combined document. A document loaded from a bare
// table stays bare on disk until it has audio mappings to store.
func SaveDocument(path string, doc *Document) error {
	if doc.bare && len(doc.AudioFiles) == 0 {
		return writeJSON(path, doc.Texts)
	}
	return writeJSON(path, doc)
}

// Merge copies every entry of src into dst, overwriting entries with the
// same key and leaving all untouched keys in place.
func Merge(dst, src Table) Table {
	if dst == nil {
		dst = Table{}
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// SortedKeys returns the table keys in lexical order.
func SortedKeys(table Table) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FilterPageRange returns the entries of the given kind whose page numbers
// fall in [startPage, endPage], keyed as in the source table.
func FilterPageRange(table Table, kind Kind, startPage, endPage int) Table {
	result := Table{}
	for raw, value := range table {
		key, ok := ParseKey(raw)
		if !ok || key.Kind != kind {
			continue
		}
		if key.Page >= startPage && key.Page <= endPage {
			result[raw] = value
		}
	}
	return result
}

// FilterKeyRange returns the entries of the given kind within the
// [startKey, endKey] (page, index) range. Empty bounds leave the range open.
func FilterKeyRange(table Table, kind Kind, startKey, endKey string) (Table, error) {
	result := Table{}
	for raw, value := range table {
		key, ok := ParseKey(raw)
		if !ok || key.Kind != kind {
			continue
		}
		in, err := InKeyRange(key, startKey, endKey)
		if err != nil {
			return nil, err
		}
		if in {
			result[raw] = value
		}
	}
	return result, nil
}

// SortedTextKeys returns the text keys of a table in (page, index) order,
// the order sequential translation walks entries in.
func SortedTextKeys(table Table) []string {
	var keys []Key
	for raw := range table {
		if key, ok := ParseKey(raw); ok && key.Kind == KindText {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	raws := make([]string, len(keys))
	for i, key := range keys {
		raws[i] = key.Raw
	}
	return raws
}

// WriteJSON writes v as indented JSON with HTML escaping disabled so that
// non-ASCII text and emoji are stored verbatim. encoding/json already
// sorts map keys. Timecode result files are written through here too.
func WriteJSON(path string, v any) error {
	return writeJSON(path, v)
}

func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
