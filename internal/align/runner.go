package align

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// Entry is one aligned item in the output file.
type Entry struct {
	Text      string          `json:"text"`
	Audio     string          `json:"audio"`
	Timecodes json.RawMessage `json:"timecodes"`
}

// Results maps content keys to their alignment entries.
type Results map[string]Entry

// Aligner is the one Client method the runner needs; tests substitute a
// fake.
type Aligner interface {
	Align(ctx context.Context, audioPath, text, language string) (json.RawMessage, error)
}

// Runner walks a document's text entries and aligns each one's audio.
// Results are flushed to disk after every successful item, so an
// interrupted run loses nothing already done.
type Runner struct {
	Client       Aligner
	JSONPath     string // document with texts and audioFiles
	AudioFolder  string
	OutputPath   string
	Language     string    // service language label, e.g. "spa - Spanish"
	Kind         i18n.Kind // which key kind to align, default text
	ContinueFrom bool      // reload OutputPath and skip processed keys

	OnItem func(key, outcome string, d time.Duration)
}

// Summary counts the outcomes of one run.
type Summary struct {
	Aligned int
	Skipped int
	Failed  int
}

// Run aligns every matching entry. A cancelled context (Ctrl+C) stops
// the loop cleanly; results so far are already on disk.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	kind := r.Kind
	if kind == i18n.KindUnknown {
		kind = i18n.KindText
	}

	doc, err := i18n.LoadDocument(r.JSONPath)
	if err != nil {
		return summary, err
	}

	results := Results{}
	if r.ContinueFrom {
		if loaded, err := LoadResults(r.OutputPath); err == nil {
			results = loaded
			fmt.Printf("Loaded %d existing entries from %s\n", len(results), r.OutputPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: could not load existing results: %v\n", err)
		}
	}

	keys := matchingKeys(doc.Texts, kind)
	total := len(keys)
	fmt.Printf("Aligning %d entries from %s\n", total, r.JSONPath)

	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			fmt.Println("\nInterrupted, progress is saved")
			return summary, nil
		}

		if _, done := results[key]; done {
			fmt.Printf("Skipping %s (already processed)\n", key)
			summary.Skipped++
			continue
		}

		relPath, ok := doc.AudioFiles[key]
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: no audio file mapped for %s, skipping\n", key)
			summary.Skipped++
			continue
		}
		audioPath := filepath.Join(r.AudioFolder, relPath)
		if _, err := os.Stat(audioPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio file %s not found for %s, skipping\n", audioPath, key)
			summary.Skipped++
			continue
		}

		fmt.Printf("Processing %s... (%d/%d)\n", key, i+1, total)
		start := time.Now()
		timecodes, err := r.Client.Align(ctx, audioPath, doc.Texts[key], r.Language)
		outcome := "ok"
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: aligning %s: %v\n", key, err)
			summary.Failed++
			outcome = "error"
		} else {
			results[key] = Entry{Text: doc.Texts[key], Audio: audioPath, Timecodes: timecodes}
			summary.Aligned++
			if err := SaveResults(r.OutputPath, results); err != nil {
				return summary, err
			}
		}
		if r.OnItem != nil {
			r.OnItem(key, outcome, time.Since(start))
		}
	}

	fmt.Printf("Processing complete. Results saved to %s\n", r.OutputPath)
	return summary, nil
}

func matchingKeys(table i18n.Table, kind i18n.Kind) []string {
	if kind == i18n.KindText {
		return i18n.SortedTextKeys(table)
	}
	var keys []string
	for _, raw := range i18n.SortedKeys(table) {
		if key, ok := i18n.ParseKey(raw); ok && key.Kind == kind {
			keys = append(keys, raw)
		}
	}
	return keys
}

// LoadResults reads a previously written output file.
func LoadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return results, nil
}

// SaveResults writes the output file, preserving non-ASCII text.
func SaveResults(path string, results Results) error {
	return i18n.WriteJSON(path, results)
}

// Combine merges per-key timecode files from dir into one output file.
// Each input file holds a single top-level key.
func Combine(dir, outputPath string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}

	combined := map[string]json.RawMessage{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		var file map[string]json.RawMessage
		if err := json.Unmarshal(data, &file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}
		for key, value := range file {
			combined[key] = value
			fmt.Printf("Added timecode data for %s\n", key)
		}
	}

	if len(combined) == 0 {
		return 0, fmt.Errorf("no valid timecode data found in %s", dir)
	}
	if err := i18n.WriteJSON(outputPath, combined); err != nil {
		return 0, err
	}
	return len(combined), nil
}
