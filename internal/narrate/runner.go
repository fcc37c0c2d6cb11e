package narrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// Summary counts the outcomes of one run.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
}

// Runner narrates a language's text entries. Audio lands under
// AudioDir/<lang>/<key>.mp3 and every generated file is recorded in the
// audioFiles mapping, which feeds forced alignment.
type Runner struct {
	Speaker   Speaker
	I18nDir   string
	AudioDir  string // conventionally content/audio
	Lang      string
	StartPage int // 0 with EndPage 0 narrates everything
	EndPage   int
	Force     bool // regenerate entries that already have audio

	OnItem func(key, outcome string, d time.Duration)
}

// Run narrates every matching entry, saving the document after each
// generated file so an interrupted run keeps its mapping consistent.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	docPath := i18n.TextsPath(r.I18nDir, r.Lang)
	doc, err := i18n.LoadDocument(docPath)
	if err != nil {
		return summary, err
	}

	keys := i18n.SortedTextKeys(doc.Texts)
	fmt.Printf("Narrating %s: %d text entries\n", r.Lang, len(keys))

	backedUp := false
	for _, raw := range keys {
		if err := ctx.Err(); err != nil {
			fmt.Println("\nInterrupted, mapping is saved")
			return summary, nil
		}

		key, _ := i18n.ParseKey(raw)
		if !r.inPageRange(key.Page) {
			continue
		}

		relPath := filepath.Join("audio", r.Lang, raw+".mp3")
		outputFile := filepath.Join(r.AudioDir, r.Lang, raw+".mp3")

		if _, exists := doc.AudioFiles[raw]; exists && !r.Force {
			if _, err := os.Stat(outputFile); err == nil {
				fmt.Printf("Skipping %s (audio exists)\n", raw)
				summary.Skipped++
				continue
			}
		}

		fmt.Printf("Narrating %s: %.60s\n", raw, doc.Texts[raw])
		start := time.Now()
		err := r.Speaker.Speak(ctx, doc.Texts[raw], outputFile)
		outcome := "ok"
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: narrating %s: %v\n", raw, err)
			summary.Failed++
			outcome = "error"
		} else {
			doc.AudioFiles[raw] = relPath
			summary.Generated++
			if !backedUp {
				if _, err := i18n.BackupFile(docPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
				}
				backedUp = true
			}
			if err := i18n.SaveDocument(docPath, doc); err != nil {
				return summary, err
			}
		}
		if r.OnItem != nil {
			r.OnItem(raw, outcome, time.Since(start))
		}
	}

	fmt.Printf("Narration complete: %d generated, %d skipped, %d failed\n",
		summary.Generated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (r *Runner) inPageRange(page int) bool {
	if r.StartPage == 0 && r.EndPage == 0 {
		return true
	}
	return page >= r.StartPage && page <= r.EndPage
}
