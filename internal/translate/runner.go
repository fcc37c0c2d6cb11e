package translate

import (
	"context"
	"fmt"
	"os"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// Summary counts the outcomes of one run.
type Summary struct {
	Translated int
	Failed     int
}

// Runner translates a page range from the source language table into
// the target language table. Entries are processed sequentially in
// (page, index) order so the context window follows the manual's flow.
type Runner struct {
	Translator *Translator
	Offline    *OfflineTranslator // used instead of the API when set
	I18nDir    string
	StartPage  int
	EndPage    int
	DryRun     bool

	OnItem func(key, outcome string, d time.Duration)
}

// Run translates every text entry in range and merges the results into
// the target table, saved once at the end.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	sourcePath := i18n.TextsPath(r.I18nDir, r.Translator.SourceLang())
	targetPath := i18n.TextsPath(r.I18nDir, r.Translator.TargetLang())

	source, err := i18n.Load(sourcePath)
	if err != nil {
		return summary, err
	}
	target, err := i18n.LoadOrEmpty(targetPath)
	if err != nil {
		return summary, err
	}

	inRange := i18n.FilterPageRange(source, i18n.KindText, r.StartPage, r.EndPage)
	if len(inRange) == 0 {
		return summary, fmt.Errorf("no texts found for page range %d-%d", r.StartPage, r.EndPage)
	}

	if !r.DryRun && r.Offline == nil {
		seeded := r.Translator.SeedContext(source, target)
		if seeded > 0 {
			fmt.Printf("Loaded %d existing translations for context\n", seeded)
		}
	}

	keys := i18n.SortedTextKeys(inRange)
	fmt.Printf("Translating %d text strings (pages %d-%d)\n", len(keys), r.StartPage, r.EndPage)

	results := i18n.Table{}
	for i, key := range keys {
		text := inRange[key]
		fmt.Printf("[%d/%d] %s: %.60s\n", i+1, len(keys), key, text)

		var translated string
		var err error
		start := time.Now()
		switch {
		case r.DryRun:
			translated = "[DRY RUN] Would translate: " + text
		case r.Offline != nil:
			translated = r.Offline.Translate(text)
		default:
			translated, err = r.Translator.TranslateEntry(ctx, key, text)
		}

		outcome := "ok"
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: translating %s: %v\n", key, err)
			translated = Placeholder(text)
			summary.Failed++
			outcome = "error"
		} else {
			summary.Translated++
		}
		results[key] = translated
		fmt.Printf("   -> %s\n", translated)

		if r.OnItem != nil && !r.DryRun {
			r.OnItem(key, outcome, time.Since(start))
		}
	}

	if r.DryRun {
		fmt.Println("DRY RUN - no files were modified")
		return summary, nil
	}

	if _, err := i18n.BackupFile(targetPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
	}
	if err := i18n.Save(targetPath, i18n.Merge(target, results)); err != nil {
		return summary, err
	}
	fmt.Printf("Saved %d translations to %s\n", len(results), targetPath)
	return summary, nil
}
