package easyread

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// fallback glossaries used when no glossary file exists for the language.
var fallbackGlossary = map[string][]string{
	"es": {"autocuidado", "bienestar", "emociones"},
	"en": {"self-care", "wellbeing", "emotions"},
}

// Summary counts the outcomes of one run.
type Summary struct {
	Success int
	Issues  int
	Skipped int
}

// Runner walks a language's text entries and writes their easy-read
// variants back into the same table.
type Runner struct {
	Generator        *Generator
	BaseDir          string
	Lang             string
	StartKey, EndKey string // key range bounds like text-8-0, empty = open
	DryRun           bool
	PreserveGlossary bool

	// OnItem, when set, is told about every processed entry.
	OnItem func(key, outcome string, d time.Duration)
}

// Run regenerates the easy-read entries in range. Every source entry in
// range gets an easyread- counterpart, existing ones are overwritten.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	textsPath := i18n.TextsPath(r.BaseDir, r.Lang)
	table, err := i18n.Load(textsPath)
	if err != nil {
		return summary, fmt.Errorf("source file not found or unreadable (expected %s): %w", textsPath, err)
	}

	var glossary []string
	if r.PreserveGlossary {
		glossary = r.loadGlossary()
	}

	results := i18n.Table{}
	for _, raw := range i18n.SortedTextKeys(table) {
		key, _ := i18n.ParseKey(raw)
		in, err := i18n.InKeyRange(key, r.StartKey, r.EndKey)
		if err != nil {
			return summary, err
		}
		if !in {
			summary.Skipped++
			continue
		}

		text := table[raw]
		strategy, reason := Classify(text)
		fmt.Printf("Processing %s: strategy %s (%s)\n", raw, strategy, reason)

		if r.DryRun {
			fmt.Printf("  [dry run] would process %s with %s strategy: %.50s\n", raw, strategy, text)
			summary.Success++
			continue
		}

		start := time.Now()
		easyread, err := r.Generator.Generate(ctx, text, strategy)
		outcome := "ok"
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to simplify %s: %v\n", raw, err)
			easyread = Failed(text)
			outcome = "error"
			summary.Issues++
		} else if r.PreserveGlossary && strategy == StrategyTransform {
			found := FindGlossaryTerms(text, glossary)
			if ok, missing := VerifyGlossaryTerms(text, easyread, found); !ok {
				fmt.Fprintf(os.Stderr, "Warning: %s lost glossary terms: %s\n", raw, strings.Join(missing, ", "))
				outcome = "glossary-miss"
				summary.Issues++
			} else {
				summary.Success++
			}
		} else {
			summary.Success++
		}

		results[i18n.EasyReadKey(raw)] = easyread
		if r.OnItem != nil {
			r.OnItem(raw, outcome, time.Since(start))
		}
	}

	if r.DryRun || len(results) == 0 {
		return summary, nil
	}

	if _, err := i18n.BackupFile(textsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
	}
	if err := i18n.Save(textsPath, i18n.Merge(table, results)); err != nil {
		return summary, err
	}
	fmt.Printf("Saved %d easy-read entries to %s\n", len(results), textsPath)
	return summary, nil
}

func (r *Runner) loadGlossary() []string {
	path := i18n.GlossaryPath(r.BaseDir, r.Lang)
	terms, err := i18n.LoadGlossary(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: glossary not loaded (%v), using fallback terms\n", err)
		if fallback, ok := fallbackGlossary[r.Lang]; ok {
			return fallback
		}
		return fallbackGlossary["en"]
	}
	fmt.Printf("Loaded %d glossary terms from %s\n", len(terms), path)
	return terms
}
