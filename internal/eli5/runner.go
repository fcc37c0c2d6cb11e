package eli5

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/htmlscan"
	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// Summary counts the outcomes of one run.
type Summary struct {
	Pages     int
	Generated int
	Skipped   int
	Failed    int
}

// Runner scans the manual's HTML pages and writes one sectioneli5
// entry per page and language into the i18n tables.
type Runner struct {
	Generator *Generator
	I18nDir   string   // root of the per-language texts.json tree
	PagesDir  string   // directory holding the HTML pages
	Langs     []string // defaults to es and en
	Force     bool     // regenerate entries that already exist

	OnItem func(key, outcome string, d time.Duration)
}

// Run processes every page for every language. Existing explanations
// are kept unless Force is set. Tables are saved once at the end.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	langs := r.Langs
	if len(langs) == 0 {
		langs = []string{"es", "en"}
	}

	tables := make(map[string]i18n.Table, len(langs))
	for _, lang := range langs {
		path := i18n.TextsPath(r.I18nDir, lang)
		table, err := i18n.LoadOrEmpty(path)
		if err != nil {
			return summary, err
		}
		fmt.Printf("Loaded %s table: %d entries\n", lang, len(table))
		tables[lang] = table
	}

	pages, err := htmlscan.FindPages(r.PagesDir)
	if err != nil {
		return summary, err
	}
	if len(pages) == 0 {
		return summary, fmt.Errorf("no HTML pages found in %s", r.PagesDir)
	}
	summary.Pages = len(pages)
	fmt.Printf("Found %d HTML pages in %s\n", len(pages), r.PagesDir)

	updated := map[string]bool{}
	for _, page := range pages {
		key := "sectioneli5-" + page.SectionID
		fmt.Printf("\nProcessing %s (section %s)\n", page.Path, page.SectionID)

		ids, err := htmlscan.DataIDs(page.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			summary.Failed++
			continue
		}

		for _, lang := range langs {
			table := tables[lang]
			if _, exists := table[key]; exists && !r.Force {
				fmt.Printf("  %s already present for %s, skipping\n", key, lang)
				summary.Skipped++
				continue
			}

			text := sectionText(ids, table)
			if text == "" {
				fmt.Printf("  no %s text content for section %s\n", lang, page.SectionID)
				summary.Skipped++
				continue
			}

			start := time.Now()
			explanation, err := r.Generator.Generate(ctx, text, page.SectionID, lang)
			outcome := "ok"
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: section %s (%s): %v\n", page.SectionID, lang, err)
				summary.Failed++
				outcome = "error"
			} else {
				table[key] = explanation
				updated[lang] = true
				summary.Generated++
				fmt.Printf("  generated %s %s: %.60s\n", lang, key, explanation)
			}
			if r.OnItem != nil {
				r.OnItem(key, outcome, time.Since(start))
			}
		}
	}

	for _, lang := range langs {
		if !updated[lang] {
			continue
		}
		path := i18n.TextsPath(r.I18nDir, lang)
		if _, err := i18n.BackupFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
		}
		if err := i18n.Save(path, tables[lang]); err != nil {
			return summary, err
		}
		fmt.Printf("Updated %s\n", path)
	}

	return summary, nil
}

// sectionText joins the page's text entries in document order. Only
// plain text- keys contribute; easy-read and image entries do not.
func sectionText(dataIDs []string, table i18n.Table) string {
	var parts []string
	for _, id := range dataIDs {
		if !strings.HasPrefix(id, "text-") {
			continue
		}
		if text := strings.TrimSpace(table[id]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
