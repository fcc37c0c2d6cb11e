package alttext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/htmlscan"
	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// Summary counts the outcomes of one run.
type Summary struct {
	Images         int
	Generated      int
	Skipped        int
	Failed         int
	AttrsRemoved   int
	PagesRewritten int
}

// Runner scans the manual's pages for images and fills in missing alt
// text descriptions. Pages whose images already have descriptions get
// their redundant aria attributes stripped.
type Runner struct {
	Generator *Generator
	I18nDir   string
	PagesDir  string
	Langs     []string // defaults to es and en
	Force     bool

	OnItem func(key, outcome string, d time.Duration)
}

// Run processes every page. Tables are saved once at the end.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	langs := r.Langs
	if len(langs) == 0 {
		langs = []string{"es", "en"}
	}

	tables := make(map[string]i18n.Table, len(langs))
	for _, lang := range langs {
		table, err := i18n.LoadOrEmpty(i18n.TextsPath(r.I18nDir, lang))
		if err != nil {
			return summary, err
		}
		tables[lang] = table
	}

	pages, err := htmlscan.FindPages(r.PagesDir)
	if err != nil {
		return summary, err
	}

	described := func(dataID string) bool {
		for _, table := range tables {
			if _, ok := table[dataID]; ok {
				return true
			}
		}
		return false
	}

	updated := map[string]bool{}
	for _, page := range pages {
		images, err := htmlscan.Images(page.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		if len(images) == 0 {
			continue
		}
		fmt.Printf("\nProcessing %s: %d images\n", page.Path, len(images))

		// Attributes are stripped only for descriptions that existed
		// before this run; fresh ones get their attrs cleaned up on
		// the next pass, once the descriptions are known good.
		preexisting := map[string]bool{}
		for _, img := range images {
			if img.DataID != "" && described(img.DataID) {
				preexisting[img.DataID] = true
			}
		}

		for _, img := range images {
			if img.DataID == "" {
				continue
			}
			summary.Images++

			if described(img.DataID) && !r.Force {
				fmt.Printf("  %s already described, skipping\n", img.DataID)
				summary.Skipped++
				continue
			}

			dataURL, err := EncodeImage(img.Src, filepath.Dir(page.Path))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				summary.Failed++
				continue
			}

			for _, lang := range langs {
				pageContext := PageContext(img.DataID, tables[lang])
				start := time.Now()
				description, err := r.Generator.Generate(ctx, dataURL, pageContext, lang)
				outcome := "ok"
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: %s (%s): %v\n", img.DataID, lang, err)
					summary.Failed++
					outcome = "error"
				} else {
					tables[lang][img.DataID] = description
					updated[lang] = true
					summary.Generated++
					fmt.Printf("  %s (%s): %s\n", img.DataID, lang, description)
				}
				if r.OnItem != nil {
					r.OnItem(img.DataID, outcome, time.Since(start))
				}
			}
		}

		removed, err := htmlscan.StripImageAttrs(page.Path, func(dataID string) bool {
			return preexisting[dataID]
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		if removed > 0 {
			summary.AttrsRemoved += removed
			summary.PagesRewritten++
			fmt.Printf("  removed %d redundant attributes from %s\n", removed, page.Path)
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
