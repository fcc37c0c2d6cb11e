// Package regen batch-regenerates derived entries (easy-read, ELI5)
// with bounded concurrency.
package regen

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
	"codeberg.org/adtmanual/manualkit/internal/llm"
)

// DefaultConcurrency caps in-flight API calls per language/type pair.
const DefaultConcurrency = 10

// Summary counts the outcomes of one run across all pairs.
type Summary struct {
	Success int
	Failed  int
}

// Runner regenerates derived entries for a page range, one language and
// content type pair at a time, fanning the pair's entries out to the
// API with a bounded number of in-flight calls.
type Runner struct {
	Provider    llm.Provider
	I18nDir     string
	StartPage   int
	EndPage     int
	Langs       []string
	Types       []ContentType
	Concurrency int // defaults to DefaultConcurrency

	OnItem func(key, outcome string, d time.Duration)
}

type itemResult struct {
	key      string
	text     string
	err      error
	duration time.Duration
}

// Run processes every language/type pair. Successes are merged and
// saved once per pair; failures are logged and counted, never retried.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	for _, lang := range r.Langs {
		for _, contentType := range r.Types {
			success, failed, err := r.runPair(ctx, lang, contentType, concurrency)
			if err != nil {
				return summary, err
			}
			summary.Success += success
			summary.Failed += failed
		}
	}
	return summary, nil
}

func (r *Runner) runPair(ctx context.Context, lang string, contentType ContentType, concurrency int) (int, int, error) {
	path := i18n.TextsPath(r.I18nDir, lang)
	table, err := i18n.Load(path)
	if err != nil {
		return 0, 0, err
	}

	targets := r.targetEntries(table, contentType)
	if len(targets) == 0 {
		fmt.Printf("No texts found for pages %d-%d in %s, type %s\n",
			r.StartPage, r.EndPage, lang, contentType)
		return 0, 0, nil
	}
	fmt.Printf("Regenerating %d %s entries for %s (pages %d-%d)\n",
		len(targets), contentType, lang, r.StartPage, r.EndPage)

	sem := make(chan struct{}, concurrency)
	results := make(chan itemResult, len(targets))
	var wg sync.WaitGroup

	for targetKey, sourceText := range targets {
		wg.Add(1)
		go func(key, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			generated, err := r.Provider.Complete(ctx, llm.Request{
				System:      systemPrompt(contentType, lang),
				Prompt:      userPrompt(text, contentType, lang),
				MaxTokens:   1000,
				Temperature: 0.5,
			})
			results <- itemResult{key: key, text: strings.TrimSpace(generated), err: err, duration: time.Since(start)}
		}(targetKey, sourceText)
	}

	wg.Wait()
	close(results)

	generated := i18n.Table{}
	failed := 0
	for result := range results {
		outcome := "ok"
		switch {
		case result.err != nil:
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", result.key, result.err)
			failed++
			outcome = "error"
		case result.text == "":
			fmt.Fprintf(os.Stderr, "Warning: empty response for %s\n", result.key)
			failed++
			outcome = "empty"
		default:
			generated[result.key] = result.text
		}
		if r.OnItem != nil {
			r.OnItem(result.key, outcome, result.duration)
		}
	}

	if len(generated) > 0 {
		if _, err := i18n.BackupFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
		}
		if err := i18n.Save(path, i18n.Merge(table, generated)); err != nil {
			return len(generated), failed, err
		}
	}
	fmt.Printf("Completed %s %s: %d successful, %d failed\n", lang, contentType, len(generated), failed)
	return len(generated), failed, nil
}

// targetEntries maps each in-range text- key's derived target key to
// its source text.
func (r *Runner) targetEntries(table i18n.Table, contentType ContentType) map[string]string {
	source := i18n.FilterPageRange(table, i18n.KindText, r.StartPage, r.EndPage)

	targets := make(map[string]string, len(source))
	for key, text := range source {
		if strings.TrimSpace(text) == "" {
			continue
		}
		switch contentType {
		case TypeEasyRead:
			targets[i18n.EasyReadKey(key)] = text
		case TypeELI5:
			targets[i18n.ELI5Key(key)] = text
		}
	}
	return targets
}
