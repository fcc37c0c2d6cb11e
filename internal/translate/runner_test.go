package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
	"codeberg.org/adtmanual/manualkit/internal/testutil"
)

func newRunner(t *testing.T, fake *testutil.FakeChatProvider, source i18n.Table) (*Runner, string) {
	t.Helper()
	i18nDir := t.TempDir()
	if err := i18n.Save(i18n.TextsPath(i18nDir, "es"), source); err != nil {
		t.Fatal(err)
	}
	translator := NewTranslator(fake, Options{SourceLang: "es", TargetLang: "en"})
	return &Runner{
		Translator: translator,
		I18nDir:    i18nDir,
		StartPage:  1,
		EndPage:    2,
	}, i18nDir
}

func TestRunner_TranslatesPageRange(t *testing.T) {
	fake := &testutil.FakeChatProvider{Default: "Self-care matters."}
	runner, i18nDir := newRunner(t, fake, i18n.Table{
		"text-1-0": "El autocuidado importa.",
		"text-2-0": "Dormir bien.",
		"text-5-0": "Fuera de rango.",
	})

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Translated != 2 || summary.Failed != 0 {
		t.Errorf("Summary = %+v", summary)
	}

	target, err := i18n.Load(i18n.TextsPath(i18nDir, "en"))
	if err != nil {
		t.Fatal(err)
	}
	if target["text-1-0"] != "Self-care matters." {
		t.Errorf("text-1-0 = %q", target["text-1-0"])
	}
	if _, ok := target["text-5-0"]; ok {
		t.Error("out-of-range entry was translated")
	}
}

func TestRunner_FailuresBecomePlaceholders(t *testing.T) {
	fake := &testutil.FakeChatProvider{Err: errors.New("api down")}
	runner, i18nDir := newRunner(t, fake, i18n.Table{"text-1-0": "Hola."})

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Summary = %+v", summary)
	}

	target, _ := i18n.Load(i18n.TextsPath(i18nDir, "en"))
	if !IsPlaceholder(target["text-1-0"]) {
		t.Errorf("entry = %q, want placeholder", target["text-1-0"])
	}
}

func TestRunner_DryRunSavesNothing(t *testing.T) {
	fake := &testutil.FakeChatProvider{}
	runner, i18nDir := newRunner(t, fake, i18n.Table{"text-1-0": "Hola."})
	runner.DryRun = true

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.CallCount() != 0 {
		t.Errorf("dry run made %d API calls", fake.CallCount())
	}

	target, err := i18n.LoadOrEmpty(i18n.TextsPath(i18nDir, "en"))
	if err != nil {
		t.Fatal(err)
	}
	if len(target) != 0 {
		t.Errorf("dry run wrote entries: %v", target)
	}
}

func TestRunner_OfflineTranslator(t *testing.T) {
	fake := &testutil.FakeChatProvider{}
	runner, i18nDir := newRunner(t, fake, i18n.Table{"text-1-0": "El autocuidado es importante"})
	runner.Offline = NewOfflineTranslator()

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Translated != 1 {
		t.Errorf("Summary = %+v", summary)
	}
	if fake.CallCount() != 0 {
		t.Errorf("offline run made %d API calls", fake.CallCount())
	}

	target, _ := i18n.Load(i18n.TextsPath(i18nDir, "en"))
	if !strings.Contains(target["text-1-0"], "self-care") {
		t.Errorf("offline translation = %q", target["text-1-0"])
	}
}

func TestRunner_EmptyRange(t *testing.T) {
	runner, _ := newRunner(t, &testutil.FakeChatProvider{}, i18n.Table{"text-9-0": "Hola."})
	if _, err := runner.Run(context.Background()); err == nil {
		t.Error("expected error for empty page range")
	}
}

func TestRunner_SeedsContextFromExistingTarget(t *testing.T) {
	fake := &testutil.FakeChatProvider{Default: "Next."}
	runner, i18nDir := newRunner(t, fake, i18n.Table{
		"text-1-0": "Primero.",
		"text-1-1": "Segundo.",
	})
	if err := i18n.Save(i18n.TextsPath(i18nDir, "en"), i18n.Table{"text-1-0": "First."}); err != nil {
		t.Fatal(err)
	}
	runner.StartPage, runner.EndPage = 1, 1

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	// The seeded pair shows up in the prompt of subsequent calls.
	found := false
	for _, call := range fake.Calls {
		if strings.Contains(call.Prompt, "First.") {
			found = true
		}
	}
	if !found {
		t.Error("existing translation was not used as context")
	}
}
