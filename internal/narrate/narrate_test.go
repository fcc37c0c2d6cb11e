package narrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/adtmanual/manualkit/internal/i18n"
)

// fakeSpeaker writes a marker file instead of calling the API.
type fakeSpeaker struct {
	fail  map[string]bool
	calls int
}

func (f *fakeSpeaker) Speak(ctx context.Context, text, outputFile string) error {
	f.calls++
	if f.fail[text] {
		return errors.New("tts error")
	}
	if dir := filepath.Dir(outputFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputFile, []byte("ID3fake"), 0644)
}

func (f *fakeSpeaker) Name() string { return "fake" }

func TestRunner_NarratesAndRecordsMapping(t *testing.T) {
	root := t.TempDir()
	i18nDir := filepath.Join(root, "i18n")
	audioDir := filepath.Join(root, "audio")

	docPath := i18n.TextsPath(i18nDir, "es")
	doc := &i18n.Document{
		Texts: i18n.Table{
			"text-1-0": "Hola.",
			"text-1-1": "Cuídate.",
			"text-5-0": "Fuera de rango.",
		},
		AudioFiles: map[string]string{},
	}
	if err := i18n.SaveDocument(docPath, doc); err != nil {
		t.Fatal(err)
	}

	speaker := &fakeSpeaker{}
	runner := &Runner{
		Speaker:   speaker,
		I18nDir:   i18nDir,
		AudioDir:  audioDir,
		Lang:      "es",
		StartPage: 1,
		EndPage:   1,
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Generated != 2 || summary.Failed != 0 {
		t.Errorf("Summary = %+v", summary)
	}

	loaded, err := i18n.LoadDocument(docPath)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("audio", "es", "text-1-0.mp3")
	if loaded.AudioFiles["text-1-0"] != want {
		t.Errorf("mapping = %q, want %q", loaded.AudioFiles["text-1-0"], want)
	}
	if _, ok := loaded.AudioFiles["text-5-0"]; ok {
		t.Error("out-of-range entry was narrated")
	}
	if _, err := os.Stat(filepath.Join(audioDir, "es", "text-1-1.mp3")); err != nil {
		t.Errorf("audio file missing: %v", err)
	}
}

func TestRunner_SkipsExistingAudio(t *testing.T) {
	root := t.TempDir()
	i18nDir := filepath.Join(root, "i18n")
	audioDir := filepath.Join(root, "audio")

	existing := filepath.Join(audioDir, "es", "text-1-0.mp3")
	if err := os.MkdirAll(filepath.Dir(existing), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("ID3old"), 0644); err != nil {
		t.Fatal(err)
	}

	docPath := i18n.TextsPath(i18nDir, "es")
	doc := &i18n.Document{
		Texts:      i18n.Table{"text-1-0": "Hola."},
		AudioFiles: map[string]string{"text-1-0": filepath.Join("audio", "es", "text-1-0.mp3")},
	}
	if err := i18n.SaveDocument(docPath, doc); err != nil {
		t.Fatal(err)
	}

	speaker := &fakeSpeaker{}
	runner := &Runner{Speaker: speaker, I18nDir: i18nDir, AudioDir: audioDir, Lang: "es"}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || speaker.calls != 0 {
		t.Errorf("Summary = %+v, calls = %d", summary, speaker.calls)
	}

	runner.Force = true
	summary, err = runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Generated != 1 {
		t.Errorf("forced Summary = %+v", summary)
	}
}

func TestRunner_FailuresDoNotAbort(t *testing.T) {
	root := t.TempDir()
	i18nDir := filepath.Join(root, "i18n")

	docPath := i18n.TextsPath(i18nDir, "es")
	doc := &i18n.Document{
		Texts:      i18n.Table{"text-1-0": "falla", "text-1-1": "funciona"},
		AudioFiles: map[string]string{},
	}
	if err := i18n.SaveDocument(docPath, doc); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{
		Speaker:  &fakeSpeaker{fail: map[string]bool{"falla": true}},
		I18nDir:  i18nDir,
		AudioDir: filepath.Join(root, "audio"),
		Lang:     "es",
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Generated != 1 || summary.Failed != 1 {
		t.Errorf("Summary = %+v", summary)
	}

	loaded, _ := i18n.LoadDocument(docPath)
	if _, ok := loaded.AudioFiles["text-1-0"]; ok {
		t.Error("failed entry was recorded in mapping")
	}
}

func TestRunner_BareTableStaysReadable(t *testing.T) {
	root := t.TempDir()
	i18nDir := filepath.Join(root, "i18n")

	docPath := i18n.TextsPath(i18nDir, "es")
	if err := i18n.Save(docPath, i18n.Table{"text-1-0": "Hola"}); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{
		Speaker:  &fakeSpeaker{},
		I18nDir:  i18nDir,
		AudioDir: filepath.Join(root, "audio"),
		Lang:     "es",
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The document now carries the audioFiles wrapper; table readers
	// (translate, easyread, regen, pages) must still see the texts.
	table, err := i18n.Load(docPath)
	if err != nil {
		t.Fatalf("Load after narration failed: %v", err)
	}
	if table["text-1-0"] != "Hola" {
		t.Errorf("Load = %v", table)
	}

	doc, err := i18n.LoadDocument(docPath)
	if err != nil {
		t.Fatal(err)
	}
	if doc.AudioFiles["text-1-0"] == "" {
		t.Errorf("mapping missing: %v", doc.AudioFiles)
	}
}

func TestRunner_BacksUpDocumentBeforeSaving(t *testing.T) {
	root := t.TempDir()
	i18nDir := filepath.Join(root, "i18n")

	docPath := i18n.TextsPath(i18nDir, "es")
	doc := &i18n.Document{
		Texts:      i18n.Table{"text-1-0": "Hola", "text-1-1": "Adiós"},
		AudioFiles: map[string]string{},
	}
	if err := i18n.SaveDocument(docPath, doc); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{
		Speaker:  &fakeSpeaker{},
		I18nDir:  i18nDir,
		AudioDir: filepath.Join(root, "audio"),
		Lang:     "es",
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	backups, err := filepath.Glob(filepath.Join(filepath.Dir(docPath), "archive", "texts.json-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("want one backup of the previous document, got %v", backups)
	}
}

func TestNewOpenAISpeaker_RequiresKey(t *testing.T) {
	if _, err := NewOpenAISpeaker(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestCachePathIsStableAndSharded(t *testing.T) {
	speaker := &OpenAISpeaker{config: Config{
		Model: "tts-1-hd", Voice: "nova", Speed: 1.0, CacheDir: "/tmp/cache",
	}}

	a := speaker.cachePath("hola")
	b := speaker.cachePath("hola")
	if a != b {
		t.Errorf("cache path not stable: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "/tmp/cache/") || !strings.HasSuffix(a, ".mp3") {
		t.Errorf("cache path = %q", a)
	}

	speaker.config.Voice = "alloy"
	if speaker.cachePath("hola") == a {
		t.Error("voice change should change the cache path")
	}
}

// Requires a real API key; skipped in normal test runs.
func TestOpenAISpeaker_Integration(t *testing.T) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	speaker, err := NewOpenAISpeaker(Config{OpenAIKey: key})
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "text-1-0.mp3")
	if err := speaker.Speak(context.Background(), "Cuidarse es importante.", out); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Errorf("no audio written: %v", err)
	}
}
