package align

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/adtmanual/manualkit/internal/i18n"

	"github.com/sony/gobreaker"
)

func newTestServer(t *testing.T, alignStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/align", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("text") == "" || r.FormValue("language") == "" {
			http.Error(w, "missing fields", http.StatusBadRequest)
			return
		}
		if alignStatus != http.StatusOK {
			http.Error(w, "boom", alignStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"words":[{"word":"hola","start":0.0,"end":0.4}]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFFfake"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClient_Align(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	client, err := NewClient(context.Background(), server.URL, "token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	audio := writeAudio(t, t.TempDir(), "text-1-0.mp3")
	timecodes, err := client.Align(context.Background(), audio, "hola", "spa - Spanish")
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}

	var payload struct {
		Words []struct {
			Word string `json:"word"`
		} `json:"words"`
	}
	if err := json.Unmarshal(timecodes, &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Words) != 1 || payload.Words[0].Word != "hola" {
		t.Errorf("payload = %s", timecodes)
	}
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError)
	client, err := NewClient(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	audio := writeAudio(t, t.TempDir(), "a.mp3")
	for i := 0; i < 5; i++ {
		if _, err := client.Align(context.Background(), audio, "hola", "spa - Spanish"); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err = client.Align(context.Background(), audio, "hola", "spa - Spanish")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want open circuit", err)
	}
}

// fakeAligner lets runner tests control per-key outcomes.
type fakeAligner struct {
	fail map[string]bool
}

func (f *fakeAligner) Align(ctx context.Context, audioPath, text, language string) (json.RawMessage, error) {
	if f.fail[text] {
		return nil, errors.New("alignment error")
	}
	return json.RawMessage(`{"words":[]}`), nil
}

func TestRunner_SavesAfterEachItemAndSkipsMissingAudio(t *testing.T) {
	dir := t.TempDir()

	doc := &i18n.Document{
		Texts: i18n.Table{
			"text-1-0":          "hola",
			"text-1-1":          "adios",
			"text-2-0":          "sin audio",
			"easyread-text-1-0": "no alineado",
		},
		AudioFiles: map[string]string{
			"text-1-0": "audio/text-1-0.mp3",
			"text-1-1": "audio/text-1-1.mp3",
			"text-2-0": "audio/missing.mp3",
		},
	}
	jsonPath := filepath.Join(dir, "texts.json")
	if err := i18n.SaveDocument(jsonPath, doc); err != nil {
		t.Fatal(err)
	}
	audioDir := filepath.Join(dir, "audio")
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeAudio(t, audioDir, "text-1-0.mp3")
	writeAudio(t, audioDir, "text-1-1.mp3")

	outputPath := filepath.Join(dir, "timecodes.json")
	runner := &Runner{
		Client:      &fakeAligner{fail: map[string]bool{"adios": true}},
		JSONPath:    jsonPath,
		AudioFolder: dir,
		OutputPath:  outputPath,
		Language:    "spa - Spanish",
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Aligned != 1 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Errorf("Summary = %+v", summary)
	}

	results, err := LoadResults(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	entry, ok := results["text-1-0"]
	if !ok || entry.Text != "hola" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestRunner_ContinueFromSkipsProcessed(t *testing.T) {
	dir := t.TempDir()

	doc := &i18n.Document{
		Texts:      i18n.Table{"text-1-0": "hola"},
		AudioFiles: map[string]string{"text-1-0": "text-1-0.mp3"},
	}
	jsonPath := filepath.Join(dir, "texts.json")
	if err := i18n.SaveDocument(jsonPath, doc); err != nil {
		t.Fatal(err)
	}
	writeAudio(t, dir, "text-1-0.mp3")

	outputPath := filepath.Join(dir, "timecodes.json")
	existing := Results{"text-1-0": {Text: "hola", Audio: "x", Timecodes: json.RawMessage(`{}`)}}
	if err := SaveResults(outputPath, existing); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{
		Client:       &fakeAligner{fail: map[string]bool{"hola": true}}, // would fail if called
		JSONPath:     jsonPath,
		AudioFolder:  dir,
		OutputPath:   outputPath,
		Language:     "spa - Spanish",
		ContinueFrom: true,
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Failed != 0 {
		t.Errorf("Summary = %+v", summary)
	}
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"text-1-0.json": `{"text-1-0": {"text": "hola", "audio": "a.mp3", "timecodes": {}}}`,
		"text-1-1.json": `{"text-1-1": {"text": "adiós", "audio": "b.mp3", "timecodes": {}}}`,
		"broken.json":   `not json`,
		"notes.txt":     `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	outputPath := filepath.Join(dir, "combined.json")
	count, err := Combine(dir, outputPath)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	var combined map[string]json.RawMessage
	if err := json.Unmarshal(data, &combined); err != nil {
		t.Fatal(err)
	}
	if len(combined) != 2 {
		t.Errorf("combined keys = %d, want 2", len(combined))
	}
}

func TestCombine_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := Combine(dir, filepath.Join(dir, "out.json")); err == nil {
		t.Error("expected error for empty directory")
	}
}
