package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordsRunsAndItems(t *testing.T) {
	j := openTestJournal(t)

	if err := j.BeginRun("easyread", "es", "gpt-4o"); err != nil {
		t.Fatal(err)
	}
	record := j.Recorder()
	record("text-1-0", "ok", 1200*time.Millisecond)
	record("text-1-1", "ok", 900*time.Millisecond)
	record("text-1-2", "error", 300*time.Millisecond)

	if err := j.BeginRun("translate", "en", "gpt-4o"); err != nil {
		t.Fatal(err)
	}
	record = j.Recorder()
	record("text-2-0", "ok", 100*time.Millisecond)

	runs, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent returned %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].Command != "translate" || runs[0].Succeeded != 1 || runs[0].Failed != 0 {
		t.Errorf("runs[0] = %+v", runs[0])
	}
	if runs[1].Command != "easyread" || runs[1].Succeeded != 2 || runs[1].Failed != 1 {
		t.Errorf("runs[1] = %+v", runs[1])
	}
	if runs[1].Lang != "es" {
		t.Errorf("lang = %q", runs[1].Lang)
	}
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.BeginRun("eli5", "es", "gpt-4o"); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := j.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("Recent(3) returned %d runs", len(runs))
	}
}

func TestJournal_RecordWithoutRun(t *testing.T) {
	j := openTestJournal(t)
	if err := j.RecordItem("text-1-0", "ok", time.Second); err == nil {
		t.Error("expected error when no run was begun")
	}
}
