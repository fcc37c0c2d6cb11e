package readability

import "testing"

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"Hello", 1},
		{"Hello world.", 1},
		{"Hello. Goodbye.", 2},
		{"Wait... what?", 2},
		{"Really?! No way.", 2},
		{"One. Two. Three", 3},
		{"...", 0},
	}
	for _, tt := range tests {
		if got := SentenceCount(tt.text); got != tt.want {
			t.Errorf("SentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("Cuida tu cuerpo, -- (y tu mente).")
	want := []string{"Cuida", "tu", "cuerpo", "y", "tu", "mente"}
	if len(got) != len(want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"make", 1},       // silent e
		{"emociones", 4},
		{"salud", 2},
		{"x", 1}, // floor of one
	}
	for _, tt := range tests {
		if got := SyllableCount(tt.word); got != tt.want {
			t.Errorf("SyllableCount(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestScore_SimplerTextScoresLower(t *testing.T) {
	complexText := "The incorporation of self-care behaviors enhances productivity through the establishment of appropriate boundaries."
	simpleText := "Self-care helps you work better. Set clear limits."

	hard := Score(complexText)
	easy := Score(simpleText)

	if hard.Words == 0 || easy.Words == 0 {
		t.Fatal("Word counts should be non-zero")
	}
	if Improvement(hard, easy) <= 0 {
		t.Errorf("Expected positive improvement, grade %f -> %f", hard.FleschKincaidGrade, easy.FleschKincaidGrade)
	}
	if easy.FleschReadingEase <= hard.FleschReadingEase {
		t.Errorf("Expected higher reading ease for simple text: %f vs %f", easy.FleschReadingEase, hard.FleschReadingEase)
	}
}

func TestScore_Empty(t *testing.T) {
	stats := Score("")
	if stats.Words != 0 || stats.Sentences != 0 || stats.FleschKincaidGrade != 0 {
		t.Errorf("Empty text should score zero: %+v", stats)
	}
}
