package i18n

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		raw   string
		kind  Kind
		page  int
		index int
		ok    bool
	}{
		{"text-8-0", KindText, 8, 0, true},
		{"text-0-0", KindText, 0, 0, true},
		{"text-39-12", KindText, 39, 12, true},
		{"easyread-text-6-3", KindEasyRead, 6, 3, true},
		{"sectioneli5-10-1", KindELI5, 10, 1, true},
		{"img-12-4", KindImage, 12, 4, true},
		{"text-8", KindUnknown, 0, 0, false},
		{"text-8-0-extra", KindUnknown, 0, 0, false},
		{"text-a-b", KindUnknown, 0, 0, false},
		{"heading-8-0", KindUnknown, 0, 0, false},
		{"", KindUnknown, 0, 0, false},
	}

	for _, tt := range tests {
		key, ok := ParseKey(tt.raw)
		if ok != tt.ok {
			t.Errorf("ParseKey(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if key.Kind != tt.kind || key.Page != tt.page || key.Index != tt.index {
			t.Errorf("ParseKey(%q) = %+v, want kind=%v page=%d index=%d",
				tt.raw, key, tt.kind, tt.page, tt.index)
		}
	}
}

func TestIsTextKey(t *testing.T) {
	if !IsTextKey("text-3-7") {
		t.Error("Expected text-3-7 to be a translatable text key")
	}
	if IsTextKey("easyread-text-3-7") {
		t.Error("Expected easyread-text-3-7 not to be a source text key")
	}
	if IsTextKey("img-3-7") {
		t.Error("Expected img-3-7 not to be a source text key")
	}
}

func TestDerivedKeys(t *testing.T) {
	if got := EasyReadKey("text-10-2"); got != "easyread-text-10-2" {
		t.Errorf("EasyReadKey = %q", got)
	}
	if got := ELI5Key("text-10-2"); got != "sectioneli5-10-2" {
		t.Errorf("ELI5Key = %q", got)
	}
}

func TestInKeyRange(t *testing.T) {
	tests := []struct {
		raw, start, end string
		want            bool
	}{
		{"text-10-0", "text-8-0", "text-12-5", true},
		{"text-8-0", "text-8-0", "text-12-5", true},
		{"text-12-5", "text-8-0", "text-12-5", true},
		{"text-12-6", "text-8-0", "text-12-5", false},
		{"text-7-9", "text-8-0", "text-12-5", false},
		{"text-8-1", "text-8-0", "", true},
		{"text-7-9", "text-8-0", "", false},
		{"text-3-0", "", "text-12-5", true},
		{"text-13-0", "", "text-12-5", false},
		{"text-99-99", "", "", true},
	}

	for _, tt := range tests {
		key, ok := ParseKey(tt.raw)
		if !ok {
			t.Fatalf("bad test key %q", tt.raw)
		}
		got, err := InKeyRange(key, tt.start, tt.end)
		if err != nil {
			t.Fatalf("InKeyRange(%q, %q, %q) error: %v", tt.raw, tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("InKeyRange(%q, %q, %q) = %v, want %v", tt.raw, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestInKeyRange_InvalidBound(t *testing.T) {
	key, _ := ParseKey("text-1-1")
	if _, err := InKeyRange(key, "nonsense", ""); err == nil {
		t.Error("Expected error for invalid start key")
	}
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"text": KindText, "easyread": KindEasyRead,
		"eli5": KindELI5, "img": KindImage,
	} {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}
