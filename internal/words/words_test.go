package words

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestVowelPositions(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"pizza", []int{1, 4}},
		{"Apple", []int{0, 4}},
		{"sky", nil},
		{"rhythm", nil},
		{"kangaroo", []int{1, 4, 6, 7}},
		{"QUEUE", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := VowelPositions(tt.text)
		if !slices.Equal(got, tt.want) {
			t.Errorf("VowelPositions(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSeedCorpus(t *testing.T) {
	c := Seed()
	if c.Len() == 0 {
		t.Fatal("seed corpus is empty")
	}
	for _, w := range c.All() {
		if !w.Difficulty.Valid() {
			t.Errorf("word %q has invalid difficulty %q", w.ID, w.Difficulty)
		}
		if w.Text == "" || w.Category == "" {
			t.Errorf("word %q is missing text or category", w.ID)
		}
	}

	w, err := c.Get("pizza")
	if err != nil {
		t.Fatalf("Get(pizza): %v", err)
	}
	if w.Difficulty != DifficultyMedium {
		t.Errorf("pizza difficulty = %q, want %q", w.Difficulty, DifficultyMedium)
	}
}

func TestCorpus_GetUnknown(t *testing.T) {
	_, err := Seed().Get("does-not-exist")
	if !errors.Is(err, ErrUnknownWord) {
		t.Errorf("err = %v, want ErrUnknownWord", err)
	}
}

func TestCorpus_Filter(t *testing.T) {
	c := Seed()

	for _, w := range c.Filter("food", "") {
		if w.Category != "food" {
			t.Errorf("Filter(food) returned %q in %q", w.ID, w.Category)
		}
	}
	for _, w := range c.Filter("", "hard") {
		if w.Difficulty != DifficultyHard {
			t.Errorf("Filter(hard) returned %q with %q", w.ID, w.Difficulty)
		}
	}
	if got, want := len(c.Filter("", DifficultyMixed)), c.Len(); got != want {
		t.Errorf("Filter(mixed) = %d words, want %d", got, want)
	}
	if got := c.Filter("no-such-category", ""); len(got) != 0 {
		t.Errorf("Filter(unknown) = %d words, want 0", len(got))
	}
}

func TestNewCorpus_Rejects(t *testing.T) {
	_, err := NewCorpus([]Word{
		{ID: "a", Text: "a", Category: "x", Difficulty: DifficultyEasy},
		{ID: "a", Text: "a", Category: "x", Difficulty: DifficultyEasy},
	})
	if err == nil {
		t.Error("expected duplicate id error")
	}

	_, err = NewCorpus([]Word{{ID: "a", Text: "a", Category: "x", Difficulty: "impossible"}})
	if err == nil {
		t.Error("expected invalid difficulty error")
	}
}

func TestParse_Valid(t *testing.T) {
	raw := []byte(`{"words":[
		{"id":"boat","text":"boat","category":"travel","difficulty":"easy"},
		{"id":"airplane","text":"airplane","category":"travel","difficulty":"hard"}
	]}`)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if cats := c.Categories(); !slices.Equal(cats, []string{"travel"}) {
		t.Errorf("Categories = %v, want [travel]", cats)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing words", `{}`},
		{"empty words", `{"words":[]}`},
		{"bad difficulty", `{"words":[{"id":"a","text":"ant","category":"x","difficulty":"extreme"}]}`},
		{"non-letter text", `{"words":[{"id":"a","text":"ice cream","category":"x","difficulty":"easy"}]}`},
		{"missing id", `{"words":[{"text":"ant","category":"x","difficulty":"easy"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	raw := `{"words":[{"id":"moon","text":"moon","category":"space","difficulty":"easy"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := c.Get("moon"); err != nil {
		t.Errorf("Get(moon): %v", err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
