package quizgen

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/abhisek/wordiz/internal/words"
)

func testCorpus(t *testing.T, ws ...words.Word) *words.Corpus {
	t.Helper()
	c, err := words.NewCorpus(ws)
	if err != nil {
		t.Fatalf("NewCorpus: %v", err)
	}
	return c
}

func word(id, cat string, d words.Difficulty) words.Word {
	return words.Word{ID: id, Text: id, Category: cat, Difficulty: d}
}

func TestMaskCount(t *testing.T) {
	tests := []struct {
		mode Mode
		n    int
		want int
	}{
		{ModePractice, 1, 1},
		{ModePractice, 4, 1},
		{ModeChallenge, 1, 1},
		{ModeChallenge, 2, 2},
		{ModeChallenge, 5, 2},
		{ModeTimed, 2, 2},
		{ModeTimed, 4, 3},
		{ModeCustom, 1, 1},
		{ModeCustom, 3, 3},
		{Mode("unknown"), 3, 1},
		{ModeTimed, 0, 0},
	}
	for _, tt := range tests {
		if got := DefaultCaps.MaskCount(tt.mode, tt.n); got != tt.want {
			t.Errorf("MaskCount(%s, %d) = %d, want %d", tt.mode, tt.n, got, tt.want)
		}
	}
}

func TestCapTable_Extension(t *testing.T) {
	caps := CapTable{Mode("all"): func(n int) int { return n }}
	if got := caps.MaskCount(Mode("all"), 4); got != 4 {
		t.Errorf("MaskCount(all, 4) = %d, want 4", got)
	}
	if got := caps.MaskCount(Mode("all"), 4); got > 4 {
		t.Errorf("cap exceeds maskable count: %d", got)
	}
}

func TestGenerate_QuestionInvariants(t *testing.T) {
	corpus := words.Seed()
	for _, mode := range AllModes() {
		for seed := uint64(0); seed < 20; seed++ {
			g := NewSeeded(seed, 7)
			qs := g.Generate(corpus, Request{Count: 50, Mode: mode, Difficulty: words.DifficultyMixed})
			for _, q := range qs {
				vowels := words.VowelPositions(q.Word.Text)
				if len(q.Masked) == 0 {
					t.Fatalf("%s: empty mask for %q", mode, q.Word.Text)
				}
				if want := DefaultCaps.MaskCount(mode, len(vowels)); len(q.Masked) != want {
					t.Errorf("%s %q: |masked| = %d, want %d", mode, q.Word.Text, len(q.Masked), want)
				}
				if !slices.IsSorted(q.Masked) {
					t.Errorf("%s %q: masked %v not sorted", mode, q.Word.Text, q.Masked)
				}
				for _, p := range q.Masked {
					if !slices.Contains(vowels, p) {
						t.Errorf("%s %q: masked position %d is not a vowel", mode, q.Word.Text, p)
					}
				}
				if q.Attempts != 0 || q.Status != StatusUnresolved || len(q.Filled) != 0 {
					t.Errorf("%s %q: question not fresh: %+v", mode, q.Word.Text, q)
				}
			}
		}
	}
}

func TestGenerate_ExcludesVowelless(t *testing.T) {
	corpus := testCorpus(t,
		word("sky", "x", words.DifficultyEasy),
		word("hmm", "x", words.DifficultyEasy),
		word("cat", "x", words.DifficultyEasy),
	)
	qs := NewSeeded(1, 2).Generate(corpus, Request{Count: 10, Mode: ModePractice})
	if len(qs) != 1 {
		t.Fatalf("len = %d, want 1", len(qs))
	}
	if qs[0].Word.ID != "cat" {
		t.Errorf("word = %q, want cat", qs[0].Word.ID)
	}
}

// Scenario D: a corpus with 3 eligible words and a request for 10.
func TestGenerate_ShortCorpus(t *testing.T) {
	corpus := testCorpus(t,
		word("apple", "food", words.DifficultyEasy),
		word("egg", "food", words.DifficultyEasy),
		word("jam", "food", words.DifficultyEasy),
		word("shh", "food", words.DifficultyEasy),
	)
	qs := NewSeeded(3, 4).Generate(corpus, Request{Count: 10, Mode: ModeChallenge})
	if len(qs) != 3 {
		t.Fatalf("len = %d, want 3", len(qs))
	}
	seen := make(map[string]bool)
	for _, q := range qs {
		if seen[q.Word.ID] {
			t.Errorf("duplicate word %q", q.Word.ID)
		}
		seen[q.Word.ID] = true
	}
}

func TestGenerate_Filters(t *testing.T) {
	corpus := words.Seed()
	qs := NewSeeded(5, 6).Generate(corpus, Request{Category: "animals", Difficulty: "hard", Count: 100, Mode: ModeTimed})
	if len(qs) == 0 {
		t.Fatal("expected questions")
	}
	for _, q := range qs {
		if q.Word.Category != "animals" || q.Word.Difficulty != words.DifficultyHard {
			t.Errorf("word %q (%s/%s) does not match filter", q.Word.ID, q.Word.Category, q.Word.Difficulty)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	corpus := words.Seed()
	req := Request{Count: 8, Mode: ModeTimed}
	a := NewSeeded(42, 42).Generate(corpus, req)
	b := NewSeeded(42, 42).Generate(corpus, req)
	if len(a) != len(b) {
		t.Fatalf("len %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Word.ID != b[i].Word.ID || !slices.Equal(a[i].Masked, b[i].Masked) {
			t.Errorf("question %d differs: %s%v vs %s%v", i, a[i].Word.ID, a[i].Masked, b[i].Word.ID, b[i].Masked)
		}
	}
}

// Scenario A setup: practice mode masks exactly one of pizza's vowels.
func TestGenerate_PizzaPractice(t *testing.T) {
	corpus := testCorpus(t, word("pizza", "food", words.DifficultyMedium))
	for seed := uint64(0); seed < 10; seed++ {
		g := New(rand.New(rand.NewPCG(seed, seed)), nil)
		qs := g.Generate(corpus, Request{Count: 1, Mode: ModePractice})
		if len(qs) != 1 {
			t.Fatalf("len = %d, want 1", len(qs))
		}
		m := qs[0].Masked
		if len(m) != 1 || (m[0] != 1 && m[0] != 4) {
			t.Errorf("masked = %v, want one of {1} or {4}", m)
		}
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	if qs := NewSeeded(1, 1).Generate(words.Seed(), Request{Count: 0, Mode: ModePractice}); qs != nil {
		t.Errorf("expected nil for zero count, got %d", len(qs))
	}
}

func TestQuestion_CloneIsDeep(t *testing.T) {
	q, ok := NewSeeded(1, 1).ForWord(word("banana", "food", words.DifficultyHard), ModeTimed)
	if !ok {
		t.Fatal("ForWord returned false")
	}
	c := q.Clone()
	c.Filled[c.Masked[0]] = 'a'
	c.Masked[0] = 99
	if len(q.Filled) != 0 {
		t.Error("clone shares Filled map")
	}
	if q.Masked[0] == 99 {
		t.Error("clone shares Masked slice")
	}
}

func TestQuestion_Display(t *testing.T) {
	q := Question{
		Word:   word("pizza", "food", words.DifficultyMedium),
		Masked: []int{1, 4},
		Filled: map[int]rune{1: 'i'},
	}
	if got := q.Display('_'); got != "pizz_" {
		t.Errorf("Display = %q, want %q", got, "pizz_")
	}
	if got := q.NextEmpty(); got != 4 {
		t.Errorf("NextEmpty = %d, want 4", got)
	}
	if q.Complete() {
		t.Error("Complete = true, want false")
	}
}
