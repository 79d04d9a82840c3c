package hints

import (
	"testing"

	"github.com/abhisek/wordiz/internal/grading"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/words"
)

func bananaQuestion() quizgen.Question {
	return quizgen.Question{
		ID:     "q01-banana",
		Word:   words.Word{ID: "banana", Text: "banana", Category: "food", Difficulty: words.DifficultyHard},
		Masked: []int{1, 3, 5},
		Filled: make(map[int]rune),
		Status: quizgen.StatusUnresolved,
	}
}

func TestReveal_RoundTrip(t *testing.T) {
	starts := []quizgen.Question{bananaQuestion()}

	// After a wrong attempt and a partial fill.
	q := bananaQuestion()
	q, _ = grading.Submit(q, 1, 'o')
	q, _ = grading.Submit(q, 1, 'a')
	starts = append(starts, q)

	for i, start := range starts {
		got, ok := Reveal(start)
		if !ok {
			t.Fatalf("case %d: Reveal returned false", i)
		}
		if got.Status != quizgen.StatusCorrectViaHint {
			t.Errorf("case %d: status = %q, want correct-via-hint", i, got.Status)
		}
		if got.Perfect {
			t.Errorf("case %d: perfect = true", i)
		}
		if got.Tier != quizgen.TierMin || got.Points != grading.PointsMin {
			t.Errorf("case %d: tier=%q points=%d, want min/%d", i, got.Tier, got.Points, grading.PointsMin)
		}
		if got.HintsUsed != start.HintsUsed+1 {
			t.Errorf("case %d: hints used = %d, want %d", i, got.HintsUsed, start.HintsUsed+1)
		}
		if got.Display('_') != "banana" {
			t.Errorf("case %d: display = %q, want banana", i, got.Display('_'))
		}
		if got.Attempts != start.Attempts {
			t.Errorf("case %d: attempts changed from %d to %d", i, start.Attempts, got.Attempts)
		}
	}
}

func TestReveal_DoesNotMutateInput(t *testing.T) {
	q := bananaQuestion()
	_, _ = Reveal(q)
	if len(q.Filled) != 0 || q.Resolved() {
		t.Error("Reveal mutated its input")
	}
}

func TestReveal_ResolvedIsNoop(t *testing.T) {
	q := bananaQuestion()
	q, _ = Reveal(q)

	again, ok := Reveal(q)
	if ok {
		t.Error("second Reveal returned true")
	}
	if again.HintsUsed != 1 {
		t.Errorf("hints used = %d, want 1", again.HintsUsed)
	}

	solved := bananaQuestion()
	solved.Masked = []int{1}
	solved, _ = grading.Submit(solved, 1, 'a')
	after, ok := Reveal(solved)
	if ok || after.Status != quizgen.StatusCorrect || !after.Perfect {
		t.Errorf("Reveal changed a graded question: ok=%v status=%q perfect=%v", ok, after.Status, after.Perfect)
	}
}

func TestAnswer(t *testing.T) {
	got := Answer(bananaQuestion())
	for _, p := range []int{1, 3, 5} {
		if got[p] != 'a' {
			t.Errorf("Answer[%d] = %q, want 'a'", p, got[p])
		}
	}
}
