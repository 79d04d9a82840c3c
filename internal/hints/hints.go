// Package hints reveals a question's answer at a fixed score cost.
package hints

import (
	"github.com/abhisek/wordiz/internal/grading"
	"github.com/abhisek/wordiz/internal/quizgen"
)

// Reveal fills every masked position with its canonical letter and resolves
// the question as correct-via-hint with the minimum score. It returns false
// and the question unchanged if the question is already resolved.
func Reveal(q quizgen.Question) (quizgen.Question, bool) {
	if q.Resolved() {
		return q, false
	}

	next := q.Clone()
	letters := next.Word.Letters()
	for _, p := range next.Masked {
		if p >= 0 && p < len(letters) {
			next.Filled[p] = letters[p]
		}
	}
	next.HintsUsed++
	next.Status = quizgen.StatusCorrectViaHint
	next.Tier = quizgen.TierMin
	next.Points = grading.PointsMin
	next.Perfect = false
	return next, true
}

// Answer returns the canonical letters for q's masked positions.
func Answer(q quizgen.Question) map[int]rune {
	letters := q.Word.Letters()
	out := make(map[int]rune, len(q.Masked))
	for _, p := range q.Masked {
		if p >= 0 && p < len(letters) {
			out[p] = letters[p]
		}
	}
	return out
}
