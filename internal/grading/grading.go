// Package grading checks submitted letters against a question's canonical
// word and assigns attempt-tiered scores.
package grading

import (
	"unicode"

	"github.com/abhisek/wordiz/internal/quizgen"
)

// Verdict is the outcome of a single letter submission.
type Verdict int

const (
	VerdictInvalid  Verdict = iota // rejected without mutation
	VerdictWrong                   // letter does not match; attempt counted
	VerdictAccepted                // letter stored; more positions remain
	VerdictSolved                  // last position filled; question resolved
)

func (v Verdict) String() string {
	switch v {
	case VerdictWrong:
		return "wrong"
	case VerdictAccepted:
		return "accepted"
	case VerdictSolved:
		return "solved"
	default:
		return "invalid"
	}
}

// Point values per tier.
const (
	PointsMax    = 100
	PointsHigh   = 75
	PointsMedium = 50
	PointsMin    = 10
)

// TierFor maps the attempt count at resolution to a score tier.
func TierFor(attempts int) quizgen.Tier {
	switch {
	case attempts <= 1:
		return quizgen.TierMax
	case attempts == 2:
		return quizgen.TierHigh
	case attempts <= 4:
		return quizgen.TierMedium
	default:
		return quizgen.TierMin
	}
}

// PointsFor returns the point value of a tier.
func PointsFor(tier quizgen.Tier) int {
	switch tier {
	case quizgen.TierMax:
		return PointsMax
	case quizgen.TierHigh:
		return PointsHigh
	case quizgen.TierMedium:
		return PointsMedium
	case quizgen.TierMin:
		return PointsMin
	default:
		return 0
	}
}

// Submit checks letter at pos. The input question is never modified; the
// returned question carries any update.
func Submit(q quizgen.Question, pos int, letter rune) (quizgen.Question, Verdict) {
	if q.Resolved() || !unicode.IsLetter(letter) {
		return q, VerdictInvalid
	}
	letters := q.Word.Letters()
	if pos < 0 || pos >= len(letters) || !q.IsMasked(pos) {
		return q, VerdictInvalid
	}
	if _, filled := q.Filled[pos]; filled {
		return q, VerdictInvalid
	}

	next := q.Clone()
	if !matches(letters[pos], letter) {
		next.Attempts++
		return next, VerdictWrong
	}

	next.Filled[pos] = letters[pos]
	if !next.Complete() {
		return next, VerdictAccepted
	}

	next.Attempts++
	if !Check(next) {
		// Unreachable while only matching letters are stored; reset the
		// board so the learner can try again.
		next.Filled = make(map[int]rune)
		return next, VerdictWrong
	}

	next.Status = quizgen.StatusCorrect
	next.Tier = TierFor(next.Attempts)
	next.Points = PointsFor(next.Tier)
	next.Perfect = next.Attempts == 1
	return next, VerdictSolved
}

// Check is the whole-question test: every masked position holds a letter
// that matches the canonical word, ignoring case.
func Check(q quizgen.Question) bool {
	letters := q.Word.Letters()
	for _, p := range q.Masked {
		got, ok := q.Filled[p]
		if !ok || p >= len(letters) || !matches(letters[p], got) {
			return false
		}
	}
	return true
}

func matches(want, got rune) bool {
	return unicode.ToLower(want) == unicode.ToLower(got)
}
