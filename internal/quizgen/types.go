package quizgen

import (
	"maps"
	"slices"

	"github.com/abhisek/wordiz/internal/words"
)

// Mode selects a quiz variant.
type Mode string

const (
	ModePractice  Mode = "practice"
	ModeChallenge Mode = "challenge"
	ModeTimed     Mode = "timed"
	ModeCustom    Mode = "custom"
)

// AllModes returns all modes in display order.
func AllModes() []Mode {
	return []Mode{ModePractice, ModeChallenge, ModeTimed, ModeCustom}
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModePractice:
		return "Practice"
	case ModeChallenge:
		return "Challenge"
	case ModeTimed:
		return "Timed Run"
	case ModeCustom:
		return "Custom"
	default:
		return string(m)
	}
}

// Status is the resolution state of a question.
type Status string

const (
	StatusUnresolved     Status = "unresolved"
	StatusCorrect        Status = "correct"
	StatusCorrectViaHint Status = "correct-via-hint"
)

// Tier is the attempt-based score tier awarded at resolution.
type Tier string

const (
	TierNone   Tier = ""
	TierMax    Tier = "max"
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierMin    Tier = "min"
)

// Question is a single vowel-completion item.
type Question struct {
	// ID is unique within a generated batch.
	ID string

	// Word is the source word; its Text is the grading ground truth.
	Word words.Word

	// Masked holds the hidden rune indices in ascending order.
	Masked []int

	// Filled maps masked positions to the letters placed there so far.
	Filled map[int]rune

	// Attempts counts wrong letters plus the final whole-question check.
	Attempts int

	Status    Status
	HintsUsed int
	Points    int
	Tier      Tier
	Perfect   bool
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	c.Masked = slices.Clone(q.Masked)
	c.Filled = maps.Clone(q.Filled)
	if c.Filled == nil {
		c.Filled = make(map[int]rune)
	}
	return c
}

// Resolved reports whether the question has reached a terminal status.
func (q Question) Resolved() bool {
	return q.Status != StatusUnresolved
}

// IsMasked reports whether pos is one of the hidden positions.
func (q Question) IsMasked(pos int) bool {
	_, found := slices.BinarySearch(q.Masked, pos)
	return found
}

// Complete reports whether every masked position holds a letter.
func (q Question) Complete() bool {
	for _, p := range q.Masked {
		if _, ok := q.Filled[p]; !ok {
			return false
		}
	}
	return true
}

// NextEmpty returns the first masked position without a letter, or -1.
func (q Question) NextEmpty() int {
	for _, p := range q.Masked {
		if _, ok := q.Filled[p]; !ok {
			return p
		}
	}
	return -1
}

// Display renders the word with blanks for unfilled masked positions.
func (q Question) Display(blank rune) string {
	letters := q.Word.Letters()
	out := make([]rune, len(letters))
	for i, r := range letters {
		out[i] = r
		if q.IsMasked(i) {
			if f, ok := q.Filled[i]; ok {
				out[i] = f
			} else {
				out[i] = blank
			}
		}
	}
	return string(out)
}
