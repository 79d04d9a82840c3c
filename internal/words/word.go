package words

import (
	"errors"
	"strings"
	"unicode"
)

// Difficulty is the base difficulty of a word.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyMixed is the filter value that accepts every difficulty.
const DifficultyMixed = "mixed"

// AllDifficulties returns all difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ErrUnknownWord is returned when a word ID is not in the corpus.
var ErrUnknownWord = errors.New("unknown word")

// Word is a single corpus entry. Text is the canonical spelling used as
// grading ground truth.
type Word struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// Letters returns the word as a rune slice. Masked positions index into it.
func (w Word) Letters() []rune {
	return []rune(w.Text)
}

// VowelPositions returns the rune indices of a, e, i, o and u in text,
// ignoring case. Y is never treated as a vowel.
func VowelPositions(text string) []int {
	var positions []int
	for i, r := range []rune(text) {
		if IsVowel(r) {
			positions = append(positions, i)
		}
	}
	return positions
}

// IsVowel reports whether r is one of the maskable vowels.
func IsVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Maskable reports whether the word has at least one vowel position.
func (w Word) Maskable() bool {
	return strings.ContainsFunc(w.Text, IsVowel)
}
