package badges

import (
	"sort"
	"unicode/utf8"

	"github.com/abhisek/wordiz/internal/words"
)

// Rarity represents how hard a badge was to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// StreakRarity returns the rarity for a given streak length.
func StreakRarity(length int) Rarity {
	switch {
	case length >= 20:
		return RarityLegendary
	case length >= 15:
		return RarityEpic
	case length >= 10:
		return RarityRare
	default:
		return RarityCommon
	}
}

// SessionRarity returns the rarity for a given session accuracy (0.0-1.0).
func SessionRarity(accuracy float64) Rarity {
	switch {
	case accuracy >= 0.90:
		return RarityLegendary
	case accuracy >= 0.75:
		return RarityEpic
	case accuracy >= 0.50:
		return RarityRare
	default:
		return RarityCommon
	}
}

// WordWeights scores each corpus word by difficulty and length and holds
// the quartile boundaries used to grade word-mastered badges.
type WordWeights struct {
	Weights    map[string]int
	Boundaries [3]int
}

var difficultyWeight = map[words.Difficulty]int{
	words.DifficultyEasy:   0,
	words.DifficultyMedium: 4,
	words.DifficultyHard:   8,
}

// ComputeWordWeights builds weights for every word in the corpus.
// weight = difficulty bonus + rune count.
func ComputeWordWeights(c *words.Corpus) *WordWeights {
	ww := &WordWeights{Weights: make(map[string]int)}
	if c == nil {
		return ww
	}
	vals := make([]int, 0, c.Len())
	for _, w := range c.All() {
		weight := difficultyWeight[w.Difficulty] + utf8.RuneCountInString(w.Text)
		ww.Weights[w.ID] = weight
		vals = append(vals, weight)
	}
	sort.Ints(vals)

	n := len(vals)
	if n > 0 {
		ww.Boundaries = [3]int{vals[n/4], vals[n/2], vals[3*n/4]}
	}
	return ww
}

// RarityForWord grades a word by its weight quartile. Unknown words are
// common.
func (ww *WordWeights) RarityForWord(wordID string) Rarity {
	weight, ok := ww.Weights[wordID]
	if !ok {
		return RarityCommon
	}
	switch {
	case weight > ww.Boundaries[2]:
		return RarityLegendary
	case weight > ww.Boundaries[1]:
		return RarityEpic
	case weight > ww.Boundaries[0]:
		return RarityRare
	default:
		return RarityCommon
	}
}
