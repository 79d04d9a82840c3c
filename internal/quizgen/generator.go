package quizgen

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/abhisek/wordiz/internal/words"
)

// CapFunc returns the mask count for a word with n maskable positions.
type CapFunc func(n int) int

// CapTable maps each mode to its mask-count rule.
type CapTable map[Mode]CapFunc

// DefaultCaps is the standard mode table.
var DefaultCaps = CapTable{
	ModePractice:  func(int) int { return 1 },
	ModeChallenge: func(n int) int { return min(2, n) },
	ModeTimed:     func(n int) int { return min(3, n) },
	ModeCustom:    func(n int) int { return min(3, n) },
}

// MaskCount returns the number of positions to hide for mode, clamped to
// [1, n]. Unknown modes use the practice rule.
func (t CapTable) MaskCount(mode Mode, n int) int {
	if n <= 0 {
		return 0
	}
	fn, ok := t[mode]
	if !ok {
		fn = DefaultCaps[ModePractice]
	}
	c := fn(n)
	if c > n {
		c = n
	}
	if c < 1 {
		c = 1
	}
	return c
}

// Request describes the batch to generate.
type Request struct {
	Category   string
	Difficulty string // "", "mixed", or a words.Difficulty
	Count      int
	Mode       Mode
}

// Generator builds question batches from a corpus.
type Generator struct {
	rng  *rand.Rand
	caps CapTable
}

// New creates a Generator drawing from rng. A nil caps uses DefaultCaps.
func New(rng *rand.Rand, caps CapTable) *Generator {
	if caps == nil {
		caps = DefaultCaps
	}
	return &Generator{rng: rng, caps: caps}
}

// NewSeeded creates a Generator with a PCG source seeded from the given
// values.
func NewSeeded(seed1, seed2 uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed1, seed2)), nil)
}

// Generate returns up to req.Count questions. Words without vowels are
// skipped; a short corpus yields a short batch with no repeats.
func (g *Generator) Generate(corpus *words.Corpus, req Request) []Question {
	if corpus == nil || req.Count <= 0 {
		return nil
	}

	var eligible []words.Word
	for _, w := range corpus.Filter(req.Category, req.Difficulty) {
		if w.Maskable() {
			eligible = append(eligible, w)
		}
	}

	g.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	n := min(req.Count, len(eligible))
	questions := make([]Question, 0, n)
	for i := range n {
		questions = append(questions, g.build(i, eligible[i], req.Mode))
	}
	return questions
}

// build creates a question for w by sampling its vowel positions.
func (g *Generator) build(index int, w words.Word, mode Mode) Question {
	vowels := words.VowelPositions(w.Text)
	k := g.caps.MaskCount(mode, len(vowels))

	masked := make([]int, 0, k)
	for _, idx := range g.rng.Perm(len(vowels))[:k] {
		masked = append(masked, vowels[idx])
	}
	sort.Ints(masked)

	return Question{
		ID:     fmt.Sprintf("q%02d-%s", index+1, w.ID),
		Word:   w,
		Masked: masked,
		Filled: make(map[int]rune),
		Status: StatusUnresolved,
	}
}

// ForWord builds a single question for w, or false if w has no vowels.
func (g *Generator) ForWord(w words.Word, mode Mode) (Question, bool) {
	if !w.Maskable() {
		return Question{}, false
	}
	return g.build(0, w, mode), true
}
