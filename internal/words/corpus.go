package words

import (
	"fmt"
	"slices"
	"sort"
)

// Corpus is an ordered collection of words with lookup indices.
type Corpus struct {
	words []Word
	byID  map[string]int
}

// NewCorpus builds a corpus from words. Duplicate IDs are rejected.
func NewCorpus(ws []Word) (*Corpus, error) {
	c := &Corpus{
		words: make([]Word, 0, len(ws)),
		byID:  make(map[string]int, len(ws)),
	}
	for _, w := range ws {
		if w.ID == "" {
			return nil, fmt.Errorf("word %q: empty id", w.Text)
		}
		if _, dup := c.byID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate word id %q", w.ID)
		}
		if !w.Difficulty.Valid() {
			return nil, fmt.Errorf("word %q: invalid difficulty %q", w.ID, w.Difficulty)
		}
		c.byID[w.ID] = len(c.words)
		c.words = append(c.words, w)
	}
	return c, nil
}

// All returns every word in corpus order.
func (c *Corpus) All() []Word {
	return slices.Clone(c.words)
}

// Len returns the number of words.
func (c *Corpus) Len() int {
	return len(c.words)
}

// Get returns the word with the given ID.
func (c *Corpus) Get(id string) (Word, error) {
	i, ok := c.byID[id]
	if !ok {
		return Word{}, fmt.Errorf("%w: %s", ErrUnknownWord, id)
	}
	return c.words[i], nil
}

// Filter returns words matching category and difficulty. An empty category
// matches all categories; an empty or "mixed" difficulty matches all
// difficulties.
func (c *Corpus) Filter(category, difficulty string) []Word {
	var out []Word
	for _, w := range c.words {
		if category != "" && w.Category != category {
			continue
		}
		if difficulty != "" && difficulty != DifficultyMixed && string(w.Difficulty) != difficulty {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Categories returns the distinct categories in sorted order.
func (c *Corpus) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, w := range c.words {
		if !seen[w.Category] {
			seen[w.Category] = true
			cats = append(cats, w.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
