package words

import "sync"

// seedWords is the built-in corpus. Vowel-less entries (sky, hmm, rhythm)
// are never eligible for generation.
var seedWords = []Word{
	// Animals
	{ID: "cat", Text: "cat", Category: "animals", Difficulty: DifficultyEasy},
	{ID: "dog", Text: "dog", Category: "animals", Difficulty: DifficultyEasy},
	{ID: "pig", Text: "pig", Category: "animals", Difficulty: DifficultyEasy},
	{ID: "duck", Text: "duck", Category: "animals", Difficulty: DifficultyEasy},
	{ID: "frog", Text: "frog", Category: "animals", Difficulty: DifficultyEasy},
	{ID: "horse", Text: "horse", Category: "animals", Difficulty: DifficultyMedium},
	{ID: "rabbit", Text: "rabbit", Category: "animals", Difficulty: DifficultyMedium},
	{ID: "turtle", Text: "turtle", Category: "animals", Difficulty: DifficultyMedium},
	{ID: "monkey", Text: "monkey", Category: "animals", Difficulty: DifficultyMedium},
	{ID: "giraffe", Text: "giraffe", Category: "animals", Difficulty: DifficultyHard},
	{ID: "elephant", Text: "elephant", Category: "animals", Difficulty: DifficultyHard},
	{ID: "penguin", Text: "penguin", Category: "animals", Difficulty: DifficultyHard},
	{ID: "kangaroo", Text: "kangaroo", Category: "animals", Difficulty: DifficultyHard},

	// Food
	{ID: "egg", Text: "egg", Category: "food", Difficulty: DifficultyEasy},
	{ID: "jam", Text: "jam", Category: "food", Difficulty: DifficultyEasy},
	{ID: "cake", Text: "cake", Category: "food", Difficulty: DifficultyEasy},
	{ID: "pizza", Text: "pizza", Category: "food", Difficulty: DifficultyMedium},
	{ID: "apple", Text: "apple", Category: "food", Difficulty: DifficultyMedium},
	{ID: "bread", Text: "bread", Category: "food", Difficulty: DifficultyMedium},
	{ID: "carrot", Text: "carrot", Category: "food", Difficulty: DifficultyMedium},
	{ID: "banana", Text: "banana", Category: "food", Difficulty: DifficultyHard},
	{ID: "avocado", Text: "avocado", Category: "food", Difficulty: DifficultyHard},
	{ID: "spaghetti", Text: "spaghetti", Category: "food", Difficulty: DifficultyHard},

	// School
	{ID: "pen", Text: "pen", Category: "school", Difficulty: DifficultyEasy},
	{ID: "book", Text: "book", Category: "school", Difficulty: DifficultyEasy},
	{ID: "desk", Text: "desk", Category: "school", Difficulty: DifficultyEasy},
	{ID: "paper", Text: "paper", Category: "school", Difficulty: DifficultyMedium},
	{ID: "pencil", Text: "pencil", Category: "school", Difficulty: DifficultyMedium},
	{ID: "teacher", Text: "teacher", Category: "school", Difficulty: DifficultyMedium},
	{ID: "library", Text: "library", Category: "school", Difficulty: DifficultyHard},
	{ID: "alphabet", Text: "alphabet", Category: "school", Difficulty: DifficultyHard},
	{ID: "dictionary", Text: "dictionary", Category: "school", Difficulty: DifficultyHard},

	// Nature
	{ID: "sun", Text: "sun", Category: "nature", Difficulty: DifficultyEasy},
	{ID: "sky", Text: "sky", Category: "nature", Difficulty: DifficultyEasy},
	{ID: "tree", Text: "tree", Category: "nature", Difficulty: DifficultyEasy},
	{ID: "rain", Text: "rain", Category: "nature", Difficulty: DifficultyEasy},
	{ID: "river", Text: "river", Category: "nature", Difficulty: DifficultyMedium},
	{ID: "cloud", Text: "cloud", Category: "nature", Difficulty: DifficultyMedium},
	{ID: "flower", Text: "flower", Category: "nature", Difficulty: DifficultyMedium},
	{ID: "mountain", Text: "mountain", Category: "nature", Difficulty: DifficultyHard},
	{ID: "volcano", Text: "volcano", Category: "nature", Difficulty: DifficultyHard},
	{ID: "rainbow", Text: "rainbow", Category: "nature", Difficulty: DifficultyHard},

	// Home
	{ID: "bed", Text: "bed", Category: "home", Difficulty: DifficultyEasy},
	{ID: "cup", Text: "cup", Category: "home", Difficulty: DifficultyEasy},
	{ID: "door", Text: "door", Category: "home", Difficulty: DifficultyEasy},
	{ID: "window", Text: "window", Category: "home", Difficulty: DifficultyMedium},
	{ID: "kitchen", Text: "kitchen", Category: "home", Difficulty: DifficultyMedium},
	{ID: "blanket", Text: "blanket", Category: "home", Difficulty: DifficultyMedium},
	{ID: "umbrella", Text: "umbrella", Category: "home", Difficulty: DifficultyHard},
	{ID: "telephone", Text: "telephone", Category: "home", Difficulty: DifficultyHard},

	// Sounds
	{ID: "hmm", Text: "hmm", Category: "sounds", Difficulty: DifficultyEasy},
	{ID: "shh", Text: "shh", Category: "sounds", Difficulty: DifficultyEasy},
	{ID: "buzz", Text: "buzz", Category: "sounds", Difficulty: DifficultyEasy},
	{ID: "rhythm", Text: "rhythm", Category: "sounds", Difficulty: DifficultyHard},
}

var (
	seedOnce   sync.Once
	seedCorpus *Corpus
)

// Seed returns the built-in corpus. It panics if the seed data is invalid.
func Seed() *Corpus {
	seedOnce.Do(func() {
		c, err := NewCorpus(seedWords)
		if err != nil {
			panic("words: invalid seed corpus: " + err.Error())
		}
		seedCorpus = c
	})
	return seedCorpus
}
