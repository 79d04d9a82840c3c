package mastery

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/words"
)

// Rating is a difficulty judgement attached to a record.
type Rating string

const (
	RatingNone   Rating = ""
	RatingEasy   Rating = "easy"
	RatingMedium Rating = "medium"
	RatingHard   Rating = "hard"
)

// ErrInvalidRating is returned for ratings outside easy/medium/hard.
var ErrInvalidRating = errors.New("invalid rating")

// ParseRating converts user input to a Rating.
func ParseRating(s string) (Rating, error) {
	switch r := Rating(s); r {
	case RatingEasy, RatingMedium, RatingHard:
		return r, nil
	}
	return RatingNone, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}

// Record is one terminal action on a word.
type Record struct {
	WordID     string
	ScoreDelta int
	XPDelta    int
	Reason     string
	Rating     Rating
	Timestamp  time.Time
	Source     string
}

// HintXP is the quiz XP for a hint-resolved question.
const HintXP = 5

var quizXP = map[quizgen.Tier]int{
	quizgen.TierMax:    20,
	quizgen.TierHigh:   15,
	quizgen.TierMedium: 10,
	quizgen.TierMin:    5,
}

// QuizXP returns the XP for a grading tier.
func QuizXP(tier quizgen.Tier) int {
	return quizXP[tier]
}

// RatingForTier maps a grading tier to the implied difficulty rating.
func RatingForTier(tier quizgen.Tier) Rating {
	switch tier {
	case quizgen.TierMax:
		return RatingEasy
	case quizgen.TierHigh:
		return RatingMedium
	default:
		return RatingHard
	}
}

type ratingKey struct {
	difficulty words.Difficulty
	rating     Rating
}

var selfRatingXP = map[ratingKey]int{
	{words.DifficultyHard, RatingEasy}:     100,
	{words.DifficultyHard, RatingMedium}:   60,
	{words.DifficultyHard, RatingHard}:     20,
	{words.DifficultyMedium, RatingEasy}:   60,
	{words.DifficultyMedium, RatingMedium}: 40,
	{words.DifficultyMedium, RatingHard}:   15,
	{words.DifficultyEasy, RatingEasy}:     30,
	{words.DifficultyEasy, RatingMedium}:   20,
	{words.DifficultyEasy, RatingHard}:     10,
}

// SelfRatingXP returns the XP for rating a word of the given difficulty.
// Unknown pairs yield 0.
func SelfRatingXP(d words.Difficulty, r Rating) int {
	return selfRatingXP[ratingKey{d, r}]
}

// QuizRecord builds the record for a resolved quiz question.
func QuizRecord(r Resolution, at time.Time) Record {
	q := r.Question
	rec := Record{
		WordID:     q.Word.ID,
		ScoreDelta: q.Points,
		XPDelta:    r.XP(),
		Timestamp:  at,
		Source:     progress.SourceQuizGrading,
	}
	switch {
	case r.ViaHint():
		rec.Reason = progress.ReasonHint
		rec.Rating = RatingHard
	case q.Perfect:
		rec.Reason = progress.ReasonPerfect
		rec.Rating = RatingForTier(q.Tier)
	default:
		rec.Reason = progress.ReasonCorrect
		rec.Rating = RatingForTier(q.Tier)
	}
	return rec
}

// RatingRecord builds the record for an explicit self-rating.
func RatingRecord(w words.Word, r Rating, at time.Time) Record {
	return Record{
		WordID:    w.ID,
		XPDelta:   SelfRatingXP(w.Difficulty, r),
		Reason:    progress.ReasonRating,
		Rating:    r,
		Timestamp: at,
		Source:    progress.SourceSelfRating,
	}
}
