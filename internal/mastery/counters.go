package mastery

import "github.com/abhisek/wordiz/internal/quizgen"

// Counters are the cumulative per-session tallies. Every field is
// non-decreasing over a session.
type Counters struct {
	CorrectAnswers     int
	TotalAttempts      int
	HintsUsed          int
	PerfectAnswers     int
	TimeSpentMs        int64
	QuestionsAttempted int
	Score              int
	XP                 int
}

// Resolution is the end of a question's active life: resolved correct,
// resolved via hint, or interrupted by the countdown.
type Resolution struct {
	Question    quizgen.Question
	ElapsedMs   int64
	Interrupted bool
}

// Correct reports whether the question counts as a correct answer.
func (r Resolution) Correct() bool {
	return !r.Interrupted && r.Question.Resolved()
}

// ViaHint reports whether the question was resolved by a hint.
func (r Resolution) ViaHint() bool {
	return !r.Interrupted && r.Question.Status == quizgen.StatusCorrectViaHint
}

// Attempted reports whether the learner engaged with the question.
func (r Resolution) Attempted() bool {
	if r.Correct() {
		return true
	}
	return r.Question.Attempts > 0 || len(r.Question.Filled) > 0
}

// XP returns the quiz XP granted for the resolution.
func (r Resolution) XP() int {
	if !r.Correct() {
		return 0
	}
	if r.ViaHint() {
		return HintXP
	}
	return QuizXP(r.Question.Tier)
}

// Accumulate folds a resolution into the counters. It is pure.
func Accumulate(c Counters, r Resolution) Counters {
	q := r.Question
	if r.Attempted() {
		c.QuestionsAttempted++
	}
	c.TotalAttempts += q.Attempts
	c.TimeSpentMs += max(r.ElapsedMs, 0)

	if !r.Correct() {
		return c
	}
	c.CorrectAnswers++
	if r.ViaHint() {
		c.HintsUsed++
	}
	if q.Perfect {
		c.PerfectAnswers++
	}
	c.Score += q.Points
	c.XP += r.XP()
	return c
}

// Summary is the finalized session result.
type Summary struct {
	TotalQuestions     int
	QuestionsAttempted int
	CorrectAnswers     int
	Accuracy           float64
	PerfectAnswers     int
	HintsUsed          int
	TotalAttempts      int
	TimeSpentMs        int64
	AverageTimeMs      int64
	Score              int
	XP                 int
}

// Summarize computes the session summary from the final counters.
func Summarize(c Counters, totalQuestions int) Summary {
	s := Summary{
		TotalQuestions:     totalQuestions,
		QuestionsAttempted: c.QuestionsAttempted,
		CorrectAnswers:     c.CorrectAnswers,
		PerfectAnswers:     c.PerfectAnswers,
		HintsUsed:          c.HintsUsed,
		TotalAttempts:      c.TotalAttempts,
		TimeSpentMs:        c.TimeSpentMs,
		AverageTimeMs:      c.TimeSpentMs / int64(max(c.CorrectAnswers, 1)),
		Score:              c.Score,
		XP:                 c.XP,
	}
	if c.QuestionsAttempted > 0 {
		s.Accuracy = float64(c.CorrectAnswers) / float64(c.QuestionsAttempted)
	}
	return s
}
