// Package progress defines the events the quiz engine reports to progress
// and achievement collaborators, and a fan-out emitter for them.
package progress

import (
	"context"
	"time"
)

// Record sources.
const (
	SourceQuizGrading = "quiz-grading"
	SourceSelfRating  = "self-rating"
)

// Reasons attached to mastery events.
const (
	ReasonCorrect = "correct"
	ReasonPerfect = "perfect"
	ReasonHint    = "hint-reveal"
	ReasonRating  = "self-rating"
)

// SessionStarted is emitted once a session binds its questions.
type SessionStarted struct {
	SessionID      string
	Mode           string
	Difficulty     string
	Category       string
	TotalQuestions int
	At             time.Time
}

// MasteryEvent is emitted per terminal action on a word.
type MasteryEvent struct {
	SessionID  string // empty for self-ratings outside a session
	WordID     string
	ScoreDelta int
	XPDelta    int
	Reason     string
	Rating     string
	Source     string
	Mastered   bool // the word became mastered with this event
	At         time.Time
}

// SessionSummary is the finalized result of a completed session.
type SessionSummary struct {
	SessionID          string
	Mode               string
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
	TimedOut           bool
	At                 time.Time
}

// Sink receives progress events. Implementations must not block for long;
// the engine calls them inline.
type Sink interface {
	SessionStarted(ctx context.Context, ev SessionStarted) error
	MasteryRecorded(ctx context.Context, ev MasteryEvent) error
	SessionCompleted(ctx context.Context, summary SessionSummary) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) SessionStarted(context.Context, SessionStarted) error   { return nil }
func (NopSink) MasteryRecorded(context.Context, MasteryEvent) error    { return nil }
func (NopSink) SessionCompleted(context.Context, SessionSummary) error { return nil }
