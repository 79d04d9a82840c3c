package session

import (
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/quizgen"
)

// Event is an input to Apply.
type Event interface {
	isEvent()
}

// Started binds a generated question set and begins the session.
type Started struct {
	SessionID string
	Settings  Settings
	Questions []quizgen.Question
	Timing    Timing
}

// LetterSubmitted places Letter at rune position Pos of the current word.
type LetterSubmitted struct {
	Pos    int
	Letter rune
}

// HintRequested asks for the current question to be revealed.
type HintRequested struct{}

// Ticked is one countdown interval elapsing.
type Ticked struct{ Gen uint64 }

// AdvanceDue is the automatic advance after the feedback delay.
type AdvanceDue struct{ Gen uint64 }

// AdvanceRequested skips the remaining feedback delay.
type AdvanceRequested struct{}

// WrongCleared removes the wrong-letter flash at Pos.
type WrongCleared struct {
	Pos int
	Gen uint64
}

// ExitRequested abandons the session.
type ExitRequested struct{}

func (Started) isEvent()          {}
func (LetterSubmitted) isEvent()  {}
func (HintRequested) isEvent()    {}
func (Ticked) isEvent()           {}
func (AdvanceDue) isEvent()       {}
func (AdvanceRequested) isEvent() {}
func (WrongCleared) isEvent()     {}
func (ExitRequested) isEvent()    {}

// Timer keys.
const (
	KeyCountdown = "countdown"
	KeyAdvance   = "advance"
)

// FlashKey returns the timer key for the wrong flash at pos.
func FlashKey(pos int) string {
	return fmt.Sprintf("flash:%d", pos)
}

// Cue is an audio or haptic notification.
type Cue string

const (
	CueCorrect   Cue = "correct"
	CueIncorrect Cue = "incorrect"
	CueComplete  Cue = "complete"
)

// Effect is an output of Apply for the caller to execute.
type Effect interface {
	isEffect()
}

// ScheduleTimer asks for Event to be dispatched after After. A new
// schedule under the same Key replaces the old one.
type ScheduleTimer struct {
	Key   string
	After time.Duration
	Event Event
}

// CancelTimer drops the pending timer under Key, if any.
type CancelTimer struct{ Key string }

// PlayCue is a fire-and-forget notification.
type PlayCue struct{ Cue Cue }

// QuestionResolved reports a question resolved correct or via hint.
type QuestionResolved struct{ Resolution mastery.Resolution }

// SessionCompleted carries the finalized summary.
type SessionCompleted struct {
	Summary  mastery.Summary
	TimedOut bool
}

// SessionExited reports an abandoned session.
type SessionExited struct{}

func (ScheduleTimer) isEffect()    {}
func (CancelTimer) isEffect()      {}
func (PlayCue) isEffect()          {}
func (QuestionResolved) isEffect() {}
func (SessionCompleted) isEffect() {}
func (SessionExited) isEffect()    {}
