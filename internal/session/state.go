package session

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/quizgen"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseSetup    Phase = iota // Waiting for Started
	PhaseActive                // Accepting letters and hints
	PhaseFeedback              // Showing the resolution, waiting to advance
	PhaseComplete              // Summary computed
	PhaseExited                // Abandoned without finalization
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseActive:
		return "active"
	case PhaseFeedback:
		return "feedback"
	case PhaseComplete:
		return "complete"
	case PhaseExited:
		return "exited"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseExited
}

// Settings are the user-chosen session parameters.
type Settings struct {
	Mode       quizgen.Mode  `validate:"required,oneof=practice challenge timed custom"`
	Difficulty string        `validate:"omitempty,oneof=easy medium hard mixed"`
	Category   string        `validate:"omitempty,max=64"`
	Count      int           `validate:"min=1,max=100"`
	TimeLimit  time.Duration `validate:"required_if=Mode timed,gte=0"`
}

// Timing holds the delays the state machine schedules.
type Timing struct {
	FeedbackDelay   time.Duration
	HintDelay       time.Duration
	WrongFlashDelay time.Duration
	Tick            time.Duration
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		FeedbackDelay:   1500 * time.Millisecond,
		HintDelay:       2500 * time.Millisecond,
		WrongFlashDelay: 600 * time.Millisecond,
		Tick:            time.Second,
	}
}

// withDefaults fills zero fields from DefaultTiming.
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.FeedbackDelay <= 0 {
		t.FeedbackDelay = d.FeedbackDelay
	}
	if t.HintDelay <= 0 {
		t.HintDelay = d.HintDelay
	}
	if t.WrongFlashDelay <= 0 {
		t.WrongFlashDelay = d.WrongFlashDelay
	}
	if t.Tick <= 0 {
		t.Tick = d.Tick
	}
	return t
}

// State is the full session state. Values are treated as immutable by
// Apply; every transition works on a copy.
type State struct {
	SessionID string
	Settings  Settings
	Timing    Timing
	Phase     Phase

	Questions []quizgen.Question
	Index     int

	// Remaining is the countdown budget. Only used in timed mode.
	Remaining time.Duration

	Counters mastery.Counters

	StartedAt         time.Time
	QuestionStartedAt time.Time

	// Last is the most recent resolution, set while in Feedback.
	Last *mastery.Resolution

	// Flash maps positions to a wrong letter that is still on screen.
	Flash map[int]rune

	// Generation tokens. A timer event whose Gen does not match is stale.
	TimerGen   uint64
	AdvanceGen uint64
	FlashGen   map[int]uint64
	flashSeq   uint64

	Summary  *mastery.Summary
	TimedOut bool
}

// Current returns the active question, if any.
func (s State) Current() (quizgen.Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return quizgen.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Timed reports whether the countdown applies.
func (s State) Timed() bool {
	return s.Settings.Mode == quizgen.ModeTimed
}

// Progress returns the 1-based question number and the total.
func (s State) Progress() (int, int) {
	n := len(s.Questions)
	return min(s.Index+1, n), n
}

// fork copies the reference fields so the result can be written freely.
func (s State) fork() State {
	s.Questions = slices.Clone(s.Questions)
	s.Flash = maps.Clone(s.Flash)
	s.FlashGen = maps.Clone(s.FlashGen)
	return s
}
