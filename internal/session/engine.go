package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/words"
)

// ErrNotInSetup is returned by Start on an engine that already started.
var ErrNotInSetup = errors.New("session already started")

var validate = validator.New()

// ValidateSettings checks s against its struct tags.
func ValidateSettings(s Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Scheduler runs timer effects. A Schedule under an existing key replaces
// the pending timer.
type Scheduler interface {
	Schedule(key string, after time.Duration, ev Event)
	Cancel(key string)
}

// CueSink receives fire-and-forget cues.
type CueSink interface {
	Cue(c Cue)
}

// Observer is notified after every dispatch.
type Observer interface {
	SessionChanged(s State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(State)

func (f ObserverFunc) SessionChanged(s State) { f(s) }

// Options wires an Engine to its collaborators. Only Corpus and Generator
// are required.
type Options struct {
	Corpus    *words.Corpus
	Generator *quizgen.Generator
	Scheduler Scheduler
	Tracker   *mastery.Tracker
	Sink      progress.Sink
	Cues      CueSink
	Observers []Observer
	Timing    Timing
	Clock     func() time.Time
	Logger    *slog.Logger
}

// Engine drives one session. It is not safe for concurrent use; callers
// serialize commands and timer fires (see Runner).
type Engine struct {
	opts   Options
	state  State
	logger *slog.Logger

	lastTransition *mastery.StateTransition
}

// NewEngine creates an engine in PhaseSetup.
func NewEngine(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Sink == nil {
		opts.Sink = progress.NopSink{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = nopScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		opts:   opts,
		logger: opts.Logger.With("component", "session"),
	}
}

// State returns the current state. Callers must not modify it.
func (e *Engine) State() State {
	return e.state
}

// LastTransition returns the mastery transition from the most recent
// resolution, or nil.
func (e *Engine) LastTransition() *mastery.StateTransition {
	return e.lastTransition
}

// AddObserver registers o for subsequent dispatches.
func (e *Engine) AddObserver(o Observer) {
	e.opts.Observers = append(e.opts.Observers, o)
}

// Start validates settings, generates the questions and begins the
// session.
func (e *Engine) Start(ctx context.Context, settings Settings) error {
	if e.state.Phase != PhaseSetup {
		return ErrNotInSetup
	}
	if err := ValidateSettings(settings); err != nil {
		return err
	}

	questions := e.opts.Generator.Generate(e.opts.Corpus, quizgen.Request{
		Category:   settings.Category,
		Difficulty: settings.Difficulty,
		Count:      settings.Count,
		Mode:       settings.Mode,
	})
	return e.StartWith(ctx, settings, questions)
}

// StartWith begins a session over a prepared question set.
func (e *Engine) StartWith(ctx context.Context, settings Settings, questions []quizgen.Question) error {
	if e.state.Phase != PhaseSetup {
		return ErrNotInSetup
	}
	if err := ValidateSettings(settings); err != nil {
		return err
	}

	id := uuid.NewString()
	e.logger.Info("session starting",
		"session_id", id,
		"mode", settings.Mode,
		"difficulty", settings.Difficulty,
		"category", settings.Category,
		"requested", settings.Count,
		"generated", len(questions))

	err := e.opts.Sink.SessionStarted(ctx, progress.SessionStarted{
		SessionID:      id,
		Mode:           string(settings.Mode),
		Difficulty:     settings.Difficulty,
		Category:       settings.Category,
		TotalQuestions: len(questions),
		At:             e.opts.Clock(),
	})
	if err != nil {
		e.logger.Error("report session start", "error", err, "session_id", id)
	}

	e.Dispatch(ctx, Started{
		SessionID: id,
		Settings:  settings,
		Questions: questions,
		Timing:    e.opts.Timing,
	})
	return nil
}

// SubmitLetter places letter at pos of the current word.
func (e *Engine) SubmitLetter(ctx context.Context, pos int, letter rune) {
	e.Dispatch(ctx, LetterSubmitted{Pos: pos, Letter: letter})
}

// RequestHint reveals the current question.
func (e *Engine) RequestHint(ctx context.Context) {
	e.Dispatch(ctx, HintRequested{})
}

// Advance skips the remaining feedback delay.
func (e *Engine) Advance(ctx context.Context) {
	e.Dispatch(ctx, AdvanceRequested{})
}

// Exit abandons the session.
func (e *Engine) Exit(ctx context.Context) {
	e.Dispatch(ctx, ExitRequested{})
}

// Dispatch applies ev, executes the resulting effects and notifies
// observers.
func (e *Engine) Dispatch(ctx context.Context, ev Event) {
	next, effects := Apply(e.state, ev, e.opts.Clock())
	e.state = next
	for _, eff := range effects {
		e.execute(ctx, eff)
	}
	for _, o := range e.opts.Observers {
		o.SessionChanged(e.state)
	}
}

func (e *Engine) execute(ctx context.Context, eff Effect) {
	switch eff := eff.(type) {
	case ScheduleTimer:
		e.opts.Scheduler.Schedule(eff.Key, eff.After, eff.Event)
	case CancelTimer:
		e.opts.Scheduler.Cancel(eff.Key)
	case PlayCue:
		if e.opts.Cues != nil {
			e.opts.Cues.Cue(eff.Cue)
		}
	case QuestionResolved:
		e.recordResolution(ctx, eff.Resolution)
	case SessionCompleted:
		e.reportCompletion(ctx, eff)
	case SessionExited:
		e.logger.Info("session exited",
			"session_id", e.state.SessionID,
			"index", e.state.Index,
			"questions", len(e.state.Questions))
	}
}

func (e *Engine) recordResolution(ctx context.Context, res mastery.Resolution) {
	e.lastTransition = nil
	e.logger.Debug("question resolved",
		"session_id", e.state.SessionID,
		"word_id", res.Question.Word.ID,
		"status", res.Question.Status,
		"attempts", res.Question.Attempts,
		"tier", res.Question.Tier)
	if e.opts.Tracker == nil {
		return
	}
	_, tr, err := e.opts.Tracker.RecordQuiz(ctx, e.state.SessionID, res)
	if err != nil {
		e.logger.Error("record mastery", "error", err, "session_id", e.state.SessionID, "word_id", res.Question.Word.ID)
	}
	e.lastTransition = tr
}

func (e *Engine) reportCompletion(ctx context.Context, eff SessionCompleted) {
	s := eff.Summary
	e.logger.Info("session complete",
		"session_id", e.state.SessionID,
		"correct", s.CorrectAnswers,
		"attempted", s.QuestionsAttempted,
		"accuracy", s.Accuracy,
		"timed_out", eff.TimedOut)

	err := e.opts.Sink.SessionCompleted(ctx, progress.SessionSummary{
		SessionID:          e.state.SessionID,
		Mode:               string(e.state.Settings.Mode),
		TotalQuestions:     s.TotalQuestions,
		QuestionsAttempted: s.QuestionsAttempted,
		CorrectAnswers:     s.CorrectAnswers,
		Accuracy:           s.Accuracy,
		PerfectAnswers:     s.PerfectAnswers,
		HintsUsed:          s.HintsUsed,
		TotalAttempts:      s.TotalAttempts,
		TimeSpentMs:        s.TimeSpentMs,
		AverageTimeMs:      s.AverageTimeMs,
		Score:              s.Score,
		XP:                 s.XP,
		TimedOut:           eff.TimedOut,
		At:                 e.opts.Clock(),
	})
	if err != nil {
		e.logger.Error("report session completion", "error", err, "session_id", e.state.SessionID)
	}
}

type nopScheduler struct{}

func (nopScheduler) Schedule(string, time.Duration, Event) {}
func (nopScheduler) Cancel(string)                         {}
