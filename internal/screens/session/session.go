package session

import (
	"context"
	"errors"
	"slices"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens"
	"github.com/abhisek/wordiz/internal/screens/summary"
	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

// errNoWords is shown when the filters leave nothing to play.
var errNoWords = errors.New("no words match this category and difficulty")

// SessionScreen plays one quiz session. It owns a session.Engine and feeds
// it key presses and timer fires from the Bubble Tea loop.
type SessionScreen struct {
	deps     screens.Deps
	settings sess.Settings
	engine   *sess.Engine
	sched    *teaScheduler

	// cursor is the position chosen with the arrow keys, or -1 to fill the
	// next empty slot.
	cursor int

	mastered     []string
	confirmQuit  bool
	finished     bool
	errMsg       string
	lastResolved bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a session screen for settings.
func New(deps screens.Deps, settings sess.Settings) *SessionScreen {
	sched := newTeaScheduler()
	engine := sess.NewEngine(sess.Options{
		Corpus:    deps.Corpus,
		Generator: deps.Generator,
		Scheduler: sched,
		Tracker:   deps.Tracker,
		Sink:      deps.Sink,
		Cues:      deps.Cues,
		Timing:    deps.Timing,
		Logger:    deps.Logger,
	})
	return &SessionScreen{
		deps:     deps,
		settings: settings,
		engine:   engine,
		sched:    sched,
		cursor:   -1,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.deps.Badges != nil {
		s.deps.Badges.ResetSession()
	}
	if err := s.engine.Start(context.Background(), s.settings); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.afterDispatch()
}

func (s *SessionScreen) Title() string {
	return s.settings.Mode.DisplayName()
}

func (s *SessionScreen) HandlesBack() bool {
	return true
}

// State exposes the engine state for tests.
func (s *SessionScreen) State() sess.State {
	return s.engine.State()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.engine.State().Phase {
	case sess.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next word"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseActive:
		return []layout.KeyHint{
			{Key: "a-z", Description: "Type a vowel"},
			{Key: "←→", Description: "Pick a blank"},
			{Key: "?", Description: "Hint"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		if !s.sched.accept(msg) {
			return s, nil
		}
		s.engine.Dispatch(context.Background(), msg.Event)
		return s, s.afterDispatch()

	case persistedMsg:
		if msg.Err != nil {
			s.deps.Log().Error("save snapshot", "error", msg.Err)
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	ctx := context.Background()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.engine.Exit(ctx)
			return s, s.afterDispatch()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	state := s.engine.State()
	if state.Phase.Terminal() {
		return s, nil
	}
	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch state.Phase {
	case sess.PhaseFeedback:
		if key == "enter" || key == "space" {
			s.engine.Advance(ctx)
			return s, s.afterDispatch()
		}

	case sess.PhaseActive:
		switch key {
		case "?", "tab":
			s.engine.RequestHint(ctx)
			return s, s.afterDispatch()
		case "left":
			s.moveCursor(-1)
			return s, nil
		case "right":
			s.moveCursor(1)
			return s, nil
		}
		if r, ok := letterOf(msg); ok {
			s.engine.SubmitLetter(ctx, s.target(), r)
			return s, s.afterDispatch()
		}
	}
	return s, nil
}

// letterOf extracts a single typed letter from a key press.
func letterOf(msg tea.KeyPressMsg) (rune, bool) {
	if msg.Text == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(msg.Text)
	if size != len(msg.Text) || !unicode.IsLetter(r) {
		return 0, false
	}
	return r, true
}

// emptySlots returns the masked positions still waiting for a letter.
func (s *SessionScreen) emptySlots() []int {
	q, ok := s.engine.State().Current()
	if !ok {
		return nil
	}
	var out []int
	for _, p := range q.Masked {
		if _, filled := q.Filled[p]; !filled {
			out = append(out, p)
		}
	}
	return out
}

// target is where the next typed letter goes.
func (s *SessionScreen) target() int {
	empty := s.emptySlots()
	if slices.Contains(empty, s.cursor) {
		return s.cursor
	}
	if len(empty) == 0 {
		return -1
	}
	return empty[0]
}

func (s *SessionScreen) moveCursor(delta int) {
	empty := s.emptySlots()
	if len(empty) == 0 {
		return
	}
	i := slices.Index(empty, s.target())
	i = (i + delta + len(empty)) % len(empty)
	s.cursor = empty[i]
}

// afterDispatch collects timer commands and reacts to phase changes.
func (s *SessionScreen) afterDispatch() tea.Cmd {
	cmd := s.sched.drain()
	state := s.engine.State()

	if !slices.Contains(s.emptySlots(), s.cursor) {
		s.cursor = -1
	}

	resolved := state.Phase == sess.PhaseFeedback
	if resolved && !s.lastResolved {
		if tr := s.engine.LastTransition(); tr.Mastered() {
			s.mastered = append(s.mastered, tr.Word)
		}
	}
	s.lastResolved = resolved

	if !state.Phase.Terminal() || s.finished {
		return cmd
	}
	s.finished = true
	s.confirmQuit = false
	s.sched.reset()

	if state.Phase == sess.PhaseExited {
		return tea.Batch(s.persist(), func() tea.Msg { return router.PopToRootMsg{} })
	}
	if len(state.Questions) == 0 {
		s.errMsg = errNoWords.Error()
		return nil
	}

	result := summary.Result{
		Mode:     state.Settings.Mode,
		Summary:  *state.Summary,
		TimedOut: state.TimedOut,
		Mastered: s.mastered,
	}
	if s.deps.Badges != nil {
		result.Badges = s.deps.Badges.Session()
	}
	return tea.Sequence(s.persist(), func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	})
}

// persist saves a snapshot off the update loop.
func (s *SessionScreen) persist() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		return persistedMsg{Err: deps.Persist(context.Background())}
	}
}

// Awards returns the badges earned so far this session.
func (s *SessionScreen) Awards() []badges.Award {
	if s.deps.Badges == nil {
		return nil
	}
	return s.deps.Badges.Session()
}
