package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens"
	"github.com/abhisek/wordiz/internal/screens/badgecase"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/rate"
	sessionscreen "github.com/abhisek/wordiz/internal/screens/session"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

// DefaultTimedRun is the time limit for TIMED RUN when none is configured.
const DefaultTimedRun = 60 * time.Second

// alertLearning is how many words must sit in learning before the mascot
// nags.
const alertLearning = 3

type stats struct {
	Mastered int
	XP       int
	Badges   int
	Learning int
	Recent   bool
}

type statsLoadedMsg struct {
	Stats stats
}

// HomeScreen is the arcade main menu.
type HomeScreen struct {
	deps       screens.Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      stats
	now        func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, now: time.Now}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "PLAY", Action: push(func() screen.Screen {
			return sessionscreen.New(deps, deps.Settings)
		})},
		{Label: "TIMED RUN", Action: push(func() screen.Screen {
			return sessionscreen.New(deps, timedSettings(deps.Settings))
		})},
		{Label: "CHALLENGE", Action: push(func() screen.Screen {
			st := deps.Settings
			st.Mode = quizgen.ModeChallenge
			return sessionscreen.New(deps, st)
		})},
		{Label: "RATE WORDS", Action: push(func() screen.Screen {
			return rate.New(deps)
		})},
		{Label: "BADGE CASE", Action: push(func() screen.Screen {
			return badgecase.New(deps.EventRepo)
		}), Disabled: deps.EventRepo == nil},
		{Label: "HISTORY", Action: push(func() screen.Screen {
			return history.New(deps.EventRepo)
		}), Disabled: deps.EventRepo == nil},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.disabled = make(map[int]bool)
	for i, it := range items {
		h.menuLabels = append(h.menuLabels, it.Label)
		if it.Disabled {
			h.disabled[i] = true
		}
	}
	return h
}

// timedSettings turns the defaults into a timed run.
func timedSettings(st session.Settings) session.Settings {
	st.Mode = quizgen.ModeTimed
	if st.TimeLimit <= 0 {
		st.TimeLimit = DefaultTimedRun
	}
	return st
}

// Init reloads the learner totals. The router re-inits home whenever the
// stack pops back to it.
func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	now := h.now()
	return func() tea.Msg {
		return statsLoadedMsg{Stats: loadStats(context.Background(), deps, now)}
	}
}

func loadStats(ctx context.Context, deps screens.Deps, now time.Time) stats {
	hs := deps.HeaderStats(ctx)
	st := stats{Mastered: hs.Mastered, XP: hs.XP, Badges: hs.Badges}
	if deps.Tracker == nil {
		return st
	}
	for _, wm := range deps.Tracker.All() {
		switch wm.State {
		case mastery.StateLearning:
			st.Learning++
		case mastery.StateMastered:
			if wm.MasteredAt != nil && now.Sub(*wm.MasteredAt) < 24*time.Hour {
				st.Recent = true
			}
		}
	}
	return st
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.Learning >= alertLearning:
		return MascotAlert
	case h.stats.Recent:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.Stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if termHeight < 24 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
