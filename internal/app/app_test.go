package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screens"
	sessionscreen "github.com/abhisek/wordiz/internal/screens/session"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/words"
)

func testDeps() screens.Deps {
	return screens.Deps{
		Corpus:    words.Seed(),
		Generator: quizgen.NewSeeded(3, 5),
		Tracker:   mastery.NewTracker(nil, nil, nil),
		Settings:  session.Settings{Mode: quizgen.ModePractice, Count: 3},
	}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestAppModel_EscPopsPlainScreens(t *testing.T) {
	m := newAppModel(testDeps())
	m, _ = update(t, m, router.PushScreenMsg{Screen: sessionscreen.New(m.deps, m.deps.Settings)})
	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}

	// The session screen handles Esc itself with a quit prompt.
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc on a BackHandler screen must not pop")
		}
	}
}

func TestAppModel_EscAtRoot(t *testing.T) {
	m := newAppModel(testDeps())
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}

func TestAppModel_HeaderStats(t *testing.T) {
	deps := testDeps()
	w, _ := deps.Corpus.Get("cat")
	if _, _, err := deps.Tracker.RateWord(t.Context(), w, mastery.RatingEasy); err != nil {
		t.Fatalf("RateWord: %v", err)
	}

	m := newAppModel(deps)
	msg := m.refreshHeader()()
	m, _ = update(t, m, msg)
	if m.stats.Mastered != 1 || m.stats.XP != deps.Tracker.TotalXP() {
		t.Errorf("stats = %+v", m.stats)
	}
}

func TestAppModel_FooterHintsFromScreen(t *testing.T) {
	m := newAppModel(testDeps())
	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[0].Key != "↑↓" {
		t.Errorf("home hints = %v", hints)
	}
}
