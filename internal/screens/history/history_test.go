package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/store"
)

type mockEventRepo struct {
	sessions []store.SessionSummaryRecord
	badges   []store.BadgeEventRecord
	err      error
}

func (m *mockEventRepo) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (m *mockEventRepo) AppendMasteryEvent(context.Context, store.MasteryEventData) error { return nil }
func (m *mockEventRepo) AppendBadgeEvent(context.Context, store.BadgeEventData) error     { return nil }
func (m *mockEventRepo) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return m.sessions, m.err
}
func (m *mockEventRepo) QueryBadgeEvents(context.Context, store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return m.badges, nil
}
func (m *mockEventRepo) BadgeCounts(context.Context) (map[string]int, int, error) {
	return nil, 0, nil
}
func (m *mockEventRepo) WordXPTotals(context.Context) (map[string]int, error) { return nil, nil }

func testRepo() *mockEventRepo {
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &mockEventRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Mode: "timed", Timestamp: ts, TotalQuestions: 10, CorrectAnswers: 6, Accuracy: 1, TimeSpentMs: 60000, XP: 80, TimedOut: true, BadgeCount: 2},
			{SessionID: "s1", Mode: "practice", Timestamp: ts.Add(-time.Hour), TotalQuestions: 5, CorrectAnswers: 5, Accuracy: 1, TimeSpentMs: 30000, XP: 100},
		},
		badges: []store.BadgeEventRecord{
			{BadgeType: "streak", Rarity: "common", SessionID: "s2", Reason: "5 perfect in a row!"},
			{BadgeType: "session", Rarity: "legendary", SessionID: "s2", Reason: "Session complete (100% accuracy)"},
			{BadgeType: "word-mastered", Rarity: "rare", Reason: "Mastered cat"},
		},
	}
}

func loaded(t *testing.T, repo *mockEventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	msg := s.Init()()
	s.Update(msg)
	return s
}

func TestHistoryLoad(t *testing.T) {
	s := loaded(t, testRepo())
	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}
	if len(s.badges["s2"]) != 2 {
		t.Errorf("badges for s2 = %d, want 2", len(s.badges["s2"]))
	}
	if _, ok := s.badges[""]; ok {
		t.Error("badges without a session should be skipped")
	}
}

func TestHistoryView(t *testing.T) {
	s := loaded(t, testRepo())
	view := s.View(100, 30)
	for _, want := range []string{"Timed Run", "6/10 words", "+80 XP", "2 badges", "Practice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "5 perfect in a row") {
		t.Error("badges should be hidden until expanded")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	if !strings.Contains(view, "5 perfect in a row") {
		t.Error("expanded view should list session badges")
	}
}

func TestHistoryNavigation(t *testing.T) {
	s := loaded(t, testRepo())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want clamp at 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	if !strings.Contains(s.View(80, 24), "No games yet") {
		t.Error("expected empty message")
	}

	s = loaded(t, &mockEventRepo{err: errors.New("boom")})
	if !strings.Contains(s.View(80, 24), "boom") {
		t.Error("expected error message")
	}
}
