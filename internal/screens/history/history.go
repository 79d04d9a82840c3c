package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// SessionLimit caps how many past sessions are listed.
const SessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Badges   map[string][]store.BadgeEventRecord // sessionID → badges
	Err      error
}

// HistoryScreen displays past sessions and their badges.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	badges    map[string][]store.BadgeEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		return load(context.Background(), repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: SessionLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	bySession := make(map[string][]store.BadgeEventRecord)
	all, err := repo.QueryBadgeEvents(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Sessions: sessions, Badges: bySession}
	}
	for _, b := range all {
		if b.SessionID == "" {
			continue
		}
		bySession[b.SessionID] = append(bySession[b.SessionID], b)
	}
	return historyLoadedMsg{Sessions: sessions, Badges: bySession}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.badges = msg.Badges
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Go play!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+sessionLine(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderBadges(width, rec.SessionID))
		}
	}

	return b.String()
}

// sessionLine formats one row of the session list.
func sessionLine(rec store.SessionSummaryRecord) string {
	spent := time.Duration(rec.TimeSpentMs) * time.Millisecond
	line := fmt.Sprintf("%s  %-9s %d:%02d  %d/%d words  %.0f%%  +%d XP",
		rec.Timestamp.Local().Format("Jan 02, 2006"),
		quizgen.Mode(rec.Mode).DisplayName(),
		int(spent.Minutes()), int(spent.Seconds())%60,
		rec.CorrectAnswers, rec.TotalQuestions,
		rec.Accuracy*100, rec.XP)
	if rec.TimedOut {
		line += "  ⏱"
	}
	if rec.BadgeCount > 0 {
		line += fmt.Sprintf("  %d badge", rec.BadgeCount)
		if rec.BadgeCount > 1 {
			line += "s"
		}
	}
	return line
}

func (s *HistoryScreen) renderBadges(width int, sessionID string) string {
	var b strings.Builder
	list := s.badges[sessionID]
	if len(list) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No badges this game")))
		b.WriteString("\n")
		return b.String()
	}
	for _, rec := range list {
		t := badges.BadgeType(rec.BadgeType)
		r := badges.Rarity(rec.Rarity)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(components.RarityColor(r)).
				Render("    "+components.BadgeLine(t, r, rec.Reason))))
		b.WriteString("\n")
	}
	return b.String()
}
