package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Result is everything the summary screen shows.
type Result struct {
	Mode     quizgen.Mode
	Summary  mastery.Summary
	TimedOut bool
	Badges   []badges.Award
	// Mastered lists the words that became mastered this session.
	Mastered []string
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HandlesBack() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.result.Summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title := "Session complete!"
	if s.result.TimedOut {
		title = "Time's up!"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	spent := time.Duration(sum.TimeSpentMs) * time.Millisecond
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("%s · %d:%02d",
		s.result.Mode.DisplayName(), int(spent.Minutes()), int(spent.Seconds())%60)))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Words: %d/%d   Accuracy: %.0f%%", sum.CorrectAnswers, sum.TotalQuestions, sum.Accuracy*100)))
	card.WriteString("\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Perfect: %d   Hints: %d", sum.PerfectAnswers, sum.HintsUsed)))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("Score %d   +%d XP", sum.Score, sum.XP)))
	if sum.QuestionsAttempted > 0 {
		card.WriteString("\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%.1fs per word, %d tries", float64(sum.AverageTimeMs)/1000, sum.TotalAttempts)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(card.String(), components.ContentWidth(width))))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(s.result.Mastered) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Mastered")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Success).Bold(true).
			Render(strings.ToUpper(strings.Join(s.result.Mastered, "  "))))
		b.WriteString("\n")
	}

	if len(s.result.Badges) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, a := range s.result.Badges {
			style := lipgloss.NewStyle().Foreground(components.RarityColor(a.Rarity))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				style.Render(components.BadgeLine(a.Type, a.Rarity, a.Reason))))
			b.WriteString("\n")
		}
	}

	return b.String()
}
