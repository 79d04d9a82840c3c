package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/quizgen"
	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	state := s.engine.State()
	switch state.Phase {
	case sess.PhaseSetup:
		return renderLoading(width)
	case sess.PhaseComplete, sess.PhaseExited:
		return renderLoading(width)
	}
	return s.renderQuestion(width, state)
}

func center(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestion draws the info line, the word card and the feedback area.
func (s *SessionScreen) renderQuestion(width int, state sess.State) string {
	q, ok := state.Current()
	if !ok {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width, state, q))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if state.Timed() {
		limit := state.Settings.TimeLimit
		var pct float64
		if limit > 0 {
			pct = float64(state.Remaining) / float64(limit)
		}
		bar := components.NewProgressBar(fmt.Sprintf("⏱ %ds", int(state.Remaining.Seconds())), pct, false, min(width-8, 50))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(center(width).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", strings.ToUpper(q.Word.Category), q.Word.Difficulty)))
	b.WriteString("\n\n")

	cursor := -1
	if state.Phase == sess.PhaseActive {
		cursor = s.target()
	}
	card := components.WordCard{
		Question: q,
		Flash:    state.Flash,
		Cursor:   cursor,
		Revealed: q.Status == quizgen.StatusCorrectViaHint,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card.View()))
	b.WriteString("\n\n")

	if state.Phase == sess.PhaseFeedback {
		b.WriteString(s.renderFeedback(width, state))
	} else if len(state.Flash) > 0 {
		b.WriteString(center(width).Foreground(theme.Error).Render("Not quite, try another vowel"))
	} else {
		b.WriteString(center(width).Foreground(theme.TextDim).Italic(true).Render("Fill in the missing vowels"))
	}
	return b.String()
}

func (s *SessionScreen) renderInfoLine(width int, state sess.State, q quizgen.Question) string {
	n, total := state.Progress()
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Word %d/%d", n, total))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.Counters.CorrectAnswers,
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★"),
			state.Counters.Score,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			q.Attempts,
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderFeedback shows the result of the resolved question.
func (s *SessionScreen) renderFeedback(width int, state sess.State) string {
	var b strings.Builder
	if res := state.Last; res != nil {
		q := res.Question
		switch {
		case res.ViaHint():
			b.WriteString(center(width).Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("The word was %s", strings.ToUpper(q.Word.Text))))
		case q.Perfect:
			b.WriteString(center(width).Foreground(theme.Success).Bold(true).Render("Perfect!"))
		default:
			b.WriteString(center(width).Foreground(theme.Success).Bold(true).Render("Correct!"))
		}
		b.WriteString("\n")
		b.WriteString(center(width).Foreground(theme.Text).
			Render(fmt.Sprintf("+%d points  +%d XP", q.Points, res.XP())))
		b.WriteString("\n")
	}

	if tr := s.engine.LastTransition(); tr.Mastered() {
		b.WriteString("\n")
		b.WriteString(center(width).Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("You mastered %q!", tr.Word)))
		b.WriteString("\n")
	}

	if awards := s.Awards(); len(awards) > 0 {
		a := awards[len(awards)-1]
		b.WriteString("\n")
		b.WriteString(center(width).Foreground(components.RarityColor(a.Rarity)).
			Render(components.BadgeLine(a.Type, a.Rarity, a.Reason)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render("Press Enter to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width).Foreground(theme.Text).Bold(true).Render("End the game early?"))
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render("Words you already solved are saved."))
	b.WriteString("\n\n")
	b.WriteString(center(width).Foreground(theme.Success).Render("[Y] Yes, stop here"))
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return center(width).Foreground(theme.TextDim).Render("\n\n\n  Shuffling words...")
}

func renderError(width int, errMsg string) string {
	return center(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
