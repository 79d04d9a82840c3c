// Package rate is the word-card screen where a learner rates how well they
// know each word.
package rate

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/abhisek/wordiz/internal/words"
)

var ratingKeys = map[string]mastery.Rating{
	"1": mastery.RatingEasy,
	"2": mastery.RatingMedium,
	"3": mastery.RatingHard,
}

type ratedMsg struct {
	Word       words.Word
	Record     mastery.Record
	Transition *mastery.StateTransition
	Err        error
}

// RateScreen lists corpus words with a search box. 1/2/3 rates the
// selected word easy/medium/hard.
type RateScreen struct {
	deps     screens.Deps
	input    components.TextInput
	matches  []words.Word
	selected int
	status   string
	failed   bool
}

var _ screen.Screen = (*RateScreen)(nil)
var _ screen.KeyHintProvider = (*RateScreen)(nil)

// New creates a rate screen over deps.Corpus.
func New(deps screens.Deps) *RateScreen {
	s := &RateScreen{
		deps:  deps,
		input: components.NewTextInput("search words...", unicode.IsLetter, 24),
	}
	s.refilter()
	return s
}

func (s *RateScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *RateScreen) Title() string {
	return "Rate Words"
}

func (s *RateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1", Description: "Easy"},
		{Key: "2", Description: "Medium"},
		{Key: "3", Description: "Hard"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the highlighted word, if any.
func (s *RateScreen) Selected() (words.Word, bool) {
	if s.selected < 0 || s.selected >= len(s.matches) {
		return words.Word{}, false
	}
	return s.matches[s.selected], true
}

func (s *RateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ratedMsg:
		s.applyRated(msg)
		return s, nil

	case tea.KeyPressMsg:
		key := msg.String()
		if r, ok := ratingKeys[key]; ok {
			return s, s.rate(r)
		}
		switch key {
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.matches)-1 {
				s.selected++
			}
			return s, nil
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refilter()
	}
	return s, cmd
}

// refilter recomputes the match list from the search box.
func (s *RateScreen) refilter() {
	q := strings.ToLower(strings.TrimSpace(s.input.Value()))
	s.matches = s.matches[:0]
	if s.deps.Corpus != nil {
		for _, w := range s.deps.Corpus.All() {
			if q == "" || strings.Contains(strings.ToLower(w.Text), q) || strings.HasPrefix(strings.ToLower(w.Category), q) {
				s.matches = append(s.matches, w)
			}
		}
	}
	if s.selected >= len(s.matches) {
		s.selected = max(len(s.matches)-1, 0)
	}
}

// rate records the rating for the selected word off the update loop.
func (s *RateScreen) rate(r mastery.Rating) tea.Cmd {
	w, ok := s.Selected()
	if !ok || s.deps.Tracker == nil {
		return nil
	}
	deps := s.deps
	return func() tea.Msg {
		ctx := context.Background()
		rec, tr, err := deps.Tracker.RateWord(ctx, w, r)
		if err != nil {
			return ratedMsg{Word: w, Err: err}
		}
		if err := deps.Persist(ctx); err != nil {
			deps.Log().Error("save snapshot", "error", err)
		}
		return ratedMsg{Word: w, Record: rec, Transition: tr}
	}
}

func (s *RateScreen) applyRated(msg ratedMsg) {
	if msg.Err != nil {
		s.failed = true
		s.status = fmt.Sprintf("Could not rate %s: %v", msg.Word.Text, msg.Err)
		return
	}
	s.failed = false
	s.status = fmt.Sprintf("%s rated %s  +%d XP", strings.ToUpper(msg.Word.Text), msg.Record.Rating, msg.Record.XPDelta)
	if msg.Transition.Mastered() {
		s.status += "  Mastered!"
	}
}

func (s *RateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")

	if len(s.matches) == 0 {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Italic(true).Render("No words match"))
		return b.String()
	}

	visible := max(height-8, 3)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.matches))

	for i := start; i < end; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i)))
		b.WriteString("\n")
	}

	if s.status != "" {
		color := theme.Success
		if s.failed {
			color = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(color).Bold(true).Render(s.status))
	}
	return b.String()
}

func (s *RateScreen) renderRow(i int) string {
	w := s.matches[i]
	state, xp := string(mastery.StateNew), 0
	if s.deps.Tracker != nil {
		wm := s.deps.Tracker.Get(w.ID)
		state, xp = string(wm.State), wm.XP
	}
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	stateStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if state == string(mastery.StateMastered) {
		stateStyle = stateStyle.Foreground(theme.Success)
	}
	return style.Render(fmt.Sprintf("%s%-14s %-10s %-7s", prefix, w.Text, w.Category, w.Difficulty)) +
		stateStyle.Render(fmt.Sprintf(" %-9s %4d XP", state, xp))
}
