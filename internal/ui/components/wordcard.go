package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// WordCard renders a question as a row of letter tiles.
type WordCard struct {
	Question quizgen.Question
	// Flash holds wrong letters still on screen, by position.
	Flash map[int]rune
	// Cursor is the position the next letter goes to, or -1.
	Cursor int
	// Revealed shows every masked letter in the hint style.
	Revealed bool
}

var (
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)

	cursorTile = tileStyle.BorderForeground(theme.ArcadeYellow)
	flashTile  = tileStyle.BorderForeground(theme.Error)
)

// View renders the tiles side by side.
func (c WordCard) View() string {
	letters := c.Question.Word.Letters()
	tiles := make([]string, len(letters))

	for i, r := range letters {
		ch := strings.ToUpper(string(r))
		style := tileStyle
		var text string

		switch {
		case !c.Question.IsMasked(i):
			text = theme.Body.Render(ch)
		case c.Flash[i] != 0:
			text = theme.Incorrect.Render(strings.ToUpper(string(c.Flash[i])))
			style = flashTile
		default:
			if f, ok := c.Question.Filled[i]; ok {
				ch = strings.ToUpper(string(f))
				if c.Revealed {
					text = theme.Revealed.Render(ch)
				} else {
					text = theme.Correct.Render(ch)
				}
			} else {
				text = theme.Blank.Render(" ")
			}
			if i == c.Cursor {
				style = cursorTile
			}
		}
		tiles[i] = style.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
