package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addQuizFlags(playCmd)
}

// addQuizFlags registers the session setting overrides on cmd.
func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "Quiz mode: practice, challenge, timed or custom")
	cmd.Flags().String("difficulty", "", "Word difficulty: easy, medium, hard or mixed")
	cmd.Flags().String("category", "", "Only use words from this category")
	cmd.Flags().Int("count", 0, "Number of words per game")
	cmd.Flags().Duration("time-limit", 0, "Countdown for timed mode (e.g. 90s)")
}

// applyQuizFlags overlays the flags the user set onto st and validates
// the result.
func applyQuizFlags(cmd *cobra.Command, st *session.Settings) error {
	f := cmd.Flags()
	if f.Changed("mode") {
		v, _ := f.GetString("mode")
		st.Mode = quizgen.Mode(v)
	}
	if f.Changed("difficulty") {
		st.Difficulty, _ = f.GetString("difficulty")
	}
	if f.Changed("category") {
		st.Category, _ = f.GetString("category")
	}
	if f.Changed("count") {
		st.Count, _ = f.GetInt("count")
	}
	if f.Changed("time-limit") {
		st.TimeLimit, _ = f.GetDuration("time-limit")
	}
	if st.Mode == quizgen.ModeTimed && st.TimeLimit <= 0 {
		return fmt.Errorf("timed mode needs --time-limit")
	}
	return session.ValidateSettings(*st)
}
