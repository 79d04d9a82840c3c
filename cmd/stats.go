package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWiring(cmd, false)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx := cmd.Context()
		repo := w.store.EventRepo()
		out := cmd.OutOrStdout()

		mastered := w.tracker.MasteredWords()
		fmt.Fprintf(out, "Total XP:       %d\n", w.tracker.TotalXP())
		fmt.Fprintf(out, "Mastered words: %d\n", len(mastered))
		if len(mastered) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(mastered, ", "))
		}

		byType, total, err := repo.BadgeCounts(ctx)
		if err != nil {
			return fmt.Errorf("badge counts: %w", err)
		}
		fmt.Fprintf(out, "\nBadges: %d\n", total)
		for _, t := range badges.AllBadgeTypes() {
			if n := byType[string(t)]; n > 0 {
				fmt.Fprintf(out, "  %s %-16s %d\n", t.Icon(), t.DisplayName(), n)
			}
		}

		recent, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 5})
		if err != nil {
			return fmt.Errorf("recent sessions: %w", err)
		}
		fmt.Fprintln(out, "\nRecent games:")
		if len(recent) == 0 {
			fmt.Fprintln(out, "  none yet")
		}
		for _, rec := range recent {
			spent := time.Duration(rec.TimeSpentMs) * time.Millisecond
			fmt.Fprintf(out, "  %s  %-9s %d/%d words  %3.0f%%  +%d XP  %s\n",
				rec.Timestamp.Local().Format("Jan 02 15:04"),
				quizgen.Mode(rec.Mode).DisplayName(),
				rec.CorrectAnswers, rec.TotalQuestions, rec.Accuracy*100, rec.XP,
				spent.Round(time.Second))
		}
		return nil
	},
}
