package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/mastery"
)

var rateCmd = &cobra.Command{
	Use:   "rate <word-id> <easy|medium|hard>",
	Short: "Rate how well you know a word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := mastery.ParseRating(strings.ToLower(args[1]))
		if err != nil {
			return err
		}

		w, err := openWiring(cmd, false)
		if err != nil {
			return err
		}
		defer w.Close()

		word, err := w.corpus.Get(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		rec, tr, err := w.tracker.RateWord(ctx, word, rating)
		if err != nil {
			return fmt.Errorf("rate %s: %w", word.ID, err)
		}
		if err := w.Persist(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s rated %s  +%d XP\n", word.Text, rating, rec.XPDelta)
		if tr != nil {
			fmt.Fprintf(out, "%s: %s → %s\n", word.Text, tr.From, tr.To)
		}
		return nil
	},
}
