package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/words"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the word corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.Corpus.Path
		}
		corpus, err := loadCorpus(path)
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		list := corpus.Filter(category, difficulty)
		if len(list) == 0 {
			return fmt.Errorf("no words match category %q and difficulty %q", category, difficulty)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s  %-14s  %-12s  %-8s  %s\n", "ID", "Text", "Category", "Level", "Vowels")
		fmt.Fprintln(out, strings.Repeat("─", 62))
		for _, w := range list {
			vowels := len(words.VowelPositions(w.Text))
			note := fmt.Sprint(vowels)
			if !w.Maskable() {
				note = "- (never asked)"
			}
			fmt.Fprintf(out, "%-14s  %-14s  %-12s  %-8s  %s\n", w.ID, w.Text, w.Category, w.Difficulty, note)
		}
		fmt.Fprintf(out, "\n%d words in %d categories\n", len(list), len(corpus.Categories()))
		return nil
	},
}

var wordsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a corpus file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read corpus: %w", err)
		}
		corpus, err := words.Parse(raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d words)\n", args[0], corpus.Len())
		return nil
	},
}

func init() {
	wordsCmd.Flags().String("category", "", "Only list this category")
	wordsCmd.Flags().String("difficulty", "", "Only list this difficulty (easy, medium, hard)")
	wordsCmd.Flags().String("file", "", "Read words from a JSON corpus file instead of the configured one")

	wordsCmd.AddCommand(wordsValidateCmd)
}
