package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "wordiz",
	Short:        "Vowel-spelling practice for kids",
	Long:         "Wordiz is a terminal game where children fill in the missing vowels of everyday words and build up word mastery.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/wordiz/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	addQuizFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and env, then applies the persistent
// flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB.Path = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db, then
// db.path / WORDIZ_DB), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// setupLogging installs the slog default. The TUI writes to a log file so
// output never lands on the alt screen.
func setupLogging(cfg *config.Config, tui bool) (func(), error) {
	logCfg := cfg.Log
	if tui && logCfg.File == "" {
		p, err := logging.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		logCfg.File = p
	}
	_, closer, err := logging.Setup(logCfg)
	if err != nil {
		return nil, err
	}
	return func() { _ = closer.Close() }, nil
}
