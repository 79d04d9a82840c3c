package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/screens"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// wiring holds the opened store and every collaborator built on it.
type wiring struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	corpus  *words.Corpus
	gen     *quizgen.Generator
	tracker *mastery.Tracker
	badges  *badges.Service
	emitter *progress.Emitter

	closeLog func()
}

// openWiring loads config, sets up logging, opens the store and restores
// the latest snapshot.
func openWiring(cmd *cobra.Command, tui bool) (*wiring, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	closeLog, err := setupLogging(cfg, tui)
	if err != nil {
		return nil, err
	}
	w := &wiring{
		cfg:      cfg,
		logger:   slog.Default(),
		gen:      quizgen.NewSeeded(rand.Uint64(), rand.Uint64()),
		closeLog: closeLog,
	}

	w.corpus, err = loadCorpus(cfg.Corpus.Path)
	if err != nil {
		w.Close()
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	w.store, err = store.Open(dbPath)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	ctx := cmd.Context()
	var data *store.SnapshotData
	snap, err := w.store.SnapshotRepo().Latest(ctx)
	if err != nil {
		w.logger.Warn("load snapshot", "error", err)
	} else if snap != nil {
		data = &snap.Data
	}

	eventRepo := w.store.EventRepo()
	w.badges = badges.NewService(w.corpus, eventRepo, w.logger)
	w.emitter = progress.NewEmitter(w.logger, store.NewProgressRecorder(eventRepo), w.badges)
	w.tracker = mastery.NewTracker(data, w.emitter, w.logger)

	w.logger.Info("wordiz ready", "db", dbPath, "words", w.corpus.Len(), "xp", w.tracker.TotalXP())
	return w, nil
}

// loadCorpus reads path, or returns the built-in corpus when path is empty.
func loadCorpus(path string) (*words.Corpus, error) {
	if path == "" {
		return words.Seed(), nil
	}
	c, err := words.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return c, nil
}

// Persist saves a snapshot of tracker and badge state and prunes old ones.
func (w *wiring) Persist(ctx context.Context) error {
	return w.deps(nil).Persist(ctx)
}

// Close releases the store and the log file.
func (w *wiring) Close() {
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.logger.Error("close store", "error", err)
		}
	}
	if w.closeLog != nil {
		w.closeLog()
	}
}

// settings returns the configured session defaults.
func (w *wiring) settings() session.Settings {
	q := w.cfg.Quiz
	return session.Settings{
		Mode:       quizgen.Mode(q.Mode),
		Difficulty: q.Difficulty,
		Category:   q.Category,
		Count:      q.Count,
		TimeLimit:  q.TimeLimit(),
	}
}

func (w *wiring) timing() session.Timing {
	t := w.cfg.Timing
	return session.Timing{
		FeedbackDelay:   t.FeedbackDelay,
		HintDelay:       t.HintDelay,
		WrongFlashDelay: t.WrongFlash,
		Tick:            t.Tick,
	}
}

// deps assembles the screen dependencies. cues may be nil.
func (w *wiring) deps(cues session.CueSink) screens.Deps {
	return screens.Deps{
		Corpus:       w.corpus,
		Generator:    w.gen,
		Tracker:      w.tracker,
		Badges:       w.badges,
		Sink:         w.emitter,
		EventRepo:    w.store.EventRepo(),
		SnapshotRepo: w.store.SnapshotRepo(),
		Cues:         cues,
		Settings:     w.settings(),
		Timing:       w.timing(),
		Logger:       w.logger,
	}
}

// bellCues rings the terminal bell for wrong letters and finished games.
type bellCues struct {
	w io.Writer
}

func (b bellCues) Cue(c session.Cue) {
	if c == session.CueIncorrect || c == session.CueComplete {
		fmt.Fprint(b.w, "\a")
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	w, err := openWiring(cmd, true)
	if err != nil {
		return err
	}
	defer w.Close()

	deps := w.deps(bellCues{w: os.Stderr})
	if err := applyQuizFlags(cmd, &deps.Settings); err != nil {
		return err
	}

	runErr := app.Run(deps)
	if err := deps.Persist(context.Background()); err != nil {
		w.logger.Error("save snapshot on exit", "error", err)
		runErr = errors.Join(runErr, err)
	}
	return runErr
}
