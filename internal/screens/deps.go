// Package screens holds the dependencies shared by the TUI screens.
package screens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/quizgen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/words"
)

// Deps wires screens to the engine collaborators. Corpus and Generator are
// required; the rest may be nil.
type Deps struct {
	Corpus       *words.Corpus
	Generator    *quizgen.Generator
	Tracker      *mastery.Tracker
	Badges       *badges.Service
	Sink         progress.Sink
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	Cues         session.CueSink

	// Settings are the defaults for a new game.
	Settings session.Settings
	Timing   session.Timing
	Logger   *slog.Logger
}

// Log returns the configured logger or the slog default.
func (d Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Persist snapshots tracker and badge state. It is a no-op without a
// tracker or snapshot repo.
func (d Deps) Persist(ctx context.Context) error {
	if d.Tracker == nil || d.SnapshotRepo == nil {
		return nil
	}
	var counts *store.BadgesSnapshotData
	if d.Badges != nil {
		counts = d.Badges.SnapshotData(ctx)
	}
	if err := d.Tracker.Persist(ctx, d.SnapshotRepo, counts); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// HeaderStats collects the learner totals for the header bar.
func (d Deps) HeaderStats(ctx context.Context) layout.HeaderStats {
	var hs layout.HeaderStats
	if d.Tracker != nil {
		hs.XP = d.Tracker.TotalXP()
		hs.Mastered = len(d.Tracker.MasteredWords())
	}
	if d.EventRepo != nil {
		if _, total, err := d.EventRepo.BadgeCounts(ctx); err == nil {
			hs.Badges = total
		}
	}
	return hs
}
