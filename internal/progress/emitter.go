package progress

import (
	"context"
	"log/slog"
	"sync"
)

// Emitter fans events out to registered sinks. A failing sink is logged and
// does not stop delivery to the others.
type Emitter struct {
	sinks  []Sink
	mu     sync.RWMutex
	logger *slog.Logger
}

var _ Sink = (*Emitter)(nil)

// NewEmitter creates an Emitter with the given initial sinks.
func NewEmitter(logger *slog.Logger, sinks ...Sink) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		sinks:  append([]Sink(nil), sinks...),
		logger: logger.With("component", "progress_emitter"),
	}
}

// Register adds a sink.
func (e *Emitter) Register(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
	e.logger.Debug("registered progress sink", "sink_count", len(e.sinks))
}

func (e *Emitter) snapshot() []Sink {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sinks := make([]Sink, len(e.sinks))
	copy(sinks, e.sinks)
	return sinks
}

// SessionStarted delivers ev to every sink and returns the first error.
func (e *Emitter) SessionStarted(ctx context.Context, ev SessionStarted) error {
	return e.dispatch("session_started", ev.SessionID, func(s Sink) error {
		return s.SessionStarted(ctx, ev)
	})
}

// MasteryRecorded delivers ev to every sink and returns the first error.
func (e *Emitter) MasteryRecorded(ctx context.Context, ev MasteryEvent) error {
	return e.dispatch("mastery_recorded", ev.SessionID, func(s Sink) error {
		return s.MasteryRecorded(ctx, ev)
	})
}

// SessionCompleted delivers summary to every sink and returns the first error.
func (e *Emitter) SessionCompleted(ctx context.Context, summary SessionSummary) error {
	return e.dispatch("session_completed", summary.SessionID, func(s Sink) error {
		return s.SessionCompleted(ctx, summary)
	})
}

func (e *Emitter) dispatch(kind, sessionID string, deliver func(Sink) error) error {
	sinks := e.snapshot()
	e.logger.Debug("emitting progress event",
		"event_type", kind,
		"session_id", sessionID,
		"sink_count", len(sinks))

	var firstErr error
	for i, s := range sinks {
		if err := deliver(s); err != nil {
			e.logger.Error("progress sink failed",
				"error", err,
				"sink_index", i,
				"event_type", kind,
				"session_id", sessionID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
