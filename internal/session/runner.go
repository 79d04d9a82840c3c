package session

import (
	"context"
	"sync"
	"time"
)

// Runner owns an Engine on a single goroutine. Commands and timer fires
// are funnelled through one channel, so the engine only ever sees one
// event at a time.
type Runner struct {
	engine *Engine
	ctx    context.Context

	inbox  chan func()
	done   chan struct{}
	closed sync.Once

	finished     chan struct{}
	finishedOnce sync.Once

	// Only touched on the loop goroutine.
	timers map[string]*time.Timer
}

// NewRunner creates a runner whose engine schedules through the runner's
// own timers. opts.Scheduler is ignored.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		inbox:    make(chan func(), 16),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
	opts.Scheduler = r
	opts.Observers = append(opts.Observers, ObserverFunc(r.observe))
	r.engine = NewEngine(opts)
	return r
}

// Run processes commands until ctx is cancelled or Close is called. It
// blocks and should be started on its own goroutine.
func (r *Runner) Run(ctx context.Context) {
	r.ctx = ctx
	defer r.stopTimers()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-r.done:
			return
		case fn := <-r.inbox:
			fn()
		}
	}
}

// Close stops the loop. Pending timers are discarded.
func (r *Runner) Close() {
	r.closed.Do(func() { close(r.done) })
}

// Finished is closed once the session reaches Complete or Exited.
func (r *Runner) Finished() <-chan struct{} {
	return r.finished
}

// do runs fn on the loop goroutine and waits for it.
func (r *Runner) do(fn func(*Engine)) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	ack := make(chan struct{})
	select {
	case r.inbox <- func() { fn(r.engine); close(ack) }:
	case <-r.done:
		return false
	}
	select {
	case <-ack:
		return true
	case <-r.done:
		return false
	}
}

// Start begins a session with the given settings.
func (r *Runner) Start(settings Settings) error {
	var err error
	if !r.do(func(e *Engine) { err = e.Start(r.ctx, settings) }) {
		return context.Canceled
	}
	return err
}

// SubmitLetter places letter at pos and returns the resulting state.
func (r *Runner) SubmitLetter(pos int, letter rune) State {
	return r.dispatch(LetterSubmitted{Pos: pos, Letter: letter})
}

// RequestHint reveals the current question and returns the resulting state.
func (r *Runner) RequestHint() State {
	return r.dispatch(HintRequested{})
}

// Advance skips the feedback delay and returns the resulting state.
func (r *Runner) Advance() State {
	return r.dispatch(AdvanceRequested{})
}

// Exit abandons the session and returns the resulting state.
func (r *Runner) Exit() State {
	return r.dispatch(ExitRequested{})
}

// State returns a snapshot of the engine state.
func (r *Runner) State() State {
	var s State
	r.do(func(e *Engine) { s = e.State() })
	return s
}

func (r *Runner) dispatch(ev Event) State {
	var s State
	r.do(func(e *Engine) {
		e.Dispatch(r.ctx, ev)
		s = e.State()
	})
	return s
}

// Schedule implements Scheduler. Called on the loop goroutine.
func (r *Runner) Schedule(key string, after time.Duration, ev Event) {
	r.Cancel(key)
	r.timers[key] = time.AfterFunc(after, func() {
		r.post(func() {
			r.engine.Dispatch(r.ctx, ev)
		})
	})
}

// Cancel implements Scheduler. Called on the loop goroutine.
func (r *Runner) Cancel(key string) {
	if t, ok := r.timers[key]; ok {
		t.Stop()
		delete(r.timers, key)
	}
}

// post enqueues fn without waiting. Fires after Close are dropped.
func (r *Runner) post(fn func()) {
	select {
	case r.inbox <- fn:
	case <-r.done:
	}
}

func (r *Runner) observe(s State) {
	if s.Phase.Terminal() {
		r.finishedOnce.Do(func() { close(r.finished) })
	}
}

func (r *Runner) stopTimers() {
	for key, t := range r.timers {
		t.Stop()
		delete(r.timers, key)
	}
}
