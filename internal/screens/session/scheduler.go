package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/wordiz/internal/session"
)

// teaScheduler turns engine timer effects into tea.Tick commands. It is
// only used from the Bubble Tea update loop, so it needs no locking.
type teaScheduler struct {
	seq     uint64
	live    map[string]uint64
	pending []tea.Cmd
}

var _ sess.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[string]uint64)}
}

// Schedule queues a tick for key, replacing any pending one.
func (t *teaScheduler) Schedule(key string, after time.Duration, ev sess.Event) {
	t.seq++
	id := t.seq
	t.live[key] = id
	t.pending = append(t.pending, tea.Tick(after, func(time.Time) tea.Msg {
		return timerFiredMsg{Key: key, ID: id, Event: ev}
	}))
}

// Cancel forgets key. Its tick still arrives but is dropped by accept.
func (t *teaScheduler) Cancel(key string) {
	delete(t.live, key)
}

// accept reports whether msg is the live timer for its key and retires it.
func (t *teaScheduler) accept(msg timerFiredMsg) bool {
	if id, ok := t.live[msg.Key]; !ok || id != msg.ID {
		return false
	}
	delete(t.live, msg.Key)
	return true
}

// drain returns the commands queued since the last drain.
func (t *teaScheduler) drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}

// reset drops every live timer.
func (t *teaScheduler) reset() {
	clear(t.live)
	t.pending = nil
}
