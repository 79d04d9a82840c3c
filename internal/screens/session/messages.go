package session

import (
	sess "github.com/abhisek/wordiz/internal/session"
)

// timerFiredMsg is delivered when a scheduled engine timer elapses. ID is
// compared with the scheduler's live entry so cancelled timers are dropped.
type timerFiredMsg struct {
	Key   string
	ID    uint64
	Event sess.Event
}

// persistedMsg reports the end-of-session snapshot save.
type persistedMsg struct {
	Err error
}
