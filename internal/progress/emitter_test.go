package progress

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	started   []SessionStarted
	mastery   []MasteryEvent
	completed []SessionSummary
	err       error
}

func (r *recordingSink) SessionStarted(_ context.Context, ev SessionStarted) error {
	r.started = append(r.started, ev)
	return r.err
}

func (r *recordingSink) MasteryRecorded(_ context.Context, ev MasteryEvent) error {
	r.mastery = append(r.mastery, ev)
	return r.err
}

func (r *recordingSink) SessionCompleted(_ context.Context, s SessionSummary) error {
	r.completed = append(r.completed, s)
	return r.err
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEmitter_FansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	e := NewEmitter(testLogger(&bytes.Buffer{}), a)
	e.Register(b)

	ctx := context.Background()
	require.NoError(t, e.SessionStarted(ctx, SessionStarted{SessionID: "s1", TotalQuestions: 3}))
	require.NoError(t, e.MasteryRecorded(ctx, MasteryEvent{SessionID: "s1", WordID: "cat", XPDelta: 20}))
	require.NoError(t, e.SessionCompleted(ctx, SessionSummary{SessionID: "s1", CorrectAnswers: 1}))

	for _, s := range []*recordingSink{a, b} {
		assert.Len(t, s.started, 1)
		assert.Len(t, s.mastery, 1)
		assert.Len(t, s.completed, 1)
		assert.Equal(t, "cat", s.mastery[0].WordID)
	}
}

func TestEmitter_FailingSinkDoesNotBlockOthers(t *testing.T) {
	var logs bytes.Buffer
	boom := errors.New("disk full")
	failing := &recordingSink{err: boom}
	healthy := &recordingSink{}
	e := NewEmitter(testLogger(&logs), failing, healthy)

	err := e.MasteryRecorded(context.Background(), MasteryEvent{SessionID: "s1", WordID: "dog"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, healthy.mastery, 1, "healthy sink should still receive the event")
	assert.Contains(t, logs.String(), "progress sink failed")
}

func TestEmitter_NoSinks(t *testing.T) {
	e := NewEmitter(nil)
	assert.NoError(t, e.SessionCompleted(context.Background(), SessionSummary{}))
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	ctx := context.Background()
	assert.NoError(t, s.SessionStarted(ctx, SessionStarted{}))
	assert.NoError(t, s.MasteryRecorded(ctx, MasteryEvent{}))
	assert.NoError(t, s.SessionCompleted(ctx, SessionSummary{}))
}
