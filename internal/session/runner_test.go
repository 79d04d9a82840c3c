package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/quizgen"
)

func fastTiming() Timing {
	return Timing{
		FeedbackDelay:   5 * time.Millisecond,
		HintDelay:       5 * time.Millisecond,
		WrongFlashDelay: 5 * time.Millisecond,
		Tick:            5 * time.Millisecond,
	}
}

func startRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	r := NewRunner(opts)
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	t.Cleanup(cancel)
	return r
}

func waitFinished(t *testing.T, r *Runner) {
	t.Helper()
	select {
	case <-r.Finished():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestRunner_AutoAdvanceToComplete(t *testing.T) {
	sink := &recordingSink{}
	r := startRunner(t, Options{
		Corpus:    smallCorpus(t),
		Generator: quizgen.NewSeeded(3, 4),
		Sink:      sink,
		Timing:    fastTiming(),
	})
	require.NoError(t, r.Start(Settings{Mode: quizgen.ModePractice, Count: 2}))

	for range 2 {
		require.Eventually(t, func() bool { return r.State().Phase == PhaseActive }, time.Second, time.Millisecond)
		q, ok := r.State().Current()
		require.True(t, ok)
		letters := q.Word.Letters()
		s := r.SubmitLetter(q.Masked[0], letters[q.Masked[0]])
		require.Equal(t, PhaseFeedback, s.Phase)
	}

	waitFinished(t, r)
	s := r.State()
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.Equal(t, 2, s.Summary.CorrectAnswers)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.completed, 1)
	assert.Equal(t, 2, sink.completed[0].PerfectAnswers)
}

func TestRunner_TimedSessionExpires(t *testing.T) {
	r := startRunner(t, Options{
		Corpus:    smallCorpus(t),
		Generator: quizgen.NewSeeded(5, 6),
		Timing:    fastTiming(),
	})
	require.NoError(t, r.Start(Settings{Mode: quizgen.ModeTimed, Count: 3, TimeLimit: 20 * time.Millisecond}))

	waitFinished(t, r)
	s := r.State()
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.True(t, s.TimedOut)
	assert.Zero(t, s.Summary.CorrectAnswers)
	assert.Zero(t, s.Summary.Accuracy)
}

func TestRunner_ExitSuppressesPendingAdvance(t *testing.T) {
	timing := fastTiming()
	timing.HintDelay = 50 * time.Millisecond
	r := startRunner(t, Options{
		Corpus:    smallCorpus(t),
		Generator: quizgen.NewSeeded(7, 8),
		Timing:    timing,
	})
	require.NoError(t, r.Start(Settings{Mode: quizgen.ModePractice, Count: 3}))

	s := r.RequestHint()
	require.Equal(t, PhaseFeedback, s.Phase)
	s = r.Exit()
	require.Equal(t, PhaseExited, s.Phase)

	time.Sleep(100 * time.Millisecond)
	s = r.State()
	assert.Equal(t, PhaseExited, s.Phase)
	assert.Equal(t, 0, s.Index, "advance must not fire after exit")
	waitFinished(t, r)
}

func TestRunner_CloseUnblocksCommands(t *testing.T) {
	r := startRunner(t, Options{
		Corpus:    smallCorpus(t),
		Generator: quizgen.NewSeeded(9, 10),
	})
	r.Close()
	assert.Error(t, r.Start(Settings{Mode: quizgen.ModePractice, Count: 1}))
}
