package store

import (
	"context"

	"github.com/abhisek/wordiz/internal/progress"
)

// ProgressRecorder persists progress events through an EventRepo.
type ProgressRecorder struct {
	repo EventRepo
}

var _ progress.Sink = (*ProgressRecorder)(nil)

// NewProgressRecorder creates a sink that writes to repo.
func NewProgressRecorder(repo EventRepo) *ProgressRecorder {
	return &ProgressRecorder{repo: repo}
}

func (p *ProgressRecorder) SessionStarted(ctx context.Context, ev progress.SessionStarted) error {
	return p.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:      ev.SessionID,
		Action:         "start",
		Mode:           ev.Mode,
		TotalQuestions: ev.TotalQuestions,
	})
}

func (p *ProgressRecorder) MasteryRecorded(ctx context.Context, ev progress.MasteryEvent) error {
	return p.repo.AppendMasteryEvent(ctx, MasteryEventData{
		SessionID:  ev.SessionID,
		WordID:     ev.WordID,
		ScoreDelta: ev.ScoreDelta,
		XPDelta:    ev.XPDelta,
		Reason:     ev.Reason,
		Rating:     ev.Rating,
		Source:     ev.Source,
		Mastered:   ev.Mastered,
	})
}

func (p *ProgressRecorder) SessionCompleted(ctx context.Context, s progress.SessionSummary) error {
	return p.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:          s.SessionID,
		Action:             "end",
		Mode:               s.Mode,
		TotalQuestions:     s.TotalQuestions,
		QuestionsAttempted: s.QuestionsAttempted,
		CorrectAnswers:     s.CorrectAnswers,
		PerfectAnswers:     s.PerfectAnswers,
		HintsUsed:          s.HintsUsed,
		TotalAttempts:      s.TotalAttempts,
		TimeSpentMs:        s.TimeSpentMs,
		Score:              s.Score,
		XP:                 s.XP,
		Accuracy:           s.Accuracy,
		TimedOut:           s.TimedOut,
	})
}
