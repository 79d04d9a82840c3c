package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events (
			sequence, timestamp, session_id, action, mode,
			total_questions, questions_attempted, correct_answers, perfect_answers,
			hints_used, total_attempts, time_spent_ms, score, xp, accuracy, timed_out
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, nowMillis(), data.SessionID, data.Action, data.Mode,
		data.TotalQuestions, data.QuestionsAttempted, data.CorrectAnswers, data.PerfectAnswers,
		data.HintsUsed, data.TotalAttempts, data.TimeSpentMs, data.Score, data.XP,
		data.Accuracy, boolInt(data.TimedOut),
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	tail, args := filter(opts, []string{"action = ?"}, []any{"end"})
	rows, err := r.db.QueryContext(ctx, `SELECT
			session_id, mode, timestamp, total_questions, correct_answers, perfect_answers,
			hints_used, time_spent_ms, score, xp, accuracy, timed_out,
			(SELECT COUNT(*) FROM badge_events b WHERE b.session_id = session_events.session_id)
		FROM session_events`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec      SessionSummaryRecord
			ts       int64
			timedOut int
		)
		if err := rows.Scan(
			&rec.SessionID, &rec.Mode, &ts, &rec.TotalQuestions, &rec.CorrectAnswers,
			&rec.PerfectAnswers, &rec.HintsUsed, &rec.TimeSpentMs, &rec.Score, &rec.XP,
			&rec.Accuracy, &timedOut, &rec.BadgeCount,
		); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.TimedOut = timedOut != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return records, nil
}
