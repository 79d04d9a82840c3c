package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendMasteryEvent(ctx context.Context, data MasteryEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO mastery_events (
			sequence, timestamp, session_id, word_id, score_delta, xp_delta,
			reason, rating, source, mastered
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, nowMillis(), data.SessionID, data.WordID, data.ScoreDelta, data.XPDelta,
		data.Reason, data.Rating, data.Source, boolInt(data.Mastered),
	)
	if err != nil {
		return fmt.Errorf("save mastery event: %w", err)
	}
	return nil
}

func (r *eventRepo) WordXPTotals(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT word_id, SUM(xp_delta) FROM mastery_events GROUP BY word_id`)
	if err != nil {
		return nil, fmt.Errorf("query word xp: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var (
			wordID string
			xp     int
		)
		if err := rows.Scan(&wordID, &xp); err != nil {
			return nil, fmt.Errorf("scan word xp: %w", err)
		}
		totals[wordID] = xp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word xp: %w", err)
	}
	return totals, nil
}
