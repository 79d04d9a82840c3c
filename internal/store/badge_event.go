package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var wordID sql.NullString
	if data.WordID != nil {
		wordID = sql.NullString{String: *data.WordID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO badge_events (
			sequence, timestamp, badge_type, rarity, word_id, session_id, reason
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, nowMillis(), data.BadgeType, data.Rarity, wordID, data.SessionID, data.Reason,
	)
	if err != nil {
		return fmt.Errorf("save badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error) {
	tail, args := filter(opts, nil, nil)
	rows, err := r.db.QueryContext(ctx, `SELECT
			badge_type, rarity, word_id, session_id, reason, sequence, timestamp
		FROM badge_events`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query badge events: %w", err)
	}
	defer rows.Close()

	var records []BadgeEventRecord
	for rows.Next() {
		var (
			rec    BadgeEventRecord
			wordID sql.NullString
			ts     int64
		)
		if err := rows.Scan(&rec.BadgeType, &rec.Rarity, &wordID, &rec.SessionID, &rec.Reason, &rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan badge event: %w", err)
		}
		if wordID.Valid {
			w := wordID.String
			rec.WordID = &w
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate badge events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) BadgeCounts(ctx context.Context) (map[string]int, int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT badge_type, COUNT(*) FROM badge_events GROUP BY badge_type`)
	if err != nil {
		return nil, 0, fmt.Errorf("query badge counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			badgeType string
			n         int
		)
		if err := rows.Scan(&badgeType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan badge count: %w", err)
		}
		byType[badgeType] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate badge counts: %w", err)
	}
	return byType, total, nil
}
