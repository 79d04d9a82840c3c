package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current snapshot data format.
const SnapshotVersion = 1

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int                  `json:"version"`
	Mastery *MasterySnapshotData `json:"mastery,omitempty"`
	Badges  *BadgesSnapshotData  `json:"badges,omitempty"`
}

// MasterySnapshotData holds per-word mastery state.
type MasterySnapshotData struct {
	Words map[string]*WordMasteryData `json:"words"`
}

// WordMasteryData is the persisted form of a single word's mastery.
type WordMasteryData struct {
	WordID       string  `json:"word_id"`
	State        string  `json:"state"`
	Resolutions  int     `json:"resolutions"`
	PerfectCount int     `json:"perfect_count"`
	HintCount    int     `json:"hint_count"`
	XP           int     `json:"xp"`
	Score        int     `json:"score"`
	LastRating   string  `json:"last_rating,omitempty"`
	MasteredAt   *string `json:"mastered_at,omitempty"` // RFC3339
}

// BadgesSnapshotData holds aggregate badge counts.
type BadgesSnapshotData struct {
	TotalCount  int            `json:"total_count"`
	CountByType map[string]int `json:"count_by_type"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID          string
	Action             string // "start" or "end"
	Mode               string
	TotalQuestions     int
	QuestionsAttempted int
	CorrectAnswers     int
	PerfectAnswers     int
	HintsUsed          int
	TotalAttempts      int
	TimeSpentMs        int64
	Score              int
	XP                 int
	Accuracy           float64
	TimedOut           bool
}

// MasteryEventData captures a single MasteryRecord.
type MasteryEventData struct {
	SessionID  string
	WordID     string
	ScoreDelta int
	XPDelta    int
	Reason     string
	Rating     string
	Source     string
	Mastered   bool
}

// BadgeEventData captures a badge award.
type BadgeEventData struct {
	BadgeType string
	Rarity    string
	WordID    *string
	SessionID string
	Reason    string
}

// BadgeEventRecord is a persisted badge award.
type BadgeEventRecord struct {
	BadgeType string
	Rarity    string
	WordID    *string
	SessionID string
	Reason    string
	Sequence  int64
	Timestamp time.Time
}

// SessionSummaryRecord is a completed session as shown in history.
type SessionSummaryRecord struct {
	SessionID      string
	Mode           string
	Timestamp      time.Time
	TotalQuestions int
	CorrectAnswers int
	PerfectAnswers int
	HintsUsed      int
	TimeSpentMs    int64
	Score          int
	XP             int
	Accuracy       float64
	TimedOut       bool
	BadgeCount     int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendMasteryEvent(ctx context.Context, data MasteryEventData) error
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryBadgeEvents returns badge awards, newest first.
	QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error)

	// BadgeCounts returns award counts by type and the overall total.
	BadgeCounts(ctx context.Context) (map[string]int, int, error)

	// WordXPTotals returns the summed XP delta per word.
	WordXPTotals(ctx context.Context) (map[string]int, error)
}
