package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/wordiz/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"session_events", "mastery_events", "badge_events", "snapshots", "global_sequence", MigrationTableName} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.EventRepo().AppendSessionEvent(context.Background(), SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if n := countRows(t, s2, "session_events"); n != 1 {
		t.Errorf("session_events = %d, want 1", n)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	masteredAt := "2026-01-02T03:04:05Z"
	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: SnapshotVersion,
			Mastery: &MasterySnapshotData{Words: map[string]*WordMasteryData{
				"cat": {WordID: "cat", State: "mastered", XP: 100, MasteredAt: &masteredAt},
			}},
			Badges: &BadgesSnapshotData{TotalCount: 2, CountByType: map[string]int{"streak": 2}},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	cat := snap.Data.Mastery.Words["cat"]
	if cat == nil || cat.State != "mastered" || cat.XP != 100 || cat.MasteredAt == nil {
		t.Errorf("cat mastery = %+v", cat)
	}
	if snap.Data.Badges.CountByType["streak"] != 2 {
		t.Errorf("badges = %+v", snap.Data.Badges)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sc := newSequenceCounter(s.DB())

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendMasteryEvent(ctx, MasteryEventData{SessionID: "s1", WordID: "cat", Source: progress.SourceQuizGrading}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendBadgeEvent(ctx, BadgeEventData{BadgeType: "streak", Rarity: "common", SessionID: "s1"}); err != nil {
		t.Fatal(err)
	}

	var seqs []int64
	for _, table := range []string{"session_events", "mastery_events", "badge_events"} {
		var seq int64
		if err := s.DB().QueryRow("SELECT sequence FROM " + table).Scan(&seq); err != nil {
			t.Fatalf("%s: %v", table, err)
		}
		seqs = append(seqs, seq)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Errorf("sequences not increasing across tables: %v", seqs)
		}
	}
}

func TestQuerySessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, id := range []string{"s1", "s2", "s3"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: "start", Mode: "practice"}); err != nil {
			t.Fatal(err)
		}
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:      id,
			Action:         "end",
			Mode:           "practice",
			TotalQuestions: 5,
			CorrectAnswers: i + 2,
			Accuracy:       float64(i+2) / 5,
			TimedOut:       id == "s3",
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.AppendBadgeEvent(ctx, BadgeEventData{BadgeType: "session", Rarity: "rare", SessionID: "s3"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "s3" || got[1].SessionID != "s2" {
		t.Errorf("order = %s,%s, want s3,s2", got[0].SessionID, got[1].SessionID)
	}
	if got[0].CorrectAnswers != 4 || !got[0].TimedOut || got[0].BadgeCount != 1 {
		t.Errorf("s3 = %+v", got[0])
	}
	if got[1].BadgeCount != 0 {
		t.Errorf("s2 badge count = %d, want 0", got[1].BadgeCount)
	}
}

func TestBadgeQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	word := "giraffe"
	data := []BadgeEventData{
		{BadgeType: "streak", Rarity: "common", SessionID: "s1", Reason: "5 perfect in a row!"},
		{BadgeType: "streak", Rarity: "rare", SessionID: "s1", Reason: "10 perfect in a row!"},
		{BadgeType: "word-mastered", Rarity: "epic", SessionID: "s1", WordID: &word, Reason: "Mastered giraffe"},
	}
	for _, d := range data {
		if err := repo.AppendBadgeEvent(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	counts, total, err := repo.BadgeCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 3 || counts["streak"] != 2 || counts["word-mastered"] != 1 {
		t.Errorf("counts = %v total = %d", counts, total)
	}

	recs, err := repo.QueryBadgeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if recs[0].WordID == nil || *recs[0].WordID != "giraffe" {
		t.Errorf("newest badge word = %v, want giraffe", recs[0].WordID)
	}
	if recs[2].WordID != nil {
		t.Errorf("oldest badge word = %v, want nil", *recs[2].WordID)
	}

	after, err := repo.QueryBadgeEvents(ctx, QueryOpts{After: recs[1].Sequence})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 {
		t.Errorf("after filter len = %d, want 1", len(after))
	}
}

func TestProgressRecorder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	rec := NewProgressRecorder(repo)
	ctx := context.Background()

	if err := rec.SessionStarted(ctx, progress.SessionStarted{SessionID: "s1", Mode: "timed", TotalQuestions: 4}); err != nil {
		t.Fatal(err)
	}
	for _, ev := range []progress.MasteryEvent{
		{SessionID: "s1", WordID: "cat", ScoreDelta: 100, XPDelta: 20, Source: progress.SourceQuizGrading},
		{SessionID: "s1", WordID: "cat", ScoreDelta: 75, XPDelta: 15, Source: progress.SourceQuizGrading},
		{WordID: "dog", XPDelta: 30, Source: progress.SourceSelfRating, Rating: "easy"},
	} {
		if err := rec.MasteryRecorded(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.SessionCompleted(ctx, progress.SessionSummary{SessionID: "s1", Mode: "timed", TotalQuestions: 4, CorrectAnswers: 2, Accuracy: 1}); err != nil {
		t.Fatal(err)
	}

	totals, err := repo.WordXPTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if totals["cat"] != 35 || totals["dog"] != 30 {
		t.Errorf("totals = %v", totals)
	}

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 1 || sums[0].Mode != "timed" || sums[0].CorrectAnswers != 2 {
		t.Errorf("summaries = %+v", sums)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_ = repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "end"})
	_ = repo.AppendMasteryEvent(ctx, MasteryEventData{WordID: "cat", Source: progress.SourceSelfRating})
	_ = s.SnapshotRepo().Save(ctx, &Snapshot{Timestamp: time.Now(), Data: SnapshotData{Version: 1}})

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, table := range []string{"session_events", "mastery_events", "badge_events", "snapshots"} {
		if n := countRows(t, s, table); n != 0 {
			t.Errorf("%s has %d rows after reset", table, n)
		}
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}
