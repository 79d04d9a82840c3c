package mastery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// SnapshotsToKeep bounds the snapshot table after each Persist.
const SnapshotsToKeep = 10

// ErrUnresolved is returned when recording a question that has not resolved.
var ErrUnresolved = errors.New("question not resolved")

// WordMastery holds all mastery data for a single word.
type WordMastery struct {
	WordID       string
	State        MasteryState
	Resolutions  int
	PerfectCount int
	HintCount    int
	XP           int
	Score        int
	LastRating   Rating
	MasteredAt   *time.Time
}

// PerfectRatio returns the share of quiz resolutions that were perfect.
func (wm *WordMastery) PerfectRatio() float64 {
	if wm.Resolutions == 0 {
		return 0
	}
	return float64(wm.PerfectCount) / float64(wm.Resolutions)
}

// Tracker keeps per-word mastery state and reports records to a sink.
type Tracker struct {
	mu     sync.Mutex
	words  map[string]*WordMastery
	sink   progress.Sink
	logger *slog.Logger
	now    func() time.Time
}

// NewTracker creates a tracker, loading state from the snapshot if present.
func NewTracker(snap *store.SnapshotData, sink progress.Sink, logger *slog.Logger) *Tracker {
	if sink == nil {
		sink = progress.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		words:  make(map[string]*WordMastery),
		sink:   sink,
		logger: logger.With("component", "mastery"),
		now:    time.Now,
	}
	if snap != nil && snap.Mastery != nil {
		t.load(snap.Mastery)
	}
	return t
}

func (t *Tracker) load(data *store.MasterySnapshotData) {
	for id, wd := range data.Words {
		if wd == nil {
			continue
		}
		wm := &WordMastery{
			WordID:       id,
			State:        MasteryState(wd.State),
			Resolutions:  wd.Resolutions,
			PerfectCount: wd.PerfectCount,
			HintCount:    wd.HintCount,
			XP:           wd.XP,
			Score:        wd.Score,
			LastRating:   Rating(wd.LastRating),
		}
		if wd.MasteredAt != nil {
			if ts, err := time.Parse(time.RFC3339, *wd.MasteredAt); err == nil {
				wm.MasteredAt = &ts
			}
		}
		if wm.State == "" {
			wm.State = StateLearning
		}
		t.words[id] = wm
	}
}

// SetClock overrides the time source.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// get returns the record for id, creating a StateNew one. Caller holds mu.
func (t *Tracker) get(id string) *WordMastery {
	if wm, ok := t.words[id]; ok {
		return wm
	}
	wm := &WordMastery{WordID: id, State: StateNew}
	t.words[id] = wm
	return wm
}

// Get returns a copy of the mastery record for a word. Unknown words
// report StateNew.
func (t *Tracker) Get(wordID string) WordMastery {
	t.mu.Lock()
	defer t.mu.Unlock()
	if wm, ok := t.words[wordID]; ok {
		return *wm
	}
	return WordMastery{WordID: wordID, State: StateNew}
}

// RecordQuiz applies a resolved quiz question. Interrupted or unresolved
// questions produce no record.
func (t *Tracker) RecordQuiz(ctx context.Context, sessionID string, r Resolution) (Record, *StateTransition, error) {
	if !r.Correct() {
		return Record{}, nil, ErrUnresolved
	}

	t.mu.Lock()
	rec := QuizRecord(r, t.now())
	wm := t.get(rec.WordID)
	tr := t.enterLearning(wm, r.Question.Word.Text, TriggerFirstResolution)

	wm.Resolutions++
	if r.Question.Perfect {
		wm.PerfectCount++
	}
	if r.ViaHint() {
		wm.HintCount++
	}
	wm.XP += rec.XPDelta
	wm.Score += rec.ScoreDelta
	wm.LastRating = rec.Rating

	if wm.State == StateLearning &&
		wm.Resolutions >= MinResolutionsForMastery &&
		wm.PerfectRatio() >= MasteryPerfectRatio {
		tr = t.master(wm, r.Question.Word.Text, TriggerPerfectRatio)
	}
	t.mu.Unlock()

	err := t.emit(ctx, sessionID, rec, tr)
	return rec, tr, err
}

// RateWord applies an explicit self-rating. It never touches session
// counters.
func (t *Tracker) RateWord(ctx context.Context, w words.Word, r Rating) (Record, *StateTransition, error) {
	if _, err := ParseRating(string(r)); err != nil {
		return Record{}, nil, err
	}

	t.mu.Lock()
	rec := RatingRecord(w, r, t.now())
	wm := t.get(w.ID)
	tr := t.enterLearning(wm, w.Text, TriggerFirstRating)
	wm.XP += rec.XPDelta
	wm.LastRating = r
	if r == RatingEasy && wm.State != StateMastered {
		tr = t.master(wm, w.Text, TriggerRatedEasy)
	}
	t.mu.Unlock()

	err := t.emit(ctx, "", rec, tr)
	return rec, tr, err
}

func (t *Tracker) enterLearning(wm *WordMastery, text, trigger string) *StateTransition {
	if wm.State != StateNew {
		return nil
	}
	wm.State = StateLearning
	return &StateTransition{WordID: wm.WordID, Word: text, From: StateNew, To: StateLearning, Trigger: trigger}
}

func (t *Tracker) master(wm *WordMastery, text, trigger string) *StateTransition {
	from := wm.State
	now := t.now()
	wm.State = StateMastered
	wm.MasteredAt = &now
	return &StateTransition{WordID: wm.WordID, Word: text, From: from, To: StateMastered, Trigger: trigger}
}

func (t *Tracker) emit(ctx context.Context, sessionID string, rec Record, tr *StateTransition) error {
	if tr != nil {
		t.logger.Info("mastery transition",
			"word_id", tr.WordID,
			"from", tr.From,
			"to", tr.To,
			"trigger", tr.Trigger)
	}
	err := t.sink.MasteryRecorded(ctx, progress.MasteryEvent{
		SessionID:  sessionID,
		WordID:     rec.WordID,
		ScoreDelta: rec.ScoreDelta,
		XPDelta:    rec.XPDelta,
		Reason:     rec.Reason,
		Rating:     string(rec.Rating),
		Source:     rec.Source,
		Mastered:   tr.Mastered(),
		At:         rec.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("record mastery: %w", err)
	}
	return nil
}

// TotalXP returns the XP summed over every word.
func (t *Tracker) TotalXP() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, wm := range t.words {
		total += wm.XP
	}
	return total
}

// MasteredWords returns the sorted IDs of mastered words.
func (t *Tracker) MasteredWords() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ids []string
	for id, wm := range t.words {
		if wm.State == StateMastered {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// All returns copies of every tracked word's mastery.
func (t *Tracker) All() map[string]WordMastery {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]WordMastery, len(t.words))
	for id, wm := range t.words {
		out[id] = *wm
	}
	return out
}

// SnapshotData exports the current mastery state for persistence.
func (t *Tracker) SnapshotData() *store.MasterySnapshotData {
	t.mu.Lock()
	defer t.mu.Unlock()
	data := &store.MasterySnapshotData{
		Words: make(map[string]*store.WordMasteryData, len(t.words)),
	}
	for id, wm := range t.words {
		wd := &store.WordMasteryData{
			WordID:       id,
			State:        string(wm.State),
			Resolutions:  wm.Resolutions,
			PerfectCount: wm.PerfectCount,
			HintCount:    wm.HintCount,
			XP:           wm.XP,
			Score:        wm.Score,
			LastRating:   string(wm.LastRating),
		}
		if wm.MasteredAt != nil {
			s := wm.MasteredAt.UTC().Format(time.RFC3339)
			wd.MasteredAt = &s
		}
		data.Words[id] = wd
	}
	return data
}

// Persist saves a snapshot of tracker state plus the given badge counts and
// prunes old snapshots.
func (t *Tracker) Persist(ctx context.Context, repo store.SnapshotRepo, badges *store.BadgesSnapshotData) error {
	t.mu.Lock()
	ts := t.now()
	t.mu.Unlock()
	snap := &store.Snapshot{
		Timestamp: ts,
		Data: store.SnapshotData{
			Version: store.SnapshotVersion,
			Mastery: t.SnapshotData(),
			Badges:  badges,
		},
	}
	if err := repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist mastery: %w", err)
	}
	if err := repo.Prune(ctx, SnapshotsToKeep); err != nil {
		return fmt.Errorf("persist mastery: %w", err)
	}
	return nil
}
