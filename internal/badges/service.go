package badges

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// Service watches progress events, awards badges and persists them.
type Service struct {
	mu        sync.Mutex
	weights   *WordWeights
	corpus    *words.Corpus
	eventRepo store.EventRepo
	logger    *slog.Logger
	now       func() time.Time

	streak     int
	nextStreak int

	// SessionBadges accumulates badges awarded during the current session.
	SessionBadges []Award
}

var _ progress.Sink = (*Service)(nil)

// NewService creates a badge service. corpus grades word-mastered badges
// and may be nil; eventRepo may be nil to skip persistence.
func NewService(corpus *words.Corpus, eventRepo store.EventRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		weights:    ComputeWordWeights(corpus),
		corpus:     corpus,
		eventRepo:  eventRepo,
		logger:     logger.With("component", "badges"),
		now:        time.Now,
		nextStreak: BaseStreakThreshold,
	}
}

// SessionStarted resets the per-session accumulators.
func (s *Service) SessionStarted(_ context.Context, ev progress.SessionStarted) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.logger.Debug("tracking session", "session_id", ev.SessionID)
	return nil
}

// MasteryRecorded tracks the perfect-answer streak and awards
// word-mastered badges.
func (s *Service) MasteryRecorded(ctx context.Context, ev progress.MasteryEvent) error {
	s.mu.Lock()
	var awards []Award
	if ev.Source == progress.SourceQuizGrading {
		if ev.Reason == progress.ReasonPerfect {
			s.streak++
			if s.streak >= s.nextStreak {
				awards = append(awards, s.award(BadgeStreak, StreakRarity(s.streak), "", ev.SessionID,
					fmt.Sprintf("%d perfect in a row!", s.streak)))
				s.nextStreak = NextStreakThreshold(s.streak)
			}
		} else {
			s.streak = 0
			s.nextStreak = BaseStreakThreshold
		}
	}
	if ev.Mastered {
		awards = append(awards, s.award(BadgeWordMastered, s.weights.RarityForWord(ev.WordID), ev.WordID, ev.SessionID,
			fmt.Sprintf("Mastered %s", s.wordText(ev.WordID))))
	}
	s.mu.Unlock()

	return s.persist(ctx, awards)
}

// SessionCompleted awards end-of-session badges.
func (s *Service) SessionCompleted(ctx context.Context, sum progress.SessionSummary) error {
	s.mu.Lock()
	var awards []Award
	if sum.CorrectAnswers > 0 {
		awards = append(awards, s.award(BadgeSession, SessionRarity(sum.Accuracy), "", sum.SessionID,
			fmt.Sprintf("Session complete (%.0f%% accuracy)", sum.Accuracy*100)))
	}
	allCorrect := sum.TotalQuestions > 0 && sum.CorrectAnswers == sum.TotalQuestions && !sum.TimedOut
	if allCorrect && sum.HintsUsed == 0 {
		awards = append(awards, s.award(BadgeHintFree, RarityRare, "", sum.SessionID,
			fmt.Sprintf("All %d words without a hint", sum.TotalQuestions)))
	}
	if allCorrect && sum.TotalQuestions >= MinPerfectSessionQuestions && sum.PerfectAnswers == sum.TotalQuestions {
		awards = append(awards, s.award(BadgePerfectSession, RarityEpic, "", sum.SessionID,
			fmt.Sprintf("%d for %d, first try every time", sum.TotalQuestions, sum.TotalQuestions)))
	}
	s.mu.Unlock()

	return s.persist(ctx, awards)
}

// award records a badge in the session list. Caller holds mu.
func (s *Service) award(t BadgeType, r Rarity, wordID, sessionID, reason string) Award {
	a := Award{
		Type:      t,
		Rarity:    r,
		WordID:    wordID,
		SessionID: sessionID,
		Reason:    reason,
		AwardedAt: s.now(),
	}
	s.SessionBadges = append(s.SessionBadges, a)
	s.logger.Info("badge awarded",
		"type", t,
		"rarity", r,
		"word_id", wordID,
		"session_id", sessionID)
	return a
}

func (s *Service) wordText(id string) string {
	if s.corpus == nil {
		return id
	}
	w, err := s.corpus.Get(id)
	if err != nil {
		return id
	}
	return w.Text
}

// Session returns a copy of the badges awarded in the current session.
func (s *Service) Session() []Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Award(nil), s.SessionBadges...)
}

// ResetSession clears the session accumulators. Called at session start.
func (s *Service) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Service) resetLocked() {
	s.SessionBadges = nil
	s.streak = 0
	s.nextStreak = BaseStreakThreshold
}

// SnapshotData builds the badge counts for snapshot persistence.
func (s *Service) SnapshotData(ctx context.Context) *store.BadgesSnapshotData {
	if s.eventRepo == nil {
		return nil
	}
	counts, total, err := s.eventRepo.BadgeCounts(ctx)
	if err != nil {
		s.logger.Warn("badge counts unavailable", "error", err)
		return nil
	}
	return &store.BadgesSnapshotData{
		TotalCount:  total,
		CountByType: counts,
	}
}

func (s *Service) persist(ctx context.Context, awards []Award) error {
	if s.eventRepo == nil {
		return nil
	}
	for _, a := range awards {
		data := store.BadgeEventData{
			BadgeType: string(a.Type),
			Rarity:    string(a.Rarity),
			SessionID: a.SessionID,
			Reason:    a.Reason,
		}
		if a.WordID != "" {
			id := a.WordID
			data.WordID = &id
		}
		if err := s.eventRepo.AppendBadgeEvent(ctx, data); err != nil {
			return fmt.Errorf("persist badge: %w", err)
		}
	}
	return nil
}
