// Package badges awards achievement badges from progress events.
package badges

import "time"

// BadgeType identifies the category of achievement.
type BadgeType string

const (
	BadgeStreak         BadgeType = "streak"
	BadgePerfectSession BadgeType = "perfect-session"
	BadgeHintFree       BadgeType = "hint-free"
	BadgeWordMastered   BadgeType = "word-mastered"
	BadgeSession        BadgeType = "session"
)

// AllBadgeTypes returns all badge types in display order.
func AllBadgeTypes() []BadgeType {
	return []BadgeType{BadgeWordMastered, BadgeStreak, BadgePerfectSession, BadgeHintFree, BadgeSession}
}

// DisplayName returns a human-readable label for the badge type.
func (t BadgeType) DisplayName() string {
	switch t {
	case BadgeStreak:
		return "Streak"
	case BadgePerfectSession:
		return "Flawless"
	case BadgeHintFree:
		return "No Peeking"
	case BadgeWordMastered:
		return "Word Master"
	case BadgeSession:
		return "Session"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the badge type.
func (t BadgeType) Icon() string {
	switch t {
	case BadgeStreak:
		return "⚡"
	case BadgePerfectSession:
		return "🌟"
	case BadgeHintFree:
		return "🙈"
	case BadgeWordMastered:
		return "📖"
	case BadgeSession:
		return "🏆"
	default:
		return "✦"
	}
}

// Award is a single badge earned.
type Award struct {
	Type      BadgeType
	Rarity    Rarity
	WordID    string // set for word-mastered badges
	SessionID string
	Reason    string
	AwardedAt time.Time
}
