package components

import (
	"image/color"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// RarityColor returns the theme color for a badge rarity level.
func RarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityCommon:
		return theme.Text
	case badges.RarityRare:
		return theme.Secondary
	case badges.RarityEpic:
		return theme.Primary
	case badges.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}

// BadgeLine formats a badge as "icon Rarity Type: reason".
func BadgeLine(t badges.BadgeType, r badges.Rarity, reason string) string {
	return t.Icon() + " " + r.DisplayName() + " " + t.DisplayName() + ": " + reason
}
