package badges

// BaseStreakThreshold is the first perfect-answer streak that awards a badge.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above current.
func NextStreakThreshold(current int) int {
	for _, t := range []int{5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	// Beyond 20, award every 5.
	return ((current / 5) + 1) * 5
}

// MinPerfectSessionQuestions is the smallest session that can earn a
// perfect-session badge.
const MinPerfectSessionQuestions = 3
