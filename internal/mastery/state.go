package mastery

// MasteryState represents a word's position in the mastery lifecycle.
type MasteryState string

const (
	StateNew      MasteryState = "new"
	StateLearning MasteryState = "learning"
	StateMastered MasteryState = "mastered"
)

// Transition triggers.
const (
	TriggerFirstResolution = "first-resolution"
	TriggerFirstRating     = "first-rating"
	TriggerPerfectRatio    = "perfect-ratio"
	TriggerRatedEasy       = "rated-easy"
)

// StateTransition records a mastery state change for display and event logging.
type StateTransition struct {
	WordID  string
	Word    string
	From    MasteryState
	To      MasteryState
	Trigger string
}

// Mastered reports whether the transition ends in StateMastered.
func (t *StateTransition) Mastered() bool {
	return t != nil && t.To == StateMastered
}

const (
	// MinResolutionsForMastery is the quiz resolution count needed before the
	// perfect ratio is considered.
	MinResolutionsForMastery = 3

	// MasteryPerfectRatio is the share of perfect resolutions that masters a word.
	MasteryPerfectRatio = 0.8
)
