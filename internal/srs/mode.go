package srs

// Mode is a learning mode selecting one candidate strategy
type Mode int

const (
	// ModeSequentialInterspersed reviews due cards first, then new cards in id order
	ModeSequentialInterspersed Mode = iota
	// ModeRandomInterspersed reviews due cards first, then new cards at random
	ModeRandomInterspersed
	// ModeNewSequential shows only never-seen cards in id order
	ModeNewSequential
	// ModeNewRandom shows only never-seen cards at random
	ModeNewRandom
	// ModeDueOnlyRandom reviews due cards of the current set at random
	ModeDueOnlyRandom
	// ModeReviewAllDue reviews due cards across every set at random
	ModeReviewAllDue
	// ModeReviewHardest reviews due cards with the most wrong answers first
	ModeReviewHardest
	// ModeCramSet drills already-seen cards of the current set regardless of schedule
	ModeCramSet
	// ModeCramAll drills already-seen cards across every set regardless of schedule
	ModeCramAll
)

// DefaultMode is used when a user has no mode configured
const DefaultMode = ModeSequentialInterspersed

var modeNames = map[Mode]string{
	ModeSequentialInterspersed: "sequential_interspersed",
	ModeRandomInterspersed:     "sequential_random_new",
	ModeNewSequential:          "new_sequential",
	ModeNewRandom:              "new_random",
	ModeDueOnlyRandom:          "due_only_random",
	ModeReviewAllDue:           "review_all_due",
	ModeReviewHardest:          "review_hardest",
	ModeCramSet:                "cram_set",
	ModeCramAll:                "cram_all",
}

var modeDisplayNames = map[Mode]string{
	ModeSequentialInterspersed: "Deep learning (sequential)",
	ModeRandomInterspersed:     "Deep learning (random)",
	ModeNewSequential:          "New cards (sequential)",
	ModeNewRandom:              "New cards (random)",
	ModeDueOnlyRandom:          "Review current set",
	ModeReviewAllDue:           "Review everything due",
	ModeReviewHardest:          "Quick review: hardest",
	ModeCramSet:                "Quick review: current set",
	ModeCramAll:                "Quick review: all sets",
}

// String returns the stable identifier persisted in the users table
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// DisplayName returns the human-readable name shown in menus
func (m Mode) DisplayName() string {
	return modeDisplayNames[m]
}

// ParseMode resolves a stored mode identifier. The second return value is
// false for unknown identifiers.
func ParseMode(s string) (Mode, bool) {
	for m, name := range modeNames {
		if name == s {
			return m, true
		}
	}
	return DefaultMode, false
}

// AllModes lists every mode in menu order
func AllModes() []Mode {
	return []Mode{
		ModeSequentialInterspersed,
		ModeRandomInterspersed,
		ModeNewSequential,
		ModeNewRandom,
		ModeDueOnlyRandom,
		ModeReviewAllDue,
		ModeReviewHardest,
		ModeCramSet,
		ModeCramAll,
	}
}

// RequiresSet reports whether the mode needs a selected card set.
// Cross-set review and global cram work without one.
func (m Mode) RequiresSet() bool {
	switch m {
	case ModeReviewAllDue, ModeCramAll:
		return false
	}
	return true
}

// QuickReview reports whether the mode is a drill mode that awards the
// reduced score deltas.
func (m Mode) QuickReview() bool {
	switch m {
	case ModeReviewHardest, ModeCramSet, ModeCramAll:
		return true
	}
	return false
}
