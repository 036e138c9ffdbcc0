package srs

// Config holds the scheduling constants of the review engine
type Config struct {
	// Interval after the first correct answer, in hours
	InitialIntervalHours float64
	// Longest interval between reviews, in days
	MaxIntervalDays int
	// Retry delay after a wrong answer, in minutes
	WrongRetryMinutes int
	// Retry delay after a vague answer, in minutes
	HardRetryMinutes int
	// Delay before a freshly shown card comes up again, in minutes
	NewRetryMinutes int
	// Cards reviewed within this window are held back from cram pools, in minutes
	CramRecencyMinutes int
	// Fallback daily new-card limit for users with no configured limit
	DefaultDailyLimit int
	// A wait hint is never closer than this many seconds
	MinWaitSeconds int64

	// Score deltas emitted per response
	ScoreCorrect      int
	ScoreHard         int
	ScoreNewCard      int
	ScoreQuickCorrect int
	ScoreQuickHard    int
}

// DefaultConfig returns the default scheduling configuration
func DefaultConfig() Config {
	return Config{
		InitialIntervalHours: 0.5,
		MaxIntervalDays:      30,
		WrongRetryMinutes:    30,
		HardRetryMinutes:     60,
		NewRetryMinutes:      10,
		CramRecencyMinutes:   5,
		DefaultDailyLimit:    10,
		MinWaitSeconds:       60,
		ScoreCorrect:         5,
		ScoreHard:            1,
		ScoreNewCard:         10,
		ScoreQuickCorrect:    1,
		ScoreQuickHard:       0,
	}
}
