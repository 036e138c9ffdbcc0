package models

// CardProgress tracks a user's spaced-repetition state for a single flashcard.
// Exactly one record exists per (user, card) pair; it is created the first
// time the card is presented and is never deleted by the review engine.
// Timestamps are Unix seconds.
type CardProgress struct {
	ID             int64  `json:"id" db:"id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	FlashcardID    int64  `json:"flashcard_id" db:"flashcard_id"`
	LastReviewed   *int64 `json:"last_reviewed" db:"last_reviewed"` // nil until the first response
	DueTime        int64  `json:"due_time" db:"due_time"`           // never unset once the record exists
	ReviewCount    int    `json:"review_count" db:"review_count"`
	LearnedDate    *int64 `json:"learned_date" db:"learned_date"` // midnight-aligned in the user's timezone
	CorrectStreak  int    `json:"correct_streak" db:"correct_streak"`
	CorrectCount   int    `json:"correct_count" db:"correct_count"`
	IncorrectCount int    `json:"incorrect_count" db:"incorrect_count"`
	LapseCount     int    `json:"lapse_count" db:"lapse_count"`
	IsSkipped      bool   `json:"is_skipped" db:"is_skipped"` // excluded from due-based selection
	CreatedAt      string `json:"created_at" db:"created_at"`
	UpdatedAt      string `json:"updated_at" db:"updated_at"`
}
