package models

// ReviewLogEntry records a single graded answer for daily statistics
type ReviewLogEntry struct {
	ID          int64 `json:"id" db:"id"`
	UserID      int64 `json:"user_id" db:"user_id"`
	FlashcardID int64 `json:"flashcard_id" db:"flashcard_id"`
	SetID       int64 `json:"set_id" db:"set_id"`
	ReviewedAt  int64 `json:"reviewed_at" db:"reviewed_at"` // Unix seconds
	Response    int   `json:"response" db:"response"`
	ScoreChange int   `json:"score_change" db:"score_change"`
}
