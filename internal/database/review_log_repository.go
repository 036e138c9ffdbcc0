package database

import (
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// ReviewLogRepository handles the daily review log
type ReviewLogRepository struct{}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository() *ReviewLogRepository {
	return &ReviewLogRepository{}
}

// Append records one graded answer
func (r *ReviewLogRepository) Append(entry *models.ReviewLogEntry) error {
	_, err := DB.Exec(
		`INSERT INTO review_log (user_id, flashcard_id, set_id, reviewed_at, response, score_change)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UserID, entry.FlashcardID, entry.SetID, entry.ReviewedAt, entry.Response, entry.ScoreChange,
	)
	if err != nil {
		return fmt.Errorf("failed to append review log: %v", err)
	}
	return nil
}

// CountBetween returns how many answers the user logged in [fromTS, toTS)
func (r *ReviewLogRepository) CountBetween(userID, fromTS, toTS int64) (int, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM review_log WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at < $3",
		userID, fromTS, toTS)
	if err != nil {
		return 0, fmt.Errorf("failed to count review log: %v", err)
	}
	return count, nil
}
