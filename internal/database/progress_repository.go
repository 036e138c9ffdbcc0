package database

import (
	"database/sql"
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// ProgressRepository handles database operations for card progress records
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// GetByID returns a progress record by id
func (r *ProgressRepository) GetByID(progressID int64) (*models.CardProgress, error) {
	var progress models.CardProgress
	err := DB.Get(&progress, "SELECT * FROM card_progress WHERE id = $1", progressID)
	if err == sql.ErrNoRows {
		return nil, models.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}
	return &progress, nil
}

// GetByUserAndCard returns the progress record for a (user, card) pair
func (r *ProgressRepository) GetByUserAndCard(userID, cardID int64) (*models.CardProgress, error) {
	var progress models.CardProgress
	err := DB.Get(&progress, "SELECT * FROM card_progress WHERE user_id = $1 AND flashcard_id = $2", userID, cardID)
	if err == sql.ErrNoRows {
		return nil, models.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}
	return &progress, nil
}

// Create inserts a new progress record. The (user_id, flashcard_id)
// unique constraint turns a concurrent double-create into
// models.ErrDuplicateProgress, which callers resolve by re-reading.
func (r *ProgressRepository) Create(progress *models.CardProgress) error {
	query := `
		INSERT INTO card_progress (
			user_id, flashcard_id, last_reviewed, due_time, review_count,
			learned_date, correct_streak, correct_count, incorrect_count,
			lapse_count, is_skipped
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	result, err := DB.Exec(
		query,
		progress.UserID,
		progress.FlashcardID,
		progress.LastReviewed,
		progress.DueTime,
		progress.ReviewCount,
		progress.LearnedDate,
		progress.CorrectStreak,
		progress.CorrectCount,
		progress.IncorrectCount,
		progress.LapseCount,
		progress.IsSkipped,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateProgress
		}
		return fmt.Errorf("failed to create progress: %v", err)
	}
	if Type() == "sqlite" {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new progress id: %v", err)
		}
		progress.ID = id
		return nil
	}
	return DB.Get(&progress.ID,
		"SELECT id FROM card_progress WHERE user_id = $1 AND flashcard_id = $2",
		progress.UserID, progress.FlashcardID)
}

// Update writes the whole record in a single statement so a response is
// committed all-or-nothing.
func (r *ProgressRepository) Update(progress *models.CardProgress) error {
	query := `
		UPDATE card_progress SET
			last_reviewed = $1,
			due_time = $2,
			review_count = $3,
			learned_date = $4,
			correct_streak = $5,
			correct_count = $6,
			incorrect_count = $7,
			lapse_count = $8,
			is_skipped = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
	`
	_, err := DB.Exec(
		query,
		progress.LastReviewed,
		progress.DueTime,
		progress.ReviewCount,
		progress.LearnedDate,
		progress.CorrectStreak,
		progress.CorrectCount,
		progress.IncorrectCount,
		progress.LapseCount,
		progress.IsSkipped,
		progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %v", err)
	}
	return nil
}

// DuePool returns non-skipped records with due_time <= now; setID 0 spans
// all sets.
func (r *ProgressRepository) DuePool(userID, setID, nowTS int64) ([]models.CardProgress, error) {
	var pool []models.CardProgress
	var err error
	if setID == 0 {
		err = DB.Select(&pool, `
			SELECT * FROM card_progress
			WHERE user_id = $1 AND is_skipped = $2 AND due_time <= $3
		`, userID, false, nowTS)
	} else {
		err = DB.Select(&pool, `
			SELECT cp.* FROM card_progress cp
			JOIN flashcards f ON cp.flashcard_id = f.id
			WHERE cp.user_id = $1 AND cp.is_skipped = $2 AND cp.due_time <= $3 AND f.set_id = $4
		`, userID, false, nowTS, setID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get due pool: %v", err)
	}
	return pool, nil
}

// StartedPool returns every non-skipped record in scope; setID 0 spans
// all sets.
func (r *ProgressRepository) StartedPool(userID, setID int64) ([]models.CardProgress, error) {
	var pool []models.CardProgress
	var err error
	if setID == 0 {
		err = DB.Select(&pool, `
			SELECT * FROM card_progress
			WHERE user_id = $1 AND is_skipped = $2
		`, userID, false)
	} else {
		err = DB.Select(&pool, `
			SELECT cp.* FROM card_progress cp
			JOIN flashcards f ON cp.flashcard_id = f.id
			WHERE cp.user_id = $1 AND cp.is_skipped = $2 AND f.set_id = $3
		`, userID, false, setID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get started pool: %v", err)
	}
	return pool, nil
}

// CountLearnedOn counts records first learned on the given midnight across
// every set: the daily new-card budget is global per user.
func (r *ProgressRepository) CountLearnedOn(userID, midnightTS int64) (int, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM card_progress WHERE user_id = $1 AND learned_date = $2",
		userID, midnightTS)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned cards: %v", err)
	}
	return count, nil
}

// NextDueAfter returns the smallest due_time strictly after nowTS among
// non-skipped records in scope; ok is false when there is none.
func (r *ProgressRepository) NextDueAfter(userID, setID, nowTS int64) (int64, bool, error) {
	var next sql.NullInt64
	var err error
	if setID == 0 {
		err = DB.Get(&next, `
			SELECT MIN(due_time) FROM card_progress
			WHERE user_id = $1 AND is_skipped = $2 AND due_time > $3
		`, userID, false, nowTS)
	} else {
		err = DB.Get(&next, `
			SELECT MIN(cp.due_time) FROM card_progress cp
			JOIN flashcards f ON cp.flashcard_id = f.id
			WHERE cp.user_id = $1 AND cp.is_skipped = $2 AND cp.due_time > $3 AND f.set_id = $4
		`, userID, false, nowTS, setID)
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get next due time: %v", err)
	}
	if !next.Valid {
		return 0, false, nil
	}
	return next.Int64, true, nil
}

// SetSkipped toggles a record's exclusion from due-based selection
func (r *ProgressRepository) SetSkipped(progressID int64, skipped bool) error {
	_, err := DB.Exec(
		"UPDATE card_progress SET is_skipped = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		skipped, progressID)
	if err != nil {
		return fmt.Errorf("failed to set skipped flag: %v", err)
	}
	return nil
}
