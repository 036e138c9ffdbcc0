package srs

import (
	"github.com/example/flashbot/pkg/models"
)

// UserStore reads learner profiles. The engine never writes users; score
// and last-seen bookkeeping belong to the caller.
type UserStore interface {
	// GetByID returns the user or models.ErrUserNotFound
	GetByID(userID int64) (*models.User, error)
}

// CardStore exposes the flashcard catalog.
type CardStore interface {
	// GetByID returns the card or models.ErrCardNotFound
	GetByID(cardID int64) (*models.Flashcard, error)
	// UnseenPool lists cards in the set the user has not answered yet,
	// ordered by card id ascending. A card whose progress record exists
	// but was never answered still counts as unseen, so repeated reads
	// keep returning it.
	UnseenPool(userID, setID int64) ([]models.Flashcard, error)
	// Pool lists every card in the set; setID 0 spans all sets
	Pool(setID int64) ([]models.Flashcard, error)
}

// ProgressStore persists per-(user, card) scheduling state. Every write is
// atomic per record; the (user_id, flashcard_id) unique constraint is the
// only defense against concurrent creation.
type ProgressStore interface {
	// GetByID returns the record or models.ErrProgressNotFound
	GetByID(progressID int64) (*models.CardProgress, error)
	// GetByUserAndCard returns the record or models.ErrProgressNotFound
	GetByUserAndCard(userID, cardID int64) (*models.CardProgress, error)
	// Create inserts the record, returning models.ErrDuplicateProgress if
	// one already exists for the (user, card) pair
	Create(p *models.CardProgress) error
	// Update writes the whole record in one statement
	Update(p *models.CardProgress) error
	// DuePool lists non-skipped records with due_time <= now; setID 0
	// spans all sets
	DuePool(userID, setID, nowTS int64) ([]models.CardProgress, error)
	// StartedPool lists every non-skipped record in scope; setID 0 spans
	// all sets
	StartedPool(userID, setID int64) ([]models.CardProgress, error)
	// CountLearnedOn counts records with learned_date == midnightTS across
	// every set for the user
	CountLearnedOn(userID, midnightTS int64) (int, error)
	// NextDueAfter returns the smallest due_time strictly after nowTS
	// among non-skipped records in scope; ok is false when there is none
	NextDueAfter(userID, setID, nowTS int64) (nextDue int64, ok bool, err error)
}
