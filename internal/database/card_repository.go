package database

import (
	"database/sql"
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// CardRepository handles database operations for flashcards
type CardRepository struct{}

// NewCardRepository creates a new repository instance
func NewCardRepository() *CardRepository {
	return &CardRepository{}
}

// GetByID returns a flashcard by id
func (r *CardRepository) GetByID(cardID int64) (*models.Flashcard, error) {
	var card models.Flashcard
	err := DB.Get(&card, "SELECT * FROM flashcards WHERE id = $1", cardID)
	if err == sql.ErrNoRows {
		return nil, models.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard: %v", err)
	}
	return &card, nil
}

// GetBySetAndFront returns a flashcard by its set and front text
func (r *CardRepository) GetBySetAndFront(setID int64, front string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := DB.Get(&card, "SELECT * FROM flashcards WHERE set_id = $1 AND front = $2", setID, front)
	if err == sql.ErrNoRows {
		return nil, models.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard: %v", err)
	}
	return &card, nil
}

// Create inserts a new flashcard
func (r *CardRepository) Create(card *models.Flashcard) error {
	result, err := DB.Exec(
		"INSERT INTO flashcards (set_id, front, back, pronunciation, example) VALUES ($1, $2, $3, $4, $5)",
		card.SetID, card.Front, card.Back, card.Pronunciation, card.Example,
	)
	if err != nil {
		return fmt.Errorf("failed to create flashcard: %v", err)
	}
	if Type() == "sqlite" {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new flashcard id: %v", err)
		}
		card.ID = id
		return nil
	}
	return DB.Get(&card.ID, "SELECT id FROM flashcards WHERE set_id = $1 AND front = $2", card.SetID, card.Front)
}

// Update modifies an existing flashcard
func (r *CardRepository) Update(card *models.Flashcard) error {
	_, err := DB.Exec(
		`UPDATE flashcards SET
			front = $1, back = $2, pronunciation = $3, example = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`,
		card.Front, card.Back, card.Pronunciation, card.Example, card.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update flashcard: %v", err)
	}
	return nil
}

// UnseenPool returns cards in the set the user has never answered, ordered
// by card id ascending. Cards with a progress record that was never
// answered still count: the pending card keeps coming back until it is
// acknowledged.
func (r *CardRepository) UnseenPool(userID, setID int64) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	query := `
		SELECT f.* FROM flashcards f
		LEFT JOIN card_progress cp ON f.id = cp.flashcard_id AND cp.user_id = $1
		WHERE f.set_id = $2 AND (cp.id IS NULL OR cp.review_count = 0)
		ORDER BY f.id ASC
	`
	err := DB.Select(&cards, query, userID, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unseen cards: %v", err)
	}
	return cards, nil
}

// Pool returns every card in the set; setID 0 spans all sets
func (r *CardRepository) Pool(setID int64) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	var err error
	if setID == 0 {
		err = DB.Select(&cards, "SELECT * FROM flashcards ORDER BY id ASC")
	} else {
		err = DB.Select(&cards, "SELECT * FROM flashcards WHERE set_id = $1 ORDER BY id ASC", setID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %v", err)
	}
	return cards, nil
}
