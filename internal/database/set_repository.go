package database

import (
	"database/sql"
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// SetRepository handles database operations for card sets
type SetRepository struct{}

// NewSetRepository creates a new repository instance
func NewSetRepository() *SetRepository {
	return &SetRepository{}
}

// GetByID returns a card set by id
func (r *SetRepository) GetByID(setID int64) (*models.CardSet, error) {
	var set models.CardSet
	err := DB.Get(&set, "SELECT * FROM card_sets WHERE id = $1", setID)
	if err == sql.ErrNoRows {
		return nil, models.ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card set: %v", err)
	}
	return &set, nil
}

// GetByName returns a card set by its unique name
func (r *SetRepository) GetByName(name string) (*models.CardSet, error) {
	var set models.CardSet
	err := DB.Get(&set, "SELECT * FROM card_sets WHERE name = $1", name)
	if err == sql.ErrNoRows {
		return nil, models.ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card set: %v", err)
	}
	return &set, nil
}

// GetAll returns all card sets ordered by name
func (r *SetRepository) GetAll() ([]models.CardSet, error) {
	var sets []models.CardSet
	err := DB.Select(&sets, "SELECT * FROM card_sets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get card sets: %v", err)
	}
	return sets, nil
}

// Create inserts a new card set
func (r *SetRepository) Create(set *models.CardSet) error {
	result, err := DB.Exec(
		"INSERT INTO card_sets (name, description, creator_id) VALUES ($1, $2, $3)",
		set.Name, set.Description, set.CreatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create card set: %v", err)
	}
	if Type() == "sqlite" {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new set id: %v", err)
		}
		set.ID = id
		return nil
	}
	return DB.Get(&set.ID, "SELECT id FROM card_sets WHERE name = $1", set.Name)
}

// CardCount returns the number of flashcards in a set
func (r *SetRepository) CardCount(setID int64) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM flashcards WHERE set_id = $1", setID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %v", err)
	}
	return count, nil
}
