package models

// Flashcard is a single two-sided study item belonging to one card set
type Flashcard struct {
	ID            int64  `json:"id" db:"id"`
	SetID         int64  `json:"set_id" db:"set_id"`
	Front         string `json:"front" db:"front"`
	Back          string `json:"back" db:"back"`
	Pronunciation string `json:"pronunciation" db:"pronunciation"`
	Example       string `json:"example" db:"example"`
	CreatedAt     string `json:"created_at" db:"created_at"`
	UpdatedAt     string `json:"updated_at" db:"updated_at"`
}
