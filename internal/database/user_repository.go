package database

import (
	"database/sql"
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by internal id
func (r *UserRepository) GetByID(userID int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetByTelegramID returns a user by Telegram chat id
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE telegram_id = $1", telegramID)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (
			telegram_id, username, first_name, last_name, role,
			timezone_offset, daily_new_limit, current_mode,
			notification_enabled, notification_hour
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	result, err := DB.Exec(
		query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Role,
		user.TimezoneOffset,
		user.DailyNewLimit,
		user.CurrentMode,
		user.NotificationEnabled,
		user.NotificationHour,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	if Type() == "sqlite" {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new user id: %v", err)
		}
		user.ID = id
		return nil
	}
	// Postgres Exec doesn't report the id; fetch the row back
	return DB.Get(&user.ID, "SELECT id FROM users WHERE telegram_id = $1", user.TelegramID)
}

// GetOrCreateByTelegramID returns the user for a Telegram chat, creating a
// default profile the first time the chat is seen.
func (r *UserRepository) GetOrCreateByTelegramID(telegramID int64, username, firstName, lastName string) (*models.User, error) {
	user, err := r.GetByTelegramID(telegramID)
	if err == nil {
		return user, nil
	}
	if err != models.ErrUserNotFound {
		return nil, err
	}
	user = &models.User{
		TelegramID:          telegramID,
		Username:            username,
		FirstName:           firstName,
		LastName:            lastName,
		Role:                models.RoleUser,
		TimezoneOffset:      7,
		DailyNewLimit:       10,
		CurrentMode:         "sequential_interspersed",
		NotificationEnabled: true,
		NotificationHour:    9,
	}
	if err := r.Create(user); err != nil {
		return nil, err
	}
	return r.GetByTelegramID(telegramID)
}

// Update modifies a user's settings
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users SET
			username = $1,
			first_name = $2,
			last_name = $3,
			role = $4,
			timezone_offset = $5,
			daily_new_limit = $6,
			current_set_id = $7,
			current_mode = $8,
			notification_enabled = $9,
			notification_hour = $10,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
	`
	_, err := DB.Exec(
		query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Role,
		user.TimezoneOffset,
		user.DailyNewLimit,
		user.CurrentSetID,
		user.CurrentMode,
		user.NotificationEnabled,
		user.NotificationHour,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// SetCurrentSet updates the user's selected card set
func (r *UserRepository) SetCurrentSet(userID, setID int64) error {
	_, err := DB.Exec("UPDATE users SET current_set_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", setID, userID)
	if err != nil {
		return fmt.Errorf("failed to set current set: %v", err)
	}
	return nil
}

// SetCurrentMode updates the user's selected learning mode
func (r *UserRepository) SetCurrentMode(userID int64, mode string) error {
	_, err := DB.Exec("UPDATE users SET current_mode = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", mode, userID)
	if err != nil {
		return fmt.Errorf("failed to set current mode: %v", err)
	}
	return nil
}

// AddScore credits a score delta to the user's total
func (r *UserRepository) AddScore(userID int64, delta int) error {
	if delta == 0 {
		return nil
	}
	_, err := DB.Exec("UPDATE users SET score = score + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", delta, userID)
	if err != nil {
		return fmt.Errorf("failed to add score: %v", err)
	}
	return nil
}

// TouchLastSeen records the user's latest activity time
func (r *UserRepository) TouchLastSeen(userID int64, ts int64) error {
	_, err := DB.Exec("UPDATE users SET last_seen = $1 WHERE id = $2", ts, userID)
	if err != nil {
		return fmt.Errorf("failed to touch last_seen: %v", err)
	}
	return nil
}

// GetUsersForNotification returns users who want reminders at the given hour
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, "SELECT * FROM users WHERE notification_enabled = $1 AND notification_hour = $2", true, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}

// Leaderboard returns the top scorers
func (r *UserRepository) Leaderboard(limit int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, "SELECT * FROM users ORDER BY score DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %v", err)
	}
	return users, nil
}
