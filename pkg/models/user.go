package models

// User represents a learner registered with the bot
type User struct {
	ID                  int64  `json:"id" db:"id"`
	TelegramID          int64  `json:"telegram_id" db:"telegram_id"` // Telegram chat ID
	Username            string `json:"username" db:"username"`
	FirstName           string `json:"first_name" db:"first_name"`
	LastName            string `json:"last_name" db:"last_name"`
	Role                string `json:"role" db:"role"`
	Score               int    `json:"score" db:"score"`
	TimezoneOffset      int    `json:"timezone_offset" db:"timezone_offset"` // Offset from UTC in hours
	DailyNewLimit       int    `json:"daily_new_limit" db:"daily_new_limit"` // New cards allowed per day
	CurrentSetID        *int64 `json:"current_set_id" db:"current_set_id"`   // Selected card set, nil if none
	CurrentMode         string `json:"current_mode" db:"current_mode"`
	NotificationEnabled bool   `json:"notification_enabled" db:"notification_enabled"`
	NotificationHour    int    `json:"notification_hour" db:"notification_hour"` // Hour of day for reminders (0-23)
	LastSeen            *int64 `json:"last_seen" db:"last_seen"`                 // Unix seconds of last activity
	CreatedAt           string `json:"created_at" db:"created_at"`
	UpdatedAt           string `json:"updated_at" db:"updated_at"`
}
