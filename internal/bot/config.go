package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of users shown on the leaderboard
	LeaderboardLimit int
	// Long-poll timeout for Telegram updates, in seconds
	UpdateTimeout int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		LeaderboardLimit: 10,
		UpdateTimeout:    60,
	}
}
