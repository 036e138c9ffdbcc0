package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Type returns the configured database backend, "sqlite" or "postgres"
func Type() string {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}
	return dbType
}

// Connect establishes a connection to the database
func Connect() error {
	if Type() == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "flashbot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if Type() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []struct {
		name  string
		query string
	}{
		{"users", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				telegram_id BIGINT UNIQUE NOT NULL,
				username TEXT,
				first_name TEXT,
				last_name TEXT,
				role TEXT DEFAULT 'user',
				score INTEGER DEFAULT 0,
				timezone_offset INTEGER DEFAULT 7,
				daily_new_limit INTEGER DEFAULT 10,
				current_set_id BIGINT,
				current_mode TEXT DEFAULT 'sequential_interspersed',
				notification_enabled BOOLEAN DEFAULT true,
				notification_hour INTEGER DEFAULT 9,
				last_seen BIGINT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, idColumn)},
		{"card_sets", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS card_sets (
				id %s,
				name TEXT NOT NULL UNIQUE,
				description TEXT,
				creator_id BIGINT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, idColumn)},
		{"flashcards", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS flashcards (
				id %s,
				set_id BIGINT NOT NULL,
				front TEXT NOT NULL,
				back TEXT NOT NULL,
				pronunciation TEXT,
				example TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (set_id) REFERENCES card_sets(id),
				UNIQUE(set_id, front)
			)
		`, idColumn)},
		{"card_progress", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS card_progress (
				id %s,
				user_id BIGINT NOT NULL,
				flashcard_id BIGINT NOT NULL,
				last_reviewed BIGINT,
				due_time BIGINT NOT NULL,
				review_count INTEGER DEFAULT 0,
				learned_date BIGINT,
				correct_streak INTEGER DEFAULT 0,
				correct_count INTEGER DEFAULT 0,
				incorrect_count INTEGER DEFAULT 0,
				lapse_count INTEGER DEFAULT 0,
				is_skipped BOOLEAN DEFAULT false,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (flashcard_id) REFERENCES flashcards(id),
				UNIQUE(user_id, flashcard_id)
			)
		`, idColumn)},
		{"review_log", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS review_log (
				id %s,
				user_id BIGINT NOT NULL,
				flashcard_id BIGINT NOT NULL,
				set_id BIGINT NOT NULL,
				reviewed_at BIGINT NOT NULL,
				response INTEGER NOT NULL,
				score_change INTEGER DEFAULT 0,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)
		`, idColumn)},
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt.query); err != nil {
			return fmt.Errorf("failed to create %s table: %v", stmt.name, err)
		}
	}
	return nil
}
