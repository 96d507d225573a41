package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			date DATE NOT NULL,
			time VARCHAR(50) DEFAULT '',
			location VARCHAR(255) DEFAULT '',
			type VARCHAR(20) NOT NULL,
			theme VARCHAR(255) DEFAULT '',
			cover_image TEXT,
			budget NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (budget >= 0),
			status VARCHAR(20) NOT NULL DEFAULT 'planning',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS guests (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			event_id UUID REFERENCES events(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			category VARCHAR(20) NOT NULL DEFAULT 'general',
			rsvp_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			invited_at TIMESTAMP DEFAULT NOW(),
			responded_at TIMESTAMP,
			notes TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			event_id UUID REFERENCES events(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			assigned_to VARCHAR(255) DEFAULT '',
			due_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'todo',
			priority VARCHAR(20) NOT NULL DEFAULT 'medium',
			category VARCHAR(100) DEFAULT '',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			event_id UUID REFERENCES events(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (amount >= 0),
			category VARCHAR(100) NOT NULL,
			vendor VARCHAR(255),
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			receipt TEXT,
			notes TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS rsvp_tokens (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			guest_id UUID REFERENCES guests(id) ON DELETE CASCADE,
			token VARCHAR(255) UNIQUE NOT NULL,
			status VARCHAR(20) NOT NULL,
			generation INTEGER NOT NULL DEFAULT 1,
			superseded BOOLEAN NOT NULL DEFAULT FALSE,
			redeemed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_user_id ON events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_user_id ON guests(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_event_id ON guests(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_event_id ON tasks(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_event_id ON expenses(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rsvp_tokens_token ON rsvp_tokens(token)`,
		`CREATE INDEX IF NOT EXISTS idx_rsvp_tokens_guest_id ON rsvp_tokens(guest_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
