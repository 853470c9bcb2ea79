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

// Connect establishes a connection to the database. When DATABASE_URL is
// set a PostgreSQL connection is used; otherwise a local SQLite file.
func Connect() error {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return ConnectWithDSN("postgres", dsn)
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	return ConnectWithDSN("sqlite3", filepath.Join(dataDir, "readapt.db"))
}

// ConnectWithDSN connects to a specific database and applies the schema
func ConnectWithDSN(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

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

// serialPK returns the driver-specific auto-increment primary key clause
func serialPK() string {
	if DB.DriverName() == "postgres" {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	_, err := DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			name TEXT,
			email TEXT,
			role TEXT DEFAULT 'user',
			last_signed_in TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS reading_profiles (
			id %s,
			user_id INTEGER NOT NULL UNIQUE,
			level INTEGER NOT NULL,
			micro_level REAL DEFAULT 2.0,
			reading_speed INTEGER DEFAULT 0,
			comprehension_accuracy INTEGER DEFAULT 0,
			strengths TEXT DEFAULT '[]',
			challenges TEXT DEFAULT '[]',
			last_calibrated TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create reading_profiles table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS calibration_tests (
			id %s,
			user_id INTEGER NOT NULL,
			passage_text TEXT NOT NULL,
			passage_difficulty INTEGER NOT NULL,
			reading_time INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			assessed_level INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create calibration_tests table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS content_library (
			id %s,
			title TEXT NOT NULL,
			author TEXT,
			original_text TEXT NOT NULL,
			base_difficulty INTEGER NOT NULL,
			flesch_kincaid REAL DEFAULT 0,
			word_count INTEGER DEFAULT 0,
			category TEXT,
			source_type TEXT DEFAULT 'pre_generated',
			cefr_level TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create content_library table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS reading_sessions (
			id %s,
			user_id INTEGER NOT NULL,
			content_id INTEGER NOT NULL,
			difficulty_level INTEGER NOT NULL,
			current_position INTEGER DEFAULT 0,
			completed_paragraphs INTEGER DEFAULT 0,
			avg_comprehension INTEGER DEFAULT 0,
			status TEXT DEFAULT 'active',
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (content_id) REFERENCES content_library(id)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create reading_sessions table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS progress_tracking (
			id %s,
			session_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			paragraph_index INTEGER NOT NULL,
			difficulty_level INTEGER NOT NULL,
			comprehension_score INTEGER DEFAULT 0,
			time_spent INTEGER DEFAULT 0,
			manual_adjustment BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES reading_sessions(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create progress_tracking table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS paragraph_variants (
			id %s,
			content_id INTEGER NOT NULL,
			chapter_number INTEGER NOT NULL,
			paragraph_index INTEGER NOT NULL,
			level INTEGER NOT NULL,
			text TEXT NOT NULL,
			original_text TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (content_id) REFERENCES content_library(id),
			UNIQUE(content_id, chapter_number, paragraph_index, level)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create paragraph_variants table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS word_levels (
			id %s,
			content_id INTEGER NOT NULL,
			paragraph_index INTEGER NOT NULL,
			word_sequence TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (content_id) REFERENCES content_library(id),
			UNIQUE(content_id, paragraph_index)
		)
	`, serialPK()))
	if err != nil {
		return fmt.Errorf("failed to create word_levels table: %v", err)
	}

	return nil
}
