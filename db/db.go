package db

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// DB is the global database connection pool.
var DB *sql.DB

// InitDB initializes the SQLite database and creates tables if they don't exist.
func InitDB(dbSource string) {
	if dir := filepath.Dir(dbSource); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}

	var err error
	DB, err = sql.Open(dbDriver, dbSource)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	createTables()

	log.Println("Database connection initialized successfully.")
}

func createTables() {
	const schema = `
	CREATE TABLE IF NOT EXISTS issues (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		repo_owner TEXT NOT NULL,
		repo_name TEXT NOT NULL,
		number INTEGER NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_issues_channel ON issues (channel_id, created_at);
	`
	if _, err := DB.Exec(schema); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
}
