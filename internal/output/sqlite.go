// internal/output/sqlite.go

package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/replyforge/postline/internal/extract"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	platform TEXT,
	author TEXT,
	username TEXT,
	text TEXT,
	timestamp_iso TEXT,
	reply_count INTEGER,
	repost_count INTEGER,
	like_count INTEGER,
	view_count INTEGER,
	sentiment TEXT,
	language TEXT,
	quality REAL,
	permalink TEXT,
	hashtags TEXT,
	mentions TEXT,
	links TEXT,
	extracted_at_iso TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteSink upserts posts into a local SQLite database keyed by post id.
type SQLiteSink struct {
	db    *sql.DB
	table string
}

// NewSQLiteSink opens (creating if needed) the database and ensures the
// posts table exists. table defaults to "posts".
func NewSQLiteSink(path, table string) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}
	if table == "" {
		table = "posts"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(fmt.Sprintf(sqliteSchema, quoteIdent(table))); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteSink{db: db, table: table}, nil
}

// Write upserts the batch in one transaction.
func (s *SQLiteSink) Write(posts []extract.Post) error {
	if len(posts) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(postColumns)), ",")
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		quoteIdent(s.table),
		strings.Join(postColumns, ", "),
		placeholders,
		upsertAssignments("excluded"),
	)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.Exec(postRow(p)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert post %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteSink) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// upsertAssignments builds "col = src.col" pairs for every column except
// the primary key.
func upsertAssignments(src string) string {
	assignments := make([]string, 0, len(postColumns)-1)
	for _, column := range postColumns {
		if column == "id" {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = %s.%s", column, src, column))
	}
	return strings.Join(assignments, ", ")
}
