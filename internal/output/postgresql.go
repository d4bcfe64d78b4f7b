// internal/output/postgresql.go

package output

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/replyforge/postline/internal/extract"
)

const postgresSchema = `
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
	view_count BIGINT,
	sentiment TEXT,
	language TEXT,
	quality DOUBLE PRECISION,
	permalink TEXT,
	hashtags TEXT,
	mentions TEXT,
	links TEXT,
	extracted_at_iso TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// PostgresSink upserts posts into a PostgreSQL table keyed by post id.
type PostgresSink struct {
	db    *sql.DB
	table string
}

// NewPostgresSink connects and ensures the posts table exists. table
// defaults to "posts".
func NewPostgresSink(connectionString, table string) (*PostgresSink, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("PostgreSQL connection string is required")
	}
	if table == "" {
		table = "posts"
	}

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(fmt.Sprintf(postgresSchema, quoteIdent(table))); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &PostgresSink{db: db, table: table}, nil
}

// Write upserts the batch in one transaction.
func (s *PostgresSink) Write(posts []extract.Post) error {
	if len(posts) == 0 {
		return nil
	}

	placeholders := make([]string, len(postColumns))
	for i := range postColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		quoteIdent(s.table),
		strings.Join(postColumns, ", "),
		strings.Join(placeholders, ", "),
		upsertAssignments("EXCLUDED"),
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
func (s *PostgresSink) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
