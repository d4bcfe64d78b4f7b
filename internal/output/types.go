// internal/output/types.go

// Package output persists extracted posts to files and databases. Every
// sink consumes the same flattened row shape, so formats stay consistent
// across JSON, CSV, Excel, SQLite, and PostgreSQL.
package output

import (
	"fmt"
	"strings"

	"github.com/replyforge/postline/internal/extract"
)

// Format identifies a sink implementation.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatExcel    Format = "excel"
	FormatSQLite   Format = "sqlite"
	FormatPostgres Format = "postgres"
)

// Sink persists batches of posts. Write may be called multiple times;
// Close flushes and releases resources.
type Sink interface {
	Write(posts []extract.Post) error
	Close() error
}

// Config selects and parameterizes a sink.
type Config struct {
	Format Format `yaml:"format" json:"format"`
	// File is the target path for file-based formats and the SQLite
	// database path.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// ConnectionString is the PostgreSQL DSN.
	ConnectionString string `yaml:"connection_string,omitempty" json:"connection_string,omitempty"`
	Table            string `yaml:"table,omitempty" json:"table,omitempty"`
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatCSV, FormatExcel, FormatSQLite:
		if c.File == "" {
			return fmt.Errorf("output format %s requires a file path", c.Format)
		}
	case FormatPostgres:
		if c.ConnectionString == "" {
			return fmt.Errorf("output format postgres requires a connection string")
		}
	case "":
		return fmt.Errorf("output format is required")
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}

// postColumns is the canonical column order shared by the tabular sinks.
var postColumns = []string{
	"id", "platform", "author", "username", "text", "timestamp_iso",
	"reply_count", "repost_count", "like_count", "view_count",
	"sentiment", "language", "quality", "permalink",
	"hashtags", "mentions", "links", "extracted_at_iso",
}

// postRow flattens a post into the tabular column order. List fields are
// joined with spaces so CSV and Excel cells stay single-valued.
func postRow(p extract.Post) []interface{} {
	return []interface{}{
		p.ID,
		p.Platform,
		p.Author,
		p.Username,
		p.Text,
		p.TimestampISO,
		p.Metrics.Replies,
		p.Metrics.Shares,
		p.Metrics.Likes,
		p.Metrics.Views,
		string(p.Sentiment),
		p.LanguageCode,
		p.Quality,
		p.Permalink,
		strings.Join(p.Hashtags, " "),
		strings.Join(p.Mentions, " "),
		strings.Join(p.Links, " "),
		p.ExtractedAtISO,
	}
}
