// internal/output/output_test.go
package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/replyforge/postline/internal/extract"
)

func samplePosts() []extract.Post {
	return []extract.Post{
		{
			ID:           "a1",
			Platform:     "twitter",
			Author:       "Jane Doe",
			Username:     "janedoe",
			Text:         "First sample post",
			TimestampISO: "2024-05-01T10:00:00Z",
			Metrics:      extract.Metrics{Replies: 2, Likes: 10},
			Sentiment:    extract.SentimentPositive,
			LanguageCode: "en",
			Quality:      72.5,
			Hashtags:     []string{"Go"},
		},
		{
			ID:           "b2",
			Platform:     "twitter",
			Username:     "bob",
			Text:         "Second sample post",
			TimestampISO: "2024-05-01T11:00:00Z",
			Sentiment:    extract.SentimentNeutral,
			LanguageCode: "en",
			Quality:      55,
		},
	}
}

func TestJSONSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	sink, err := NewJSONSink(path)
	if err != nil {
		t.Fatalf("NewJSONSink failed: %v", err)
	}
	if err := sink.Write(samplePosts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var decoded []extract.Post
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "a1" || decoded[1].Username != "bob" {
		t.Errorf("unexpected decoded posts: %+v", decoded)
	}
}

func TestCSVSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink failed: %v", err)
	}
	if err := sink.Write(samplePosts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[1][0] != "a1" || rows[2][3] != "bob" {
		t.Errorf("unexpected rows: %v", rows[:2])
	}
}

func TestSQLiteSinkUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.db")
	sink, err := NewSQLiteSink(path, "posts")
	if err != nil {
		t.Fatalf("NewSQLiteSink failed: %v", err)
	}
	defer sink.Close()

	if err := sink.Write(samplePosts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Re-writing the same ids must update in place, not duplicate.
	updated := samplePosts()
	updated[0].Text = "edited"
	if err := sink.Write(updated); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	var count int
	if err := sink.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after upsert, got %d", count)
	}

	var text string
	if err := sink.db.QueryRow("SELECT text FROM posts WHERE id = 'a1'").Scan(&text); err != nil {
		t.Fatalf("reading row: %v", err)
	}
	if text != "edited" {
		t.Errorf("expected updated text, got %q", text)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json with file", Config{Format: FormatJSON, File: "out.json"}, false},
		{"json missing file", Config{Format: FormatJSON}, true},
		{"postgres with dsn", Config{Format: FormatPostgres, ConnectionString: "postgres://x"}, false},
		{"postgres missing dsn", Config{Format: FormatPostgres}, true},
		{"missing format", Config{File: "out.json"}, true},
		{"unknown format", Config{Format: "parquet", File: "out"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManagerFansOut(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(
		Config{Format: FormatJSON, File: filepath.Join(dir, "posts.json")},
		Config{Format: FormatCSV, File: filepath.Join(dir, "posts.csv")},
	)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Write(samplePosts()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, name := range []string{"posts.json", "posts.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.Size() == 0 {
			t.Errorf("expected %s to be written, err=%v", name, err)
		}
	}
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewManager(Config{Format: FormatJSON}); err == nil {
		t.Error("expected invalid config to fail")
	}
	if _, err := NewManager(); err == nil {
		t.Error("expected empty config list to fail")
	}
}
