// internal/output/json.go

package output

import (
	"encoding/json"
	"os"

	"github.com/replyforge/postline/internal/extract"
)

// JSONSink appends posts to a file as an indented JSON array per batch.
type JSONSink struct {
	filename string
	file     *os.File
}

// NewJSONSink creates the target file, truncating any existing content.
func NewJSONSink(filename string) (*JSONSink, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &JSONSink{filename: filename, file: file}, nil
}

// Write encodes the batch as one JSON array.
func (s *JSONSink) Write(posts []extract.Post) error {
	encoder := json.NewEncoder(s.file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(posts)
}

// Close syncs and closes the file.
func (s *JSONSink) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		s.file = nil
		return err
	}
	err := s.file.Close()
	s.file = nil
	return err
}
