// internal/output/csv.go

package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/replyforge/postline/internal/extract"
)

// CSVSink writes posts as CSV rows under a fixed header.
type CSVSink struct {
	file        *os.File
	writer      *csv.Writer
	wroteHeader bool
}

// NewCSVSink creates the target file, truncating any existing content.
func NewCSVSink(filename string) (*CSVSink, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &CSVSink{file: file, writer: csv.NewWriter(file)}, nil
}

// Write appends one row per post, emitting the header on first use.
func (s *CSVSink) Write(posts []extract.Post) error {
	if !s.wroteHeader {
		if err := s.writer.Write(postColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		s.wroteHeader = true
	}
	for _, p := range posts {
		row := make([]string, len(postColumns))
		for i, v := range postRow(p) {
			row[i] = fmt.Sprintf("%v", v)
		}
		if err := s.writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for post %s: %w", p.ID, err)
		}
	}
	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the file.
func (s *CSVSink) Close() error {
	if s.file == nil {
		return nil
	}
	s.writer.Flush()
	flushErr := s.writer.Error()
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
