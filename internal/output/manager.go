// internal/output/manager.go

package output

import (
	"fmt"

	"github.com/replyforge/postline/internal/extract"
)

// Manager owns a set of configured sinks and fans batches out to all of
// them.
type Manager struct {
	sinks []Sink
}

// NewManager validates each config and opens its sink. On any failure the
// already-opened sinks are closed.
func NewManager(configs ...Config) (*Manager, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("at least one output configuration is required")
	}

	m := &Manager{}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			m.Close()
			return nil, err
		}
		sink, err := openSink(cfg)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("opening %s output: %w", cfg.Format, err)
		}
		m.sinks = append(m.sinks, sink)
	}
	return m, nil
}

func openSink(cfg Config) (Sink, error) {
	switch cfg.Format {
	case FormatJSON:
		return NewJSONSink(cfg.File)
	case FormatCSV:
		return NewCSVSink(cfg.File)
	case FormatExcel:
		return NewExcelSink(cfg.File)
	case FormatSQLite:
		return NewSQLiteSink(cfg.File, cfg.Table)
	case FormatPostgres:
		return NewPostgresSink(cfg.ConnectionString, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}

// Write sends the batch to every sink, returning the first error after
// attempting all sinks.
func (m *Manager) Write(posts []extract.Post) error {
	var firstErr error
	for _, sink := range m.sinks {
		if err := sink.Write(posts); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every sink, returning the first error.
func (m *Manager) Close() error {
	var firstErr error
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.sinks = nil
	return firstErr
}
