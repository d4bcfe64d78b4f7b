// internal/pipeline/pipeline_test.go
package pipeline

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
)

func TestPipelineEndToEnd(t *testing.T) {
	plat := platform.NewRegistry().Get("twitter")
	root, err := dom.ParseDocument(feedHTML)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	clock := newFakeClock()
	p, err := New(DefaultConfig(), plat, dom.NewStaticFeed(root),
		WithClock(clock),
		WithRegisterer(prometheus.NewRegistry()),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer p.Teardown()

	clock.Advance(time.Second)
	if p.Store().Len() != 2 {
		t.Errorf("expected 2 posts after init, got %d", p.Store().Len())
	}

	p.Rescan()
	if p.Store().Len() != 0 {
		t.Errorf("expected Rescan to clear the store, got %d", p.Store().Len())
	}
}

func TestPipelineFlush(t *testing.T) {
	plat := platform.NewRegistry().Get("twitter")
	root, err := dom.ParseDocument(feedHTML)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	p, err := New(DefaultConfig(), plat, dom.NewStaticFeed(root))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer p.Teardown()

	// Flush skips the debounce wait entirely.
	p.Flush()
	if p.Store().Len() != 2 {
		t.Errorf("expected 2 posts after flush, got %d", p.Store().Len())
	}
}

func TestPipelineTeardownStopsWork(t *testing.T) {
	plat := platform.NewRegistry().Get("twitter")
	root, err := dom.ParseDocument(feedHTML)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	clock := newFakeClock()
	p, err := New(DefaultConfig(), plat, dom.NewStaticFeed(root), WithClock(clock))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	p.Teardown()
	clock.Advance(time.Second)
	if p.Store().Len() != 0 {
		t.Errorf("expected no extraction after teardown, got %d", p.Store().Len())
	}
}
