// internal/dom/live.go
package dom

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// LiveConfig configures a headless-browser document feed.
type LiveConfig struct {
	URL          string        `yaml:"url" json:"url"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	Headless     bool          `yaml:"headless" json:"headless"`
	UserAgent    string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	NavTimeout   time.Duration `yaml:"nav_timeout" json:"nav_timeout"`
	WaitSelector string        `yaml:"wait_selector,omitempty" json:"wait_selector,omitempty"`
}

// DefaultLiveConfig returns a config suitable for watching a rendered feed.
func DefaultLiveConfig(url string) *LiveConfig {
	return &LiveConfig{
		URL:          url,
		PollInterval: 2 * time.Second,
		Headless:     true,
		NavTimeout:   45 * time.Second,
	}
}

// LiveFeed observes a page rendered by a headless Chrome instance and
// synthesizes mutation batches by re-reading the rendered document on an
// interval. Consecutive identical documents produce no batch.
type LiveFeed struct {
	config      *LiveConfig
	ctx         context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc

	mu       sync.Mutex
	running  bool
	stopped  chan struct{}
	lastHash uint64
}

// NewLiveFeed launches a browser session for the configured URL.
func NewLiveFeed(config *LiveConfig) (*LiveFeed, error) {
	if config == nil || config.URL == "" {
		return nil, fmt.Errorf("live feed URL is required")
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	}
	if config.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	return &LiveFeed{
		config:      config,
		ctx:         ctx,
		cancelAlloc: cancelAlloc,
		cancelCtx:   cancelCtx,
		stopped:     make(chan struct{}),
	}, nil
}

// Start navigates to the configured URL and begins polling. The handler is
// invoked from a single goroutine, so handlers need no internal locking
// against this feed.
func (f *LiveFeed) Start(handler func(MutationBatch)) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return fmt.Errorf("live feed already started")
	}
	f.running = true
	f.mu.Unlock()

	navCtx := f.ctx
	if f.config.NavTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(f.ctx, f.config.NavTimeout)
		defer cancel()
	}

	tasks := []chromedp.Action{chromedp.Navigate(f.config.URL)}
	if f.config.WaitSelector != "" {
		tasks = append(tasks, chromedp.WaitVisible(f.config.WaitSelector, chromedp.ByQuery))
	}
	if err := chromedp.Run(navCtx, tasks...); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	go f.poll(handler)
	return nil
}

func (f *LiveFeed) poll(handler func(MutationBatch)) {
	ticker := time.NewTicker(f.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stopped:
			return
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			batch, ok := f.snapshot()
			if !ok {
				continue
			}
			select {
			case <-f.stopped:
				return
			default:
				handler(batch)
			}
		}
	}
}

// snapshot reads the rendered document and returns a batch when it differs
// from the previous poll.
func (f *LiveFeed) snapshot() (MutationBatch, bool) {
	var html string
	if err := chromedp.Run(f.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return MutationBatch{}, false
	}

	h := fnv.New64a()
	h.Write([]byte(html))
	sum := h.Sum64()

	f.mu.Lock()
	unchanged := sum == f.lastHash
	f.lastHash = sum
	f.mu.Unlock()
	if unchanged {
		return MutationBatch{}, false
	}

	root, err := ParseDocument(html)
	if err != nil {
		return MutationBatch{}, false
	}
	return MutationBatch{Added: []Node{root}, ObservedAt: time.Now()}, true
}

// Stop terminates polling and tears down the browser session.
func (f *LiveFeed) Stop() {
	f.mu.Lock()
	select {
	case <-f.stopped:
	default:
		close(f.stopped)
	}
	f.mu.Unlock()

	f.cancelCtx()
	f.cancelAlloc()
}
