// internal/pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/utils"
)

// Config tunes one pipeline instance.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler" json:"scheduler"`
	Watcher   WatcherConfig   `yaml:"watcher" json:"watcher"`
	Weights   extract.Weights `yaml:"weights" json:"weights"`
}

// DefaultConfig returns the live tuning.
func DefaultConfig() Config {
	return Config{
		Scheduler: DefaultSchedulerConfig(),
		Watcher:   DefaultWatcherConfig(),
		Weights:   extract.DefaultWeights(),
	}
}

// Pipeline wires the watcher, scheduler, assembler, and store for one
// platform. Lifecycle is explicit: construct, Init, Teardown. There are no
// package-level instances.
type Pipeline struct {
	platform  *platform.Config
	feed      dom.Feed
	store     *Store
	scheduler *Scheduler
	watcher   *Watcher
	log       utils.Logger

	mu      sync.Mutex
	started bool
}

// Option adjusts pipeline construction.
type Option func(*options)

type options struct {
	clock      Clock
	logger     utils.Logger
	registerer prometheus.Registerer
	assembler  *extract.Assembler
}

// WithClock injects a clock, used by tests to drive the throttle window.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger injects a logger.
func WithLogger(log utils.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithRegisterer enables pipeline metrics on the given registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithAssembler injects a pre-built assembler.
func WithAssembler(a *extract.Assembler) Option {
	return func(o *options) { o.assembler = a }
}

// New builds a pipeline for the given platform over the given document feed.
func New(cfg Config, plat *platform.Config, feed dom.Feed, opts ...Option) (*Pipeline, error) {
	if plat == nil {
		return nil, fmt.Errorf("platform config is required")
	}
	if feed == nil {
		return nil, fmt.Errorf("document feed is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = utils.NewLogger()
	}
	if o.clock == nil {
		o.clock = SystemClock()
	}
	if o.assembler == nil {
		o.assembler = extract.NewAssembler()
	}
	if cfg.Weights != (extract.Weights{}) {
		o.assembler.Weights = cfg.Weights
	}

	var metrics *Metrics
	if o.registerer != nil {
		metrics = NewMetrics(o.registerer)
	}

	store := NewStore()
	scheduler := NewScheduler(cfg.Scheduler, o.assembler, store, plat, o.clock, metrics, o.logger)
	watcher := NewWatcher(cfg.Watcher, plat, scheduler, o.clock, o.logger)

	return &Pipeline{
		platform:  plat,
		feed:      feed,
		store:     store,
		scheduler: scheduler,
		watcher:   watcher,
		log:       o.logger.WithField("platform", plat.ID),
	}, nil
}

// Store returns the pipeline's record store.
func (p *Pipeline) Store() *Store { return p.store }

// Platform returns the adapter driving this pipeline.
func (p *Pipeline) Platform() *platform.Config { return p.platform }

// Init subscribes to the document feed and starts the periodic content
// watch. The first batch from the feed doubles as the initial full scan.
func (p *Pipeline) Init() error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already initialized")
	}
	p.started = true
	p.mu.Unlock()

	if err := p.feed.Start(p.watcher.HandleBatch); err != nil {
		return fmt.Errorf("failed to start document feed: %w", err)
	}
	p.watcher.StartContentWatch()
	p.log.Info("pipeline initialized")
	return nil
}

// Flush drains any pending elements immediately instead of waiting for
// the debounce timer.
func (p *Pipeline) Flush() {
	p.scheduler.Drain()
}

// Rescan clears the store; subsequent batches rebuild it from scratch. Used
// for a manual full re-scan.
func (p *Pipeline) Rescan() {
	p.store.Clear()
	p.log.Info("store cleared for full re-scan")
}

// Teardown releases the feed subscription and deactivates the scheduler.
// Debounced drains that fire afterwards are no-ops.
func (p *Pipeline) Teardown() {
	p.feed.Stop()
	p.watcher.Stop()
	p.scheduler.Stop()
	p.log.Info("pipeline torn down")
}
