// internal/pipeline/scheduler.go
package pipeline

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/utils"
)

// SchedulerConfig tunes the throttled drain behavior.
type SchedulerConfig struct {
	// DebounceInterval is the trailing-edge delay between the first enqueue
	// and the drain it triggers. Mutation bursts inside one interval collapse
	// to a single drain.
	DebounceInterval time.Duration `yaml:"debounce_interval" json:"debounce_interval"`

	// MaxDrainsPerSecond caps how often a full pass can run regardless of
	// mutation pressure. Zero disables the cap.
	MaxDrainsPerSecond float64 `yaml:"max_drains_per_second" json:"max_drains_per_second"`
}

// DefaultSchedulerConfig returns the tuning used by the live pipeline.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		DebounceInterval:   150 * time.Millisecond,
		MaxDrainsPerSecond: 5,
	}
}

// Scheduler accepts candidate elements and processes them in throttled,
// coalesced batches. Enqueueing has set semantics: re-adding an element
// before it is drained is a no-op. Drains never overlap; a drain requested
// while one is in flight is dropped, and elements that arrived meanwhile are
// picked up by the next invocation.
type Scheduler struct {
	config    SchedulerConfig
	assembler *extract.Assembler
	store     *Store
	platform  *platform.Config
	clock     Clock
	limiter   *rate.Limiter
	metrics   *Metrics
	log       utils.Logger

	mu       sync.Mutex
	pending  map[dom.Node]struct{}
	order    []dom.Node
	timer    Timer
	draining bool
	active   bool
}

// NewScheduler wires a scheduler to its assembler and store.
func NewScheduler(config SchedulerConfig, assembler *extract.Assembler, store *Store, cfg *platform.Config, clock Clock, metrics *Metrics, log utils.Logger) *Scheduler {
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = DefaultSchedulerConfig().DebounceInterval
	}
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = utils.NopLogger()
	}

	var limiter *rate.Limiter
	if config.MaxDrainsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.MaxDrainsPerSecond), 1)
	}

	s := &Scheduler{
		config:    config,
		assembler: assembler,
		store:     store,
		platform:  cfg,
		clock:     clock,
		limiter:   limiter,
		metrics:   metrics,
		log:       log,
		pending:   make(map[dom.Node]struct{}),
		active:    true,
	}
	return s
}

// Enqueue adds a candidate element and arms the trailing-edge drain timer.
func (s *Scheduler) Enqueue(node dom.Node) {
	if node == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	if _, exists := s.pending[node]; exists {
		return
	}
	s.pending[node] = struct{}{}
	s.order = append(s.order, node)
	if s.metrics != nil {
		s.metrics.PendingElements.Set(float64(len(s.order)))
	}

	if s.timer == nil {
		s.timer = s.clock.AfterFunc(s.config.DebounceInterval, s.Drain)
	}
}

// PendingCount returns the number of queued elements.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Drain processes the entire current queue as one batch. Re-entrant calls
// are ignored. A drain after Stop is a safe no-op.
func (s *Scheduler) Drain() {
	s.mu.Lock()
	if !s.active || s.draining {
		s.mu.Unlock()
		return
	}
	if s.limiter != nil && !s.limiter.AllowN(s.clock.Now(), 1) {
		// Full-pass rate cap hit; retry after the debounce interval.
		s.timer = s.clock.AfterFunc(s.config.DebounceInterval, s.Drain)
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.timer = nil
	batch := s.order
	s.pending = make(map[dom.Node]struct{})
	s.order = nil
	if s.metrics != nil {
		s.metrics.PendingElements.Set(0)
	}
	s.mu.Unlock()

	start := s.clock.Now()
	upserts := 0
	for _, node := range batch {
		post := s.assembleSafely(node)
		if post == nil {
			if s.metrics != nil {
				s.metrics.PostsRejected.Inc()
			}
			continue
		}
		s.store.Upsert(post)
		upserts++
		if s.metrics != nil {
			s.metrics.PostsExtracted.Inc()
		}
	}

	if s.metrics != nil {
		s.metrics.DrainsTotal.Inc()
		s.metrics.DrainDuration.Observe(s.clock.Now().Sub(start).Seconds())
		s.metrics.StoreSize.Set(float64(s.store.Len()))
	}

	if upserts > 0 {
		s.store.Notify()
	}

	s.mu.Lock()
	s.draining = false
	// Elements enqueued mid-drain started a fresh pending set; give them
	// their own pass.
	if s.active && len(s.order) > 0 && s.timer == nil {
		s.timer = s.clock.AfterFunc(s.config.DebounceInterval, s.Drain)
	}
	s.mu.Unlock()
}

// assembleSafely isolates per-element failures: an exception while reading a
// detached node is logged and skips that element without aborting the batch.
func (s *Scheduler) assembleSafely(node dom.Node) (post *extract.Post) {
	defer func() {
		if r := recover(); r != nil {
			post = nil
			if s.metrics != nil {
				s.metrics.ExtractionErrors.Inc()
			}
			s.log.Warnf("extraction failed for element: %v", r)
		}
	}()
	post = s.assembler.Assemble(node, s.platform)
	if post == nil {
		s.log.Debug("element rejected by assembler")
	}
	return post
}

// Stop deactivates the scheduler. Pending debounced drains that fire later
// become no-ops.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = make(map[dom.Node]struct{})
	s.order = nil
}
