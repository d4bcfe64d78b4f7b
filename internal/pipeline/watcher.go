// internal/pipeline/watcher.go
package pipeline

import (
	"sync"
	"time"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/utils"
)

// WatcherConfig tunes document observation.
type WatcherConfig struct {
	// RescanInterval controls the periodic re-attachment to the platform's
	// main content container. Host pages replace that container during their
	// own rendering, so one-time attachment is not enough.
	RescanInterval time.Duration `yaml:"rescan_interval" json:"rescan_interval"`
}

// DefaultWatcherConfig returns the tuning used by the live pipeline.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{RescanInterval: 5 * time.Second}
}

// Watcher classifies document changes into candidate post elements and
// feeds them to the scheduler. It emits no data itself.
type Watcher struct {
	config    WatcherConfig
	platform  *platform.Config
	scheduler *Scheduler
	clock     Clock
	log       utils.Logger

	mu       sync.Mutex
	lastRoot dom.Node
	timer    Timer
	active   bool
}

// NewWatcher wires a watcher to the scheduler.
func NewWatcher(config WatcherConfig, cfg *platform.Config, scheduler *Scheduler, clock Clock, log utils.Logger) *Watcher {
	if config.RescanInterval <= 0 {
		config.RescanInterval = DefaultWatcherConfig().RescanInterval
	}
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = utils.NopLogger()
	}
	return &Watcher{
		config:    config,
		platform:  cfg,
		scheduler: scheduler,
		clock:     clock,
		log:       log,
		active:    true,
	}
}

// HandleBatch classifies every added node: a direct post-container match is
// enqueued as-is, anything else is searched for nested matches.
func (w *Watcher) HandleBatch(batch dom.MutationBatch) {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	enqueued := 0
	for _, node := range batch.Added {
		if node == nil {
			continue
		}
		if dom.MatchesAny(node, w.platform.Selectors.Post) {
			w.scheduler.Enqueue(node)
			enqueued++
			continue
		}
		w.mu.Lock()
		w.lastRoot = node
		w.mu.Unlock()
		for _, match := range findPosts(node, w.platform) {
			w.scheduler.Enqueue(match)
			enqueued++
		}
	}
	if enqueued > 0 {
		w.log.Debugf("classified %d candidate elements", enqueued)
	}
}

// StartContentWatch begins the periodic re-attachment pass over the main
// content container. Safe to call once after the first batch is expected.
func (w *Watcher) StartContentWatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active || w.timer != nil {
		return
	}
	w.timer = w.clock.AfterFunc(w.config.RescanInterval, w.rescan)
}

// rescan re-runs classification over the current content container. A
// missing container is not fatal; the next interval retries.
func (w *Watcher) rescan() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	root := w.lastRoot
	w.timer = w.clock.AfterFunc(w.config.RescanInterval, w.rescan)
	w.mu.Unlock()

	if root == nil {
		return
	}
	scope := root
	if w.platform.Selectors.ContentRoot != "" {
		if container := root.FindFirst(w.platform.Selectors.ContentRoot); container != nil {
			scope = container
		}
	}
	for _, match := range findPosts(scope, w.platform) {
		w.scheduler.Enqueue(match)
	}
}

// Stop releases the subscription so no further enqueueing happens.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// findPosts returns nested post containers, using the first selector in the
// cascade that yields matches so one element is never enqueued twice.
func findPosts(node dom.Node, cfg *platform.Config) []dom.Node {
	for _, selector := range cfg.Selectors.Post {
		if matches := node.FindAll(selector); len(matches) > 0 {
			return matches
		}
	}
	return nil
}
