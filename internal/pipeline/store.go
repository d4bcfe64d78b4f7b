// internal/pipeline/store.go

// Package pipeline contains the mutation-driven extraction machinery: the
// coalescing work queue with its throttled scheduler, the document change
// watcher, and the identifier-keyed post store.
package pipeline

import (
	"sync"

	"github.com/replyforge/postline/internal/extract"
)

// Store holds the latest known version of every extracted record, keyed by
// id. Snapshots preserve the insertion order of first-seen ids; updates do
// not re-order. The scheduler is the only writer; everything else reads
// snapshots or subscribes.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*extract.Post
	order    []string
	onChange func([]extract.Post)
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*extract.Post)}
}

// Upsert inserts or replaces the record with the given id and reports
// whether the id was new. Later extractions of the same id overwrite earlier
// ones; last write wins.
func (s *Store) Upsert(post *extract.Post) bool {
	if post == nil || post.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.records[post.ID]
	if !exists {
		s.order = append(s.order, post.ID)
	}
	s.records[post.ID] = post
	return !exists
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*extract.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.records[id]
	return post, ok
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// SnapshotAll returns copies of all records in first-seen order.
func (s *Store) SnapshotAll() []extract.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]extract.Post, 0, len(s.order))
	for _, id := range s.order {
		if post, ok := s.records[id]; ok {
			snapshot = append(snapshot, *post)
		}
	}
	return snapshot
}

// Clear removes every record. Used on manual full re-scan; stale entries for
// posts no longer in the document otherwise remain until then.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*extract.Post)
	s.order = nil
}

// OnChange registers the subscriber notified after any batch that performed
// at least one upsert. Only one subscriber is supported; later registrations
// replace earlier ones.
func (s *Store) OnChange(callback func([]extract.Post)) {
	s.mu.Lock()
	s.onChange = callback
	s.mu.Unlock()
}

// Notify invokes the subscriber with the full current snapshot. The
// scheduler calls this exactly once per batch with upserts, never per
// record, to avoid redundant downstream re-renders.
func (s *Store) Notify() {
	s.mu.RLock()
	callback := s.onChange
	s.mu.RUnlock()
	if callback != nil {
		callback(s.SnapshotAll())
	}
}
