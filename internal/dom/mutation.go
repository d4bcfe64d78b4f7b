// internal/dom/mutation.go
package dom

import "time"

// MutationBatch describes one batch of structural document changes. Added
// holds the nodes inserted since the previous batch; the first batch after
// attach carries the full document root.
type MutationBatch struct {
	Added      []Node
	ObservedAt time.Time
}

// Feed delivers batches of structural changes to a single handler. Start is
// not re-entrant; Stop releases the subscription and no handler call may be
// made after Stop returns.
type Feed interface {
	Start(handler func(MutationBatch)) error
	Stop()
}

// StaticFeed replays a fixed set of batches once on Start. It exists for
// one-shot scrapes of already-rendered documents and for tests.
type StaticFeed struct {
	Batches []MutationBatch
	stopped bool
}

// NewStaticFeed builds a feed that delivers the document root as a single
// batch.
func NewStaticFeed(root Node) *StaticFeed {
	return &StaticFeed{
		Batches: []MutationBatch{{Added: []Node{root}, ObservedAt: time.Now()}},
	}
}

func (f *StaticFeed) Start(handler func(MutationBatch)) error {
	for _, batch := range f.Batches {
		if f.stopped {
			return nil
		}
		handler(batch)
	}
	return nil
}

func (f *StaticFeed) Stop() {
	f.stopped = true
}
