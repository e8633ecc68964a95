package catalog

import (
	"sync"
)

// ChangeKind identifies what a Change reports.
type ChangeKind string

const (
	ChangeLoading  ChangeKind = "loading"
	ChangeReplaced ChangeKind = "replaced"
	ChangeAppended ChangeKind = "appended"
	ChangeRevealed ChangeKind = "revealed"
	ChangeFailed   ChangeKind = "failed"
	ChangeFilters  ChangeKind = "filters"
)

// Change is delivered to subscribers after every state transition.
type Change struct {
	Kind       ChangeKind
	Generation uint64
	Count      int    // Catalog size after the change
	Message    string // Failure reason for ChangeFailed
}

// Subscription is one consumer's FIFO of changes. It never blocks the store:
// the ring doubles when full.
type Subscription struct {
	mu     sync.Mutex
	cond   *sync.Cond
	ring   []Change
	head   int
	count  int
	closed bool

	dropped func(*Subscription)
}

func newSubscription(initialCapacity int, dropped func(*Subscription)) *Subscription {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	s := &Subscription{
		ring:    make([]Change, initialCapacity),
		dropped: dropped,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// push enqueues c. Returns false once the subscription is closed.
func (s *Subscription) push(c Change) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if s.count == len(s.ring) {
		s.grow()
	}
	s.ring[(s.head+s.count)%len(s.ring)] = c
	s.count++
	s.cond.Signal()
	return true
}

// grow doubles the ring, unwrapping it to start at index 0 (caller holds lock).
func (s *Subscription) grow() {
	next := make([]Change, len(s.ring)*2)
	for i := 0; i < s.count; i++ {
		next[i] = s.ring[(s.head+i)%len(s.ring)]
	}
	s.ring = next
	s.head = 0
}

func (s *Subscription) popLocked() Change {
	c := s.ring[s.head]
	s.ring[s.head] = Change{}
	s.head = (s.head + 1) % len(s.ring)
	s.count--
	return c
}

// Receive blocks until a change is available or the subscription is closed.
// Changes queued before Close are still delivered.
func (s *Subscription) Receive() (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.count == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.count == 0 {
		return Change{}, false
	}
	return s.popLocked(), true
}

// TryReceive returns the next change without blocking.
func (s *Subscription) TryReceive() (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return Change{}, false
	}
	return s.popLocked(), true
}

// Len returns the number of queued changes.
func (s *Subscription) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close stops delivery and wakes a blocked Receive.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	if s.dropped != nil {
		s.dropped(s)
	}
}

// feed fans changes out to subscribers.
type feed struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newFeed() *feed {
	return &feed{subs: make(map[*Subscription]struct{})}
}

func (f *feed) subscribe() *Subscription {
	sub := newSubscription(16, f.remove)
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

func (f *feed) remove(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
}

func (f *feed) publish(c Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		sub.push(c)
	}
}

func (f *feed) closeAll() {
	f.mu.Lock()
	subs := make([]*Subscription, 0, len(f.subs))
	for sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
