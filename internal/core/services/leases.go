package services

import "sync"

// LeaseTable tracks which document ids have an open read (render or
// export embedding) in flight, and defers backing-byte deletion until
// the last reader releases its lease. One table is shared by the
// registry, renderer, and composer services.
type LeaseTable struct {
	mu      sync.Mutex
	refs    map[string]int
	pending map[string]func()
}

// NewLeaseTable creates an empty lease table.
func NewLeaseTable() *LeaseTable {
	return &LeaseTable{
		refs:    make(map[string]int),
		pending: make(map[string]func()),
	}
}

// Acquire takes a read lease on id. Every Acquire must be paired with
// exactly one Release. Acquiring an id with no registry entry is legal;
// the lease then only guards against a concurrent deferred deletion.
func (t *LeaseTable) Acquire(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refs[id]++
}

// Release drops a read lease. If this was the last lease on an id with
// a pending deletion, the deletion runs now, outside the table lock.
func (t *LeaseTable) Release(id string) {
	t.mu.Lock()
	t.refs[id]--
	if t.refs[id] > 0 {
		t.mu.Unlock()
		return
	}
	delete(t.refs, id)
	del := t.pending[id]
	delete(t.pending, id)
	t.mu.Unlock()

	if del != nil {
		del()
	}
}

// DeleteWhenIdle runs del once no lease on id remains: immediately when
// the id is idle, otherwise from the final Release. A later call for
// the same id replaces an earlier pending deletion.
func (t *LeaseTable) DeleteWhenIdle(id string, del func()) {
	t.mu.Lock()
	if t.refs[id] > 0 {
		t.pending[id] = del
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	del()
}
