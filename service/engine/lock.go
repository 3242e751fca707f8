package engine

import "sync"

// lockTable hands out one mutex per instance id; entries are dropped once no
// caller holds or waits for them.
type lockTable struct {
	mux   sync.Mutex
	locks map[string]*instanceLock
}

type instanceLock struct {
	sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*instanceLock)}
}

// lock blocks until id is held and returns the matching unlock.
func (t *lockTable) lock(id string) func() {
	t.mux.Lock()
	l, ok := t.locks[id]
	if !ok {
		l = &instanceLock{}
		t.locks[id] = l
	}
	l.refs++
	t.mux.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		t.mux.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.locks, id)
		}
		t.mux.Unlock()
	}
}

func (t *lockTable) size() int {
	t.mux.Lock()
	defer t.mux.Unlock()
	return len(t.locks)
}
