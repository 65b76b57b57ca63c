package market

import "sync"

// guard serializes operations per record address, concurrent mutations of
// the same record never interleave.
type guard struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}

func newGuard() *guard {
	return &guard{locks: make(map[string]*sync.Mutex)}
}

func (g *guard) lock(key string) func() {
	g.Lock()
	l := g.locks[key]
	if l == nil {
		l = new(sync.Mutex)
		g.locks[key] = l
	}
	g.Unlock()

	l.Lock()
	return l.Unlock
}
