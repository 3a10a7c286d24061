package service

import (
	"sync"
	"time"
)

// idGen hands out millisecond-timestamp identifiers with a monotonic guard:
// two calls within the same millisecond still produce distinct, increasing
// ids. Ids therefore stay roughly wall-clock ordered without ever colliding.
type idGen struct {
	mu   sync.Mutex
	last int64
}

func (g *idGen) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
