// Package state holds the daemon's process-wide nmap_active scan
// counter, encapsulated and mutex-guarded. The single-flight registry
// lives in internal/cache (one singleflight.Group per TTLCache), not
// here.
package state

import "sync"

// NmapActive is a mutex-guarded, set-count counter (not a boolean) so
// overlapping attacker-nmap scans are tracked correctly: the flag
// stays "active" until every concurrent scan that set it has cleared.
type NmapActive struct {
	mu    sync.Mutex
	count int
}

// NewNmapActive returns a zeroed counter.
func NewNmapActive() *NmapActive {
	return &NmapActive{}
}

// Begin marks one scan as started and returns a func that marks it
// finished. Callers should defer the returned function.
func (n *NmapActive) Begin() func() {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			n.count--
			n.mu.Unlock()
		})
	}
}

// Active reports whether at least one scan is currently in flight.
func (n *NmapActive) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count > 0
}

// Count returns the number of scans currently in flight.
func (n *NmapActive) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
