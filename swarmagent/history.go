package swarmagent

import (
	"sync"

	"github.com/gammazero/deque"
)

// PathHistory is an ordered sequence of position snapshots, ordered by
// recording time (step index). It is owned exclusively by a single Agent.
// The ring-buffer is backed by gammazero/deque, the same library a
// coherence monitor uses for its bounded coherence-sample history,
// generalized here from a deque of float64 samples to a deque of Point
// snapshots.
type PathHistory struct {
	buf      *deque.Deque[Point]
	mu       sync.RWMutex
	cap      int // L_max, soft cap before truncation
	truncate int // retained length after truncation
}

// NewPathHistory creates a path history with the given soft cap and
// post-truncation retained length (cap=100, truncate to 50 by default).
func NewPathHistory(cap, truncateTo int) *PathHistory {
	if cap <= 0 {
		cap = 100
	}
	if truncateTo <= 0 || truncateTo > cap {
		truncateTo = cap / 2
	}
	return &PathHistory{
		buf:      deque.New[Point](cap),
		cap:      cap,
		truncate: truncateTo,
	}
}

// Record appends a snapshot to the history. When the soft cap is exceeded,
// the oldest half is discarded so the retained length becomes the
// configured truncate length. This is routine resource management, not
// an error condition.
func (h *PathHistory) Record(p Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.PushBack(p)

	if h.buf.Len() > h.cap {
		drop := h.buf.Len() - h.truncate
		for range drop {
			h.buf.PopFront()
		}
	}
}

// Len returns the current number of snapshots, 0 <= Len() <= cap.
func (h *PathHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.Len()
}

// Snapshot returns a copy of the full history, oldest first.
func (h *PathHistory) Snapshot() []Point {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Point, h.buf.Len())
	for i := range h.buf.Len() {
		out[i] = h.buf.At(i)
	}
	return out
}

// RecentX returns the X axis of up to the last n snapshots, oldest first.
func (h *PathHistory) RecentX(n int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	l := h.buf.Len()
	if n > l {
		n = l
	}
	out := make([]float64, n)
	start := l - n
	for i := range n {
		out[i] = h.buf.At(start + i).X
	}
	return out
}
