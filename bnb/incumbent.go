package bnb

import "sync"

// frame is one search stack entry: count units of the kept item at index.
// For the bounded problem count is always 1.
type frame struct {
	index int
	count int64
}

// incumbent holds the best solution found so far. It is written only by
// the search goroutine and only through replace, which publishes a fresh copy
// of the stack; a published slice is never mutated afterwards, so readers may
// keep it without holding the lock.
type incumbent struct {
	mu     sync.Mutex
	value  int64
	frames []frame
}

// replace publishes a copy of frames as the new best solution.
func (in *incumbent) replace(value int64, frames []frame) {
	snap := make([]frame, len(frames))
	copy(snap, frames)

	in.mu.Lock()
	in.value = value
	in.frames = snap
	in.mu.Unlock()
}

// snapshot returns the current best value and its frames.
func (in *incumbent) snapshot() (int64, []frame) {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.value, in.frames
}
