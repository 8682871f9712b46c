package quill

import (
	"context"
	"math"
	"sync"
)

// ScrollMetrics is one scroll-position sample reported by a page.
type ScrollMetrics struct {
	Offset         float64 `json:"offset"`
	DocumentHeight float64 `json:"documentHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// Progress returns the reading progress for m. See ScrollProgress.
func (m ScrollMetrics) Progress() float64 {
	return ScrollProgress(m.Offset, m.DocumentHeight, m.ViewportHeight)
}

// ScrollProgress returns how far through the scrollable distance offset is,
// as a percentage in [0, 100]. Pages shorter than the viewport have nothing
// to scroll and report 0.
func ScrollProgress(offset, documentHeight, viewportHeight float64) float64 {
	total := documentHeight - viewportHeight
	if !(total > 0) || math.IsInf(total, 0) {
		return 0
	}
	p := offset / total * 100
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// ProgressTracker recomputes reading progress for every scroll sample and
// pushes the result to its subscribers.
type ProgressTracker struct {
	mu      sync.Mutex
	subs    map[int]func(float64)
	nextID  int
	current float64
	max     float64
}

// NewProgressTracker creates a tracker with no subscribers.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{subs: make(map[int]func(float64))}
}

// Subscribe registers fn to receive every recomputed progress value. The
// returned func removes the subscription and is safe to call more than once.
func (t *ProgressTracker) Subscribe(fn func(float64)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// Update records a scroll sample, notifies subscribers and returns the new progress.
func (t *ProgressTracker) Update(m ScrollMetrics) float64 {
	p := m.Progress()

	t.mu.Lock()
	t.current = p
	if p > t.max {
		t.max = p
	}
	fns := make([]func(float64), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
	return p
}

// Progress returns the most recently computed value.
func (t *ProgressTracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Max returns the deepest progress seen so far.
func (t *ProgressTracker) Max() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.max
}

// Run feeds samples from events into the tracker until events is closed or
// ctx is done. It returns ctx.Err() on cancellation and nil otherwise.
func (t *ProgressTracker) Run(ctx context.Context, events <-chan ScrollMetrics) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-events:
			if !ok {
				return nil
			}
			t.Update(m)
		}
	}
}
