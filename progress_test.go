package quill

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollProgress(t *testing.T) {
	tests := []struct {
		name                  string
		offset, doc, viewport float64
		expect                float64
	}{
		{"top of page", 0, 2000, 1000, 0},
		{"halfway", 500, 2000, 1000, 50},
		{"bottom", 1000, 2000, 1000, 100},
		{"overscroll clamps high", 1200, 2000, 1000, 100},
		{"negative offset clamps low", -50, 2000, 1000, 0},
		{"page shorter than viewport", 0, 800, 1000, 0},
		{"page equal to viewport", 10, 1000, 1000, 0},
		{"NaN offset", math.NaN(), 2000, 1000, 0},
		{"infinite document", 10, math.Inf(1), 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, ScrollProgress(tt.offset, tt.doc, tt.viewport), 1e-9)
		})
	}
}

func TestScrollProgressAlwaysInRange(t *testing.T) {
	for offset := -500.0; offset <= 3000; offset += 37 {
		for _, doc := range []float64{0, 500, 1000, 1500, 4000} {
			p := ScrollProgress(offset, doc, 1000)
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 100.0)
		}
	}
}

func TestScrollProgressMonotonic(t *testing.T) {
	prev := -1.0
	for offset := 0.0; offset <= 1200; offset += 10 {
		p := ScrollProgress(offset, 2000, 1000)
		require.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestProgressTrackerNotifiesSubscribers(t *testing.T) {
	tr := NewProgressTracker()
	var got []float64
	unsubscribe := tr.Subscribe(func(p float64) { got = append(got, p) })

	tr.Update(ScrollMetrics{Offset: 250, DocumentHeight: 2000, ViewportHeight: 1000})
	tr.Update(ScrollMetrics{Offset: 750, DocumentHeight: 2000, ViewportHeight: 1000})
	tr.Update(ScrollMetrics{Offset: 100, DocumentHeight: 2000, ViewportHeight: 1000})

	assert.Equal(t, []float64{25, 75, 10}, got)
	assert.Equal(t, 10.0, tr.Progress())
	assert.Equal(t, 75.0, tr.Max())

	unsubscribe()
	unsubscribe()
	tr.Update(ScrollMetrics{Offset: 1000, DocumentHeight: 2000, ViewportHeight: 1000})
	assert.Len(t, got, 3, "no notifications after unsubscribe")
	assert.Equal(t, 100.0, tr.Progress())
}

func TestProgressTrackerRecomputesOnResize(t *testing.T) {
	tr := NewProgressTracker()
	assert.Equal(t, 50.0, tr.Update(ScrollMetrics{Offset: 500, DocumentHeight: 2000, ViewportHeight: 1000}))
	// Same offset, taller document after content loads.
	assert.Equal(t, 25.0, tr.Update(ScrollMetrics{Offset: 500, DocumentHeight: 3000, ViewportHeight: 1000}))
}

func TestProgressTrackerRunUntilClosed(t *testing.T) {
	tr := NewProgressTracker()
	events := make(chan ScrollMetrics, 2)
	events <- ScrollMetrics{Offset: 300, DocumentHeight: 1600, ViewportHeight: 1000}
	events <- ScrollMetrics{Offset: 600, DocumentHeight: 1600, ViewportHeight: 1000}
	close(events)

	require.NoError(t, tr.Run(context.Background(), events))
	assert.Equal(t, 100.0, tr.Progress())
	assert.Equal(t, 100.0, tr.Max())
}

func TestProgressTrackerRunCancelled(t *testing.T) {
	tr := NewProgressTracker()
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan ScrollMetrics)

	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx, events) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestProgressTrackerConcurrentUpdates(t *testing.T) {
	tr := NewProgressTracker()
	var mu sync.Mutex
	calls := 0
	tr.Subscribe(func(float64) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Update(ScrollMetrics{Offset: float64(i * 20), DocumentHeight: 2000, ViewportHeight: 1000})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, calls)
	assert.Equal(t, 98.0, tr.Max())
}
