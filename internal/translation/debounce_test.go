package translation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultCollector struct {
	mu      sync.Mutex
	results []Result
}

func (c *resultCollector) deliver(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *resultCollector) snapshot() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

func TestDebouncerDeliversAfterQuietPeriod(t *testing.T) {
	tr := NewTranslator(NewMemoryCache(), "", false, nil, nil)
	d := NewDebouncer(tr, 20*time.Millisecond)
	collector := &resultCollector{}

	id := d.Request(context.Background(), "Havuz", "en", collector.deliver)

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	got := collector.snapshot()[0]
	assert.Equal(t, id, got.RequestID)
	assert.Equal(t, "Pool", got.Text)
	assert.Equal(t, "en", got.Target)
}

func TestDebouncerNewestRequestWins(t *testing.T) {
	tr := NewTranslator(NewMemoryCache(), "", false, nil, nil)
	d := NewDebouncer(tr, 30*time.Millisecond)
	collector := &resultCollector{}

	ctx := context.Background()
	d.Request(ctx, "Havuz", "en", collector.deliver)
	d.Request(ctx, "Kahvaltı", "en", collector.deliver)
	last := d.Request(ctx, "Resepsiyon", "en", collector.deliver)

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) >= 1
	}, time.Second, 5*time.Millisecond)

	// Allow a grace period for any stale deliveries that should not occur.
	time.Sleep(100 * time.Millisecond)

	results := collector.snapshot()
	require.Len(t, results, 1)
	assert.Equal(t, last, results[0].RequestID)
	assert.Equal(t, "Reception", results[0].Text)
}

func TestDebouncerRequestIDsIncrease(t *testing.T) {
	tr := NewTranslator(NewMemoryCache(), "", false, nil, nil)
	d := NewDebouncer(tr, time.Minute)

	first := d.Request(context.Background(), "a", "en", func(Result) {})
	second := d.Request(context.Background(), "b", "en", func(Result) {})
	assert.Greater(t, second, first)
	d.Flush()
}

func TestDebouncerFlushDropsPending(t *testing.T) {
	tr := NewTranslator(NewMemoryCache(), "", false, nil, nil)
	d := NewDebouncer(tr, 20*time.Millisecond)
	collector := &resultCollector{}

	d.Request(context.Background(), "Havuz", "en", collector.deliver)
	d.Flush()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, collector.snapshot())
}
