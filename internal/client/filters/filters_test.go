package filters

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/patientdesk/internal/debounce/debouncetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type changes struct {
	got []State
	mu  sync.Mutex
}

func (c *changes) record(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, s)
}

func (c *changes) all() []State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]State(nil), c.got...)
}

func newTestFilters(t *testing.T) (*Filters, *debouncetest.Scheduler, *changes) {
	t.Helper()
	clock := debouncetest.NewScheduler()
	ch := &changes{}
	f := New(WithScheduler(clock), WithOnChange(ch.record))
	t.Cleanup(f.Close)
	return f, clock, ch
}

func TestFilters_StatusAppliedImmediately(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetStatus("active")
	assert.Equal(t, State{Status: "active"}, f.Applied())
	assert.Equal(t, []State{{Status: "active"}}, ch.all())
	assert.Equal(t, 0, clock.Pending())

	// повторная установка того же значения не уведомляет
	f.SetStatus("active")
	assert.Len(t, ch.all(), 1)
}

func TestFilters_TextDebounced(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetSearch("l")
	clock.Advance(200 * time.Millisecond)
	f.SetSearch("le")
	clock.Advance(200 * time.Millisecond)
	f.SetSearch("lee")
	f.SetCity("Austin")

	assert.Equal(t, State{Search: "lee", City: "Austin"}, f.Pending())
	assert.True(t, f.Applied().IsZero())
	assert.False(t, f.Settled())

	clock.Advance(599 * time.Millisecond)
	assert.Empty(t, ch.all())

	clock.Advance(time.Millisecond)
	assert.Equal(t, State{Search: "lee", City: "Austin"}, f.Applied())
	assert.Equal(t, []State{{Search: "lee", City: "Austin"}}, ch.all())
	assert.True(t, f.Settled())
}

func TestFilters_StatusDoesNotWaitForText(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetState("TX")
	f.SetStatus("churned")
	assert.Equal(t, State{Status: "churned"}, f.Applied())

	clock.Advance(DefaultDelay)
	assert.Equal(t, State{Status: "churned", State: "TX"}, f.Applied())
	assert.Equal(t, []State{{Status: "churned"}, {Status: "churned", State: "TX"}}, ch.all())
}

func TestFilters_TypedBackToAppliedValue(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetCity("Austin")
	clock.Advance(DefaultDelay)
	require.Len(t, ch.all(), 1)

	f.SetCity("Aus")
	f.SetCity("Austin")
	clock.Advance(DefaultDelay)
	assert.Len(t, ch.all(), 1, "unchanged applied state is not reported")
}

func TestFilters_ClearAll(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetStatus("inquiry")
	f.SetCity("Dallas")
	clock.Advance(DefaultDelay)
	f.SetSearch("smith")

	f.ClearAll()
	assert.True(t, f.Pending().IsZero())
	assert.True(t, f.Applied().IsZero())
	assert.Equal(t, 0, clock.Pending())

	// отменённое обновление не применяется
	clock.Advance(DefaultDelay)
	got := ch.all()
	require.Len(t, got, 3)
	assert.Equal(t, State{}, got[2])

	// очистка пустых фильтров не уведомляет
	f.ClearAll()
	assert.Len(t, ch.all(), 3)
}

func TestFilters_Flush(t *testing.T) {
	f, _, ch := newTestFilters(t)

	assert.False(t, f.Flush())

	f.SetSearch("ann")
	assert.True(t, f.Flush())
	assert.Equal(t, State{Search: "ann"}, f.Applied())
	assert.Len(t, ch.all(), 1)
}

func TestFilters_CustomDelay(t *testing.T) {
	clock := debouncetest.NewScheduler()
	f := New(WithScheduler(clock), WithDelay(100*time.Millisecond))
	defer f.Close()

	f.SetCity("Reno")
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, "Reno", f.Applied().City)
}

func TestFilters_Close(t *testing.T) {
	f, clock, ch := newTestFilters(t)

	f.SetSearch("x")
	f.Close()
	clock.Advance(DefaultDelay)
	assert.Empty(t, ch.all())
	assert.True(t, f.Applied().IsZero())
}

func TestFilters_RealScheduler(t *testing.T) {
	done := make(chan State, 1)
	f := New(WithDelay(10*time.Millisecond), WithOnChange(func(s State) { done <- s }))
	defer f.Close()

	f.SetSearch("lee")

	select {
	case s := <-done:
		assert.Equal(t, "lee", s.Search)
	case <-time.After(time.Second):
		t.Fatal("filters were not applied")
	}
}
