package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/iudanet/patientdesk/internal/debounce"
	"github.com/iudanet/patientdesk/internal/debounce/debouncetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_FiresOnceAfterQuietWindow(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var calls atomic.Int32
	d := debounce.New(300*time.Millisecond, func() { calls.Add(1) }, clock)

	d.Trigger()
	clock.Advance(200 * time.Millisecond)
	d.Trigger()
	clock.Advance(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.True(t, d.Pending())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
	assert.Zero(t, clock.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var calls atomic.Int32
	d := debounce.New(time.Second, func() { calls.Add(1) }, clock)

	assert.False(t, d.Cancel())

	d.Trigger()
	assert.True(t, d.Cancel())
	clock.Advance(2 * time.Second)

	assert.Zero(t, calls.Load())
}

func TestDebouncer_Flush(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var calls atomic.Int32
	d := debounce.New(time.Second, func() { calls.Add(1) }, clock)

	assert.False(t, d.Flush())

	d.Trigger()
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())

	// the timer of the flushed window must not fire again
	clock.Advance(2 * time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_StopDisablesTrigger(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var calls atomic.Int32
	d := debounce.New(time.Second, func() { calls.Add(1) }, clock)

	d.Trigger()
	d.Stop()
	d.Trigger()
	clock.Advance(2 * time.Second)

	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending())
	assert.False(t, d.Flush())
}

func TestDebouncer_CallbackMayRetrigger(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var calls atomic.Int32
	var d *debounce.Debouncer
	d = debounce.New(100*time.Millisecond, func() {
		if calls.Add(1) == 1 {
			d.Trigger()
		}
	}, clock)

	d.Trigger()
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, d.Pending())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDebouncer_RealScheduler(t *testing.T) {
	done := make(chan struct{})
	d := debounce.New(10*time.Millisecond, func() { close(done) }, nil)
	assert.Equal(t, 10*time.Millisecond, d.Delay())

	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
}
