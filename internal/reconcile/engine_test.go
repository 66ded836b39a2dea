package reconcile

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/patientdesk/internal/debounce/debouncetest"
	"github.com/iudanet/patientdesk/internal/models"
)

type sinkRecorder struct {
	calls []models.FieldSet
	mu    sync.Mutex
}

func (r *sinkRecorder) sink(fs models.FieldSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fs.Clone())
}

func (r *sinkRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *sinkRecorder) last() models.FieldSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func newTestEngine(t *testing.T, initial models.FieldSet, opts ...Option) (*Engine, *debouncetest.Scheduler, *sinkRecorder) {
	t.Helper()

	clock := debouncetest.NewScheduler()
	rec := &sinkRecorder{}
	all := append([]Option{WithScheduler(clock), WithSink(rec.sink)}, opts...)

	e, err := New(initial, all...)
	require.NoError(t, err)
	t.Cleanup(e.Close)

	return e, clock, rec
}

func str(s string) models.Value { return models.StringValue(s) }

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New(set("1", "A", "1", "B"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDuplicateFieldID)
}

func TestEngine_EditIsVisibleImmediately(t *testing.T) {
	e, _, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))

	v, ok := e.Draft().Get("1")
	require.True(t, ok)
	assert.Equal(t, "B", v.String())
	assert.Equal(t, models.Dirty, e.State("1"))
	assert.True(t, e.PendingSend())
	assert.Zero(t, rec.count())
}

func TestEngine_UnrelatedRefreshKeepsLocalEdit(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A", "2", "B"))

	require.NoError(t, e.Edit("1", str("local")))

	changed, err := e.Refresh(set("1", "A", "2", "remote"))
	require.NoError(t, err)
	assert.True(t, changed)

	if diff := cmp.Diff([]string{"1=local", "2=remote"}, render(e.Draft())); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.Dirty, e.State("1"))
}

func TestEngine_DebounceCoalescesEdits(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A", "2", "B"))

	require.NoError(t, e.Edit("1", str("x")))
	clock.Advance(100 * time.Millisecond)
	require.NoError(t, e.Edit("2", str("y")))
	clock.Advance(100 * time.Millisecond)
	require.NoError(t, e.Edit("1", str("xx")))

	clock.Advance(299 * time.Millisecond)
	assert.Zero(t, rec.count(), "sink must wait for a full quiet window")

	clock.Advance(time.Millisecond)
	require.Equal(t, 1, rec.count())
	assert.True(t, rec.last().Equal(set("1", "xx", "2", "y")), "payload = %s", rec.last())

	assert.Equal(t, models.InFlight, e.State("1"))
	assert.Equal(t, models.InFlight, e.State("2"))
	assert.False(t, e.PendingSend())
}

func TestEngine_CustomDebounceWindow(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"), WithDebounce(50*time.Millisecond))

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(50 * time.Millisecond)

	assert.Equal(t, 1, rec.count())
}

func TestEngine_RefreshWithEqualRemoteIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A", "2", "B"))
	require.NoError(t, e.Edit("1", str("local")))
	before := e.Snapshot()

	// same values, different order and backing array
	changed, err := e.Refresh(set("2", "B", "1", "A"))
	require.NoError(t, err)
	assert.False(t, changed)

	after := e.Snapshot()
	if diff := cmp.Diff(render(before.Draft), render(after.Draft)); diff != "" {
		t.Errorf("draft changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, before.States, after.States)
	assert.True(t, after.PendingSend)
	// original order is preserved as well
	assert.Equal(t, []string{"1=A", "2=B"}, render(after.LastKnownRemote))
}

func TestEngine_IdenticalEditIsNoop(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("A")))

	assert.Equal(t, models.Clean, e.State("1"))
	assert.False(t, e.PendingSend())
	assert.False(t, e.Dirty())

	clock.Advance(time.Second)
	assert.Zero(t, rec.count())
}

func TestEngine_IdenticalEditDoesNotRestartWindow(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(200 * time.Millisecond)
	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, 1, rec.count())
}

func TestEngine_LocalEditWinsOverRemoteAddition(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	_, err := e.Refresh(set("1", "A", "2", "C"))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"1=B", "2=C"}, render(e.Draft())); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_BlankEditOnNewFieldIsNeverSent(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("3", str("")))
	clock.Advance(time.Second)
	assert.Zero(t, rec.count())

	// повторная пустая правка ничего не меняет
	require.NoError(t, e.Edit("3", str("")))
	assert.False(t, e.PendingSend())
	clock.Advance(time.Second)
	assert.Zero(t, rec.count())

	assert.True(t, e.Draft().Has("3"), "blank field stays in the draft")
}

func TestEngine_ClearingExistingFieldIsSent(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("")))
	clock.Advance(DefaultDebounce)

	require.Equal(t, 1, rec.count())
	assert.True(t, rec.last().Equal(set("1", "")))
}

func TestEngine_EchoConfirmationClearsTouchedState(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(DefaultDebounce)
	require.Equal(t, 1, rec.count())
	require.Equal(t, models.InFlight, e.State("1"))

	// stale remote state arrives before the save lands
	_, err := e.Refresh(set("1", "A", "2", "C"))
	require.NoError(t, err)
	v, _ := e.Draft().Get("1")
	assert.Equal(t, "B", v.String(), "in-flight edit must survive a stale refresh")
	assert.Equal(t, models.InFlight, e.State("1"))

	// echo
	_, err = e.Refresh(set("1", "B", "2", "C"))
	require.NoError(t, err)
	assert.Equal(t, models.Clean, e.State("1"))
	assert.False(t, e.Dirty())

	// the field follows the remote side again
	_, err = e.Refresh(set("1", "D", "2", "C"))
	require.NoError(t, err)
	v, _ = e.Draft().Get("1")
	assert.Equal(t, "D", v.String())
}

func TestEngine_EchoConfirmsDirtyField(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	_, err := e.Refresh(set("1", "B"))
	require.NoError(t, err)

	assert.Equal(t, models.Clean, e.State("1"))
}

func TestEngine_EditBackToRemoteValueSendsNothing(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	require.NoError(t, e.Edit("1", str("A")))
	clock.Advance(DefaultDebounce)

	assert.Zero(t, rec.count())
	assert.Equal(t, models.Clean, e.State("1"))
}

func TestEngine_SamePayloadIsResentAfterNewEdit(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(DefaultDebounce)
	require.Equal(t, 1, rec.count())

	// сохранение не дошло: сервер вернул прежнее состояние, refresh проигнорирован
	changed, err := e.Refresh(set("1", "A"))
	require.NoError(t, err)
	require.False(t, changed)

	require.NoError(t, e.Edit("1", str("C")))
	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(DefaultDebounce)

	require.Equal(t, 2, rec.count(), "value re-entered after a lost save must be sent again")
	assert.True(t, rec.last().Equal(set("1", "B")))
	assert.Equal(t, models.InFlight, e.State("1"))
}

func TestEngine_FlushWithoutEditSendsNothing(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(DefaultDebounce)
	require.Equal(t, 1, rec.count())

	assert.False(t, e.Flush())
	clock.Advance(time.Second)
	assert.Equal(t, 1, rec.count())
}

func TestEngine_ClearedNewFieldSettlesClean(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("3", str("typ")))
	require.NoError(t, e.Edit("3", str("  ")))
	clock.Advance(DefaultDebounce)

	assert.Zero(t, rec.count())
	assert.Equal(t, models.Clean, e.State("3"))
	assert.False(t, e.Dirty())
	assert.True(t, e.Draft().Has("3"), "blank field stays in the draft")
}

func TestEngine_RefreshDoesNotCancelPendingSend(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A", "2", "B"))

	require.NoError(t, e.Edit("1", str("local")))
	_, err := e.Refresh(set("1", "A", "2", "remote"))
	require.NoError(t, err)
	assert.True(t, e.PendingSend())

	clock.Advance(DefaultDebounce)
	require.Equal(t, 1, rec.count())
	// payload is built on the latest remote state
	assert.True(t, rec.last().Equal(set("1", "local", "2", "remote")), "payload = %s", rec.last())
}

func TestEngine_RemovedRemoteFieldsAreDropped(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A", "2", "B", "3", "C"))

	require.NoError(t, e.Edit("3", str("edited")))
	_, err := e.Refresh(set("1", "A"))
	require.NoError(t, err)

	assert.Equal(t, []string{"1=A", "3=edited"}, render(e.Draft()))
}

func TestEngine_RefreshRejectsDuplicateIDs(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A"))

	_, err := e.Refresh(set("1", "B", "1", "C"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDuplicateFieldID)

	v, _ := e.Draft().Get("1")
	assert.Equal(t, "A", v.String())
}

func TestEngine_Seed(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Seed("7"))
	require.NoError(t, e.Seed("1"))

	assert.Equal(t, []string{"1=A", "7="}, render(e.Draft()))
	assert.Equal(t, models.Clean, e.State("7"))
	assert.False(t, e.PendingSend())

	clock.Advance(time.Second)
	assert.Zero(t, rec.count())
}

func TestEngine_Flush(t *testing.T) {
	e, _, rec := newTestEngine(t, set("1", "A"))

	assert.False(t, e.Flush(), "nothing pending")

	require.NoError(t, e.Edit("1", str("B")))
	assert.True(t, e.Flush())
	assert.Equal(t, 1, rec.count())
	assert.False(t, e.PendingSend())
}

func TestEngine_CloseCancelsPendingSend(t *testing.T) {
	e, clock, rec := newTestEngine(t, set("1", "A"))

	require.NoError(t, e.Edit("1", str("B")))
	e.Close()
	clock.Advance(time.Second)

	assert.Zero(t, rec.count())
	assert.ErrorIs(t, e.Edit("1", str("C")), ErrClosed)
	_, err := e.Refresh(set("1", "Z"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, e.Seed("2"), ErrClosed)
	assert.False(t, e.Flush())
}

func TestEngine_EmptyIDRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, set("1", "A"))

	assert.Error(t, e.Edit("", str("x")))
	assert.Error(t, e.Seed(""))
}

func TestEngine_SinkPanicIsReported(t *testing.T) {
	var (
		mu   sync.Mutex
		errs []error
	)
	clock := debouncetest.NewScheduler()
	e, err := New(set("1", "A"),
		WithScheduler(clock),
		WithSink(func(models.FieldSet) { panic("boom") }),
		WithErrorHandler(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
		}),
	)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Edit("1", str("B")))
	require.NotPanics(t, func() { clock.Advance(DefaultDebounce) })

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrSinkPanic)
	assert.Contains(t, errs[0].Error(), "boom")
}

func TestEngine_SinkMayCallBackIntoEngine(t *testing.T) {
	clock := debouncetest.NewScheduler()
	var e *Engine
	e, err := New(set("1", "A"),
		WithScheduler(clock),
		WithSink(func(fs models.FieldSet) {
			// synchronous echo
			_, _ = e.Refresh(fs)
		}),
	)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Edit("1", str("B")))
	clock.Advance(DefaultDebounce)

	assert.Equal(t, models.Clean, e.State("1"))
	assert.True(t, e.LastKnownRemote().Equal(set("1", "B")))
}

func TestEngine_RealSchedulerDelivers(t *testing.T) {
	rec := &sinkRecorder{}
	e, err := New(set("1", "A"), WithDebounce(10*time.Millisecond), WithSink(rec.sink))
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Edit("1", str("B")))

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, rec.last().Equal(set("1", "B")))
}

func TestEngine_ConcurrentEditsAndRefreshes(t *testing.T) {
	rec := &sinkRecorder{}
	e, err := New(set("1", "A", "2", "B"), WithDebounce(5*time.Millisecond), WithSink(rec.sink))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.Edit("1", str(string(rune('a'+(i+j)%26))))
				_, _ = e.Refresh(set("1", "A", "2", string(rune('A'+j%26))))
				_ = e.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	e.Close()
	assert.False(t, e.PendingSend())
}
