// Package debounce реализует отложенный вызов с перезапуском и отменой.
package debounce

import (
	"sync"
	"time"
)

// Timer запланированный вызов, который можно отменить
type Timer interface {
	Stop() bool
}

// Scheduler создает отложенные вызовы. В тестах подменяется ручными часами.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler планирует вызовы на таймерах рантайма
var RealScheduler Scheduler = realScheduler{}

// Debouncer вызывает fn, когда с последнего Trigger прошла задержка
type Debouncer struct {
	scheduler Scheduler
	timer     Timer
	fn        func()
	delay     time.Duration
	gen       uint64 // поколение таймера; срабатывание устаревшего таймера игнорируется
	mu        sync.Mutex
	pending   bool
	stopped   bool
}

// New создает Debouncer. nil scheduler означает RealScheduler.
func New(delay time.Duration, fn func(), scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = RealScheduler
	}
	return &Debouncer{
		scheduler: scheduler,
		fn:        fn,
		delay:     delay,
	}
}

// Delay возвращает окно тишины
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger (пере)запускает окно. После Stop ничего не делает.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.scheduler.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Cancel отменяет запланированный вызов и сообщает, был ли он
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

func (d *Debouncer) cancelLocked() bool {
	wasPending := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	return wasPending
}

// Flush выполняет запланированный вызов сейчас, в горутине вызывающего.
// Возвращает true, если вызов был запланирован.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.cancelLocked() {
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	d.fn()
	return true
}

// Pending сообщает, запланирован ли вызов
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop отменяет вызов и отключает дальнейшие Trigger
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}
