// Package debouncetest предоставляет ручные часы для кода на debounce.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/iudanet/patientdesk/internal/debounce"
)

// Scheduler реализует debounce.Scheduler, время которого движется только в Advance
type Scheduler struct {
	timers []*timer
	now    time.Duration
	mu     sync.Mutex
}

var _ debounce.Scheduler = (*Scheduler)(nil)

type timer struct {
	s       *Scheduler
	fn      func()
	at      time.Duration
	stopped bool
	fired   bool
}

// NewScheduler создает ручной планировщик с нулевым временем
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc планирует f на момент now+d
func (s *Scheduler) AfterFunc(d time.Duration, f func()) debounce.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &timer{s: s, fn: f, at: s.now + d}
	s.timers = append(s.timers, t)
	return t
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance двигает часы вперёд и по порядку вызывает все наступившие вызовы
// в горутине вызывающего.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()

	for {
		due := s.takeDue()
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			t.fn()
		}
	}
}

func (s *Scheduler) takeDue() []*timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*timer
	rest := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped || t.fired:
		case t.at <= s.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	return due
}

// Pending возвращает число таймеров, которые не остановлены и не сработали
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
