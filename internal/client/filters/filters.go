package filters

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/debounce"
)

// DefaultDelay: задержка применения текстовых фильтров
const DefaultDelay = 600 * time.Millisecond

// State набор фильтров списка. Пустая строка означает отсутствие фильтра.
type State struct {
	Status string
	City   string
	State  string
	Search string
}

// IsZero сообщает, что ни один фильтр не задан
func (s State) IsZero() bool {
	return s == State{}
}

// Filters хранит введённое пользователем (Pending) отдельно от применённого (Applied).
// Статус применяется сразу, город, штат и поиск после паузы ввода.
type Filters struct {
	debouncer *debounce.Debouncer
	onChange  func(State)
	logger    zerolog.Logger
	pending   State
	applied   State
	mu        sync.Mutex
}

// Option настраивает Filters
type Option func(*options)

type options struct {
	scheduler debounce.Scheduler
	onChange  func(State)
	logger    zerolog.Logger
	delay     time.Duration
}

// WithDelay переопределяет DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithScheduler задает планировщик таймера debounce
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithOnChange задает колбэк, вызываемый с новым применённым состоянием при каждом изменении.
// Колбэк не должен блокироваться, он может выполняться в горутине таймера.
func WithOnChange(fn func(State)) Option {
	return func(o *options) { o.onChange = fn }
}

// WithLogger задает логгер
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New создает пустые фильтры
func New(opts ...Option) *Filters {
	o := options{
		delay:  DefaultDelay,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Filters{
		onChange: o.onChange,
		logger:   o.logger,
	}
	f.debouncer = debounce.New(o.delay, f.applyText, o.scheduler)
	return f
}

// SetStatus сразу применяет фильтр статуса
func (f *Filters) SetStatus(v string) {
	f.mu.Lock()
	f.pending.Status = v
	changed := f.applied.Status != v
	f.applied.Status = v
	applied := f.applied
	f.mu.Unlock()

	if changed {
		f.notify(applied)
	}
}

// SetCity обновляет введённый фильтр города
func (f *Filters) SetCity(v string) {
	f.setText(func(s *State) { s.City = v })
}

// SetState обновляет введённый фильтр штата
func (f *Filters) SetState(v string) {
	f.setText(func(s *State) { s.State = v })
}

// SetSearch обновляет введённый текст поиска
func (f *Filters) SetSearch(v string) {
	f.setText(func(s *State) { s.Search = v })
}

func (f *Filters) setText(set func(*State)) {
	f.mu.Lock()
	set(&f.pending)
	f.mu.Unlock()

	f.debouncer.Trigger()
}

// applyText копирует введённые текстовые фильтры в применённые
func (f *Filters) applyText() {
	f.mu.Lock()
	next := f.applied
	next.City = f.pending.City
	next.State = f.pending.State
	next.Search = f.pending.Search
	changed := next != f.applied
	f.applied = next
	f.mu.Unlock()

	if changed {
		f.notify(next)
	}
}

// ClearAll сразу сбрасывает все фильтры и отменяет отложенное обновление
func (f *Filters) ClearAll() {
	f.debouncer.Cancel()

	f.mu.Lock()
	changed := !f.applied.IsZero()
	f.pending = State{}
	f.applied = State{}
	f.mu.Unlock()

	if changed {
		f.notify(State{})
	}
}

// Pending возвращает фильтры в том виде, как они введены
func (f *Filters) Pending() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Applied возвращает фильтры, которые использует список
func (f *Filters) Applied() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}

// Settled сообщает, догнали ли применённые фильтры введённые
func (f *Filters) Settled() bool {
	return !f.debouncer.Pending()
}

// Flush сразу применяет текстовые фильтры и сообщает, было ли обновление отложено
func (f *Filters) Flush() bool {
	return f.debouncer.Flush()
}

// Close останавливает таймер debounce, отложенное обновление отбрасывается
func (f *Filters) Close() {
	f.debouncer.Stop()
}

func (f *Filters) notify(s State) {
	f.logger.Debug().
		Str("status", s.Status).
		Str("city", s.City).
		Str("state", s.State).
		Str("search", s.Search).
		Msg("Filters applied")

	if f.onChange != nil {
		f.onChange(s)
	}
}
