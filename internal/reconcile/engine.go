// Package reconcile синхронизирует локальный черновик FieldSet с каноническим
// FieldSet, которым владеет сервер.
//
// Движок не теряет неотправленные правки: локально изменённое поле остаётся
// "затронутым", пока сервер не вернёт то же значение, а обновления с сервера
// перезаписывают только незатронутые поля. Исходящие изменения проходят через
// debounce и отдаются в sink не чаще одного раза за окно тишины.
package reconcile

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/debounce"
	"github.com/iudanet/patientdesk/internal/models"
)

// DefaultDebounce окно тишины по умолчанию
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrClosed возвращается операциями закрытого движка
	ErrClosed = errors.New("reconcile engine is closed")
	// ErrInvalidDraft сообщается, если исходящий FieldSet не удаётся собрать
	ErrInvalidDraft = errors.New("cannot build outgoing field set")
	// ErrSinkPanic сообщается, если sink запаниковал при получении FieldSet
	ErrSinkPanic = errors.New("change sink panicked")
)

// Sink получает исходящий FieldSet: последнее серверное состояние с локальными правками.
// Sink не должен блокироваться, сохранение выполняет вызывающий код.
type Sink func(models.FieldSet)

// ErrorHandler получает ошибки, возникшие при срабатывании debounce
type ErrorHandler func(error)

// Option настраивает Engine
type Option func(*Engine)

// WithDebounce задает окно тишины
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithSink задает получателя исходящих FieldSet
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithErrorHandler задает получателя ошибок debounce
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) { e.onError = h }
}

// WithScheduler подменяет источник таймеров (в тестах ручные часы)
func WithScheduler(s debounce.Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithLogger задает логгер
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithName задает имя движка в логах, например "custom_fields"
func WithName(name string) Option {
	return func(e *Engine) { e.name = name }
}

// Snapshot согласованный срез состояния движка для отображения
type Snapshot struct {
	States          map[models.FieldID]models.SyncState
	Draft           models.FieldSet
	LastKnownRemote models.FieldSet
	PendingSend     bool
}

// Engine владеет черновиком одной группы редактируемых полей
type Engine struct {
	logger    zerolog.Logger
	scheduler debounce.Scheduler
	debouncer *debounce.Debouncer
	sink      Sink
	onError   ErrorHandler
	states    map[models.FieldID]models.SyncState // отсутствие ключа = Clean
	name      string

	draft           models.FieldSet
	lastKnownRemote models.FieldSet
	lastSent        models.FieldSet // последний payload, отданный в sink; сбрасывается правкой и принятым refresh

	delay  time.Duration
	mu     sync.Mutex
	closed bool
}

// New создает движок с начальными полями; они же становятся последним серверным состоянием
func New(initial models.FieldSet, opts ...Option) (*Engine, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid initial fields: %w", err)
	}

	e := &Engine{
		logger:          zerolog.Nop(),
		states:          make(map[models.FieldID]models.SyncState),
		draft:           initial.Clone(),
		lastKnownRemote: initial.Clone(),
		delay:           DefaultDebounce,
		name:            "fields",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("engine", e.name).Logger()
	e.debouncer = debounce.New(e.delay, e.fire, e.scheduler)

	return e, nil
}

// Edit меняет значение в черновике. Правка на текущее значение ничего не делает:
// поле не помечается грязным, окно debounce не перезапускается.
func (e *Engine) Edit(id models.FieldID, v models.Value) error {
	if id == "" {
		return fmt.Errorf("field id cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if cur, ok := e.draft.Get(id); ok && cur.Equal(v) {
		return nil
	}

	e.draft = e.draft.With(id, v)
	e.states[id] = models.Dirty
	// новая правка: прошлый payload мог не дойти до сервера, отправлять заново можно
	e.lastSent = nil
	e.debouncer.Trigger()

	e.logger.Debug().
		Str("field_id", string(id)).
		Str("value", v.String()).
		Msg("local edit")

	return nil
}

// Seed добавляет пустое незатронутое поле (только что созданное определение).
// Существующие поля не меняются.
func (e *Engine) Seed(id models.FieldID) error {
	if id == "" {
		return fmt.Errorf("field id cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.draft.Has(id) {
		return nil
	}
	e.draft = e.draft.With(id, models.StringValue(""))
	return nil
}

// Refresh вливает новый серверный FieldSet в черновик и сообщает, изменился ли
// видимый черновик. Набор, равный последнему известному серверному, игнорируется
// целиком. Запланированная отправка при этом не отменяется.
func (e *Engine) Refresh(remote models.FieldSet) (bool, error) {
	if err := remote.Validate(); err != nil {
		return false, fmt.Errorf("invalid remote fields: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, ErrClosed
	}

	if remote.Equal(e.lastKnownRemote) {
		e.logger.Debug().Msg("remote refresh unchanged, ignored")
		return false, nil
	}

	merged, confirmed := Merge(e.draft, e.lastKnownRemote, remote, e.touchedLocked)
	for _, id := range confirmed {
		delete(e.states, id)
	}

	changed := !merged.Equal(e.draft)
	e.draft = merged
	e.lastKnownRemote = remote.Clone()
	e.lastSent = nil

	e.logger.Debug().
		Int("remote_fields", len(remote)).
		Int("confirmed", len(confirmed)).
		Bool("draft_changed", changed).
		Msg("remote refresh merged")

	return changed, nil
}

// Draft возвращает локальные правки поверх последнего серверного состояния
func (e *Engine) Draft() models.FieldSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// LastKnownRemote возвращает последний принятый серверный FieldSet
func (e *Engine) LastKnownRemote() models.FieldSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastKnownRemote.Clone()
}

// State возвращает состояние синхронизации поля
func (e *Engine) State(id models.FieldID) models.SyncState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[id]
}

// Dirty сообщает, есть ли правки, ещё не подтверждённые сервером
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, st := range e.states {
		if st.Touched() {
			return true
		}
	}
	return false
}

// PendingSend сообщает, запланирована ли отправка
func (e *Engine) PendingSend() bool {
	return e.debouncer.Pending()
}

// Delta возвращает поля черновика, которые ушли бы на сервер сейчас
func (e *Engine) Delta() models.FieldSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Delta(e.draft, e.lastKnownRemote)
}

// Snapshot атомарно снимает черновик, серверное состояние и состояния полей
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make(map[models.FieldID]models.SyncState, len(e.states))
	for id, st := range e.states {
		states[id] = st
	}
	return Snapshot{
		States:          states,
		Draft:           e.draft.Clone(),
		LastKnownRemote: e.lastKnownRemote.Clone(),
		PendingSend:     e.debouncer.Pending(),
	}
}

// Flush немедленно выполняет запланированную отправку.
// Возвращает true, если отправка была запланирована.
func (e *Engine) Flush() bool {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()

	if closed {
		return false
	}
	return e.debouncer.Flush()
}

// Close закрывает движок. Запланированная отправка отменяется, а не доставляется.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.debouncer.Stop()
}

func (e *Engine) touchedLocked(id models.FieldID) bool {
	return e.states[id].Touched()
}

// fire вызывается по истечении окна debounce
func (e *Engine) fire() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	if err := e.draft.Validate(); err != nil {
		e.mu.Unlock()
		e.reportError(fmt.Errorf("%w: %w", ErrInvalidDraft, err))
		return
	}

	delta := Delta(e.draft, e.lastKnownRemote)
	e.settleLocked(delta)

	if len(delta) == 0 {
		e.mu.Unlock()
		e.logger.Debug().Msg("debounce elapsed, nothing to send")
		return
	}

	payload := Overlay(e.lastKnownRemote, delta)
	if e.lastSent != nil && payload.Equal(e.lastSent) {
		e.mu.Unlock()
		e.logger.Debug().Msg("payload already reported, send suppressed")
		return
	}

	for _, f := range delta {
		e.states[f.ID] = models.InFlight
	}
	e.lastSent = payload.Clone()
	sink := e.sink
	e.mu.Unlock()

	e.logger.Debug().
		Int("changed", len(delta)).
		Str("payload", payload.String()).
		Msg("sending changes")

	e.deliver(sink, payload)
}

// settleLocked помечает чистыми грязные поля, которым нечего отправлять:
// значение совпало с серверным либо новое поле осталось пустым
func (e *Engine) settleLocked(delta models.FieldSet) {
	for id, st := range e.states {
		if st != models.Dirty || delta.Has(id) {
			continue
		}
		dv, ok := e.draft.Get(id)
		if !ok {
			continue
		}
		rv, ok := e.lastKnownRemote.Get(id)
		if !ok {
			// пустое новое поле остаётся в черновике, но подтверждать в нём нечего
			if dv.IsBlank() {
				delete(e.states, id)
			}
			continue
		}
		if dv.Equal(rv) {
			delete(e.states, id)
		}
	}
}

func (e *Engine) deliver(sink Sink, payload models.FieldSet) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.reportError(fmt.Errorf("%w: %v", ErrSinkPanic, r))
		}
	}()
	sink(payload)
}

func (e *Engine) reportError(err error) {
	if e.onError != nil {
		e.onError(err)
		return
	}
	e.logger.Error().Err(err).Msg("reconcile error")
}
