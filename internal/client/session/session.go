// Package session связывает движки согласования формы пациента с REST API.
//
// Session держит по движку на каждую группу формы: пользовательские поля, общие
// данные, адреса и оценки ISI. Приёмники движков только ставят задачи в очередь; одна рабочая горутина
// по порядку сохраняет, перечитывает пациента и отдаёт ответ движкам.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/patientdesk/internal/client/fields"
	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/debounce"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/reconcile"
	"github.com/iudanet/patientdesk/pkg/api"
)

var (
	// ErrUnknownField возвращается при правке поля, которого нет в форме
	ErrUnknownField = errors.New("unknown field")
	// ErrClosed возвращается операциями закрытой сессии
	ErrClosed = errors.New("edit session is closed")
)

// Deps сервисы, с которыми работает сессия
type Deps struct {
	Patients patients.Service
	Fields   fields.Service
	Logger   zerolog.Logger
}

type options struct {
	scheduler debounce.Scheduler
	onError   func(error)
	onUpdate  func(api.Patient)
	debounce  time.Duration
}

// Option настраивает сессию
type Option func(*options)

// WithDebounce задает окно тишины всех движков
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithScheduler задает источник таймеров всех движков
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithErrorHandler задает получателя ошибок сохранения и движков.
// Вызывается из рабочей горутины и не должен вызывать Wait или Close.
func WithErrorHandler(h func(error)) Option {
	return func(o *options) { o.onError = h }
}

// WithOnUpdate задает колбэк, вызываемый после применения серверного пациента
func WithOnUpdate(fn func(api.Patient)) Option {
	return func(o *options) { o.onUpdate = fn }
}

// jobKind: тип задачи воркера. Порядок констант задаёт порядок обработки.
type jobKind uint8

const (
	jobCustom jobKind = iota
	jobGeneral
	jobAddresses
	jobISI
	jobRefresh
)

// editKinds: виды задач, у которых есть свой движок
var editKinds = []jobKind{jobCustom, jobGeneral, jobAddresses, jobISI}

var jobOrder = []jobKind{jobCustom, jobGeneral, jobAddresses, jobISI, jobRefresh}

func (k jobKind) String() string {
	switch k {
	case jobCustom:
		return "custom_fields"
	case jobGeneral:
		return "general"
	case jobAddresses:
		return models.GroupAddresses
	case jobISI:
		return models.GroupISIScores
	default:
		return "refresh"
	}
}

// Session представляет сессию редактирования одного пациента
type Session struct {
	ctx       context.Context // контекст фоновых запросов воркера
	patients  patients.Service
	fields    fields.Service
	custom    *reconcile.Engine
	general   *reconcile.Engine
	addresses *reconcile.Engine
	isi       *reconcile.Engine
	onError   func(error)
	onUpdate  func(api.Patient)
	notify    chan struct{}
	stop      chan struct{}
	done      chan struct{}
	cancel    context.CancelFunc

	// очередь задач: по одной последней задаче на вид
	pending map[jobKind]models.FieldSet
	idle    chan struct{} // nil, когда воркер простаивает; закрывается при переходе в простой

	logger    zerolog.Logger
	id        string
	defs      []models.FieldDefinition
	patient   api.Patient
	closeOnce sync.Once
	mu        sync.Mutex // patient, defs
	qmu       sync.Mutex // pending, idle
	closed    bool
}

// Open параллельно загружает пациента и определения полей и открывает сессию
func Open(ctx context.Context, deps Deps, patientID int64, opts ...Option) (*Session, error) {
	var (
		patient *api.Patient
		defs    []models.FieldDefinition
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := deps.Patients.Get(gctx, patientID)
		if err != nil {
			return err
		}
		patient = p
		return nil
	})
	g.Go(func() error {
		d, err := deps.Fields.Definitions(gctx)
		if err != nil {
			return err
		}
		defs = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(deps, *patient, defs, opts...)
}

// New создает сессию для уже загруженного пациента
func New(deps Deps, patient api.Patient, defs []models.FieldDefinition, opts ...Option) (*Session, error) {
	o := options{debounce: reconcile.DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ctx:      ctx,
		cancel:   cancel,
		patients: deps.Patients,
		fields:   deps.Fields,
		onError:  o.onError,
		onUpdate: o.onUpdate,
		notify:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		pending:  make(map[jobKind]models.FieldSet),
		logger: deps.Logger.With().
			Str("session_id", id).
			Int64("patient_id", patient.ID).
			Logger(),
		id:      id,
		defs:    slices.Clone(defs),
		patient: patient,
	}

	engineOpts := func(kind jobKind) []reconcile.Option {
		return []reconcile.Option{
			reconcile.WithDebounce(o.debounce),
			reconcile.WithScheduler(o.scheduler),
			reconcile.WithLogger(s.logger),
			reconcile.WithName(kind.String()),
			reconcile.WithErrorHandler(s.reportError),
			reconcile.WithSink(func(payload models.FieldSet) { s.enqueue(kind, payload) }),
		}
	}

	remote := remoteFieldSets(patient)
	engines := make([]*reconcile.Engine, 0, len(editKinds))
	for _, kind := range editKinds {
		e, err := reconcile.New(remote[kind], engineOpts(kind)...)
		if err != nil {
			for _, created := range engines {
				created.Close()
			}
			cancel()
			return nil, fmt.Errorf("failed to create %s engine: %w", kind, err)
		}
		engines = append(engines, e)
	}
	s.custom, s.general, s.addresses, s.isi = engines[0], engines[1], engines[2], engines[3]

	go s.run()

	s.logger.Debug().Int("definitions", len(defs)).Msg("Edit session opened")

	return s, nil
}

// ID возвращает id сессии для логов
func (s *Session) ID() string {
	return s.id
}

// Patient возвращает последнего полученного с сервера пациента
func (s *Session) Patient() api.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patient
}

// Definitions возвращает известные сессии определения полей
func (s *Session) Definitions() []models.FieldDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.defs)
}

// EditCustom задает значение пользовательского поля в черновике
func (s *Session) EditCustom(id models.FieldID, value string) error {
	if !s.hasDefinition(id) {
		return fmt.Errorf("%w: custom field %q", ErrUnknownField, id)
	}
	return s.edit(s.custom, id, value)
}

// EditGeneral задает значение общего поля в черновике
func (s *Session) EditGeneral(id models.FieldID, value string) error {
	if !slices.Contains(models.GeneralFieldIDs, id) {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	return s.edit(s.general, id, value)
}

// EditAddress задает поле адреса с номером index. index, равный числу адресов,
// добавляет новый адрес.
func (s *Session) EditAddress(index int, id models.FieldID, value string) error {
	if !slices.Contains(models.AddressFieldIDs, id) {
		return fmt.Errorf("%w: address %q", ErrUnknownField, id)
	}
	return s.editItem(s.addresses, models.GroupAddresses, index, id, models.StringValue(value))
}

// EditISI задает поле оценки ISI с номером index. index, равный числу оценок,
// добавляет новую оценку.
func (s *Session) EditISI(index int, id models.FieldID, value string) error {
	if !slices.Contains(models.ISIFieldIDs, id) {
		return fmt.Errorf("%w: ISI score %q", ErrUnknownField, id)
	}
	v := models.StringValue(value)
	if id == models.FieldScore {
		v = models.ScoreValue(value)
	}
	return s.editItem(s.isi, models.GroupISIScores, index, id, v)
}

func (s *Session) editItem(e *reconcile.Engine, group string, index int, id models.FieldID, v models.Value) error {
	if n := models.ItemCount(group, e.Draft()); index < 0 || index > n {
		return fmt.Errorf("%w: %s[%d] (have %d)", ErrUnknownField, group, index, n)
	}
	return s.editValue(e, models.ItemFieldID(group, index, id), v)
}

func (s *Session) edit(e *reconcile.Engine, id models.FieldID, value string) error {
	return s.editValue(e, id, models.StringValue(value))
}

func (s *Session) editValue(e *reconcile.Engine, id models.FieldID, v models.Value) error {
	err := e.Edit(id, v)
	if errors.Is(err, reconcile.ErrClosed) {
		return ErrClosed
	}
	return err
}

func (s *Session) hasDefinition(id models.FieldID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.defs, func(d models.FieldDefinition) bool { return d.ID == id })
}

// CreateField создает определение поля и добавляет в форму пустое значение для него
func (s *Session) CreateField(ctx context.Context, name string) (models.FieldDefinition, error) {
	def, err := s.fields.Create(ctx, name, s.custom)
	if def.ID != "" {
		s.mu.Lock()
		if !slices.ContainsFunc(s.defs, func(d models.FieldDefinition) bool { return d.ID == def.ID }) {
			s.defs = append(s.defs, def)
		}
		s.mu.Unlock()
	}
	if errors.Is(err, reconcile.ErrClosed) {
		return def, ErrClosed
	}
	return def, err
}

// CustomDraft возвращает значения пользовательских полей, как они сейчас показаны
func (s *Session) CustomDraft() models.FieldSet {
	return s.custom.Draft()
}

// GeneralDraft возвращает общие данные, как они сейчас показаны
func (s *Session) GeneralDraft() models.FieldSet {
	return s.general.Draft()
}

// AddressesDraft возвращает адреса, как они сейчас показаны
func (s *Session) AddressesDraft() models.FieldSet {
	return s.addresses.Draft()
}

// ISIDraft возвращает оценки ISI, как они сейчас показаны
func (s *Session) ISIDraft() models.FieldSet {
	return s.isi.Draft()
}

// Snapshot срез всех движков сессии
type Snapshot struct {
	Custom    reconcile.Snapshot
	General   reconcile.Snapshot
	Addresses reconcile.Snapshot
	ISI       reconcile.Snapshot
}

// Snapshot возвращает состояние всех движков
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Custom:    s.custom.Snapshot(),
		General:   s.general.Snapshot(),
		Addresses: s.addresses.Snapshot(),
		ISI:       s.isi.Snapshot(),
	}
}

// Dirty сообщает, есть ли правки, ещё не подтвержденные сервером
func (s *Session) Dirty() bool {
	return slices.ContainsFunc(s.engines(), (*reconcile.Engine).Dirty)
}

func (s *Session) engines() []*reconcile.Engine {
	return []*reconcile.Engine{s.custom, s.general, s.addresses, s.isi}
}

// Refresh планирует перечитывание пациента с сервера
func (s *Session) Refresh() {
	s.enqueue(jobRefresh, nil)
}

// Wait сразу отправляет отложенные правки и ждёт, пока у рабочей горутины не останется задач
func (s *Session) Wait(ctx context.Context) error {
	for _, e := range s.engines() {
		e.Flush()
	}

	s.qmu.Lock()
	idle := s.idle
	s.qmu.Unlock()

	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close отправляет отложенные правки, дожидается сохранений и освобождает движки.
// Если ctx истёк раньше, запросы отменяются и возвращается ctx.Err().
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		for _, e := range s.engines() {
			e.Flush()
		}
		for _, e := range s.engines() {
			e.Close()
		}

		s.qmu.Lock()
		s.closed = true
		s.qmu.Unlock()

		close(s.stop)
	})

	var err error
	select {
	case <-s.done:
	case <-ctx.Done():
		err = ctx.Err()
		s.cancel()
		<-s.done
	}
	s.cancel()

	s.logger.Debug().Msg("Edit session closed")
	return err
}

// enqueue заменяет ожидающую задачу того же вида
func (s *Session) enqueue(kind jobKind, payload models.FieldSet) {
	s.qmu.Lock()
	if s.closed && kind == jobRefresh {
		s.qmu.Unlock()
		return
	}
	s.pending[kind] = payload
	if s.idle == nil {
		s.idle = make(chan struct{})
	}
	s.qmu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// next берёт следующую задачу; если задач нет, горутина помечается свободной
func (s *Session) next() (jobKind, models.FieldSet, bool) {
	s.qmu.Lock()
	defer s.qmu.Unlock()

	for _, kind := range jobOrder {
		if payload, ok := s.pending[kind]; ok {
			delete(s.pending, kind)
			return kind, payload, true
		}
	}

	if s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
	return 0, nil, false
}

func (s *Session) run() {
	defer close(s.done)

	for {
		select {
		case <-s.notify:
			s.drain()
		case <-s.stop:
			s.drain()
			return
		}
	}
}

func (s *Session) drain() {
	for {
		kind, payload, ok := s.next()
		if !ok {
			return
		}

		var err error
		switch kind {
		case jobCustom:
			err = s.saveCustom(payload)
		case jobGeneral:
			err = s.savePatient(kind, payload, models.ApplyGeneral)
		case jobAddresses:
			err = s.savePatient(kind, payload, func(p api.Patient, fs models.FieldSet) api.Patient {
				p.Addresses = models.ApplyAddresses(p.Addresses, fs)
				return p
			})
		case jobISI:
			err = s.savePatient(kind, payload, func(p api.Patient, fs models.FieldSet) api.Patient {
				p.ISIScores = models.ApplyISIScores(p.ISIScores, fs)
				return p
			})
		case jobRefresh:
			err = s.reload()
		}
		if err != nil {
			s.reportError(err)
		}
	}
}

// saveCustom сохраняет значения payload, отличные от серверных, и перечитывает
// пациента, чтобы движки увидели ответ. Значения, сохранённые до ошибки,
// сохраняют серверные id: повторная отправка обновит их, а не создаст заново.
func (s *Session) saveCustom(payload models.FieldSet) error {
	patient := s.Patient()
	existing := patient.CustomFieldValues
	updated := models.ApplyCustomValues(existing, payload, patient.ID)

	saved := 0
	var saveErr error
	for i, v := range updated {
		switch {
		case i < len(existing) && existing[i].Value == v.Value:
			continue
		case i >= len(existing) && v.Value == "":
			// пустое значение нового поля не отправляем
			continue
		}

		stored, err := s.patients.SaveCustomValue(s.ctx, v)
		if err != nil {
			saveErr = err
			break
		}
		if stored != nil {
			s.remember(*stored)
		}
		saved++
	}

	s.logger.Debug().Int("saved", saved).Err(saveErr).Msg("Custom field values saved")

	if saved == 0 {
		return saveErr
	}
	if err := s.reload(); err != nil {
		if saveErr != nil {
			s.logger.Warn().Err(err).Msg("Failed to reload patient after partial save")
			return saveErr
		}
		return err
	}
	return saveErr
}

// remember кладёт значение из ответа сервера в локальную копию пациента
func (s *Session) remember(v api.CustomFieldValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := slices.Clone(s.patient.CustomFieldValues)
	i := slices.IndexFunc(values, func(cur api.CustomFieldValue) bool {
		return cur.FieldDefinition == v.FieldDefinition
	})
	if i < 0 {
		values = append(values, v)
	} else {
		values[i] = v
	}
	s.patient.CustomFieldValues = values
}

// savePatient сохраняет пациента целиком: группа kind берётся из payload,
// остальное из последней серверной копии.
func (s *Session) savePatient(kind jobKind, payload models.FieldSet, apply func(api.Patient, models.FieldSet) api.Patient) error {
	s.mu.Lock()
	patient := s.patient
	defs := s.defs
	s.mu.Unlock()

	updated, err := s.patients.Update(s.ctx, apply(patient, payload), defs)
	if err != nil {
		return err
	}

	s.logger.Debug().Stringer("group", kind).Msg("Patient saved")
	s.apply(*updated)
	return nil
}

func (s *Session) reload() error {
	s.mu.Lock()
	id := s.patient.ID
	s.mu.Unlock()

	p, err := s.patients.Refetch(s.ctx, id)
	if err != nil {
		return err
	}
	s.apply(*p)
	return nil
}

// remoteFieldSets раскладывает пациента по группам формы
func remoteFieldSets(p api.Patient) map[jobKind]models.FieldSet {
	return map[jobKind]models.FieldSet{
		jobCustom:    models.CustomValuesFieldSet(p.CustomFieldValues),
		jobGeneral:   models.GeneralFieldSet(p),
		jobAddresses: models.AddressesFieldSet(p.Addresses),
		jobISI:       models.ISIScoresFieldSet(p.ISIScores),
	}
}

// apply делает p последним известным серверным состоянием всех движков
func (s *Session) apply(p api.Patient) {
	s.mu.Lock()
	s.patient = p
	s.mu.Unlock()

	remote := remoteFieldSets(p)
	for i, e := range s.engines() {
		if _, err := e.Refresh(remote[editKinds[i]]); err != nil && !errors.Is(err, reconcile.ErrClosed) {
			s.reportError(err)
		}
	}

	if s.onUpdate != nil {
		s.onUpdate(p)
	}
}

func (s *Session) reportError(err error) {
	s.logger.Warn().Err(err).Str("kind", models.Classify(err).String()).Msg("Edit session error")
	if s.onError != nil {
		s.onError(err)
	}
}
