package patients

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	httpClient "github.com/iudanet/patientdesk/internal/client/api"
	"github.com/iudanet/patientdesk/internal/client/cache"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/validation"
	"github.com/iudanet/patientdesk/pkg/api"
)

// Префиксы ключей кэша
const (
	ListKeyPrefix    = "patients"
	PatientKeyPrefix = "patient"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для работы с пациентами
type Service interface {
	// List возвращает страницу пациентов с учётом фильтров и сортировки
	List(ctx context.Context, q Query) (*Page, error)

	// Get возвращает пациента, используя кэш
	Get(ctx context.Context, id int64) (*api.Patient, error)

	// Refetch загружает пациента с сервера в обход кэша
	Refetch(ctx context.Context, id int64) (*api.Patient, error)

	// Create валидирует и создаёт пациента
	Create(ctx context.Context, p api.Patient, defs []models.FieldDefinition) (*api.Patient, error)

	// Update валидирует и сохраняет пациента целиком
	Update(ctx context.Context, p api.Patient, defs []models.FieldDefinition) (*api.Patient, error)

	// SaveCustomValue сохраняет одно значение пользовательского поля
	SaveCustomValue(ctx context.Context, v api.CustomFieldValue) (*api.CustomFieldValue, error)
}

// Page одна страница списка пациентов
type Page struct {
	Patients   []api.Patient
	Count      int // всего пациентов по фильтру
	TotalPages int
	Page       int
}

type service struct {
	apiClient httpClient.ClientAPI
	cache     *cache.QueryCache
	logger    zerolog.Logger
	pageSize  int
}

// Option настраивает сервис
type Option func(*service)

// WithPageSize переопределяет DefaultPageSize
func WithPageSize(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewService создает новый сервис пациентов
func NewService(apiClient httpClient.ClientAPI, qc *cache.QueryCache, logger zerolog.Logger, opts ...Option) Service {
	s := &service{
		apiClient: apiClient,
		cache:     qc,
		logger:    logger.With().Str("component", "patients").Logger(),
		pageSize:  DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, q Query) (*Page, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}

	resp, err := cache.Fetch(ctx, s.cache, listKey(params), func(ctx context.Context) (*api.PatientPage, error) {
		return s.apiClient.ListPatients(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	// сервер может вернуть одного пациента дважды при сортировке по адресам
	seen := make(map[int64]struct{}, len(resp.Results))
	unique := make([]api.Patient, 0, len(resp.Results))
	for _, p := range resp.Results {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}

	return &Page{
		Patients:   unique,
		Count:      resp.Count,
		TotalPages: totalPages(resp.Count, s.pageSize),
		Page:       params.Page,
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*api.Patient, error) {
	return s.get(ctx, id)
}

func (s *service) Refetch(ctx context.Context, id int64) (*api.Patient, error) {
	return s.get(ctx, id, cache.Force())
}

func (s *service) get(ctx context.Context, id int64, opts ...cache.FetchOption) (*api.Patient, error) {
	p, err := cache.Fetch(ctx, s.cache, patientKey(id), func(ctx context.Context) (*api.Patient, error) {
		return s.apiClient.GetPatient(ctx, id)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient %d: %w", id, err)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, p api.Patient, defs []models.FieldDefinition) (*api.Patient, error) {
	if err := validation.ValidatePatient(p, defs).Err(); err != nil {
		return nil, err
	}

	created, err := s.apiClient.CreatePatient(ctx, p.ToData())
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.logger.Info().Int64("patient_id", created.ID).Msg("Patient created")
	s.store(ctx, created)
	return created, nil
}

func (s *service) Update(ctx context.Context, p api.Patient, defs []models.FieldDefinition) (*api.Patient, error) {
	if err := validation.ValidatePatient(p, defs).Err(); err != nil {
		return nil, err
	}

	updated, err := s.apiClient.UpdatePatient(ctx, p.ID, p.ToData())
	if err != nil {
		return nil, fmt.Errorf("failed to update patient %d: %w", p.ID, err)
	}

	s.logger.Debug().Int64("patient_id", updated.ID).Msg("Patient updated")
	s.store(ctx, updated)
	return updated, nil
}

func (s *service) SaveCustomValue(ctx context.Context, v api.CustomFieldValue) (*api.CustomFieldValue, error) {
	saved, err := s.apiClient.SaveCustomFieldValue(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("failed to save value of field %d: %w", v.FieldDefinition, err)
	}

	if saved.Patient != nil {
		// сохранённое значение меняет пациента; кэш списка и карточки устарел
		s.invalidate(ctx, *saved.Patient)
	}
	return saved, nil
}

// store кэширует пациента из ответа на запись и сбрасывает страницы списка
func (s *service) store(ctx context.Context, p *api.Patient) {
	if err := cache.Set(ctx, s.cache, patientKey(p.ID), p); err != nil {
		s.logger.Warn().Err(err).Int64("patient_id", p.ID).Msg("Failed to cache patient")
	}
	if err := s.cache.Invalidate(ctx, ListKeyPrefix); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate patient list")
	}
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, patientKey(id)); err != nil {
		s.logger.Warn().Err(err).Int64("patient_id", id).Msg("Failed to invalidate patient")
	}
	if err := s.cache.Invalidate(ctx, ListKeyPrefix); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate patient list")
	}
}
