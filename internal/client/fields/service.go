package fields

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	httpClient "github.com/iudanet/patientdesk/internal/client/api"
	"github.com/iudanet/patientdesk/internal/client/cache"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/validation"
)

// CacheKey ключ кэша коллекции определений полей
const CacheKey = "customFields"

// DefaultRetries: число повторов загрузки определений при сетевой ошибке
const DefaultRetries = 2

//go:generate moq -out service_mock.go . Service Seeder

// Service определяет интерфейс для работы с определениями пользовательских полей
type Service interface {
	// Definitions возвращает определения полей, используя кэш
	Definitions(ctx context.Context) ([]models.FieldDefinition, error)

	// Refresh загружает определения с сервера в обход кэша
	Refresh(ctx context.Context) ([]models.FieldDefinition, error)

	// Create валидирует имя, создаёт определение и инициализирует поле в seeder
	Create(ctx context.Context, name string, seeder Seeder) (models.FieldDefinition, error)
}

// Seeder получает id только что созданного поля, чтобы для него появилось пустое
// значение в черновике без отправки на сервер.
type Seeder interface {
	Seed(id models.FieldID) error
}

type service struct {
	apiClient httpClient.ClientAPI
	cache     *cache.QueryCache
	logger    zerolog.Logger
	retries   int
}

// Option настраивает сервис
type Option func(*service)

// WithRetries переопределяет DefaultRetries
func WithRetries(n int) Option {
	return func(s *service) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// NewService создает новый сервис определений полей
func NewService(apiClient httpClient.ClientAPI, qc *cache.QueryCache, logger zerolog.Logger, opts ...Option) Service {
	s := &service{
		apiClient: apiClient,
		cache:     qc,
		logger:    logger.With().Str("component", "fields").Logger(),
		retries:   DefaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Definitions(ctx context.Context) ([]models.FieldDefinition, error) {
	return s.fetch(ctx)
}

func (s *service) Refresh(ctx context.Context) ([]models.FieldDefinition, error) {
	return s.fetch(ctx, cache.Force())
}

func (s *service) fetch(ctx context.Context, opts ...cache.FetchOption) ([]models.FieldDefinition, error) {
	opts = append([]cache.FetchOption{cache.Retries(s.retries)}, opts...)

	defs, err := cache.Fetch(ctx, s.cache, CacheKey, s.load, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load field definitions: %w", err)
	}
	return defs, nil
}

func (s *service) load(ctx context.Context) ([]models.FieldDefinition, error) {
	list, err := s.apiClient.ListCustomFields(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]models.FieldDefinition, 0, len(list))
	for _, cf := range list {
		defs = append(defs, models.DefinitionFromAPI(cf))
	}
	return defs, nil
}

// known возвращает определения, которые видит пользователь: из кэша, если он
// есть, иначе свежую загрузку.
func (s *service) known(ctx context.Context) ([]models.FieldDefinition, error) {
	defs, ok, err := cache.Peek[[]models.FieldDefinition](ctx, s.cache, CacheKey)
	if err != nil {
		return nil, err
	}
	if ok {
		return defs, nil
	}
	return s.fetch(ctx)
}

func (s *service) Create(ctx context.Context, name string, seeder Seeder) (models.FieldDefinition, error) {
	name = strings.TrimSpace(name)

	// пустое и слишком длинное имя отсекаем ещё до загрузки списка
	if err := validation.ValidateFieldName(name, nil); err != nil {
		return models.FieldDefinition{}, err
	}

	existing, err := s.known(ctx)
	if err != nil {
		return models.FieldDefinition{}, err
	}
	if err := validation.ValidateFieldName(name, existing); err != nil {
		return models.FieldDefinition{}, err
	}

	created, err := s.apiClient.CreateCustomField(ctx, name)
	if err != nil {
		return models.FieldDefinition{}, fmt.Errorf("failed to create field %q: %w", name, err)
	}

	def := models.DefinitionFromAPI(*created)
	s.logger.Info().Str("field_id", string(def.ID)).Str("name", def.Name).Msg("Custom field created")

	updated := make([]models.FieldDefinition, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, def)
	if err := cache.Set(ctx, s.cache, CacheKey, updated); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to update cached field definitions")
	}

	if seeder != nil {
		if err := seeder.Seed(def.ID); err != nil {
			return def, fmt.Errorf("field %q created but not added to the form: %w", def.Name, err)
		}
	}

	return def, nil
}

// DefinitionsByID индексирует определения по id
func DefinitionsByID(defs []models.FieldDefinition) map[models.FieldID]models.FieldDefinition {
	m := make(map[models.FieldID]models.FieldDefinition, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}
