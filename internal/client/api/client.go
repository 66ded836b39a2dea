package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

// DefaultTimeout ограничивает время одного HTTP запроса
const DefaultTimeout = 30 * time.Second

// maxErrorBody ограничивает текст ошибки, взятый из не-JSON ответа
const maxErrorBody = 512

// Client представляет HTTP клиент для взаимодействия с REST API
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут HTTP запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger задает логгер
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zerolog.Nop(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// Ограничиваем количество редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает корень API, с которым работает клиент
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPatients получает страницу пациентов с фильтрами и сортировкой
func (c *Client) ListPatients(ctx context.Context, params api.ListPatientsParams) (*api.PatientPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	setIfNotEmpty(q, "status", params.Status)
	setIfNotEmpty(q, "city", params.City)
	setIfNotEmpty(q, "state", params.State)
	setIfNotEmpty(q, "search", params.Search)
	setIfNotEmpty(q, "ordering", params.Ordering)

	var resp api.PatientPage
	if err := c.doRequest(ctx, http.MethodGet, "/api/patients/?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list patients request failed: %w", err)
	}
	return &resp, nil
}

// GetPatient получает пациента по id
func (c *Client) GetPatient(ctx context.Context, id int64) (*api.Patient, error) {
	var resp api.Patient
	path := fmt.Sprintf("/api/patients/%d/", id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get patient request failed: %w", err)
	}
	return &resp, nil
}

// CreatePatient создает пациента
func (c *Client) CreatePatient(ctx context.Context, data api.PatientData) (*api.Patient, error) {
	var resp api.Patient
	if err := c.doRequest(ctx, http.MethodPost, "/api/patients/", data, &resp); err != nil {
		return nil, fmt.Errorf("create patient request failed: %w", err)
	}
	return &resp, nil
}

// UpdatePatient заменяет данные пациента
func (c *Client) UpdatePatient(ctx context.Context, id int64, data api.PatientData) (*api.Patient, error) {
	var resp api.Patient
	path := fmt.Sprintf("/api/patients/%d/", id)
	if err := c.doRequest(ctx, http.MethodPut, path, data, &resp); err != nil {
		return nil, fmt.Errorf("update patient request failed: %w", err)
	}
	return &resp, nil
}

// ListCustomFields получает определения пользовательских полей.
// Сервер отдает либо массив, либо страницу с полем results.
func (c *Client) ListCustomFields(ctx context.Context) ([]api.CustomField, error) {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, "/api/custom-fields/", nil, &raw); err != nil {
		return nil, fmt.Errorf("list custom fields request failed: %w", err)
	}

	var fields []api.CustomField
	if err := json.Unmarshal(raw, &fields); err == nil {
		return fields, nil
	}

	var page api.CustomFieldPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode custom fields: %w", err)
	}
	if page.Results == nil {
		return []api.CustomField{}, nil
	}
	return page.Results, nil
}

// CreateCustomField создает определение пользовательского поля
func (c *Client) CreateCustomField(ctx context.Context, name string) (*api.CustomField, error) {
	var resp api.CustomField
	err := c.doRequest(ctx, http.MethodPost, "/api/custom-fields/", api.CreateCustomFieldRequest{Name: name}, &resp)
	if err != nil {
		var tErr *models.TransportError
		if errors.As(err, &tErr) && tErr.Status == http.StatusBadRequest && mentionsAlreadyExists(tErr) {
			tErr.Message = fmt.Sprintf("Field %q already exists", name)
		}
		return nil, fmt.Errorf("create custom field request failed: %w", err)
	}
	return &resp, nil
}

// SaveCustomFieldValue сохраняет значение пользовательского поля:
// PUT для существующего значения (есть id), POST для нового.
func (c *Client) SaveCustomFieldValue(ctx context.Context, value api.CustomFieldValue) (*api.CustomFieldValue, error) {
	method, path := http.MethodPost, "/api/custom-field-values/"
	if value.ID != nil {
		method, path = http.MethodPut, fmt.Sprintf("/api/custom-field-values/%d/", *value.ID)
	}

	var resp api.CustomFieldValue
	if err := c.doRequest(ctx, method, path, value, &resp); err != nil {
		return nil, fmt.Errorf("save custom field value request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос.
// Любой ответ вне 2xx и любая сетевая ошибка возвращаются как *models.TransportError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("request failed")
		return &models.TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError разбирает тело ошибки: {"detail": ...}, {"message": ...}
// или карту ошибок валидации {"field": ["msg", ...]}.
func decodeError(status int, body []byte) *models.TransportError {
	tErr := &models.TransportError{Status: status}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Detail != "":
			tErr.Message = errResp.Detail
			return tErr
		case errResp.Message != "":
			tErr.Message = errResp.Message
			return tErr
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err == nil {
		tErr.FieldErrors = make(map[string][]string, len(raw))
		for field, msg := range raw {
			var list []string
			if err := json.Unmarshal(msg, &list); err == nil {
				tErr.FieldErrors[field] = list
				continue
			}
			var single string
			if err := json.Unmarshal(msg, &single); err == nil {
				tErr.FieldErrors[field] = []string{single}
			}
		}
		return tErr
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	tErr.Message = text
	return tErr
}

func mentionsAlreadyExists(tErr *models.TransportError) bool {
	if strings.Contains(tErr.Message, "already exists") {
		return true
	}
	for _, msgs := range tErr.FieldErrors {
		for _, m := range msgs {
			if strings.Contains(m, "already exists") {
				return true
			}
		}
	}
	return false
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
