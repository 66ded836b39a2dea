package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind закрытый набор категорий ошибок клиента.
// Категория определяется там, где ошибка создана, а не по её тексту.
type ErrorKind uint8

const (
	ErrorKindUnknown    ErrorKind = iota // всё, что не распознано
	ErrorKindValidation                  // локальная ошибка валидации, сеть не вызывалась
	ErrorKindTransport                   // ошибка запроса к REST API
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "validation"
	case ErrorKindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Правила валидации в ValidationError.Rule
const (
	RuleEmpty     = "empty"
	RuleTooLong   = "too_long"
	RuleDuplicate = "duplicate"
	RuleRequired  = "required"
	RuleRange     = "range"
	RuleFormat    = "format"
)

// ValidationError возникает локально, до любого сетевого вызова
type ValidationError struct {
	Field   string // поле формы, к которому относится ошибка
	Rule    string // какое правило нарушено
	Message string // текст для отображения рядом с полем
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError описывает неудачный вызов REST API.
// Status равен 0, если ответ не получен вовсе.
type TransportError struct {
	FieldErrors map[string][]string // ошибки валидации сервера (HTTP 400)
	Err         error               // исходная сетевая ошибка, если была
	Message     string
	Status      int
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConflict сообщает о конфликте записи, найденном сервером
func (e *TransportError) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// Retryable сообщает, может ли повтор чтения помочь:
// сетевые ошибки, 429 и 5xx.
func (e *TransportError) Retryable() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// FirstFieldError возвращает первое сообщение сервера для поля
func (e *TransportError) FirstFieldError(field string) (string, bool) {
	msgs := e.FieldErrors[field]
	if len(msgs) == 0 {
		return "", false
	}
	return msgs[0], true
}

// Classify возвращает категорию err
func Classify(err error) ErrorKind {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return ErrorKindValidation
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return ErrorKindTransport
	}
	return ErrorKindUnknown
}

// Describe возвращает текст баннера для err. resource называет то, что
// загружалось, например "custom fields".
func Describe(err error, resource string) string {
	if err == nil {
		return ""
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		switch {
		case tErr.Status == http.StatusNotFound:
			return fmt.Sprintf("%s not found. Please try again later.", capitalize(resource))
		case tErr.Status == http.StatusForbidden:
			return fmt.Sprintf("You do not have permission to access %s.", resource)
		case tErr.Message != "":
			return tErr.Message
		}
		return fmt.Sprintf("Failed to load %s. Please try again later.", resource)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("Failed to load %s. Please try again later.", resource)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
