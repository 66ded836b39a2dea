package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

// Границы шкалы ISI (Insomnia Severity Index).
const (
	MinISIScore = 0
	MaxISIScore = 28
)

const dateLayout = "2006-01-02"

// FormErrors собирает ошибки валидации формы пациента по пути поля
// ("first_name", "addresses[0].city", "isi_scores[1]", "custom_fields[2]").
type FormErrors map[string]*models.ValidationError

// Err возвращает nil для валидной формы, иначе сам fe как ошибку
func (fe FormErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error перечисляет все сообщения в порядке путей полей
func (fe FormErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, key := range fe.Keys() {
		msgs = append(msgs, key+": "+fe[key].Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap открывает отдельные *models.ValidationError для errors.As
func (fe FormErrors) Unwrap() []error {
	errs := make([]error, 0, len(fe))
	for _, key := range fe.Keys() {
		errs = append(errs, fe[key])
	}
	return errs
}

// Keys возвращает пути полей в стабильном порядке
func (fe FormErrors) Keys() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Message возвращает сообщение для пути поля
func (fe FormErrors) Message(field string) string {
	if e, ok := fe[field]; ok {
		return e.Message
	}
	return ""
}

func (fe FormErrors) add(field, rule, msg string) {
	fe[field] = &models.ValidationError{Field: field, Rule: rule, Message: msg}
}

// FormErrorsFromTransport переносит ошибки полей от сервера (HTTP 400) в FormErrors,
// по первому сообщению на поле.
func FormErrorsFromTransport(err error) FormErrors {
	var tErr *models.TransportError
	if !errors.As(err, &tErr) || len(tErr.FieldErrors) == 0 {
		return nil
	}
	fe := make(FormErrors, len(tErr.FieldErrors))
	for field := range tErr.FieldErrors {
		if msg, ok := tErr.FirstFieldError(field); ok {
			fe.add(field, models.RuleFormat, msg)
		}
	}
	return fe
}

// ValidatePatient проверяет форму пациента перед сохранением.
// defs нужны для проверки обязательных пользовательских полей.
func ValidatePatient(p api.Patient, defs []models.FieldDefinition) FormErrors {
	fe := make(FormErrors)

	if strings.TrimSpace(p.FirstName) == "" {
		fe.add("first_name", models.RuleRequired, "First name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		fe.add("last_name", models.RuleRequired, "Last name is required")
	}

	switch {
	case p.DateOfBirth == "":
		fe.add("date_of_birth", models.RuleRequired, "Date of birth is required")
	case !isDate(p.DateOfBirth):
		fe.add("date_of_birth", models.RuleFormat, "Date of birth must be in YYYY-MM-DD format")
	}

	switch {
	case p.Status == "":
		fe.add("status", models.RuleRequired, "Status is required")
	case !models.Status(p.Status).Valid():
		fe.add("status", models.RuleFormat, fmt.Sprintf("Unknown status %q", p.Status))
	}

	for i, s := range p.ISIScores {
		key := fmt.Sprintf("isi_scores[%d]", i)
		switch {
		case s.Score == nil:
			fe.add(key, models.RuleRequired, "Score is required")
		case *s.Score < MinISIScore || *s.Score > MaxISIScore:
			fe.add(key, models.RuleRange, "Score must be between 0 and 28")
		}
		// ошибка даты перекрывает ошибку баллов, как в форме
		if s.Date == "" {
			fe.add(key, models.RuleRequired, "Date is required")
		}
	}

	for i, a := range p.Addresses {
		prefix := fmt.Sprintf("addresses[%d].", i)
		if strings.TrimSpace(a.AddressLine1) == "" {
			fe.add(prefix+"address_line1", models.RuleRequired, "Address line 1 is required")
		}
		if strings.TrimSpace(a.City) == "" {
			fe.add(prefix+"city", models.RuleRequired, "City is required")
		}
		if strings.TrimSpace(a.State) == "" {
			fe.add(prefix+"state", models.RuleRequired, "State is required")
		}
		if strings.TrimSpace(a.PostalCode) == "" {
			fe.add(prefix+"postal_code", models.RuleRequired, "Postal code is required")
		}
	}

	required := make(map[int64]bool, len(defs))
	for _, d := range defs {
		if !d.Required {
			continue
		}
		if id, ok := d.ID.Int(); ok {
			required[id] = true
		}
	}
	for i, v := range p.CustomFieldValues {
		if required[v.FieldDefinition] && strings.TrimSpace(v.Value) == "" {
			fe.add(fmt.Sprintf("custom_fields[%d]", i), models.RuleRequired, "This field is required")
		}
	}

	return fe
}

func isDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
