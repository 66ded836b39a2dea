package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/iudanet/patientdesk/internal/models"
)

// MaxFieldNameLen максимальная длина имени пользовательского поля (в символах, после trim)
const MaxFieldNameLen = 100

// Сообщения валидации имени поля; показываются пользователю как есть.
const (
	MsgFieldNameEmpty     = "Field name cannot be empty"
	MsgFieldNameTooLong   = "Field name cannot exceed 100 characters"
	MsgFieldNameDuplicate = "A field with this name already exists"
)

// ValidateFieldName проверяет имя нового пользовательского поля:
// непустое после trim, не длиннее MaxFieldNameLen символов,
// уникальное среди existing без учёта регистра.
// Возвращает *models.ValidationError с нарушенным правилом.
func ValidateFieldName(name string, existing []models.FieldDefinition) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return &models.ValidationError{Field: "name", Rule: models.RuleEmpty, Message: MsgFieldNameEmpty}
	}

	if utf8.RuneCountInString(trimmed) > MaxFieldNameLen {
		return &models.ValidationError{Field: "name", Rule: models.RuleTooLong, Message: MsgFieldNameTooLong}
	}

	for _, def := range existing {
		if strings.EqualFold(strings.TrimSpace(def.Name), trimmed) {
			return &models.ValidationError{Field: "name", Rule: models.RuleDuplicate, Message: MsgFieldNameDuplicate}
		}
	}

	return nil
}
