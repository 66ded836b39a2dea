package api

// CustomField представляет определение пользовательского поля
type CustomField struct {
	Name     string `json:"name"`
	ID       int64  `json:"id"`
	Required bool   `json:"required"`
}

// CreateCustomFieldRequest представляет запрос на создание определения поля
type CreateCustomFieldRequest struct {
	Name string `json:"name"`
}

// CustomFieldValue представляет значение пользовательского поля у пациента
type CustomFieldValue struct {
	ID              *int64 `json:"id"`                // nil для ещё не сохранённого значения
	Patient         *int64 `json:"patient,omitempty"` // заполняется при создании
	Value           string `json:"value"`
	FieldDefinition int64  `json:"field_definition"`
}

// CustomFieldPage постраничная обёртка, в которой некоторые сервера отдают определения
type CustomFieldPage struct {
	Results []CustomField `json:"results"`
}
