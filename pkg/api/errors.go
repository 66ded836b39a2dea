package api

// ErrorResponse представляет тело ответа с ошибкой.
// Сервер присылает либо {"detail": "..."}, либо {"message": "..."},
// либо карту ошибок валидации {"field": ["msg", ...]} (её разбирает клиент).
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`  // стандартное поле ошибок REST API
	Message string `json:"message,omitempty"` // альтернативное поле
}
