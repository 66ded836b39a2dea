package storage

import "errors"

// Общие ошибки клиентского хранилища
var (
	// ErrCacheMiss означает, что записи для ключа нет
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrMetadataNotFound означает, что значение метаданных не сохранялось
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrStorageClosed означает, что хранилище закрыто
	ErrStorageClosed = errors.New("storage is closed")
)
