package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage определяет интерфейс хранения метаданных кэша
type MetadataStorage interface {
	// GetCacheSalt возвращает соль для вывода ключа кэша
	// Возвращает ErrMetadataNotFound, если соль ещё не сохранена
	GetCacheSalt(ctx context.Context) ([]byte, error)

	// SaveCacheSalt сохраняет соль
	SaveCacheSalt(ctx context.Context, salt []byte) error

	// GetKeyFingerprint возвращает отпечаток ключа шифрования кэша
	// Возвращает "", если кэш не зашифрован
	GetKeyFingerprint(ctx context.Context) (string, error)

	// SaveKeyFingerprint сохраняет отпечаток; "" означает незашифрованный кэш
	SaveKeyFingerprint(ctx context.Context, fingerprint string) error
}
