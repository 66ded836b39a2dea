package storage

import "context"

//go:generate moq -out cachestorage_mock.go . CacheStorage

// CacheEntry один сохранённый результат запроса
type CacheEntry struct {
	Key       string `json:"key"`
	Data      []byte `json:"data"`       // сериализованный (и, возможно, зашифрованный) результат
	UpdatedAt int64  `json:"updated_at"` // unix nano момента получения с сервера
}

// CacheStorage определяет интерфейс хранения результатов запросов на клиенте
type CacheStorage interface {
	// Get возвращает запись по ключу
	// Возвращает ErrCacheMiss, если записи нет
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Put сохраняет или заменяет запись
	Put(ctx context.Context, entry *CacheEntry) error

	// Delete удаляет записи с ключом prefix или начинающимся с prefix + "/"
	Delete(ctx context.Context, prefix string) error

	// Keys возвращает все ключи в лексическом порядке
	Keys(ctx context.Context) ([]string, error)

	// Clear удаляет все записи
	Clear(ctx context.Context) error
}
