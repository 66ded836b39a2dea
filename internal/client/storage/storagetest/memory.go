// Package storagetest предоставляет хранилище в памяти для тестов пакетов поверх кэша запросов.
package storagetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iudanet/patientdesk/internal/client/storage"
)

// NewCacheStorage возвращает мок хранилища кэша, работающий поверх map.
// Вызовы фиксируются моком, поэтому тесты могут проверять обращения к хранилищу.
func NewCacheStorage() *storage.CacheStorageMock {
	var mu sync.Mutex
	entries := make(map[string]storage.CacheEntry)

	return &storage.CacheStorageMock{
		GetFunc: func(ctx context.Context, key string) (*storage.CacheEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			e, ok := entries[key]
			if !ok {
				return nil, storage.ErrCacheMiss
			}
			return &e, nil
		},
		PutFunc: func(ctx context.Context, entry *storage.CacheEntry) error {
			mu.Lock()
			defer mu.Unlock()
			entries[entry.Key] = *entry
			return nil
		},
		DeleteFunc: func(ctx context.Context, prefix string) error {
			mu.Lock()
			defer mu.Unlock()
			for k := range entries {
				if k == prefix || strings.HasPrefix(k, prefix+"/") {
					delete(entries, k)
				}
			}
			return nil
		},
		KeysFunc: func(ctx context.Context) ([]string, error) {
			mu.Lock()
			defer mu.Unlock()
			keys := make([]string, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys, nil
		},
		ClearFunc: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			entries = make(map[string]storage.CacheEntry)
			return nil
		},
	}
}
