package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/patientdesk/internal/client/storage"
)

// Get возвращает запись кэша по ключу
func (s *Storage) Get(ctx context.Context, key string) (*storage.CacheEntry, error) {
	var entry *storage.CacheEntry

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCacheMiss
		}

		// Десериализуем
		entry = &storage.CacheEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Put сохраняет или заменяет запись кэша
func (s *Storage) Put(ctx context.Context, entry *storage.CacheEntry) error {
	if entry == nil || entry.Key == "" {
		return fmt.Errorf("cache entry key cannot be empty")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	err = s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		if err := bucket.Put([]byte(entry.Key), data); err != nil {
			return fmt.Errorf("failed to save cache entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Delete удаляет запись prefix и все записи под prefix + "/"
func (s *Storage) Delete(ctx context.Context, prefix string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		if err := bucket.Delete([]byte(prefix)); err != nil {
			return fmt.Errorf("failed to delete cache entry: %w", err)
		}

		// Собираем ключи до удаления: удалять во время итерации курсором небезопасно
		sub := []byte(prefix + "/")
		var keys [][]byte
		c := bucket.Cursor()
		for k, _ := c.Seek(sub); k != nil && bytes.HasPrefix(k, sub); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}

		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete cache entry: %w", err)
			}
		}

		return nil
	})
}

// Keys возвращает все ключи кэша в лексическом порядке
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Clear удаляет все записи кэша
func (s *Storage) Clear(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketCache); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to delete cache bucket: %w", err)
		}

		if _, err := tx.CreateBucket(bucketCache); err != nil {
			return fmt.Errorf("failed to recreate cache bucket: %w", err)
		}

		return nil
	})
}
