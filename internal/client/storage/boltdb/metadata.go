package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/patientdesk/internal/client/storage"
)

const (
	keyCacheSalt      = "cache_salt"
	keyKeyFingerprint = "key_fingerprint"
)

// GetCacheSalt возвращает соль для вывода ключа кэша
// Возвращает storage.ErrMetadataNotFound, если соль ещё не сохранена
func (s *Storage) GetCacheSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keyCacheSalt))
		if data == nil {
			return storage.ErrMetadataNotFound
		}

		// Копируем: память bbolt действительна только внутри транзакции
		salt = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cache salt: %w", err)
	}

	return salt, nil
}

// SaveCacheSalt сохраняет соль
func (s *Storage) SaveCacheSalt(ctx context.Context, salt []byte) error {
	if len(salt) == 0 {
		return fmt.Errorf("salt cannot be empty")
	}
	return s.putMeta(keyCacheSalt, salt)
}

// GetKeyFingerprint возвращает отпечаток ключа шифрования кэша
// Возвращает "", если кэш не зашифрован
func (s *Storage) GetKeyFingerprint(ctx context.Context) (string, error) {
	var fingerprint string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		fingerprint = string(bucket.Get([]byte(keyKeyFingerprint)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get key fingerprint: %w", err)
	}

	return fingerprint, nil
}

// SaveKeyFingerprint сохраняет отпечаток; "" означает незашифрованный кэш
func (s *Storage) SaveKeyFingerprint(ctx context.Context, fingerprint string) error {
	return s.putMeta(keyKeyFingerprint, []byte(fingerprint))
}

func (s *Storage) putMeta(key string, value []byte) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}
