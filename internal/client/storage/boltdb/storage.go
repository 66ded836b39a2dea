package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/patientdesk/internal/client/storage"
)

var (
	// Имена бакетов BoltDB
	bucketCache    = []byte("cache")
	bucketMetadata = []byte("metadata")
)

// Storage представляет реализацию хранилища кэша клиента на BoltDB
type Storage struct {
	db *bbolt.DB
	mu sync.RWMutex
}

var (
	_ storage.CacheStorage    = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
)

// New создает новый экземпляр хранилища BoltDB
// dbPath путь к файлу базы BoltDB
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Таймаут на блокировку файла: второй процесс не должен висеть бесконечно
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close закрывает базу данных
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path возвращает путь к файлу базы
func (s *Storage) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCache); err != nil {
			return fmt.Errorf("failed to create cache bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketMetadata); err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		return nil
	})
}

// view и update выполняют транзакцию, если хранилище не закрыто
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}
