// Package cache явный кэш запросов чтения REST. Результаты хранятся в локальном
// хранилище и считаются свежими в течение stale time; повторная загрузка идёт с
// ретраями, а одновременные загрузки одного ключа объединяются.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/patientdesk/internal/client/storage"
	"github.com/iudanet/patientdesk/internal/crypto"
	"github.com/iudanet/patientdesk/internal/models"
)

// Значения по умолчанию как у клиента запросов дашборда
const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultRetries    = 1
	DefaultRetryDelay = 200 * time.Millisecond
)

// ErrClosed возвращается кэшем после Close
var ErrClosed = errors.New("query cache is closed")

// QueryCache хранит результаты запросов по ключу
type QueryCache struct {
	store      storage.CacheStorage
	sealer     crypto.Sealer
	now        func() time.Time
	logger     zerolog.Logger
	group      singleflight.Group
	staleTime  time.Duration
	retryDelay time.Duration
	retries    int
	mu         sync.RWMutex
	closed     bool
}

// Option настраивает QueryCache
type Option func(*QueryCache)

// WithStaleTime задает, сколько сохранённый результат отдаётся без перезагрузки
func WithStaleTime(d time.Duration) Option {
	return func(c *QueryCache) { c.staleTime = d }
}

// WithRetries задает число повторов неудачного чтения по умолчанию
func WithRetries(n int) Option {
	return func(c *QueryCache) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay задает базовую задержку экспоненциального backoff
func WithRetryDelay(d time.Duration) Option {
	return func(c *QueryCache) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithSealer включает шифрование записей на диске
func WithSealer(s crypto.Sealer) Option {
	return func(c *QueryCache) {
		if s != nil {
			c.sealer = s
		}
	}
}

// WithLogger задает логгер
func WithLogger(l zerolog.Logger) Option {
	return func(c *QueryCache) { c.logger = l }
}

// WithClock подменяет time.Now
func WithClock(now func() time.Time) Option {
	return func(c *QueryCache) { c.now = now }
}

// New создает QueryCache поверх store
func New(store storage.CacheStorage, opts ...Option) *QueryCache {
	c := &QueryCache{
		store:      store,
		sealer:     crypto.NopSealer{},
		now:        time.Now,
		logger:     zerolog.Nop(),
		staleTime:  DefaultStaleTime,
		retryDelay: DefaultRetryDelay,
		retries:    DefaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchConfig struct {
	retries int
	force   bool
}

// FetchOption настраивает один вызов Fetch
type FetchOption func(*fetchConfig)

// Retries переопределяет число повторов кэша
func Retries(n int) FetchOption {
	return func(fc *fetchConfig) { fc.retries = n }
}

// Force пропускает сохранённый результат и всегда загружает заново
func Force() FetchOption {
	return func(fc *fetchConfig) { fc.force = true }
}

// Fetch возвращает сохранённое значение key, пока оно свежее, иначе вызывает fn,
// сохраняет и возвращает результат. Одновременные Fetch одного ключа делят один вызов.
// Повторяются только ошибки транспорта, допускающие повтор.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fn func(context.Context) (T, error), opts ...FetchOption) (T, error) {
	var zero T

	if err := c.checkOpen(); err != nil {
		return zero, err
	}

	fc := fetchConfig{retries: c.retries}
	for _, opt := range opts {
		opt(&fc)
	}

	if !fc.force {
		var cached T
		fresh, err := c.load(ctx, key, &cached)
		if err != nil {
			return zero, err
		}
		if fresh {
			c.logger.Debug().Str("key", key).Msg("cache hit")
			return cached, nil
		}
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		val, err := fetchWithRetry(ctx, c, fn, fc.retries)
		if err != nil {
			return nil, err
		}
		if err := Set(ctx, c, key, val); err != nil {
			// запрос успешен; ошибка записи в кэш не должна его ломать
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to store query result")
		}
		return val, nil
	})
	if err != nil {
		return zero, err
	}

	c.logger.Debug().Str("key", key).Bool("shared", shared).Msg("cache fetched")

	return v.(T), nil
}

// Peek возвращает сохранённое значение без учёта свежести; ok false при промахе
func Peek[T any](ctx context.Context, c *QueryCache, key string) (T, bool, error) {
	var v T
	if err := c.checkOpen(); err != nil {
		return v, false, err
	}

	entry, err := c.store.Get(ctx, key)
	if errors.Is(err, storage.ErrCacheMiss) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	if err := c.decode(entry, &v); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("dropping unreadable cache entry")
		_ = c.store.Delete(ctx, key)
		return v, false, nil
	}
	return v, true, nil
}

// Set сохраняет value под key как свежий результат
func Set[T any](ctx context.Context, c *QueryCache, key string, value T) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	sealed, err := c.sealer.Seal(data)
	if err != nil {
		return fmt.Errorf("failed to seal %q: %w", key, err)
	}

	return c.store.Put(ctx, &storage.CacheEntry{
		Key:       key,
		Data:      sealed,
		UpdatedAt: c.now().UnixNano(),
	})
}

// Invalidate удаляет key и все ключи под key + "/"
func (c *QueryCache) Invalidate(ctx context.Context, key string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to invalidate %q: %w", key, err)
	}
	return nil
}

// Clear удаляет все записи
func (c *QueryCache) Clear(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	return c.store.Clear(ctx)
}

// Keys возвращает сохранённые ключи
func (c *QueryCache) Keys(ctx context.Context) ([]string, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.store.Keys(ctx)
}

// UpdatedAt возвращает время последнего сохранения key; ok false при промахе
func (c *QueryCache) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	if err := c.checkOpen(); err != nil {
		return time.Time{}, false, err
	}
	entry, err := c.store.Get(ctx, key)
	if errors.Is(err, storage.ErrCacheMiss) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(0, entry.UpdatedAt), true, nil
}

// Close переводит кэш в закрытое состояние: дальнейшие вызовы вернут ErrClosed.
// Хранилище остаётся открытым, его закрывает владелец.
func (c *QueryCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *QueryCache) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// load декодирует запись в v и сообщает, свежая ли она
func (c *QueryCache) load(ctx context.Context, key string, v interface{}) (bool, error) {
	entry, err := c.store.Get(ctx, key)
	if errors.Is(err, storage.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	age := c.now().Sub(time.Unix(0, entry.UpdatedAt))
	if age >= c.staleTime {
		return false, nil
	}

	if err := c.decode(entry, v); err != nil {
		// запись от другого ключа шифрования или повреждена: просто перезапрашиваем
		c.logger.Warn().Err(err).Str("key", key).Msg("dropping unreadable cache entry")
		_ = c.store.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *QueryCache) decode(entry *storage.CacheEntry, v interface{}) error {
	data, err := c.sealer.Open(entry.Data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return nil
}

func fetchWithRetry[T any](ctx context.Context, c *QueryCache, fn func(context.Context) (T, error), retries int) (T, error) {
	var result T

	if retries < 0 {
		retries = 0
	}
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewExponential(c.retryDelay))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := fn(ctx)
		if err == nil {
			result = v
			return nil
		}
		if isRetryable(err) {
			c.logger.Debug().Err(err).Int("attempt", attempt).Msg("retrying query")
			return retry.RetryableError(err)
		}
		return err
	})
	return result, err
}

// isRetryable: повторяем только сетевые ошибки, 429 и 5xx
func isRetryable(err error) bool {
	var tErr *models.TransportError
	if errors.As(err, &tErr) {
		return tErr.Retryable()
	}
	return false
}
