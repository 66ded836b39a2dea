package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/patientdesk/internal/client/storage"
	"github.com/iudanet/patientdesk/internal/client/storage/boltdb"
	"github.com/iudanet/patientdesk/internal/crypto"
)

func openTestDB(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func keyCount(t *testing.T, store storage.CacheStorage) int {
	t.Helper()
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	return len(keys)
}

func TestOpenSealer(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	log := zerolog.Nop()

	// без пароля: записи хранятся открыто
	s, err := OpenSealer(ctx, db, db, "", log)
	require.NoError(t, err)
	assert.IsType(t, crypto.NopSealer{}, s)
	require.NoError(t, Set(ctx, New(db, WithSealer(s)), "plain", "x"))

	// первый запуск с паролем: открытые записи удаляются, соль создаётся
	s, err = OpenSealer(ctx, db, db, "secret", log)
	require.NoError(t, err)
	assert.IsType(t, &crypto.AESSealer{}, s)
	assert.Zero(t, keyCount(t, db))

	salt, err := db.GetCacheSalt(ctx)
	require.NoError(t, err)
	assert.Len(t, salt, crypto.SaltSize)

	sealed := New(db, WithSealer(s))
	require.NoError(t, Set(ctx, sealed, "patient/1", "Ann"))

	// тот же пароль: кэш сохраняется и читается
	s, err = OpenSealer(ctx, db, db, "secret", log)
	require.NoError(t, err)
	got, ok, err := Peek[string](ctx, New(db, WithSealer(s)), "patient/1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ann", got)

	// другой пароль: кэш очищается
	_, err = OpenSealer(ctx, db, db, "other", log)
	require.NoError(t, err)
	assert.Zero(t, keyCount(t, db))

	// пароль убран: отпечаток сбрасывается
	require.NoError(t, Set(ctx, sealed, "patient/2", "Bob"))
	_, err = OpenSealer(ctx, db, db, "", log)
	require.NoError(t, err)
	assert.Zero(t, keyCount(t, db))
	fp, err := db.GetKeyFingerprint(ctx)
	require.NoError(t, err)
	assert.Empty(t, fp)
}
