package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/client/storage"
	"github.com/iudanet/patientdesk/internal/crypto"
)

// OpenSealer готовит шифрование кэша на диске.
//
// Пустая парольная фраза дает NopSealer. Иначе ключ выводится из фразы и
// сохранённой соли (создаётся при первом запуске). Записи, сделанные с другим
// ключом или без ключа, удаляются и никогда не отдаются.
func OpenSealer(ctx context.Context, meta storage.MetadataStorage, store storage.CacheStorage, passphrase string, logger zerolog.Logger) (crypto.Sealer, error) {
	stored, err := meta.GetKeyFingerprint(ctx)
	if err != nil {
		return nil, err
	}

	if passphrase == "" {
		if stored != "" {
			logger.Info().Msg("cache key removed, clearing sealed cache")
			if err := resetCache(ctx, meta, store, ""); err != nil {
				return nil, err
			}
		}
		return crypto.NopSealer{}, nil
	}

	salt, err := meta.GetCacheSalt(ctx)
	if errors.Is(err, storage.ErrMetadataNotFound) {
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
		if err := meta.SaveCacheSalt(ctx, salt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveCacheKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive cache key: %w", err)
	}

	if !crypto.VerifyFingerprint(key, stored) {
		logger.Info().Msg("cache key changed, clearing cache")
		if err := resetCache(ctx, meta, store, crypto.KeyFingerprint(key)); err != nil {
			return nil, err
		}
	}

	return crypto.NewAESSealer(key)
}

func resetCache(ctx context.Context, meta storage.MetadataStorage, store storage.CacheStorage, fingerprint string) error {
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if err := meta.SaveKeyFingerprint(ctx, fingerprint); err != nil {
		return fmt.Errorf("failed to save key fingerprint: %w", err)
	}
	return nil
}
