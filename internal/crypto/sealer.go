package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
)

// ErrCorrupted возвращается, когда запечатанные данные не проходят проверку подлинности
var ErrCorrupted = errors.New("sealed data is corrupted or the key is wrong")

// Sealer защищает записи кэша на диске.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// AESSealer шифрует данные AES-256-GCM.
// Формат: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
type AESSealer struct {
	aead cipher.AEAD
}

var _ Sealer = (*AESSealer)(nil)

// NewAESSealer создает Sealer из 32-байтового ключа (см. DeriveCacheKey).
func NewAESSealer(key []byte) (*AESSealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESSealer{aead: aead}, nil
}

// Seal шифрует plaintext со случайным nonce.
func (s *AESSealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal дописывает ciphertext и tag сразу после nonce
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open расшифровывает данные, запечатанные Seal.
func (s *AESSealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize+s.aead.Overhead() {
		return nil, fmt.Errorf("%w: data too short", ErrCorrupted)
	}

	plaintext, err := s.aead.Open(nil, sealed[:NonceSize], sealed[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return plaintext, nil
}

// NopSealer хранит данные как есть (кэш без пароля).
type NopSealer struct{}

var _ Sealer = NopSealer{}

func (NopSealer) Seal(plaintext []byte) ([]byte, error) {
	out := make([]byte, len(plaintext))
	copy(out, plaintext)
	return out, nil
}

func (NopSealer) Open(sealed []byte) ([]byte, error) {
	out := make([]byte, len(sealed))
	copy(out, sealed)
	return out, nil
}
