package crypto

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewAESSealer(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		key     []byte
		wantErr bool
	}{
		{
			name:    "valid key",
			key:     make([]byte, 32),
			wantErr: false,
		},
		{
			name:    "invalid key length - too short",
			key:     make([]byte, 16),
			wantErr: true,
			errMsg:  "encryption key must be 32 bytes",
		},
		{
			name:    "invalid key length - too long",
			key:     make([]byte, 64),
			wantErr: true,
			errMsg:  "encryption key must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewAESSealer(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestAESSealer_SealOpen(t *testing.T) {
	s, err := NewAESSealer(newTestKey(t))
	require.NoError(t, err)

	plaintexts := [][]byte{
		[]byte(`[{"id":1,"name":"Allergies","required":false}]`),
		[]byte("x"),
		{},
	}

	for _, pt := range plaintexts {
		sealed, err := s.Seal(pt)
		require.NoError(t, err)
		assert.Len(t, sealed, NonceSize+len(pt)+16)

		opened, err := s.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, string(pt), string(opened))
	}
}

func TestAESSealer_UniqueNonce(t *testing.T) {
	s, err := NewAESSealer(newTestKey(t))
	require.NoError(t, err)

	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "одинаковые данные должны давать разный шифротекст")
}

func TestAESSealer_OpenErrors(t *testing.T) {
	s, err := NewAESSealer(newTestKey(t))
	require.NoError(t, err)
	other, err := NewAESSealer(newTestKey(t))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("patient list"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		sealer *AESSealer
		data   []byte
	}{
		{name: "too short", sealer: s, data: make([]byte, 5)},
		{name: "wrong key", sealer: other, data: sealed},
		{name: "truncated", sealer: s, data: sealed[:len(sealed)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sealer.Open(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}
}

func TestNopSealer(t *testing.T) {
	in := []byte("plain")
	sealed, err := NopSealer{}.Seal(in)
	require.NoError(t, err)
	in[0] = 'X'

	opened, err := NopSealer{}.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(opened))
}
