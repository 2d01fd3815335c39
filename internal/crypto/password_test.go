package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams облегченные параметры, чтобы тесты не тратили 64MB на хеш
func testParams() Params {
	return Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}
}

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt1, SaltSize)

	salt2, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt1, salt2, "salts should be random")
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", testParams())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	again, err := HashPassword("correct horse", testParams())
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "каждый хеш со своей солью")

	_, err = HashPassword("", testParams())
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", testParams())
	require.NoError(t, err)

	tests := []struct {
		wantErr  error
		name     string
		password string
		hash     string
	}{
		{name: "valid password", password: "s3cret-pass", hash: hash},
		{name: "wrong password", password: "s3cret-pasS", hash: hash, wantErr: ErrMismatchedPassword},
		{name: "empty password", password: "", hash: hash, wantErr: ErrMismatchedPassword},
		{name: "garbage hash", password: "x", hash: "not-a-hash", wantErr: ErrInvalidHash},
		{name: "wrong algorithm", password: "x", hash: "$argon2i$v=19$m=1,t=1,p=1$AA$AA", wantErr: ErrInvalidHash},
		{name: "wrong version", password: "x", hash: "$argon2id$v=16$m=1,t=1,p=1$AA$AA", wantErr: ErrIncompatibleVersion},
		{name: "broken salt", password: "x", hash: "$argon2id$v=19$m=1,t=1,p=1$!!$AA", wantErr: ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, tt.hash)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, uint32(Argon2Memory), p.Memory)
	assert.Equal(t, uint32(Argon2KeyLen), p.KeyLen)
}
