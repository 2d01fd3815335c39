package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid username - lowercase", username: "alice"},
		{name: "valid username - mixed case", username: "AliceSmith"},
		{name: "valid username - with underscore", username: "alice_smith"},
		{name: "valid username - with dot and dash", username: "alice.s-1"},
		{name: "valid username - exactly 3 chars", username: "abc"},
		{name: "valid username - exactly 32 chars", username: strings.Repeat("a", 32)},
		{name: "invalid - empty", username: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too short", username: "ab", wantErr: true, errMsg: "at least 3"},
		{name: "invalid - too long", username: strings.Repeat("a", 33), wantErr: true, errMsg: "must not exceed 32"},
		{name: "invalid - space", username: "alice smith", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - cyrillic", username: "алиса", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid password - exactly 8 chars", password: "pass1234"},
		{name: "valid password - with special chars", password: "P@ssw0rd!@#$"},
		{name: "valid password - unicode counts runes", password: "пароль12"},
		{name: "invalid - empty password", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too short (7 chars)", password: "pass123", wantErr: true, errMsg: "at least 8"},
		{name: "invalid - too long", password: strings.Repeat("x", MaxPasswordLen+1), wantErr: true, errMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
