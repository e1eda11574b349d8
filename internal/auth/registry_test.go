package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.yaml")

	content := `accounts:
  - email: alice@example.com
    account_type: work
    extra_info: primary work account
  - email: Bob@Example.com
    account_type: personal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	a, ok := reg.Lookup("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "work", a.AccountType)
	assert.Equal(t, "primary work account", a.ExtraInfo)

	// Lookup is case-insensitive and emails are normalized on load.
	b, ok := reg.Lookup("BOB@example.com")
	require.True(t, ok)
	assert.Equal(t, "bob@example.com", b.Email)

	_, ok = reg.Lookup("nobody@example.com")
	assert.False(t, ok)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRegistryUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: [not: valid: yaml"), 0600))

	_, err := LoadRegistry(path)
	assert.Error(t, err)
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name     string
		accounts []Account
		wantErr  bool
	}{
		{
			name:     "valid",
			accounts: []Account{{Email: "a@example.com"}, {Email: "b@example.com"}},
		},
		{
			name:     "missing email",
			accounts: []Account{{AccountType: "work"}},
			wantErr:  true,
		},
		{
			name:     "duplicate email after normalization",
			accounts: []Account{{Email: "a@example.com"}, {Email: "A@EXAMPLE.COM"}},
			wantErr:  true,
		},
		{
			name:     "empty registry",
			accounts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.accounts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
