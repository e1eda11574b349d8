package auth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Account describes one identity the server is permitted to act for.
// Accounts are loaded once at startup and are immutable for the process
// lifetime.
type Account struct {
	// Email is the unique account identifier and the token storage key.
	Email string `yaml:"email" json:"email"`

	// AccountType is a free-text classification such as "personal" or "work".
	AccountType string `yaml:"account_type" json:"account_type"`

	// ExtraInfo is a free-text annotation surfaced to callers. It is never
	// used for control flow.
	ExtraInfo string `yaml:"extra_info" json:"extra_info,omitempty"`
}

// Registry holds the static list of permitted accounts.
type Registry struct {
	accounts []Account
	byEmail  map[string]Account
}

// registryFile is the on-disk shape of the accounts file.
type registryFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadRegistry reads and parses the accounts file. A missing or unparseable
// registry is a configuration error: the server cannot know which accounts
// it may act for.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file %s: %w", path, err)
	}

	return NewRegistry(file.Accounts)
}

// NewRegistry builds a Registry from a list of accounts, validating that
// every entry has an email and that no email appears twice.
func NewRegistry(accounts []Account) (*Registry, error) {
	byEmail := make(map[string]Account, len(accounts))
	for i, a := range accounts {
		email := normalizeEmail(a.Email)
		if email == "" {
			return nil, fmt.Errorf("account entry %d has no email", i)
		}
		if _, dup := byEmail[email]; dup {
			return nil, fmt.Errorf("duplicate account email %q", email)
		}
		a.Email = email
		byEmail[email] = a
	}

	return &Registry{accounts: accounts, byEmail: byEmail}, nil
}

// Lookup returns the account for the given email, if configured.
func (r *Registry) Lookup(email string) (Account, bool) {
	a, ok := r.byEmail[normalizeEmail(email)]
	return a, ok
}

// Accounts returns all configured accounts in file order.
func (r *Registry) Accounts() []Account {
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Len returns the number of configured accounts.
func (r *Registry) Len() int {
	return len(r.accounts)
}

// normalizeEmail lowercases and trims an email so lookups and storage keys
// agree regardless of how the caller spelled the address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
