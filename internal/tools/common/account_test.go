package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/workspace-mcp/internal/auth"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		fallback string
		want     string
	}{
		{
			name:     "explicit account",
			args:     map[string]interface{}{"account": "alice@example.com"},
			fallback: "bob@example.com",
			want:     "alice@example.com",
		},
		{
			name:     "fallback when absent",
			args:     map[string]interface{}{},
			fallback: "bob@example.com",
			want:     "bob@example.com",
		},
		{
			name:     "fallback when empty string",
			args:     map[string]interface{}{"account": ""},
			fallback: "bob@example.com",
			want:     "bob@example.com",
		},
		{
			name:     "no fallback",
			args:     map[string]interface{}{},
			fallback: "",
			want:     "",
		},
		{
			name:     "non-string value ignored",
			args:     map[string]interface{}{"account": 42},
			fallback: "bob@example.com",
			want:     "bob@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAccountFromArgs(tt.args, tt.fallback); got != tt.want {
				t.Errorf("GetAccountFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestAuthErrorResultNotConfigured(t *testing.T) {
	result := AuthErrorResult("alice@example.com", &auth.NotConfiguredError{Email: "alice@example.com"})

	if !result.IsError {
		t.Error("result should be an error")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "not in the account registry") {
		t.Errorf("unexpected message: %s", text)
	}
}

func TestAuthErrorResultCarriesAuthURL(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "code exchange",
			err: &auth.CodeExchangeError{
				Email:   "alice@example.com",
				AuthURL: "https://accounts.google.com/o/oauth2/auth?login_hint=alice",
				Err:     errors.New("invalid_grant"),
			},
		},
		{
			name: "no refresh token",
			err: &auth.NoRefreshTokenError{
				Email:   "alice@example.com",
				AuthURL: "https://accounts.google.com/o/oauth2/auth?login_hint=alice",
			},
		},
		{
			name: "timeout",
			err: &auth.AuthTimeoutError{
				Email:   "alice@example.com",
				AuthURL: "https://accounts.google.com/o/oauth2/auth?login_hint=alice",
				Timeout: 5 * time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AuthErrorResult("alice@example.com", tt.err)
			if !result.IsError {
				t.Error("result should be an error")
			}
			text := resultText(t, result)
			if !strings.Contains(text, "https://accounts.google.com/o/oauth2/auth?login_hint=alice") {
				t.Errorf("auth URL missing from message: %s", text)
			}
		})
	}
}

func TestAuthErrorResultPlainError(t *testing.T) {
	result := AuthErrorResult("alice@example.com", errors.New("disk on fire"))

	text := resultText(t, result)
	if !strings.Contains(text, "disk on fire") {
		t.Errorf("underlying error missing: %s", text)
	}
	if strings.Contains(text, "open this URL") {
		t.Errorf("plain errors should not instruct browser auth: %s", text)
	}
}
