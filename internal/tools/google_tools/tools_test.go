package google_tools

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/oauth2"

	"github.com/teemow/workspace-mcp/internal/auth"
	"github.com/teemow/workspace-mcp/internal/server"
)

type staticOAuthClient struct{}

func (staticOAuthClient) AuthCodeURL(email, state string) string {
	return "https://accounts.example/auth?login_hint=" + email
}

func (staticOAuthClient) Exchange(context.Context, string) (*oauth2.Token, error) {
	return nil, context.DeadlineExceeded
}

func (staticOAuthClient) ResolveIdentity(context.Context, *oauth2.Token) (*auth.Identity, error) {
	return nil, context.DeadlineExceeded
}

func (staticOAuthClient) TokenSource(_ context.Context, rec *auth.TokenRecord) oauth2.TokenSource {
	return oauth2.StaticTokenSource(rec.Token())
}

func (staticOAuthClient) HTTPClient(context.Context, oauth2.TokenSource) *http.Client {
	return http.DefaultClient
}

func (staticOAuthClient) Scopes() []string { return []string{"scope-mail"} }

func testServerContext(t *testing.T, accounts []auth.Account) *server.ServerContext {
	t.Helper()

	registry, err := auth.NewRegistry(accounts)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	manager, err := auth.NewManager(auth.Config{
		Registry:    registry,
		Store:       auth.NewStore(t.TempDir(), nil),
		Client:      staticOAuthClient{},
		AuthTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), server.Options{Manager: manager})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { sc.Shutdown() })
	return sc
}

func callToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func toolResultText(t *testing.T, result *mcp.CallToolResult) string {
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

func TestHandleListAccounts(t *testing.T) {
	sc := testServerContext(t, []auth.Account{
		{Email: "alice@example.com", AccountType: "work"},
		{Email: "bob@example.com"},
	})

	result, err := handleListAccounts(context.Background(), callToolRequest(nil), sc)
	if err != nil {
		t.Fatalf("handleListAccounts() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolResultText(t, result))
	}

	text := toolResultText(t, result)
	for _, want := range []string{"alice@example.com", "(work)", "bob@example.com"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %q:\n%s", want, text)
		}
	}
}

func TestHandleListAccountsEmpty(t *testing.T) {
	sc := testServerContext(t, nil)

	result, err := handleListAccounts(context.Background(), callToolRequest(nil), sc)
	if err != nil {
		t.Fatalf("handleListAccounts() error = %v", err)
	}
	if !strings.Contains(toolResultText(t, result), "No accounts are configured") {
		t.Errorf("unexpected message: %s", toolResultText(t, result))
	}
}

func TestHandleAccountStatus(t *testing.T) {
	sc := testServerContext(t, []auth.Account{{Email: "alice@example.com"}})

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr bool
		want    string
	}{
		{
			name: "no stored credential",
			args: map[string]interface{}{"account": "alice@example.com"},
			want: "no_stored_credential",
		},
		{
			name: "sole account is the default",
			args: map[string]interface{}{},
			want: "alice@example.com",
		},
		{
			name: "unknown account",
			args: map[string]interface{}{"account": "mallory@example.com"},
			want: "not_configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleAccountStatus(context.Background(), callToolRequest(tt.args), sc)
			if err != nil {
				t.Fatalf("handleAccountStatus() error = %v", err)
			}
			if result.IsError != tt.wantErr {
				t.Errorf("IsError = %v, want %v", result.IsError, tt.wantErr)
			}
			if text := toolResultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("result missing %q:\n%s", tt.want, text)
			}
		})
	}
}

func TestHandleCompleteAuthRequiresCode(t *testing.T) {
	sc := testServerContext(t, []auth.Account{{Email: "alice@example.com"}})

	result, err := handleCompleteAuth(context.Background(), callToolRequest(map[string]interface{}{
		"account": "alice@example.com",
	}), sc)
	if err != nil {
		t.Fatalf("handleCompleteAuth() error = %v", err)
	}
	if !result.IsError {
		t.Error("missing code should yield a tool error")
	}
}

func TestHandleAccountStatusNoAccount(t *testing.T) {
	sc := testServerContext(t, []auth.Account{
		{Email: "alice@example.com"},
		{Email: "bob@example.com"},
	})

	// Two accounts and no default: the handler cannot pick one.
	result, err := handleAccountStatus(context.Background(), callToolRequest(nil), sc)
	if err != nil {
		t.Fatalf("handleAccountStatus() error = %v", err)
	}
	if !result.IsError {
		t.Error("ambiguous account should yield a tool error")
	}
}
