package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

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
		Registry: registry,
		Store:    auth.NewStore(t.TempDir(), nil),
		Client:   staticOAuthClient{},
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

func readRequest(uri string) mcp.ReadResourceRequest {
	request := mcp.ReadResourceRequest{}
	request.Params.URI = uri
	return request
}

func TestHandleAccountList(t *testing.T) {
	sc := testServerContext(t, []auth.Account{
		{Email: "alice@example.com", AccountType: "work"},
		{Email: "bob@example.com"},
	})

	contents, err := handleAccountList(context.Background(), readRequest("workspace://accounts"), sc)
	if err != nil {
		t.Fatalf("handleAccountList() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents is %T, want TextResourceContents", contents[0])
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", text.MIMEType)
	}

	var docs []accountDocument
	if err := json.Unmarshal([]byte(text.Text), &docs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].Email != "alice@example.com" || docs[0].AccountType != "work" {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[0].State != string(auth.StateNoStoredCredential) {
		t.Errorf("State = %q, want %q", docs[0].State, auth.StateNoStoredCredential)
	}
}

func TestHandleAccount(t *testing.T) {
	sc := testServerContext(t, []auth.Account{{Email: "alice@example.com"}})

	contents, err := handleAccount(context.Background(),
		readRequest("workspace://accounts/alice@example.com"), sc, "alice@example.com")
	if err != nil {
		t.Fatalf("handleAccount() error = %v", err)
	}

	text := contents[0].(mcp.TextResourceContents)
	var doc accountDocument
	if err := json.Unmarshal([]byte(text.Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Email != "alice@example.com" {
		t.Errorf("Email = %q", doc.Email)
	}
	// A sole registry entry is the implicit default account.
	if !doc.Default {
		t.Error("sole account should be marked default")
	}
}

func TestHandleAccountUnknown(t *testing.T) {
	sc := testServerContext(t, []auth.Account{{Email: "alice@example.com"}})

	_, err := handleAccount(context.Background(),
		readRequest("workspace://accounts/mallory@example.com"), sc, "mallory@example.com")
	if err == nil {
		t.Fatal("expected an error for an unconfigured account")
	}
}
