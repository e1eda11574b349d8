package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/auth"
	"github.com/teemow/workspace-mcp/internal/server"
)

// RegisterAccountResources registers the account registry resources. The
// registry is static for the lifetime of the process, so one resource per
// account is registered up front alongside the listing.
func RegisterAccountResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listResource := mcp.NewResource(
		"workspace://accounts",
		"Configured Accounts",
		mcp.WithResourceDescription("The Google accounts this server is configured for, with credential status"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(listResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccountList(ctx, request, sc)
	})

	for _, account := range sc.Manager().Registry().Accounts() {
		uri := "workspace://accounts/" + account.Email
		accountResource := mcp.NewResource(
			uri,
			fmt.Sprintf("Account %s", account.Email),
			mcp.WithResourceDescription(fmt.Sprintf("Registry entry and credential status for %s", account.Email)),
			mcp.WithMIMEType("application/json"),
		)

		email := account.Email
		s.AddResource(accountResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return handleAccount(ctx, request, sc, email)
		})
	}

	return nil
}

type accountDocument struct {
	Email       string `json:"email"`
	AccountType string `json:"account_type,omitempty"`
	ExtraInfo   string `json:"extra_info,omitempty"`
	State       string `json:"credential_state"`
	Default     bool   `json:"default,omitempty"`
}

func accountDocumentFor(sc *server.ServerContext, account auth.Account) accountDocument {
	doc := accountDocument{
		Email:       account.Email,
		AccountType: account.AccountType,
		ExtraInfo:   account.ExtraInfo,
		Default:     account.Email == sc.DefaultAccount(),
	}
	state, err := sc.Manager().Inspect(account.Email)
	if err != nil {
		doc.State = fmt.Sprintf("error: %v", err)
	} else {
		doc.State = string(state)
	}
	return doc
}

func handleAccountList(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	accounts := sc.Manager().Registry().Accounts()
	docs := make([]accountDocument, 0, len(accounts))
	for _, account := range accounts {
		docs = append(docs, accountDocumentFor(sc, account))
	}

	jsonData, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account list: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleAccount(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext, email string) ([]mcp.ResourceContents, error) {
	account, ok := sc.Manager().Registry().Lookup(email)
	if !ok {
		return nil, fmt.Errorf("account %q is not configured", email)
	}

	jsonData, err := json.MarshalIndent(accountDocumentFor(sc, account), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
