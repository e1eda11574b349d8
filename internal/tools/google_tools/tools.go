package google_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/auth"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// RegisterGoogleTools registers the account and authorization tools with the
// MCP server. These are always available, including in read-only mode, since
// nothing works without a credential.
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAccountsTool := mcp.NewTool("workspace_list_accounts",
		mcp.WithDescription("List the Google accounts configured for this server"),
	)

	s.AddTool(listAccountsTool, common.InstrumentedToolHandler("workspace_list_accounts", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAccounts(ctx, request, sc)
		}))

	accountStatusTool := mcp.NewTool("workspace_account_status",
		mcp.WithDescription("Report the credential status of a configured Google account"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
	)

	s.AddTool(accountStatusTool, common.InstrumentedToolHandler("workspace_account_status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAccountStatus(ctx, request, sc)
		}))

	beginAuthTool := mcp.NewTool("workspace_begin_auth",
		mcp.WithDescription("Run the OAuth authorization flow for a Google account. Opens a browser for consent and waits for the local callback listener to receive the redirect. If the flow times out the result contains the consent URL; open it manually and either retry or pass the code to workspace_complete_auth."),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
	)

	s.AddTool(beginAuthTool, common.InstrumentedToolHandler("workspace_begin_auth", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBeginAuth(ctx, request, sc)
		}))

	completeAuthTool := mcp.NewTool("workspace_complete_auth",
		mcp.WithDescription("Complete the OAuth authorization flow with a pasted authorization code. Use this after workspace_begin_auth when the local callback listener is unreachable."),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The authorization code from Google's consent page"),
		),
	)

	s.AddTool(completeAuthTool, common.InstrumentedToolHandler("workspace_complete_auth", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteAuth(ctx, request, sc)
		}))

	return nil
}

func handleListAccounts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	accounts := sc.Manager().Registry().Accounts()
	if len(accounts) == 0 {
		return mcp.NewToolResultText("No accounts are configured. Add accounts to the accounts file and restart the server."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Configured accounts (%d):\n", len(accounts))
	defaultAccount := sc.DefaultAccount()
	for _, a := range accounts {
		fmt.Fprintf(&sb, "- %s", a.Email)
		if a.AccountType != "" {
			fmt.Fprintf(&sb, " (%s)", a.AccountType)
		}
		if a.Email == defaultAccount {
			sb.WriteString(" [default]")
		}
		if a.ExtraInfo != "" {
			fmt.Fprintf(&sb, "\n  %s", a.ExtraInfo)
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleAccountStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := common.GetAccountFromArgs(request.GetArguments(), sc.DefaultAccount())
	if account == "" {
		return common.MissingAccountResult(), nil
	}

	state, err := sc.Manager().Inspect(account)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to inspect account %q: %v", account, err)), nil
	}

	var detail string
	switch state {
	case auth.StateValid:
		detail = "A valid credential with a refresh token is on file."
	case auth.StateNotConfigured:
		detail = "The account is not in the account registry. Add it to the accounts file and restart the server."
	case auth.StateNoStoredCredential:
		detail = "No credential is stored yet. Run workspace_begin_auth to authorize."
	case auth.StateUnderScoped:
		detail = "The stored credential does not cover all required scopes. Run workspace_begin_auth to re-authorize."
	case auth.StateNoRefreshToken:
		detail = "The stored credential has no refresh token and will expire. Run workspace_begin_auth to re-authorize."
	}

	return mcp.NewToolResultText(fmt.Sprintf("Account %s: %s\n%s", account, state, detail)), nil
}

func handleBeginAuth(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := common.GetAccountFromArgs(request.GetArguments(), sc.DefaultAccount())
	if account == "" {
		return common.MissingAccountResult(), nil
	}

	cred, err := sc.Manager().Ensure(ctx, account)
	if err != nil {
		return common.AuthErrorResult(account, err), nil
	}

	if cred.Email != account {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Authorization complete, but consent was granted as %s rather than %s. The credential is stored under %s.",
			cred.Email, account, cred.Email)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Authorization complete for %s. All tools can now act on this account.", account)), nil
}

func handleCompleteAuth(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return common.MissingAccountResult(), nil
	}

	code, ok := args["code"].(string)
	if !ok || code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	cred, err := sc.Manager().CompleteManual(ctx, account, code)
	if err != nil {
		return common.AuthErrorResult(account, err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Authorization complete for %s.", cred.Email)), nil
}
