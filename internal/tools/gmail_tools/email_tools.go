package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// RegisterEmailTools registers draft and send tools with the MCP server.
// Both mutate the mailbox, so neither is registered in read-only mode.
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	emailArgs := []mcp.ToolOption{
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithBoolean("isHTML",
			mcp.Description("Whether the body is HTML (default: false for plain text)"),
		),
	}

	sendEmailTool := mcp.NewTool("gmail_send_message",
		append([]mcp.ToolOption{
			mcp.WithDescription("Send an email through Gmail"),
		}, emailArgs...)...,
	)

	s.AddTool(sendEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_send_message", "gmail", "send_message", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendMessage(ctx, request, sc)
		}))

	createDraftTool := mcp.NewTool("gmail_create_draft",
		append([]mcp.ToolOption{
			mcp.WithDescription("Create a Gmail draft without sending it"),
		}, emailArgs...)...,
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandlerWithService(
		"gmail_create_draft", "gmail", "create_draft", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))

	return nil
}

// emailFromArgs builds an EmailMessage from tool arguments. The second
// return value is a non-nil tool result when a required field is missing.
func emailFromArgs(args map[string]interface{}) (*gmail.EmailMessage, *mcp.CallToolResult) {
	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return nil, mcp.NewToolResultError("to is required")
	}
	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return nil, mcp.NewToolResultError("subject is required")
	}
	body, ok := args["body"].(string)
	if !ok || body == "" {
		return nil, mcp.NewToolResultError("body is required")
	}

	msg := &gmail.EmailMessage{
		To:      splitAddresses(toStr),
		Subject: subject,
		Body:    body,
	}
	if ccVal, ok := args["cc"].(string); ok {
		msg.Cc = splitAddresses(ccVal)
	}
	if bccVal, ok := args["bcc"].(string); ok {
		msg.Bcc = splitAddresses(bccVal)
	}
	if isHTMLVal, ok := args["isHTML"].(bool); ok {
		msg.IsHTML = isHTMLVal
	}
	return msg, nil
}

func splitAddresses(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	msg, errResult := emailFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	client, account, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	id, err := client.SendEmail(msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Email sent from %s to %s (message id: %s)",
		account, strings.Join(msg.To, ", "), id)), nil
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	msg, errResult := emailFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	draft, err := client.CreateDraft(msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft created (draft id: %s, message id: %s)",
		draft.ID, draft.MessageID)), nil
}
