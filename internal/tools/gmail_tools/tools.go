package gmail_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// gmailClient resolves the account argument and returns a Gmail client for
// it. The third return value is a non-nil tool result when resolution or
// authorization failed.
func gmailClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*gmail.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.GmailClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

// RegisterGmailTools registers all Gmail tools with the MCP server. Sending
// mail and creating drafts require write mode.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterAttachmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}
	if err := RegisterEmailTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register email tools: %w", err)
	}

	listMessagesTool := mcp.NewTool("gmail_list_messages",
		mcp.WithDescription("List Gmail messages matching a search query"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com newer_than:7d')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listMessagesTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_messages", "gmail", "list_messages", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc)
		}))

	getMessageTool := mcp.NewTool("gmail_get_message",
		mcp.WithDescription("Get the headers, snippet and labels of a Gmail message"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message"),
		),
	)

	s.AddTool(getMessageTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_message", "gmail", "get_message", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	listLabelsTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List the labels of a Gmail account with message counts"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_labels", "gmail", "list_labels", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	archiveMessagesTool := mcp.NewTool("gmail_archive_messages",
		mcp.WithDescription("Archive one or more Gmail messages by removing them from the inbox"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs to archive"),
		),
	)

	s.AddTool(archiveMessagesTool, common.InstrumentedToolHandlerWithService(
		"gmail_archive_messages", "gmail", "archive_messages", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleArchiveMessages(ctx, request, sc)
		}))

	modifyLabelsTool := mcp.NewTool("gmail_modify_labels",
		mcp.WithDescription("Add and/or remove labels on one or more Gmail messages"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs to modify"),
		),
		mcp.WithString("addLabelIds",
			mcp.Description("Label ID (string) or array of label IDs to add"),
		),
		mcp.WithString("removeLabelIds",
			mcp.Description("Label ID (string) or array of label IDs to remove"),
		),
	)

	s.AddTool(modifyLabelsTool, common.InstrumentedToolHandlerWithService(
		"gmail_modify_labels", "gmail", "modify_labels", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyLabels(ctx, request, sc)
		}))

	return nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok && maxResultsVal > 0 {
		maxResults = int64(maxResultsVal)
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	messages, err := client.ListMessages(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}
	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages matched the query."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d messages:\n", len(messages))
	for i, m := range messages {
		fmt.Fprintf(&sb, "%d. %s\n   From: %s\n   Date: %s\n   ID: %s (thread %s)\n",
			i+1, m.Subject, m.From, m.Date.Format(time.RFC1123), m.ID, m.ThreadID)
		if m.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", m.Snippet)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	m, err := client.GetMessageSummary(messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject: %s\nFrom: %s\nTo: %s\nDate: %s\nLabels: %s\nID: %s (thread %s)\n",
		m.Subject, m.From, m.To, m.Date.Format(time.RFC1123),
		strings.Join(m.LabelIDs, ", "), m.ID, m.ThreadID)
	if m.Snippet != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Snippet)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, _, errResult := gmailClient(ctx, sc, request.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	labels, err := client.ListLabels()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d labels:\n", len(labels))
	for _, l := range labels {
		fmt.Fprintf(&sb, "- %s (%s, id: %s, messages: %d, unread: %d)\n",
			l.Name, l.Type, l.ID, l.MessagesTotal, l.MessagesUnread)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleArchiveMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.ArchiveMessage(messageID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s archived successfully", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleModifyLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var add, remove []string
	if _, ok := args["addLabelIds"]; ok {
		if add, err = batch.ParseStringOrArray(args["addLabelIds"], "addLabelIds"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if _, ok := args["removeLabelIds"]; ok {
		if remove, err = batch.ParseStringOrArray(args["removeLabelIds"], "removeLabelIds"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if len(add) == 0 && len(remove) == 0 {
		return mcp.NewToolResultError("at least one of addLabelIds or removeLabelIds is required"), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.ModifyLabels(messageID, add, remove); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s labels updated", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
