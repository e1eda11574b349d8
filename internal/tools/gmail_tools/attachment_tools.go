package gmail_tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// RegisterAttachmentTools registers attachment and message body tools with
// the MCP server. All of them are read-only.
func RegisterAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAttachmentsTool := mcp.NewTool("gmail_list_attachments",
		mcp.WithDescription("List all attachments in a Gmail message"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
	)

	s.AddTool(listAttachmentsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_attachments", "gmail", "list_attachments", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAttachments(ctx, request, sc)
		}))

	getAttachmentTool := mcp.NewTool("gmail_get_attachment",
		mcp.WithDescription("Get the content of a Gmail attachment"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("attachmentId",
			mcp.Required(),
			mcp.Description("The ID of the attachment"),
		),
		mcp.WithString("encoding",
			mcp.Description("Result encoding: 'base64' (default) or 'text'"),
		),
	)

	s.AddTool(getAttachmentTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_attachment", "gmail", "get_attachment", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAttachment(ctx, request, sc)
		}))

	getMessageBodiesTool := mcp.NewTool("gmail_get_message_bodies",
		mcp.WithDescription("Extract the text or HTML body from one or more Gmail messages"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)

	s.AddTool(getMessageBodiesTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_message_bodies", "gmail", "get_message_bodies", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessageBodies(ctx, request, sc)
		}))

	return nil
}

func handleListAttachments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	attachments, err := client.ListAttachments(messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list attachments: %v", err)), nil
	}
	if len(attachments) == 0 {
		return mcp.NewToolResultText("Message has no attachments."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d attachments:\n", len(attachments))
	for i, a := range attachments {
		fmt.Fprintf(&sb, "%d. %s (%s, %d bytes)\n   attachmentId: %s\n",
			i+1, a.Filename, a.MimeType, a.Size, a.AttachmentID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}
	attachmentID, ok := args["attachmentId"].(string)
	if !ok || attachmentID == "" {
		return mcp.NewToolResultError("attachmentId is required"), nil
	}
	encoding := "base64"
	if encodingVal, ok := args["encoding"].(string); ok && encodingVal != "" {
		encoding = encodingVal
	}
	if encoding != "base64" && encoding != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported encoding %q, use 'base64' or 'text'", encoding)), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	data, err := client.GetAttachment(messageID, attachmentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get attachment: %v", err)), nil
	}

	if encoding == "text" {
		if !utf8.Valid(data) {
			return mcp.NewToolResultError("attachment is not valid UTF-8 text, request it as base64"), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(data)), nil
}

func handleGetMessageBodies(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := "text"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}
	if format != "text" && format != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q, use 'text' or 'html'", format)), nil
	}

	client, _, errResult := gmailClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		body, err := client.GetMessageBody(messageID, format)
		if err != nil {
			return "", err
		}
		return body, nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
