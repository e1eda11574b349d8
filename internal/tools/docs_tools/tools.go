package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/docs"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// docsClient resolves the account argument and returns a Docs client for
// it. The third return value is a non-nil tool result when resolution or
// authorization failed.
func docsClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*docs.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.DocsClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

// RegisterDocsTools registers all Docs tools with the MCP server. Document
// creation and appending require write mode.
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getDocumentTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get the content of a Google Docs document as markdown or plain text"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'text'"),
		),
	)

	s.AddTool(getDocumentTool, common.InstrumentedToolHandlerWithService(
		"docs_get_document", "docs", "get_document", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createDocumentTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create an empty Google Docs document"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Document title"),
		),
	)

	s.AddTool(createDocumentTool, common.InstrumentedToolHandlerWithService(
		"docs_create_document", "docs", "create_document", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDocument(ctx, request, sc)
		}))

	appendTextTool := mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of a Google Docs document"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the document"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to append"),
		),
	)

	s.AddTool(appendTextTool, common.InstrumentedToolHandlerWithService(
		"docs_append_text", "docs", "append_text", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendText(ctx, request, sc)
		}))

	return nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	format := "markdown"
	if v, ok := args["format"].(string); ok && v != "" {
		format = v
	}
	if format != "markdown" && format != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q, use 'markdown' or 'text'", format)), nil
	}

	client, _, errResult := docsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	var content string
	var err error
	if format == "text" {
		content, err = client.GetDocumentAsPlainText(documentID)
	} else {
		content, err = client.GetDocumentAsMarkdown(documentID)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	client, _, errResult := docsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	info, err := client.CreateDocument(title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Document created: %s (id: %s)", info.Title, info.ID)), nil
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	client, _, errResult := docsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	if err := client.AppendText(documentID, text); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append text: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Appended %d characters to document %s", len(text), documentID)), nil
}
