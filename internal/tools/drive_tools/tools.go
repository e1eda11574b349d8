package drive_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// driveClient resolves the account argument and returns a Drive client for
// it. The third return value is a non-nil tool result when resolution or
// authorization failed.
func driveClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*drive.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.DriveClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

func formatFile(sb *strings.Builder, f *drive.FileInfo) {
	fmt.Fprintf(sb, "%s (id: %s)\n  Type: %s", f.Name, f.ID, f.MimeType)
	if f.IsFolder() {
		sb.WriteString(" [folder]")
	}
	sb.WriteString("\n")
	if f.Size > 0 {
		fmt.Fprintf(sb, "  Size: %d bytes\n", f.Size)
	}
	if !f.ModifiedTime.IsZero() {
		fmt.Fprintf(sb, "  Modified: %s\n", f.ModifiedTime.Format(time.RFC1123))
	}
	if f.WebViewLink != "" {
		fmt.Fprintf(sb, "  Link: %s\n", f.WebViewLink)
	}
}

// RegisterDriveTools registers all Drive tools with the MCP server. Upload,
// folder creation, sharing and deletion require write mode.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterFileContentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register file content tools: %w", err)
	}
	if err := RegisterShareTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register share tools: %w", err)
	}

	searchFilesTool := mcp.NewTool("drive_search_files",
		mcp.WithDescription("Search Google Drive files with Drive's query language"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("query",
			mcp.Description("Drive query, e.g. \"name contains 'report'\" or \"mimeType='application/pdf'\". Empty lists recent files."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 25, max: 1000)"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order, e.g. 'folder,modifiedTime desc,name'"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token from a previous search to fetch the next page"),
		),
		mcp.WithBoolean("includeTrashed",
			mcp.Description("Include trashed files (default: false)"),
		),
	)

	s.AddTool(searchFilesTool, common.InstrumentedToolHandlerWithService(
		"drive_search_files", "drive", "search_files", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchFiles(ctx, request, sc)
		}))

	getFileTool := mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get the metadata of a Google Drive file, including permissions"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)

	s.AddTool(getFileTool, common.InstrumentedToolHandlerWithService(
		"drive_get_file", "drive", "get_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFile(ctx, request, sc)
		}))

	return nil
}

func handleSearchFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	options := &drive.ListOptions{MaxResults: 25}
	if v, ok := args["query"].(string); ok {
		options.Query = v
	}
	if v, ok := args["maxResults"].(float64); ok && v > 0 {
		options.MaxResults = int(v)
	}
	if v, ok := args["orderBy"].(string); ok {
		options.OrderBy = v
	}
	if v, ok := args["pageToken"].(string); ok {
		options.PageToken = v
	}
	if v, ok := args["includeTrashed"].(bool); ok {
		options.IncludeTrashed = v
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	files, nextPageToken, err := client.ListFiles(ctx, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search files: %v", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText("No files matched the query."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d files:\n", len(files))
	for _, f := range files {
		formatFile(&sb, f)
	}
	if nextPageToken != "" {
		fmt.Fprintf(&sb, "\nMore results available, pass pageToken: %s\n", nextPageToken)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	f, err := client.GetFile(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get file: %v", err)), nil
	}

	var sb strings.Builder
	formatFile(&sb, f)
	if len(f.Owners) > 0 {
		owners := make([]string, 0, len(f.Owners))
		for _, o := range f.Owners {
			owners = append(owners, o.EmailAddress)
		}
		fmt.Fprintf(&sb, "  Owners: %s\n", strings.Join(owners, ", "))
	}
	if len(f.Permissions) > 0 {
		sb.WriteString("  Permissions:\n")
		for _, p := range f.Permissions {
			grantee := p.EmailAddress
			if grantee == "" {
				grantee = p.Domain
			}
			if grantee == "" {
				grantee = p.Type
			}
			fmt.Fprintf(&sb, "    - %s: %s\n", grantee, p.Role)
		}
	}
	if f.Trashed {
		sb.WriteString("  In trash\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
