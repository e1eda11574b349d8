package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// RegisterShareTools registers sharing and deletion tools. Both mutate
// Drive, so neither is registered in read-only mode.
func RegisterShareTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	shareFileTool := mcp.NewTool("drive_share_file",
		mcp.WithDescription("Grant a user, group, domain or anyone access to a Google Drive file"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to share"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Grantee type: 'user', 'group', 'domain' or 'anyone'"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Role to grant: 'reader', 'commenter' or 'writer'"),
		),
		mcp.WithString("emailAddress",
			mcp.Description("Grantee email, required for type 'user' or 'group'"),
		),
		mcp.WithString("domain",
			mcp.Description("Domain name, required for type 'domain'"),
		),
		mcp.WithBoolean("sendNotification",
			mcp.Description("Send a notification email to the grantee (default: false)"),
		),
		mcp.WithString("message",
			mcp.Description("Message to include in the notification email"),
		),
	)

	s.AddTool(shareFileTool, common.InstrumentedToolHandlerWithService(
		"drive_share_file", "drive", "share_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShareFile(ctx, request, sc)
		}))

	deleteFilesTool := mcp.NewTool("drive_delete_files",
		mcp.WithDescription("Permanently delete one or more Google Drive files"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to delete"),
		),
	)

	s.AddTool(deleteFilesTool, common.InstrumentedToolHandlerWithService(
		"drive_delete_files", "drive", "delete_files", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteFiles(ctx, request, sc)
		}))

	return nil
}

func handleShareFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	granteeType, ok := args["type"].(string)
	if !ok || granteeType == "" {
		return mcp.NewToolResultError("type is required"), nil
	}
	role, ok := args["role"].(string)
	if !ok || role == "" {
		return mcp.NewToolResultError("role is required"), nil
	}

	options := &drive.ShareOptions{
		Type: granteeType,
		Role: role,
	}
	if v, ok := args["emailAddress"].(string); ok {
		options.EmailAddress = v
	}
	if v, ok := args["domain"].(string); ok {
		options.Domain = v
	}
	if v, ok := args["sendNotification"].(bool); ok {
		options.SendNotificationEmail = v
	}
	if v, ok := args["message"].(string); ok {
		options.EmailMessage = v
	}

	switch granteeType {
	case "user", "group":
		if options.EmailAddress == "" {
			return mcp.NewToolResultError(fmt.Sprintf("emailAddress is required for type %q", granteeType)), nil
		}
	case "domain":
		if options.Domain == "" {
			return mcp.NewToolResultError("domain is required for type \"domain\""), nil
		}
	case "anyone":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported type %q, use 'user', 'group', 'domain' or 'anyone'", granteeType)), nil
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	permission, err := client.ShareFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to share file: %v", err)), nil
	}

	grantee := permission.EmailAddress
	if grantee == "" {
		grantee = permission.Domain
	}
	if grantee == "" {
		grantee = permission.Type
	}
	return mcp.NewToolResultText(fmt.Sprintf("File %s shared with %s as %s (permission id: %s)",
		fileID, grantee, permission.Role, permission.ID)), nil
}

func handleDeleteFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(fileIDs, func(fileID string) (string, error) {
		if err := client.DeleteFile(ctx, fileID); err != nil {
			return "", err
		}
		return fmt.Sprintf("File %s deleted", fileID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
