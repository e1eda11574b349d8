package drive_tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// maxInlineContent caps how much file content a single tool result carries.
const maxInlineContent = 10 << 20

// RegisterFileContentTools registers download, export and upload tools.
// Upload requires write mode.
func RegisterFileContentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	downloadFileTool := mcp.NewTool("drive_download_file",
		mcp.WithDescription("Download the content of a Google Drive file. Not usable for Google Docs/Sheets/Slides files; export those instead."),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
		mcp.WithString("encoding",
			mcp.Description("Result encoding: 'text' (default) or 'base64'"),
		),
	)

	s.AddTool(downloadFileTool, common.InstrumentedToolHandlerWithService(
		"drive_download_file", "drive", "download_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDownloadFile(ctx, request, sc)
		}))

	exportFileTool := mcp.NewTool("drive_export_file",
		mcp.WithDescription("Export a Google Docs/Sheets/Slides file to another format, e.g. text/plain, text/csv or application/pdf"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
		mcp.WithString("mimeType",
			mcp.Required(),
			mcp.Description("Target MIME type, e.g. 'text/plain', 'text/csv', 'application/pdf'"),
		),
		mcp.WithString("encoding",
			mcp.Description("Result encoding: 'text' (default) or 'base64'"),
		),
	)

	s.AddTool(exportFileTool, common.InstrumentedToolHandlerWithService(
		"drive_export_file", "drive", "export_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExportFile(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	uploadFileTool := mcp.NewTool("drive_upload_file",
		mcp.WithDescription("Upload a file to Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("File name in Drive"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("File content, plain text or base64 depending on 'encoding'"),
		),
		mcp.WithString("encoding",
			mcp.Description("Content encoding: 'text' (default) or 'base64'"),
		),
		mcp.WithString("mimeType",
			mcp.Description("MIME type of the content; Drive detects it when empty"),
		),
		mcp.WithString("parentFolderId",
			mcp.Description("ID of the folder to upload into (default: My Drive root)"),
		),
	)

	s.AddTool(uploadFileTool, common.InstrumentedToolHandlerWithService(
		"drive_upload_file", "drive", "upload_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUploadFile(ctx, request, sc)
		}))

	createFolderTool := mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a folder in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name"),
		),
		mcp.WithString("parentFolderId",
			mcp.Description("ID of the parent folder (default: My Drive root)"),
		),
	)

	s.AddTool(createFolderTool, common.InstrumentedToolHandlerWithService(
		"drive_create_folder", "drive", "create_folder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFolder(ctx, request, sc)
		}))

	return nil
}

// renderContent reads at most maxInlineContent bytes and renders them in the
// requested encoding.
func renderContent(r io.Reader, encoding string) (*mcp.CallToolResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInlineContent+1))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read content: %v", err)), nil
	}
	if len(data) > maxInlineContent {
		return mcp.NewToolResultError(fmt.Sprintf("content exceeds the %d byte limit", maxInlineContent)), nil
	}

	if encoding == "text" {
		if !utf8.Valid(data) {
			return mcp.NewToolResultError("content is not valid UTF-8 text, request it as base64"), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(data)), nil
}

func contentEncoding(args map[string]interface{}) (string, *mcp.CallToolResult) {
	encoding := "text"
	if v, ok := args["encoding"].(string); ok && v != "" {
		encoding = v
	}
	if encoding != "text" && encoding != "base64" {
		return "", mcp.NewToolResultError(fmt.Sprintf("unsupported encoding %q, use 'text' or 'base64'", encoding))
	}
	return encoding, nil
}

func handleDownloadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	encoding, errResult := contentEncoding(args)
	if errResult != nil {
		return errResult, nil
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	body, err := client.DownloadFile(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to download file: %v", err)), nil
	}
	defer body.Close()

	return renderContent(body, encoding)
}

func handleExportFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	fileID, ok := args["fileId"].(string)
	if !ok || fileID == "" {
		return mcp.NewToolResultError("fileId is required"), nil
	}
	mimeType, ok := args["mimeType"].(string)
	if !ok || mimeType == "" {
		return mcp.NewToolResultError("mimeType is required"), nil
	}
	encoding, errResult := contentEncoding(args)
	if errResult != nil {
		return errResult, nil
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	body, err := client.ExportFile(ctx, fileID, mimeType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export file: %v", err)), nil
	}
	defer body.Close()

	return renderContent(body, encoding)
}

func handleUploadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	content, ok := args["content"].(string)
	if !ok || content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}
	encoding, errResult := contentEncoding(args)
	if errResult != nil {
		return errResult, nil
	}

	var reader io.Reader = strings.NewReader(content)
	if encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("content is not valid base64: %v", err)), nil
		}
		reader = strings.NewReader(string(decoded))
	}

	options := &drive.UploadOptions{}
	if v, ok := args["mimeType"].(string); ok {
		options.MimeType = v
	}
	if v, ok := args["parentFolderId"].(string); ok && v != "" {
		options.ParentFolders = []string{v}
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	f, err := client.UploadFile(ctx, name, reader, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to upload file: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("File uploaded: %s (id: %s)\n%s", f.Name, f.ID, f.WebViewLink)), nil
}

func handleCreateFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	var parents []string
	if v, ok := args["parentFolderId"].(string); ok && v != "" {
		parents = []string{v}
	}

	client, _, errResult := driveClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	f, err := client.CreateFolder(ctx, name, parents)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Folder created: %s (id: %s)", f.Name, f.ID)), nil
}
