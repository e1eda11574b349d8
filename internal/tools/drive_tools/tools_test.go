package drive_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestRenderContent(t *testing.T) {
	t.Run("text passthrough", func(t *testing.T) {
		result, err := renderContent(strings.NewReader("hello world"), "text")
		if err != nil {
			t.Fatalf("renderContent() error = %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected error result: %s", resultText(t, result))
		}
		if got := resultText(t, result); got != "hello world" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("binary as text fails", func(t *testing.T) {
		result, err := renderContent(strings.NewReader("\xff\xfe\x00"), "text")
		if err != nil {
			t.Fatalf("renderContent() error = %v", err)
		}
		if !result.IsError {
			t.Error("binary content rendered as text should fail")
		}
	})

	t.Run("base64", func(t *testing.T) {
		result, err := renderContent(strings.NewReader("hi"), "base64")
		if err != nil {
			t.Fatalf("renderContent() error = %v", err)
		}
		if got := resultText(t, result); got != "aGk=" {
			t.Errorf("content = %q, want aGk=", got)
		}
	})
}

func TestContentEncoding(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    string
		wantErr bool
	}{
		{name: "default", args: map[string]interface{}{}, want: "text"},
		{name: "explicit base64", args: map[string]interface{}{"encoding": "base64"}, want: "base64"},
		{name: "unsupported", args: map[string]interface{}{"encoding": "hex"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errResult := contentEncoding(tt.args)
			if tt.wantErr {
				if errResult == nil {
					t.Fatal("expected an error result")
				}
				return
			}
			if errResult != nil {
				t.Fatal("unexpected error result")
			}
			if got != tt.want {
				t.Errorf("contentEncoding() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandlersRejectMissingArguments(t *testing.T) {
	tests := []struct {
		name    string
		handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
	}{
		{
			name: "get file without fileId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetFile(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "export without mimeType",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleExportFile(ctx, request, nil)
			},
			args: map[string]interface{}{"fileId": "f1"},
		},
		{
			name: "upload without content",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUploadFile(ctx, request, nil)
			},
			args: map[string]interface{}{"name": "report.txt"},
		},
		{
			name: "share user without emailAddress",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleShareFile(ctx, request, nil)
			},
			args: map[string]interface{}{"fileId": "f1", "type": "user", "role": "reader"},
		},
		{
			name: "share with unknown type",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleShareFile(ctx, request, nil)
			},
			args: map[string]interface{}{"fileId": "f1", "type": "everyone", "role": "reader"},
		},
		{
			name: "delete without fileIds",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteFiles(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), requestWithArgs(tt.args))
			if err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if !result.IsError {
				t.Error("expected a tool error result")
			}
		})
	}
}
