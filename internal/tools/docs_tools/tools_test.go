package docs_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func TestHandlersRejectMissingArguments(t *testing.T) {
	tests := []struct {
		name    string
		handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
	}{
		{
			name: "get document without documentId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetDocument(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "get document with bad format",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetDocument(ctx, request, nil)
			},
			args: map[string]interface{}{"documentId": "d1", "format": "pdf"},
		},
		{
			name: "create document without title",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateDocument(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "append without text",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAppendText(ctx, request, nil)
			},
			args: map[string]interface{}{"documentId": "d1"},
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
