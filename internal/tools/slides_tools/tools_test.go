package slides_tools

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
			name: "get presentation without presentationId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetPresentation(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "get page text without pageObjectId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetPageText(ctx, request, nil)
			},
			args: map[string]interface{}{"presentationId": "p1"},
		},
		{
			name: "create presentation without title",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreatePresentation(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "add slide without presentationId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAddSlide(ctx, request, nil)
			},
			args: map[string]interface{}{"layout": "BLANK"},
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
