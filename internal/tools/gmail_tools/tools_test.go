package gmail_tools

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

// Argument validation happens before any client is resolved, so these
// handlers never touch the server context.
func TestHandlersRejectMissingArguments(t *testing.T) {
	tests := []struct {
		name    string
		handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
	}{
		{
			name: "list messages without query",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleListMessages(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "get message without messageId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetMessage(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "archive without messageIds",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleArchiveMessages(ctx, request, nil)
			},
			args: map[string]interface{}{},
		},
		{
			name: "modify labels without label arguments",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleModifyLabels(ctx, request, nil)
			},
			args: map[string]interface{}{"messageIds": "msg-1"},
		},
		{
			name: "get attachment with bad encoding",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetAttachment(ctx, request, nil)
			},
			args: map[string]interface{}{
				"messageId":    "msg-1",
				"attachmentId": "att-1",
				"encoding":     "hex",
			},
		},
		{
			name: "message bodies with bad format",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetMessageBodies(ctx, request, nil)
			},
			args: map[string]interface{}{
				"messageIds": "msg-1",
				"format":     "pdf",
			},
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
