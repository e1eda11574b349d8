package sheets_tools

import (
	"context"
	"reflect"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    [][]string
		wantErr bool
	}{
		{
			name:  "json string",
			input: `[["name","count"],["a","1"]]`,
			want:  [][]string{{"name", "count"}, {"a", "1"}},
		},
		{
			name:  "json string with numbers",
			input: `[[1,2.5],[true,"x"]]`,
			want:  [][]string{{"1", "2.5"}, {"true", "x"}},
		},
		{
			name: "decoded array",
			input: []interface{}{
				[]interface{}{"a", "b"},
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name:    "flat array",
			input:   `["a","b"]`,
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   "a,b,c",
			wantErr: true,
		},
		{
			name:    "nil",
			input:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValues(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseValues() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseValues() = %v, want %v", got, tt.want)
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
			name: "get values without spreadsheetId",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetValues(ctx, request, nil)
			},
			args: map[string]interface{}{"ranges": "A1:B2"},
		},
		{
			name: "get values without ranges",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleGetValues(ctx, request, nil)
			},
			args: map[string]interface{}{"spreadsheetId": "s1"},
		},
		{
			name: "update without range",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateValues(ctx, request, nil)
			},
			args: map[string]interface{}{"spreadsheetId": "s1", "values": `[["a"]]`},
		},
		{
			name: "append with bad values",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAppendRows(ctx, request, nil)
			},
			args: map[string]interface{}{"spreadsheetId": "s1", "range": "A1", "values": "nope"},
		},
		{
			name: "create without title",
			handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateSpreadsheet(ctx, request, nil)
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
