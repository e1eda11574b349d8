package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/sheets"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// sheetsClient resolves the account argument and returns a Sheets client
// for it. The third return value is a non-nil tool result when resolution
// or authorization failed.
func sheetsClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*sheets.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.SheetsClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

// parseValues turns the "values" argument into rows of cells. It accepts a
// JSON string or an already-decoded array of arrays; scalar cells are
// stringified.
func parseValues(raw interface{}) ([][]string, error) {
	if s, ok := raw.(string); ok {
		var decoded interface{}
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("values must be a JSON array of arrays: %w", err)
		}
		raw = decoded
	}

	rows, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("values must be an array of arrays, e.g. [[\"a\",\"b\"],[\"c\",\"d\"]]")
	}
	out := make([][]string, 0, len(rows))
	for i, rowVal := range rows {
		row, ok := rowVal.([]interface{})
		if !ok {
			return nil, fmt.Errorf("values row %d is not an array", i)
		}
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		out = append(out, cells)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("values must contain at least one row")
	}
	return out, nil
}

func formatValueRange(sb *strings.Builder, vr *sheets.ValueRange) {
	fmt.Fprintf(sb, "%s:\n", vr.Range)
	if len(vr.Values) == 0 {
		sb.WriteString("  (empty)\n")
		return
	}
	for _, row := range vr.Values {
		fmt.Fprintf(sb, "  %s\n", strings.Join(row, "\t"))
	}
}

// RegisterSheetsTools registers all Sheets tools with the MCP server.
// Updating, appending and spreadsheet creation require write mode.
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getValuesTool := mcp.NewTool("sheets_get_values",
		mcp.WithDescription("Read one or more cell ranges from a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("ranges",
			mcp.Required(),
			mcp.Description("A1-notation range (string) or array of ranges, e.g. 'Sheet1!A1:C10'"),
		),
	)

	s.AddTool(getValuesTool, common.InstrumentedToolHandlerWithService(
		"sheets_get_values", "sheets", "get_values", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetValues(ctx, request, sc)
		}))

	getSpreadsheetTool := mcp.NewTool("sheets_get_spreadsheet",
		mcp.WithDescription("Get the title, URL and sheet names of a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
	)

	s.AddTool(getSpreadsheetTool, common.InstrumentedToolHandlerWithService(
		"sheets_get_spreadsheet", "sheets", "get_spreadsheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetSpreadsheet(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	updateValuesTool := mcp.NewTool("sheets_update_values",
		mcp.WithDescription("Overwrite a cell range in a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range to write, e.g. 'Sheet1!A1'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of row arrays, e.g. [[\"name\",\"count\"],[\"a\",\"1\"]]"),
		),
	)

	s.AddTool(updateValuesTool, common.InstrumentedToolHandlerWithService(
		"sheets_update_values", "sheets", "update_values", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateValues(ctx, request, sc)
		}))

	appendValuesTool := mcp.NewTool("sheets_append_rows",
		mcp.WithDescription("Append rows after the last row of a table in a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("A1-notation range locating the table, e.g. 'Sheet1!A1'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of row arrays to append"),
		),
	)

	s.AddTool(appendValuesTool, common.InstrumentedToolHandlerWithService(
		"sheets_append_rows", "sheets", "append_rows", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendRows(ctx, request, sc)
		}))

	createSpreadsheetTool := mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a Google Sheets spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Spreadsheet title"),
		),
		mcp.WithString("sheetTitles",
			mcp.Description("Sheet name (string) or array of sheet names (default: one 'Sheet1')"),
		),
	)

	s.AddTool(createSpreadsheetTool, common.InstrumentedToolHandlerWithService(
		"sheets_create_spreadsheet", "sheets", "create_spreadsheet", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateSpreadsheet(ctx, request, sc)
		}))

	return nil
}

func handleGetValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}
	ranges, err := batch.ParseStringOrArray(args["ranges"], "ranges")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := sheetsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	var sb strings.Builder
	if len(ranges) == 1 {
		vr, err := client.GetValues(spreadsheetID, ranges[0])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get values: %v", err)), nil
		}
		formatValueRange(&sb, vr)
	} else {
		valueRanges, err := client.BatchGetValues(spreadsheetID, ranges)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get values: %v", err)), nil
		}
		for _, vr := range valueRanges {
			formatValueRange(&sb, vr)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetSpreadsheet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	client, _, errResult := sheetsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	info, err := client.GetSpreadsheet(spreadsheetID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get spreadsheet: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s (id: %s)\nURL: %s\nSheets: %s\n",
		info.Title, info.ID, info.URL, strings.Join(info.Sheets, ", "))), nil
}

func handleUpdateValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}
	rangeA1, ok := args["range"].(string)
	if !ok || rangeA1 == "" {
		return mcp.NewToolResultError("range is required"), nil
	}
	values, err := parseValues(args["values"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := sheetsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	result, err := client.UpdateValues(spreadsheetID, rangeA1, values)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update values: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Updated %s: %d cells in %d rows",
		result.UpdatedRange, result.UpdatedCells, result.UpdatedRows)), nil
}

func handleAppendRows(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}
	rangeA1, ok := args["range"].(string)
	if !ok || rangeA1 == "" {
		return mcp.NewToolResultError("range is required"), nil
	}
	values, err := parseValues(args["values"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := sheetsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	result, err := client.AppendValues(spreadsheetID, rangeA1, values)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append rows: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Appended %d rows at %s",
		result.UpdatedRows, result.UpdatedRange)), nil
}

func handleCreateSpreadsheet(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	var sheetTitles []string
	if _, ok := args["sheetTitles"]; ok {
		parsed, err := batch.ParseStringOrArray(args["sheetTitles"], "sheetTitles")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sheetTitles = parsed
	}

	client, _, errResult := sheetsClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	info, err := client.CreateSpreadsheet(title, sheetTitles)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Spreadsheet created: %s (id: %s)\nURL: %s",
		info.Title, info.ID, info.URL)), nil
}
