// Package sheets_tools provides MCP tools for Google Sheets.
//
// sheets_get_values and sheets_get_spreadsheet are read tools. Write tools,
// only registered outside read-only mode: sheets_update_values,
// sheets_append_rows and sheets_create_spreadsheet. Cell values are passed
// as JSON arrays of row arrays and written with USER_ENTERED semantics, so
// formulas and numbers behave as if typed in the UI.
package sheets_tools
