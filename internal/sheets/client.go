package sheets

import (
	"context"
	"fmt"
	"net/http"

	sheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// ValueRange represents the cell values of a single A1 range
type ValueRange struct {
	Range  string
	Values [][]string
}

// SpreadsheetInfo represents a created or referenced spreadsheet
type SpreadsheetInfo struct {
	ID     string
	Title  string
	URL    string
	Sheets []string
}

// UpdateResult reports how much an update or append changed
type UpdateResult struct {
	UpdatedRange   string
	UpdatedRows    int64
	UpdatedColumns int64
	UpdatedCells   int64
}

// Client wraps the Google Sheets API service for a single account
type Client struct {
	svc     *sheets.Service
	account string
}

// NewClient creates a Sheets client for the given account. The HTTP
// client must already carry OAuth credentials for that account.
func NewClient(ctx context.Context, account string, httpClient *http.Client) (*Client, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// Account returns the account email this client is associated with
func (c *Client) Account() string {
	return c.account
}

// GetValues reads the values of a single A1 range
func (c *Client) GetValues(spreadsheetID, rangeA1 string) (*ValueRange, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if rangeA1 == "" {
		return nil, fmt.Errorf("range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values for %s: %w", rangeA1, err)
	}

	return &ValueRange{
		Range:  resp.Range,
		Values: toStringRows(resp.Values),
	}, nil
}

// BatchGetValues reads the values of several A1 ranges in one call
func (c *Client) BatchGetValues(spreadsheetID string, ranges []string) ([]*ValueRange, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("at least one range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch get values: %w", err)
	}

	results := make([]*ValueRange, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		results = append(results, &ValueRange{
			Range:  vr.Range,
			Values: toStringRows(vr.Values),
		})
	}
	return results, nil
}

// UpdateValues overwrites the values of a single A1 range. Input values
// are parsed by Sheets the way typed input would be (USER_ENTERED).
func (c *Client) UpdateValues(spreadsheetID, rangeA1 string, values [][]string) (*UpdateResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if rangeA1 == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rangeA1, &sheets.ValueRange{
		Values: toInterfaceRows(values),
	}).ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update values in %s: %w", rangeA1, err)
	}

	return &UpdateResult{
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}, nil
}

// AppendValues appends rows after the last row of the table found in the
// given range
func (c *Client) AppendValues(spreadsheetID, rangeA1 string, values [][]string) (*UpdateResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if rangeA1 == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rangeA1, &sheets.ValueRange{
		Values: toInterfaceRows(values),
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append values to %s: %w", rangeA1, err)
	}

	result := &UpdateResult{}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedColumns = resp.Updates.UpdatedColumns
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}

// CreateSpreadsheet creates a new spreadsheet with optional named sheets
func (c *Client) CreateSpreadsheet(title string, sheetTitles []string) (*SpreadsheetInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	created, err := c.svc.Spreadsheets.Create(spreadsheet).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	return toSpreadsheetInfo(created), nil
}

// GetSpreadsheet retrieves spreadsheet metadata (title and sheet names)
func (c *Client) GetSpreadsheet(spreadsheetID string) (*SpreadsheetInfo, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}

	spreadsheet, err := c.svc.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	return toSpreadsheetInfo(spreadsheet), nil
}

func toSpreadsheetInfo(s *sheets.Spreadsheet) *SpreadsheetInfo {
	if s == nil {
		return &SpreadsheetInfo{}
	}

	info := &SpreadsheetInfo{
		ID:  s.SpreadsheetId,
		URL: s.SpreadsheetUrl,
	}
	if s.Properties != nil {
		info.Title = s.Properties.Title
	}
	for _, sheet := range s.Sheets {
		if sheet.Properties != nil {
			info.Sheets = append(info.Sheets, sheet.Properties.Title)
		}
	}
	return info
}

// toStringRows flattens API cell values to strings for tool output
func toStringRows(rows [][]interface{}) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = fmt.Sprint(cell)
		}
	}
	return out
}

func toInterfaceRows(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = make([]interface{}, len(row))
		for j, cell := range row {
			out[i][j] = cell
		}
	}
	return out
}
