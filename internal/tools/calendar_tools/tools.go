package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/calendar"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/batch"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// calendarClient resolves the account argument and returns a Calendar client
// for it. The third return value is a non-nil tool result when resolution or
// authorization failed.
func calendarClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*calendar.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.CalendarClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

// parseTimeArg parses a tool time argument. RFC 3339 and plain dates are
// accepted; a plain date is taken as midnight UTC.
func parseTimeArg(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use RFC 3339 (e.g. 2026-03-01T09:00:00Z) or a date (2026-03-01)", value)
}

// timeRangeFromArgs reads timeMin/timeMax, defaulting to the next 7 days.
func timeRangeFromArgs(args map[string]interface{}) (time.Time, time.Time, error) {
	timeMin := time.Now()
	timeMax := timeMin.Add(7 * 24 * time.Hour)

	if v, ok := args["timeMin"].(string); ok && v != "" {
		t, err := parseTimeArg(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		timeMin = t
		timeMax = timeMin.Add(7 * 24 * time.Hour)
	}
	if v, ok := args["timeMax"].(string); ok && v != "" {
		t, err := parseTimeArg(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		timeMax = t
	}
	if !timeMax.After(timeMin) {
		return time.Time{}, time.Time{}, fmt.Errorf("timeMax must be after timeMin")
	}
	return timeMin, timeMax, nil
}

func formatEvent(sb *strings.Builder, e *calendar.EventSummary) {
	fmt.Fprintf(sb, "%s\n  Start: %s\n  End:   %s\n  ID: %s\n",
		e.Summary, e.Start.Format(time.RFC1123), e.End.Format(time.RFC1123), e.ID)
	if e.Location != "" {
		fmt.Fprintf(sb, "  Location: %s\n", e.Location)
	}
	if e.MeetLink != "" {
		fmt.Fprintf(sb, "  Meet: %s\n", e.MeetLink)
	}
	if len(e.Attendees) > 0 {
		parts := make([]string, 0, len(e.Attendees))
		for _, a := range e.Attendees {
			parts = append(parts, fmt.Sprintf("%s (%s)", a.Email, a.ResponseStatus))
		}
		fmt.Fprintf(sb, "  Attendees: %s\n", strings.Join(parts, ", "))
	}
	if e.Description != "" {
		fmt.Fprintf(sb, "  %s\n", e.Description)
	}
}

// RegisterCalendarTools registers all Calendar tools with the MCP server.
// Creating, updating and deleting events require write mode.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterEventWriteTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event write tools: %w", err)
	}

	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List the calendars the account has access to"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_calendars", "calendar", "list_calendars", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events in a time range"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Range start, RFC 3339 or date (default: now)"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Range end, RFC 3339 or date (default: 7 days after timeMin)"),
		),
		mcp.WithString("query",
			mcp.Description("Free-text search over event fields"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_events", "calendar", "list_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get the details of a calendar event"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event"),
		),
	)

	s.AddTool(getEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_get_event", "calendar", "get_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	freeBusyTool := mcp.NewTool("calendar_free_busy",
		mcp.WithDescription("Query free/busy information for one or more calendars"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarIds",
			mcp.Description("Calendar ID (string) or array of calendar IDs (default: 'primary')"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Range start, RFC 3339 or date (default: now)"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Range end, RFC 3339 or date (default: 7 days after timeMin)"),
		),
	)

	s.AddTool(freeBusyTool, common.InstrumentedToolHandlerWithService(
		"calendar_free_busy", "calendar", "free_busy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFreeBusy(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, _, errResult := calendarClient(ctx, sc, request.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d calendars:\n", len(calendars))
	for _, c := range calendars {
		fmt.Fprintf(&sb, "- %s (id: %s, role: %s", c.Summary, c.ID, c.AccessRole)
		if c.Primary {
			sb.WriteString(", primary")
		}
		sb.WriteString(")\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	calendarID := "primary"
	if v, ok := args["calendarId"].(string); ok && v != "" {
		calendarID = v
	}
	query := ""
	if v, ok := args["query"].(string); ok {
		query = v
	}
	timeMin, timeMax, err := timeRangeFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := calendarClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	events, err := client.ListEvents(calendarID, timeMin, timeMax, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("No events in the requested range."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d events:\n", len(events))
	for i := range events {
		formatEvent(&sb, &events[i])
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}
	calendarID := "primary"
	if v, ok := args["calendarId"].(string); ok && v != "" {
		calendarID = v
	}

	client, _, errResult := calendarClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	event, err := client.GetEvent(calendarID, eventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	var sb strings.Builder
	formatEvent(&sb, event)
	return mcp.NewToolResultText(sb.String()), nil
}

func handleFreeBusy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	calendarIDs := []string{"primary"}
	if _, ok := args["calendarIds"]; ok {
		parsed, err := batch.ParseStringOrArray(args["calendarIds"], "calendarIds")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		calendarIDs = parsed
	}
	timeMin, timeMax, err := timeRangeFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, _, errResult := calendarClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	infos, err := client.QueryFreeBusy(timeMin, timeMax, calendarIDs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query free/busy: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Free/busy from %s to %s:\n",
		timeMin.Format(time.RFC1123), timeMax.Format(time.RFC1123))
	for _, info := range infos {
		fmt.Fprintf(&sb, "%s:\n", info.Calendar)
		if len(info.Errors) > 0 {
			fmt.Fprintf(&sb, "  errors: %s\n", strings.Join(info.Errors, "; "))
			continue
		}
		if len(info.Busy) == 0 {
			sb.WriteString("  free for the whole range\n")
			continue
		}
		for _, busy := range info.Busy {
			fmt.Fprintf(&sb, "  busy %s - %s\n",
				busy.Start.Format(time.RFC1123), busy.End.Format(time.RFC1123))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
