package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/calendar"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// RegisterEventWriteTools registers the event mutation tools. None of them
// are registered in read-only mode.
func RegisterEventWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a calendar event, optionally with a Google Meet conference"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Event start, RFC 3339 or date for all-day events"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Event end, RFC 3339 or date for all-day events"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("attendees",
			mcp.Description("Attendee email address(es), comma-separated"),
		),
		mcp.WithString("timeZone",
			mcp.Description("IANA time zone for the event times (e.g. 'Europe/Berlin')"),
		),
		mcp.WithBoolean("allDay",
			mcp.Description("Create an all-day event (start/end are dates)"),
		),
		mcp.WithBoolean("addMeet",
			mcp.Description("Attach a Google Meet conference to the event"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_create_event", "calendar", "create_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update fields of an existing calendar event. Only the provided fields change."),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to update"),
		),
		mcp.WithString("summary",
			mcp.Description("New event title"),
		),
		mcp.WithString("start",
			mcp.Description("New start, RFC 3339 or date"),
		),
		mcp.WithString("end",
			mcp.Description("New end, RFC 3339 or date"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("location",
			mcp.Description("New location"),
		),
		mcp.WithString("attendees",
			mcp.Description("Replacement attendee list, comma-separated"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_update_event", "calendar", "update_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to delete"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_delete_event", "calendar", "delete_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	return nil
}

// eventInputFromArgs builds an EventInput from tool arguments. Times are
// only parsed when present so the update handler can express partial
// changes.
func eventInputFromArgs(args map[string]interface{}) (calendar.EventInput, *mcp.CallToolResult) {
	var input calendar.EventInput

	if v, ok := args["summary"].(string); ok {
		input.Summary = v
	}
	if v, ok := args["description"].(string); ok {
		input.Description = v
	}
	if v, ok := args["location"].(string); ok {
		input.Location = v
	}
	if v, ok := args["timeZone"].(string); ok {
		input.TimeZone = v
	}
	if v, ok := args["allDay"].(bool); ok {
		input.AllDay = v
	}
	if v, ok := args["addMeet"].(bool); ok {
		input.AddConference = v
	}
	if v, ok := args["attendees"].(string); ok && strings.TrimSpace(v) != "" {
		for _, a := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(a); trimmed != "" {
				input.Attendees = append(input.Attendees, trimmed)
			}
		}
	}

	if v, ok := args["start"].(string); ok && v != "" {
		t, err := parseTimeArg(v)
		if err != nil {
			return input, mcp.NewToolResultError(err.Error())
		}
		input.Start = t
	}
	if v, ok := args["end"].(string); ok && v != "" {
		t, err := parseTimeArg(v)
		if err != nil {
			return input, mcp.NewToolResultError(err.Error())
		}
		input.End = t
	}
	return input, nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	if v, ok := args["summary"].(string); !ok || v == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}
	input, errResult := eventInputFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}
	if input.Start.IsZero() || input.End.IsZero() {
		return mcp.NewToolResultError("start and end are required"), nil
	}

	calendarID := "primary"
	if v, ok := args["calendarId"].(string); ok && v != "" {
		calendarID = v
	}

	client, _, authResult := calendarClient(ctx, sc, args)
	if authResult != nil {
		return authResult, nil
	}

	event, err := client.CreateEvent(calendarID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Event created:\n")
	formatEvent(&sb, event)
	return mcp.NewToolResultText(sb.String()), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}
	input, errResult := eventInputFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	calendarID := "primary"
	if v, ok := args["calendarId"].(string); ok && v != "" {
		calendarID = v
	}

	client, _, authResult := calendarClient(ctx, sc, args)
	if authResult != nil {
		return authResult, nil
	}

	event, err := client.UpdateEvent(calendarID, eventID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Event updated:\n")
	formatEvent(&sb, event)
	return mcp.NewToolResultText(sb.String()), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}
	calendarID := "primary"
	if v, ok := args["calendarId"].(string); ok && v != "" {
		calendarID = v
	}

	client, _, authResult := calendarClient(ctx, sc, args)
	if authResult != nil {
		return authResult, nil
	}

	if err := client.DeleteEvent(calendarID, eventID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted from %s", eventID, calendarID)), nil
}
