// Package calendar_tools provides MCP (Model Context Protocol) tools for
// Google Calendar operations.
//
// Read tools: calendar_list_calendars, calendar_list_events,
// calendar_get_event and calendar_free_busy. Write tools, only registered
// outside read-only mode: calendar_create_event, calendar_update_event and
// calendar_delete_event.
//
// Time arguments accept RFC 3339 timestamps or plain dates; plain dates are
// used for all-day events.
package calendar_tools
