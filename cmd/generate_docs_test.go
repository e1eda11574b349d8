package cmd

import "testing"

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"gmail_list_messages", "Gmail Tools"},
		{"calendar_create_event", "Google Calendar Tools"},
		{"drive_search_files", "Google Drive Tools"},
		{"docs_get_document", "Google Docs Tools"},
		{"sheets_get_values", "Google Sheets Tools"},
		{"slides_add_slide", "Google Slides Tools"},
		{"workspace_list_accounts", "Account Tools"},
		{"unknown_tool", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.name); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}
