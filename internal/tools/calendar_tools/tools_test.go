package calendar_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			input: "2026-03-01T09:30:00Z",
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2026-03-01T09:30:00+02:00",
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name:  "plain date",
			input: "2026-03-01",
			want:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "tomorrow",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeArg(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeArg(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseTimeArg(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeRangeFromArgs(t *testing.T) {
	t.Run("defaults to the next seven days", func(t *testing.T) {
		timeMin, timeMax, err := timeRangeFromArgs(map[string]interface{}{})
		if err != nil {
			t.Fatalf("timeRangeFromArgs() error = %v", err)
		}
		if got := timeMax.Sub(timeMin); got != 7*24*time.Hour {
			t.Errorf("range = %v, want 168h", got)
		}
	})

	t.Run("explicit range", func(t *testing.T) {
		timeMin, timeMax, err := timeRangeFromArgs(map[string]interface{}{
			"timeMin": "2026-03-01",
			"timeMax": "2026-03-02",
		})
		if err != nil {
			t.Fatalf("timeRangeFromArgs() error = %v", err)
		}
		if !timeMin.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("timeMin = %v", timeMin)
		}
		if !timeMax.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("timeMax = %v", timeMax)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		_, _, err := timeRangeFromArgs(map[string]interface{}{
			"timeMin": "2026-03-02",
			"timeMax": "2026-03-01",
		})
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("timeMin alone shifts the default window", func(t *testing.T) {
		timeMin, timeMax, err := timeRangeFromArgs(map[string]interface{}{
			"timeMin": "2026-03-01",
		})
		if err != nil {
			t.Fatalf("timeRangeFromArgs() error = %v", err)
		}
		if got := timeMax.Sub(timeMin); got != 7*24*time.Hour {
			t.Errorf("range = %v, want 168h", got)
		}
	})
}

func TestEventInputFromArgs(t *testing.T) {
	input, errResult := eventInputFromArgs(map[string]interface{}{
		"summary":     "Standup",
		"description": "Daily sync",
		"start":       "2026-03-01T09:00:00Z",
		"end":         "2026-03-01T09:15:00Z",
		"attendees":   "alice@example.com, bob@example.com",
		"addMeet":     true,
	})
	if errResult != nil {
		t.Fatal("unexpected error result")
	}
	if input.Summary != "Standup" || input.Description != "Daily sync" {
		t.Errorf("unexpected input: %+v", input)
	}
	if len(input.Attendees) != 2 {
		t.Errorf("Attendees = %v", input.Attendees)
	}
	if !input.AddConference {
		t.Error("AddConference should be true")
	}
	if input.End.Sub(input.Start) != 15*time.Minute {
		t.Errorf("duration = %v", input.End.Sub(input.Start))
	}
}

func TestEventInputFromArgsBadTime(t *testing.T) {
	_, errResult := eventInputFromArgs(map[string]interface{}{
		"start": "not-a-time",
	})
	if errResult == nil {
		t.Fatal("expected an error result")
	}
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing summary",
			args: map[string]interface{}{
				"start": "2026-03-01T09:00:00Z",
				"end":   "2026-03-01T10:00:00Z",
			},
		},
		{
			name: "missing times",
			args: map[string]interface{}{
				"summary": "Standup",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCreateEvent(context.Background(), requestWithArgs(tt.args), nil)
			if err != nil {
				t.Fatalf("handleCreateEvent() error = %v", err)
			}
			if !result.IsError {
				t.Error("expected a tool error result")
			}
		})
	}
}

func TestEventHandlersRequireEventID(t *testing.T) {
	result, err := handleDeleteEvent(context.Background(), requestWithArgs(nil), nil)
	if err != nil {
		t.Fatalf("handleDeleteEvent() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error result")
	}

	result, err = handleUpdateEvent(context.Background(), requestWithArgs(nil), nil)
	if err != nil {
		t.Fatalf("handleUpdateEvent() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error result")
	}
}
