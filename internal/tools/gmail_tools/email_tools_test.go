package gmail_tools

import (
	"reflect"
	"testing"
)

func TestSplitAddresses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single address",
			input: "alice@example.com",
			want:  []string{"alice@example.com"},
		},
		{
			name:  "multiple with spaces",
			input: "alice@example.com, bob@example.com ,carol@example.com",
			want:  []string{"alice@example.com", "bob@example.com", "carol@example.com"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only separators",
			input: " , , ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAddresses(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitAddresses(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmailFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr bool
	}{
		{
			name: "complete",
			args: map[string]interface{}{
				"to":      "alice@example.com",
				"subject": "Hello",
				"body":    "World",
				"cc":      "bob@example.com",
				"isHTML":  true,
			},
		},
		{
			name: "missing to",
			args: map[string]interface{}{
				"subject": "Hello",
				"body":    "World",
			},
			wantErr: true,
		},
		{
			name: "missing subject",
			args: map[string]interface{}{
				"to":   "alice@example.com",
				"body": "World",
			},
			wantErr: true,
		},
		{
			name: "missing body",
			args: map[string]interface{}{
				"to":      "alice@example.com",
				"subject": "Hello",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, errResult := emailFromArgs(tt.args)
			if tt.wantErr {
				if errResult == nil {
					t.Fatal("expected an error result")
				}
				return
			}
			if errResult != nil {
				t.Fatal("unexpected error result")
			}
			if msg.Subject != "Hello" || msg.Body != "World" {
				t.Errorf("unexpected message: %+v", msg)
			}
			if len(msg.To) != 1 || msg.To[0] != "alice@example.com" {
				t.Errorf("To = %v", msg.To)
			}
			if len(msg.Cc) != 1 || msg.Cc[0] != "bob@example.com" {
				t.Errorf("Cc = %v", msg.Cc)
			}
			if !msg.IsHTML {
				t.Error("IsHTML should be true")
			}
		})
	}
}

func TestEmailFromArgsOptionalFields(t *testing.T) {
	msg, errResult := emailFromArgs(map[string]interface{}{
		"to":      "alice@example.com",
		"subject": "Hello",
		"body":    "World",
	})
	if errResult != nil {
		t.Fatal("unexpected error result")
	}
	if msg.Cc != nil || msg.Bcc != nil || msg.IsHTML {
		t.Errorf("optional fields should be zero: %+v", msg)
	}
}
