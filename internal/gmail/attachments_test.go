package gmail

import (
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func TestWalkParts(t *testing.T) {
	payload := &gmail.MessagePart{
		PartId:   "0",
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{PartId: "1", MimeType: "text/plain"},
			{
				PartId:   "2",
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{PartId: "2.1", MimeType: "text/html"},
				},
			},
		},
	}

	var visited []string
	walkParts(payload, func(p *gmail.MessagePart) {
		visited = append(visited, p.PartId)
	})

	want := []string{"0", "1", "2", "2.1"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}

	// nil payload must not panic
	walkParts(nil, func(p *gmail.MessagePart) {
		t.Error("callback should not be invoked for nil part")
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "____etc_passwd"},
		{"dir/file.txt", "dir_file.txt"},
		{"back\\slash.txt", "back_slash.txt"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetAttachmentValidation(t *testing.T) {
	c := &Client{}

	if _, err := c.GetAttachment("", "att1"); err == nil {
		t.Error("expected error for empty messageID")
	}
	if _, err := c.GetAttachment("msg1", ""); err == nil {
		t.Error("expected error for empty attachmentID")
	}
}
