package gmail

import (
	"encoding/base64"
	"net/mail"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is a flattened view of a Gmail message for listing
type MessageSummary struct {
	ID       string
	ThreadID string
	From     string
	To       string
	Subject  string
	Date     time.Time
	Snippet  string
	LabelIDs []string
}

// Label represents a Gmail label
type Label struct {
	ID             string
	Name           string
	Type           string // "system" or "user"
	MessagesTotal  int64
	MessagesUnread int64
}

// Draft represents a created Gmail draft
type Draft struct {
	ID        string
	MessageID string
}

// HeaderValue extracts a header value from a Gmail message
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return ""
}

// toMessageSummary converts a Gmail API message to a MessageSummary
func toMessageSummary(m *gmail.Message) MessageSummary {
	if m == nil {
		return MessageSummary{}
	}

	summary := MessageSummary{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		From:     HeaderValue(m, "From"),
		To:       HeaderValue(m, "To"),
		Subject:  HeaderValue(m, "Subject"),
		Snippet:  m.Snippet,
		LabelIDs: m.LabelIds,
	}

	if date := HeaderValue(m, "Date"); date != "" {
		if t, err := mail.ParseDate(date); err == nil {
			summary.Date = t
		}
	}
	if summary.Date.IsZero() && m.InternalDate > 0 {
		summary.Date = time.UnixMilli(m.InternalDate)
	}

	return summary
}

// toLabel converts a Gmail API label to a Label
func toLabel(l *gmail.Label) Label {
	if l == nil {
		return Label{}
	}
	return Label{
		ID:             l.Id,
		Name:           l.Name,
		Type:           l.Type,
		MessagesTotal:  l.MessagesTotal,
		MessagesUnread: l.MessagesUnread,
	}
}

// decodeBody decodes Gmail body data. The API uses base64url (RFC 4648)
// but some messages carry standard base64.
func decodeBody(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(data)
}
