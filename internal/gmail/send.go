package gmail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// EmailMessage represents an email to be sent or drafted
type EmailMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

func (m *EmailMessage) validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if m.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if m.Body == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// encodeRFC2047 encodes a header value per RFC 2047 when it contains
// non-ASCII characters (umlauts and the like)
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// buildRawMessage builds an RFC 2822 message and encodes it as base64url
// the way the Gmail API expects raw payloads
func buildRawMessage(msg *EmailMessage) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.IsHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// SendEmail sends an email through the Gmail API and returns the message ID
func (c *Client) SendEmail(msg *EmailMessage) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw: buildRawMessage(msg),
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// CreateDraft creates a draft without sending it
func (c *Client) CreateDraft(msg *EmailMessage) (*Draft, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}

	created, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{
			Raw: buildRawMessage(msg),
		},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	draft := &Draft{ID: created.Id}
	if created.Message != nil {
		draft.MessageID = created.Message.Id
	}
	return draft, nil
}
