package gmail

import (
	"context"
	"fmt"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail Users service for a single account
type Client struct {
	svc     *gmail.UsersService
	account string
}

// NewClient creates a Gmail client for the given account. The HTTP client
// must already carry OAuth credentials for that account.
func NewClient(ctx context.Context, account string, httpClient *http.Client) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// Account returns the account email this client is associated with
func (c *Client) Account() string {
	return c.account
}

// ListMessages lists messages matching the query with pagination.
// It fetches metadata (headers and snippet) for each message, making
// multiple API calls if necessary, up to maxResults messages.
func (c *Client) ListMessages(q string, maxResults int64) ([]MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}

		// Gmail caps page size at 100
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").Q(q).MaxResults(pageSize)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" || int64(len(ids)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	summaries := make([]MessageSummary, 0, len(ids))
	for _, id := range ids {
		msg, err := c.svc.Messages.Get("me", id).
			Format("metadata").
			MetadataHeaders("From", "To", "Subject", "Date").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", id, err)
		}
		summaries = append(summaries, toMessageSummary(msg))
	}

	return summaries, nil
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}

	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetMessageSummary retrieves the flattened view of a single message
func (c *Client) GetMessageSummary(messageID string) (*MessageSummary, error) {
	msg, err := c.GetMessage(messageID)
	if err != nil {
		return nil, err
	}
	summary := toMessageSummary(msg)
	return &summary, nil
}

// GetMessageBody extracts the text or HTML body from a message
func (c *Client) GetMessageBody(messageID string, format string) (string, error) {
	if format == "" {
		format = "text"
	}

	var targetMimeType string
	switch format {
	case "text":
		targetMimeType = "text/plain"
	case "html":
		targetMimeType = "text/html"
	default:
		return "", fmt.Errorf("invalid format %s, must be 'text' or 'html'", format)
	}

	msg, err := c.GetMessage(messageID)
	if err != nil {
		return "", err
	}

	var body string
	if msg.Payload != nil {
		if msg.Payload.MimeType == targetMimeType && msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
			body = msg.Payload.Body.Data
		} else {
			walkParts(msg.Payload, func(part *gmail.MessagePart) {
				if body == "" && part.MimeType == targetMimeType && part.Body != nil && part.Body.Data != "" {
					body = part.Body.Data
				}
			})
		}
	}

	if body == "" {
		return "", fmt.Errorf("no %s body found in message", format)
	}

	decoded, err := decodeBody(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}

	return string(decoded), nil
}

// ListLabels lists all labels in the mailbox
func (c *Client) ListLabels() ([]Label, error) {
	res, err := c.svc.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, toLabel(l))
	}
	return labels, nil
}

// ModifyLabels adds and removes labels on a message
func (c *Client) ModifyLabels(messageID string, add, remove []string) error {
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}
	if len(add) == 0 && len(remove) == 0 {
		return fmt.Errorf("at least one label to add or remove is required")
	}

	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to modify labels on message %s: %w", messageID, err)
	}
	return nil
}

// ArchiveMessage archives a message by removing the INBOX label
func (c *Client) ArchiveMessage(messageID string) error {
	return c.ModifyLabels(messageID, nil, []string{"INBOX"})
}

// UnarchiveMessage moves a message back into the inbox
func (c *Client) UnarchiveMessage(messageID string) error {
	return c.ModifyLabels(messageID, []string{"INBOX"}, nil)
}
