package docs

import (
	"context"
	"fmt"
	"net/http"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// DocumentInfo represents a created or referenced document
type DocumentInfo struct {
	ID    string
	Title string
}

// Client wraps the Google Docs API service for a single account
type Client struct {
	svc     *docs.Service
	account string
}

// NewClient creates a Docs client for the given account. The HTTP client
// must already carry OAuth credentials for that account.
func NewClient(ctx context.Context, account string, httpClient *http.Client) (*Client, error) {
	svc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// Account returns the account email this client is associated with
func (c *Client) Account() string {
	return c.account
}

// GetDocument retrieves a document by ID. Tabs content is included so
// multi-tab documents come back complete.
func (c *Client) GetDocument(documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	doc, err := c.svc.Documents.Get(documentID).IncludeTabsContent(true).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetDocumentAsMarkdown converts a document to Markdown
func (c *Client) GetDocumentAsMarkdown(documentID string) (string, error) {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return "", err
	}
	return DocumentToMarkdown(doc)
}

// GetDocumentAsPlainText extracts the plain text of a document
func (c *Client) GetDocumentAsPlainText(documentID string) (string, error) {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return "", err
	}
	return DocumentToPlainText(doc)
}

// CreateDocument creates a new empty document with the given title
func (c *Client) CreateDocument(title string) (*DocumentInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	created, err := c.svc.Documents.Create(&docs.Document{Title: title}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return &DocumentInfo{
		ID:    created.DocumentId,
		Title: created.Title,
	}, nil
}

// AppendText appends text to the end of the document body
func (c *Client) AppendText(documentID, text string) error {
	if documentID == "" {
		return fmt.Errorf("documentID is required")
	}
	if text == "" {
		return fmt.Errorf("text is required")
	}

	_, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Text:                 text,
					EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
				},
			},
		},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to append text to document %s: %w", documentID, err)
	}

	return nil
}
