package slides

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	slides "google.golang.org/api/slides/v1"
	"google.golang.org/api/option"
)

// PresentationSummary represents a flattened view of a presentation
type PresentationSummary struct {
	ID     string
	Title  string
	Slides []SlideInfo
}

// SlideInfo represents a single slide with its extracted text
type SlideInfo struct {
	ObjectID string
	Index    int
	Text     string
}

// Client wraps the Google Slides API service for a single account
type Client struct {
	svc     *slides.Service
	account string
}

// NewClient creates a Slides client for the given account. The HTTP
// client must already carry OAuth credentials for that account.
func NewClient(ctx context.Context, account string, httpClient *http.Client) (*Client, error) {
	svc, err := slides.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
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

// GetPresentation retrieves a presentation summary with per-slide text
func (c *Client) GetPresentation(presentationID string) (*PresentationSummary, error) {
	if presentationID == "" {
		return nil, fmt.Errorf("presentationID is required")
	}

	presentation, err := c.svc.Presentations.Get(presentationID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", presentationID, err)
	}

	return toPresentationSummary(presentation), nil
}

// GetPageText extracts the text of a single slide
func (c *Client) GetPageText(presentationID, pageObjectID string) (string, error) {
	if presentationID == "" {
		return "", fmt.Errorf("presentationID is required")
	}
	if pageObjectID == "" {
		return "", fmt.Errorf("pageObjectID is required")
	}

	page, err := c.svc.Presentations.Pages.Get(presentationID, pageObjectID).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get page %s: %w", pageObjectID, err)
	}

	return pageText(page), nil
}

// CreatePresentation creates a new empty presentation with the given title
func (c *Client) CreatePresentation(title string) (*PresentationSummary, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	created, err := c.svc.Presentations.Create(&slides.Presentation{Title: title}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	return toPresentationSummary(created), nil
}

// AddSlide appends a slide using a predefined layout (default
// TITLE_AND_BODY) and returns its object ID
func (c *Client) AddSlide(presentationID, layout string) (string, error) {
	if presentationID == "" {
		return "", fmt.Errorf("presentationID is required")
	}
	if layout == "" {
		layout = "TITLE_AND_BODY"
	}

	resp, err := c.svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				CreateSlide: &slides.CreateSlideRequest{
					SlideLayoutReference: &slides.LayoutReference{
						PredefinedLayout: layout,
					},
				},
			},
		},
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to add slide to presentation %s: %w", presentationID, err)
	}

	for _, reply := range resp.Replies {
		if reply.CreateSlide != nil {
			return reply.CreateSlide.ObjectId, nil
		}
	}
	return "", fmt.Errorf("no slide created in presentation %s", presentationID)
}

func toPresentationSummary(p *slides.Presentation) *PresentationSummary {
	if p == nil {
		return &PresentationSummary{}
	}

	summary := &PresentationSummary{
		ID:    p.PresentationId,
		Title: p.Title,
	}
	for i, slide := range p.Slides {
		summary.Slides = append(summary.Slides, SlideInfo{
			ObjectID: slide.ObjectId,
			Index:    i + 1,
			Text:     pageText(slide),
		})
	}
	return summary
}

// pageText extracts the visible text of a page's shapes and tables
func pageText(page *slides.Page) string {
	if page == nil {
		return ""
	}

	var text strings.Builder
	for _, element := range page.PageElements {
		writeElementText(&text, element)
	}
	return strings.TrimSpace(text.String())
}

func writeElementText(text *strings.Builder, element *slides.PageElement) {
	if element == nil {
		return
	}

	if element.Shape != nil && element.Shape.Text != nil {
		writeTextContent(text, element.Shape.Text)
	}
	if element.Table != nil {
		for _, row := range element.Table.TableRows {
			for _, cell := range row.TableCells {
				if cell.Text != nil {
					writeTextContent(text, cell.Text)
				}
				text.WriteString("\t")
			}
			text.WriteString("\n")
		}
	}
	for _, child := range elementGroupChildren(element) {
		writeElementText(text, child)
	}
}

func elementGroupChildren(element *slides.PageElement) []*slides.PageElement {
	if element.ElementGroup == nil {
		return nil
	}
	return element.ElementGroup.Children
}

func writeTextContent(text *strings.Builder, content *slides.TextContent) {
	for _, te := range content.TextElements {
		if te.TextRun != nil {
			text.WriteString(te.TextRun.Content)
		}
	}
}
