package slides

import (
	"strings"
	"testing"

	slides "google.golang.org/api/slides/v1"
)

func shapeWithText(content string) *slides.PageElement {
	return &slides.PageElement{
		Shape: &slides.Shape{
			Text: &slides.TextContent{
				TextElements: []*slides.TextElement{
					{TextRun: &slides.TextRun{Content: content}},
				},
			},
		},
	}
}

func TestPageText(t *testing.T) {
	page := &slides.Page{
		PageElements: []*slides.PageElement{
			shapeWithText("Title\n"),
			shapeWithText("Body text\n"),
			{
				ElementGroup: &slides.Group{
					Children: []*slides.PageElement{
						shapeWithText("grouped text\n"),
					},
				},
			},
		},
	}

	text := pageText(page)
	for _, want := range []string{"Title", "Body text", "grouped text"} {
		if !strings.Contains(text, want) {
			t.Errorf("page text missing %q:\n%s", want, text)
		}
	}

	if pageText(nil) != "" {
		t.Error("nil page should yield empty text")
	}
}

func TestPageTextTable(t *testing.T) {
	page := &slides.Page{
		PageElements: []*slides.PageElement{
			{
				Table: &slides.Table{
					TableRows: []*slides.TableRow{
						{TableCells: []*slides.TableCell{
							{Text: &slides.TextContent{TextElements: []*slides.TextElement{
								{TextRun: &slides.TextRun{Content: "cell A"}},
							}}},
							{Text: &slides.TextContent{TextElements: []*slides.TextElement{
								{TextRun: &slides.TextRun{Content: "cell B"}},
							}}},
						}},
					},
				},
			},
		},
	}

	text := pageText(page)
	if !strings.Contains(text, "cell A") || !strings.Contains(text, "cell B") {
		t.Errorf("table text not extracted:\n%s", text)
	}
}

func TestToPresentationSummary(t *testing.T) {
	summary := toPresentationSummary(&slides.Presentation{
		PresentationId: "pres1",
		Title:          "Roadmap",
		Slides: []*slides.Page{
			{ObjectId: "slide1", PageElements: []*slides.PageElement{shapeWithText("first")}},
			{ObjectId: "slide2", PageElements: []*slides.PageElement{shapeWithText("second")}},
		},
	})

	if summary.ID != "pres1" || summary.Title != "Roadmap" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(summary.Slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(summary.Slides))
	}
	if summary.Slides[0].Index != 1 || summary.Slides[1].Index != 2 {
		t.Errorf("slide indexes wrong: %+v", summary.Slides)
	}
	if summary.Slides[1].Text != "second" {
		t.Errorf("slide text = %q, want second", summary.Slides[1].Text)
	}

	empty := toPresentationSummary(nil)
	if empty.ID != "" {
		t.Errorf("expected empty summary for nil presentation, got %+v", empty)
	}
}

func TestValidation(t *testing.T) {
	c := &Client{}

	if _, err := c.GetPresentation(""); err == nil {
		t.Error("GetPresentation should require presentationID")
	}
	if _, err := c.GetPageText("", "page1"); err == nil {
		t.Error("GetPageText should require presentationID")
	}
	if _, err := c.GetPageText("pres1", ""); err == nil {
		t.Error("GetPageText should require pageObjectID")
	}
	if _, err := c.CreatePresentation(""); err == nil {
		t.Error("CreatePresentation should require a title")
	}
	if _, err := c.AddSlide("", ""); err == nil {
		t.Error("AddSlide should require presentationID")
	}
}
