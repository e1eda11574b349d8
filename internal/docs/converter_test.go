package docs

import (
	"strings"
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func paragraph(style string, runs ...*docs.TextRun) *docs.StructuralElement {
	para := &docs.Paragraph{}
	if style != "" {
		para.ParagraphStyle = &docs.ParagraphStyle{NamedStyleType: style}
	}
	for _, run := range runs {
		para.Elements = append(para.Elements, &docs.ParagraphElement{TextRun: run})
	}
	return &docs.StructuralElement{Paragraph: para}
}

func TestDocumentToMarkdown(t *testing.T) {
	doc := &docs.Document{
		Title: "Design Notes",
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				paragraph("HEADING_1", &docs.TextRun{Content: "Overview"}),
				paragraph("", &docs.TextRun{Content: "Plain text with "},
					&docs.TextRun{Content: "bold", TextStyle: &docs.TextStyle{Bold: true}},
					&docs.TextRun{Content: " and "},
					&docs.TextRun{Content: "italic", TextStyle: &docs.TextStyle{Italic: true}},
				),
				paragraph("", &docs.TextRun{
					Content:   "a link",
					TextStyle: &docs.TextStyle{Link: &docs.Link{Url: "https://example.com"}},
				}),
			},
		},
	}

	md, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() error: %v", err)
	}

	for _, want := range []string{
		"# Design Notes",
		"# Overview",
		"**bold**",
		"*italic*",
		"[a link](https://example.com)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDocumentToMarkdownBullets(t *testing.T) {
	para := &docs.Paragraph{
		Bullet: &docs.Bullet{ListId: "list1"},
		Elements: []*docs.ParagraphElement{
			{TextRun: &docs.TextRun{Content: "first item"}},
		},
	}
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{{Paragraph: para}},
		},
	}

	md, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() error: %v", err)
	}
	if !strings.Contains(md, "- first item") {
		t.Errorf("bullet not rendered:\n%s", md)
	}
}

func TestDocumentToMarkdownTable(t *testing.T) {
	table := &docs.Table{
		TableRows: []*docs.TableRow{
			{TableCells: []*docs.TableCell{
				{Content: []*docs.StructuralElement{paragraph("", &docs.TextRun{Content: "Name"})}},
				{Content: []*docs.StructuralElement{paragraph("", &docs.TextRun{Content: "Count"})}},
			}},
			{TableCells: []*docs.TableCell{
				{Content: []*docs.StructuralElement{paragraph("", &docs.TextRun{Content: "widgets"})}},
				{Content: []*docs.StructuralElement{paragraph("", &docs.TextRun{Content: "4"})}},
			}},
		},
	}
	doc := &docs.Document{
		Body: &docs.Body{Content: []*docs.StructuralElement{{Table: table}}},
	}

	md, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() error: %v", err)
	}
	if !strings.Contains(md, "| Name | Count |") {
		t.Errorf("table header not rendered:\n%s", md)
	}
	if !strings.Contains(md, "| --- | --- |") {
		t.Errorf("header separator not rendered:\n%s", md)
	}
	if !strings.Contains(md, "| widgets | 4 |") {
		t.Errorf("table row not rendered:\n%s", md)
	}
}

func TestDocumentToMarkdownTabs(t *testing.T) {
	doc := &docs.Document{
		Title: "Tabbed",
		Tabs: []*docs.Tab{
			{
				TabProperties: &docs.TabProperties{Title: "Intro"},
				DocumentTab: &docs.DocumentTab{
					Body: &docs.Body{
						Content: []*docs.StructuralElement{
							paragraph("", &docs.TextRun{Content: "intro text"}),
						},
					},
				},
				ChildTabs: []*docs.Tab{
					{
						DocumentTab: &docs.DocumentTab{
							Body: &docs.Body{
								Content: []*docs.StructuralElement{
									paragraph("", &docs.TextRun{Content: "nested text"}),
								},
							},
						},
					},
				},
			},
		},
	}

	md, err := DocumentToMarkdown(doc)
	if err != nil {
		t.Fatalf("DocumentToMarkdown() error: %v", err)
	}
	if !strings.Contains(md, "## Intro") {
		t.Errorf("tab title not rendered:\n%s", md)
	}
	if !strings.Contains(md, "### Tab 1") {
		t.Errorf("untitled child tab not rendered:\n%s", md)
	}
	if !strings.Contains(md, "nested text") {
		t.Errorf("child tab content not rendered:\n%s", md)
	}
}

func TestDocumentToPlainText(t *testing.T) {
	doc := &docs.Document{
		Title: "Notes",
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				paragraph("", &docs.TextRun{Content: "line one\n"}),
				paragraph("", &docs.TextRun{Content: "line two\n"}),
			},
		},
	}

	text, err := DocumentToPlainText(doc)
	if err != nil {
		t.Fatalf("DocumentToPlainText() error: %v", err)
	}
	if !strings.Contains(text, "Notes") || !strings.Contains(text, "line one") || !strings.Contains(text, "line two") {
		t.Errorf("plain text missing content:\n%s", text)
	}
}

func TestConvertersNilDocument(t *testing.T) {
	if _, err := DocumentToMarkdown(nil); err == nil {
		t.Error("DocumentToMarkdown(nil) should error")
	}
	if _, err := DocumentToPlainText(nil); err == nil {
		t.Error("DocumentToPlainText(nil) should error")
	}
}

func TestClientValidation(t *testing.T) {
	c := &Client{}

	if _, err := c.GetDocument(""); err == nil {
		t.Error("GetDocument should require documentID")
	}
	if _, err := c.CreateDocument(""); err == nil {
		t.Error("CreateDocument should require a title")
	}
	if err := c.AppendText("", "x"); err == nil {
		t.Error("AppendText should require documentID")
	}
	if err := c.AppendText("doc1", ""); err == nil {
		t.Error("AppendText should require text")
	}
}
