package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

var headingLevels = map[string]int{
	"HEADING_1": 1,
	"HEADING_2": 2,
	"HEADING_3": 3,
	"HEADING_4": 4,
	"HEADING_5": 5,
	"HEADING_6": 6,
}

// DocumentToMarkdown converts a document to Markdown. Both legacy
// documents (doc.Body) and tabbed documents (doc.Tabs) are supported.
func DocumentToMarkdown(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var md strings.Builder

	if doc.Title != "" {
		md.WriteString("# ")
		md.WriteString(doc.Title)
		md.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		writeTabsMarkdown(&md, doc.Tabs, 2)
	} else if doc.Body != nil {
		for _, element := range doc.Body.Content {
			writeElementMarkdown(&md, element)
		}
	}

	return md.String(), nil
}

// DocumentToPlainText extracts the plain text of a document. Both legacy
// documents (doc.Body) and tabbed documents (doc.Tabs) are supported.
func DocumentToPlainText(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var text strings.Builder

	if doc.Title != "" {
		text.WriteString(doc.Title)
		text.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		writeTabsText(&text, doc.Tabs)
	} else if doc.Body != nil {
		for _, element := range doc.Body.Content {
			writeElementText(&text, element)
		}
	}

	return text.String(), nil
}

func writeTabsMarkdown(md *strings.Builder, tabs []*docs.Tab, level int) {
	for i, tab := range tabs {
		title := fmt.Sprintf("Tab %d", i+1)
		if tab.TabProperties != nil && tab.TabProperties.Title != "" {
			title = tab.TabProperties.Title
		}
		md.WriteString(strings.Repeat("#", level))
		md.WriteString(" ")
		md.WriteString(title)
		md.WriteString("\n\n")

		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			for _, element := range tab.DocumentTab.Body.Content {
				writeElementMarkdown(md, element)
			}
		}
		if len(tab.ChildTabs) > 0 {
			writeTabsMarkdown(md, tab.ChildTabs, level+1)
		}
	}
}

func writeTabsText(text *strings.Builder, tabs []*docs.Tab) {
	for i, tab := range tabs {
		title := fmt.Sprintf("Tab %d", i+1)
		if tab.TabProperties != nil && tab.TabProperties.Title != "" {
			title = tab.TabProperties.Title
		}
		text.WriteString("=== ")
		text.WriteString(title)
		text.WriteString(" ===\n\n")

		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			for _, element := range tab.DocumentTab.Body.Content {
				writeElementText(text, element)
			}
		}
		if len(tab.ChildTabs) > 0 {
			writeTabsText(text, tab.ChildTabs)
		}
		text.WriteString("\n")
	}
}

func writeElementMarkdown(md *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		writeParagraphMarkdown(md, element.Paragraph)
	case element.Table != nil:
		writeTableMarkdown(md, element.Table)
	case element.SectionBreak != nil:
		md.WriteString("\n---\n\n")
	}
}

func writeParagraphMarkdown(md *strings.Builder, para *docs.Paragraph) {
	if para == nil {
		return
	}

	heading := 0
	if para.ParagraphStyle != nil {
		heading = headingLevels[para.ParagraphStyle.NamedStyleType]
	}
	if heading > 0 {
		md.WriteString(strings.Repeat("#", heading))
		md.WriteString(" ")
	}

	// All lists render as bullet lists; tracking numbering by ListId is
	// not worth the complexity for tool output
	bullet := para.Bullet != nil
	if bullet {
		md.WriteString("- ")
	}

	for _, elem := range para.Elements {
		if elem.TextRun != nil {
			writeTextRunMarkdown(md, elem.TextRun)
		}
	}

	md.WriteString("\n")
	if heading > 0 || !bullet {
		md.WriteString("\n")
	}
}

func writeTextRunMarkdown(md *strings.Builder, run *docs.TextRun) {
	if run.Content == "" {
		return
	}

	style := run.TextStyle
	if style == nil {
		md.WriteString(run.Content)
		return
	}

	if style.Link != nil && style.Link.Url != "" {
		md.WriteString("[")
		md.WriteString(strings.TrimSpace(run.Content))
		md.WriteString("](")
		md.WriteString(style.Link.Url)
		md.WriteString(")")
		return
	}

	switch {
	case style.Bold && style.Italic:
		md.WriteString("***")
		md.WriteString(run.Content)
		md.WriteString("***")
	case style.Bold:
		md.WriteString("**")
		md.WriteString(run.Content)
		md.WriteString("**")
	case style.Italic:
		md.WriteString("*")
		md.WriteString(run.Content)
		md.WriteString("*")
	default:
		md.WriteString(run.Content)
	}
}

func writeTableMarkdown(md *strings.Builder, table *docs.Table) {
	if table == nil || len(table.TableRows) == 0 {
		return
	}

	for rowIndex, row := range table.TableRows {
		md.WriteString("|")
		for _, cell := range row.TableCells {
			md.WriteString(" ")
			var cellText strings.Builder
			for _, element := range cell.Content {
				writeElementText(&cellText, element)
			}
			md.WriteString(strings.ReplaceAll(strings.TrimSpace(cellText.String()), "\n", " "))
			md.WriteString(" |")
		}
		md.WriteString("\n")

		if rowIndex == 0 {
			md.WriteString("|")
			for range row.TableCells {
				md.WriteString(" --- |")
			}
			md.WriteString("\n")
		}
	}

	md.WriteString("\n")
}

func writeElementText(text *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		for _, elem := range element.Paragraph.Elements {
			if elem.TextRun != nil {
				text.WriteString(elem.TextRun.Content)
			}
		}
	case element.Table != nil:
		for _, row := range element.Table.TableRows {
			for _, cell := range row.TableCells {
				for _, e := range cell.Content {
					writeElementText(text, e)
				}
				text.WriteString("\t")
			}
			text.WriteString("\n")
		}
	}
}
