// Package slides_tools provides MCP tools for Google Slides.
//
// slides_get_presentation and slides_get_page_text are read tools. Write
// tools, only registered outside read-only mode: slides_create_presentation
// and slides_add_slide.
package slides_tools
