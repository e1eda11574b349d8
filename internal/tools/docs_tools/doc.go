// Package docs_tools provides MCP tools for interacting with Google Docs.
//
// docs_get_document renders a document as markdown or plain text, including
// tab content. docs_create_document and docs_append_text are write tools and
// only registered outside read-only mode.
package docs_tools
