// Package gmail_tools provides MCP (Model Context Protocol) tools for
// interacting with Gmail.
//
// Message tools:
//   - gmail_list_messages: list messages matching a search query
//   - gmail_get_message: headers, snippet and labels of one message
//   - gmail_get_message_bodies: extract text or HTML bodies (batch)
//   - gmail_list_labels: labels with message counts
//   - gmail_archive_messages: remove messages from the inbox (batch)
//   - gmail_modify_labels: add/remove labels (batch)
//
// Attachment tools:
//   - gmail_list_attachments: list all attachments in a message
//   - gmail_get_attachment: retrieve attachment content (base64 or text)
//
// Write tools, only registered outside read-only mode:
//   - gmail_send_message: send an email
//   - gmail_create_draft: create a draft without sending
//
// Every tool takes an optional "account" argument naming the Google account
// email; it defaults to the server's default account. Batch tools report
// per-item success and failure, so one bad ID never aborts the rest.
//
// Attachment size is limited to 25MB and filenames are sanitized against
// path traversal.
package gmail_tools
