// Package drive_tools provides MCP (Model Context Protocol) tools for
// Google Drive operations.
//
// Read tools: drive_search_files, drive_get_file, drive_download_file and
// drive_export_file. Write tools, only registered outside read-only mode:
// drive_upload_file, drive_create_folder, drive_share_file and
// drive_delete_files.
//
// File content flows through tool results as text or base64 and is capped
// at 10MB per call.
package drive_tools
