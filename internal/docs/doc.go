// Package docs provides a thin client over the Google Docs API for
// reading documents as text or Markdown and for simple edits.
package docs
