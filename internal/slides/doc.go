// Package slides provides a thin client over the Google Slides API for
// reading presentations and simple slide edits.
package slides
