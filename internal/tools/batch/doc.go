// Package batch provides shared helpers for batch tool operations.
//
// Batch tools accept either a single ID or an array of IDs, run the
// operation per item, and report per-item success or error results. A
// failing item never aborts the rest of the batch.
package batch
