// Package sheets provides a thin client over the Google Sheets API for
// reading and writing cell ranges.
package sheets
