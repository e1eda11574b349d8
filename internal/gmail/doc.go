// Package gmail provides a thin client over the Gmail API for listing,
// reading and sending mail on behalf of a single authorized account.
package gmail
