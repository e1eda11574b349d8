// Package drive provides a thin client over the Google Drive API for
// searching, downloading, uploading and sharing files.
package drive
