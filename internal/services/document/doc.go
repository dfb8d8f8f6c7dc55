// Package document stages local files for upload, enforces the upload size
// limit, and filters document lists by glob pattern.
package document
