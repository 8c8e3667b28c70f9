// Package service holds the business logic between the HTTP handlers and the
// store. Services are stateless; every call reconstructs its working set from
// the store.
package service

import "io"

// AvatarUpload is an uploaded avatar image handed down from the HTTP layer.
// Filename only contributes its extension; the blob store generates the
// stored name.
type AvatarUpload struct {
	Filename string
	Reader   io.Reader
}
