// Package blob stores uploaded avatar images. Rows reference blobs by web
// path (e.g. "/uploads/1712345678901-123456789.png"); drivers decide where
// the bytes actually live.
package blob

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"path"
	"time"
)

// WebPrefix is the URL prefix under which stored blobs are served.
const WebPrefix = "/uploads/"

// Store saves and removes avatar blobs.
type Store interface {
	// Save stores the blob under a freshly generated name and returns the
	// web path to record in the database. originalName only contributes its
	// extension.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Remove deletes the blob a web path refers to. Removing a blob that is
	// already gone is not an error; anything else is.
	Remove(ctx context.Context, webPath string) error
}

// NewName generates a collision-resistant filename: millisecond timestamp,
// a random suffix, and the original extension.
func NewName(originalName string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken
		panic(fmt.Sprintf("blob: entropy source unavailable: %v", err))
	}
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), n.Int64(), path.Ext(originalName))
}
