// Package cache stores rendered artifacts so identical documents are not
// drawn and converted twice.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: shared entries for the render service
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer] so the same document, format and options always
// map to the same entry:
//
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(source), cache.ArtifactKeyOpts{Format: "png", Scale: 2})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts holds the render options that affect an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Native bool    `json:"native,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a rendered artifact of a document.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sourceHash>:<format>[:<scale>x][:native]".
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return artifactKey(sourceHash, opts)
}
