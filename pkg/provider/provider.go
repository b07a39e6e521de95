// Package provider defines abstractions for fetching objects from storage.
//
// Providers implement a minimal surface area focused on retrieving a single
// object, optionally conditioned on a previously seen ETag. Authentication uses
// SDK default credential chains unless explicit credentials are configured -
// providers should not implement custom auth logic.
package provider

import (
	"context"
	"io"
)

// ConditionalGetter downloads an object unless it still matches a known ETag.
//
// Implementations should:
//   - Issue exactly one request per call (no retries)
//   - Return ErrNotModified when etag is non-empty and matches the current object
//   - Return ErrNotFound when the key does not exist
type ConditionalGetter interface {
	// GetObjectIfNoneMatch returns the object at key. An empty etag performs an
	// unconditional fetch. The caller must close Object.Body.
	GetObjectIfNoneMatch(ctx context.Context, key, etag string) (*Object, error)
}

// Object is a fetched object with its body still unread.
type Object struct {
	// Key is the full object key (path) that was fetched.
	Key string

	// ETag is the entity tag without surrounding quotes.
	// Empty if the provider did not return one.
	ETag string

	// ContentLength is the body size in bytes, or -1 if unknown.
	ContentLength int64

	// Body is the object payload. It can be read once.
	Body io.ReadCloser
}

// ProviderType identifies a storage provider.
type ProviderType string

const (
	// ProviderS3 represents AWS S3 or S3-compatible storage.
	ProviderS3 ProviderType = "s3"

	// ProviderFile represents a local directory.
	ProviderFile ProviderType = "file"
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	return string(p)
}
