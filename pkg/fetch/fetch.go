// Package fetch retrieves the redirect rules source from object storage and
// classifies failures into a small taxonomy callers can branch on.
package fetch

import (
	"bytes"
	"context"
	"io"

	"github.com/3leaps/s3redirects/pkg/provider"
	"github.com/3leaps/s3redirects/pkg/provider/s3"
)

// RemoteFile is a fetched object. Its body can be read once.
type RemoteFile struct {
	etag string
	size int
	body io.Reader
}

// ETag returns the object's ETag and whether the store supplied one.
func (f *RemoteFile) ETag() (string, bool) {
	return f.etag, f.etag != ""
}

// Size returns the payload size in bytes.
func (f *RemoteFile) Size() int {
	return f.size
}

// Body returns the payload as a sequential reader.
func (f *RemoteFile) Body() io.Reader {
	return f.body
}

// Fetcher performs a single conditional fetch per call. It never retries.
type Fetcher struct {
	getter provider.ConditionalGetter
}

// New returns a Fetcher backed by getter.
func New(getter provider.ConditionalGetter) *Fetcher {
	return &Fetcher{getter: getter}
}

// NewS3 builds an S3-backed Fetcher from explicit configuration. Missing or
// inconsistent configuration is reported as KindUnauthorized.
func NewS3(ctx context.Context, cfg s3.Config) (*Fetcher, error) {
	p, err := s3.New(ctx, cfg)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Err: err}
	}
	return New(p), nil
}

// Fetch downloads key. When etag is non-empty it is sent as an If-None-Match
// precondition and a match yields a KindNotModified error.
func (f *Fetcher) Fetch(ctx context.Context, key, etag string) (*RemoteFile, error) {
	obj, err := f.getter.GetObjectIfNoneMatch(ctx, key, etag)
	if err != nil {
		return nil, classify(key, etag, err)
	}
	if obj.Body == nil {
		return nil, &Error{Kind: KindUnknown, Key: key, Err: ErrEmptyObject}
	}
	defer func() { _ = obj.Body.Close() }()

	var buf bytes.Buffer
	if obj.ContentLength > 0 {
		buf.Grow(int(obj.ContentLength))
	}
	if _, err := buf.ReadFrom(obj.Body); err != nil {
		return nil, &Error{Kind: KindUnknown, Key: key, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &Error{Kind: KindUnknown, Key: key, Err: ErrEmptyObject}
	}

	return &RemoteFile{
		etag: obj.ETag,
		size: buf.Len(),
		body: &buf,
	}, nil
}
