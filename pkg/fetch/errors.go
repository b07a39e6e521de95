package fetch

import (
	"errors"
	"fmt"

	"github.com/3leaps/s3redirects/pkg/provider"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindUnknown covers transport failures, empty bodies and anything unclassified.
	KindUnknown Kind = iota

	// KindNotFound means the object key does not exist.
	KindNotFound

	// KindNotModified means the supplied ETag still matches the remote object.
	KindNotModified

	// KindUnauthorized means configuration or credentials were missing or rejected.
	KindUnauthorized
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNotModified:
		return "not_modified"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// ErrEmptyObject is returned (wrapped as KindUnknown) when the store returns no bytes.
var ErrEmptyObject = errors.New("object body is empty")

// Error is a classified fetch failure.
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("fetch %s: %s", e.Key, e.Kind)
	case e.Key == "":
		return fmt.Sprintf("fetch: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.Key, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a fetch error, or KindUnknown for any other error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsNotModified returns true if err reports an unchanged remote object.
func IsNotModified(err error) bool {
	return err != nil && KindOf(err) == KindNotModified
}

// IsNotFound returns true if err reports a missing object key.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsUnauthorized returns true if err reports a configuration or credential failure.
func IsUnauthorized(err error) bool {
	return err != nil && KindOf(err) == KindUnauthorized
}

// classify maps provider errors onto the fetch taxonomy. A not-modified report
// only counts when the caller actually sent a precondition.
func classify(key, etag string, err error) *Error {
	kind := KindUnknown
	switch {
	case provider.IsNotFound(err):
		kind = KindNotFound
	case provider.IsNotModified(err) && etag != "":
		kind = KindNotModified
	case provider.IsInvalidConfig(err),
		provider.IsInvalidCredentials(err),
		provider.IsAccessDenied(err),
		provider.IsBucketNotFound(err):
		kind = KindUnauthorized
	}
	return &Error{Kind: kind, Key: key, Err: err}
}
