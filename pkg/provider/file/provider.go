package file

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/3leaps/s3redirects/pkg/provider"
)

// Provider implements provider.ConditionalGetter for local filesystem paths.
//
// Keys are treated as relative paths under BaseDir. The ETag of an object is
// the hex MD5 of its content, matching what S3 reports for single-part uploads.
type Provider struct {
	baseDir string
}

var _ provider.ConditionalGetter = (*Provider)(nil)

type Config struct {
	BaseDir string
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseDir) == "" {
		return fmt.Errorf("base dir is required: %w", provider.ErrInvalidConfig)
	}
	return nil
}

func New(cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{baseDir: filepath.Clean(cfg.BaseDir)}, nil
}

func (p *Provider) Close() error { return nil }

// GetObjectIfNoneMatch reads key from disk. The whole file is read up front so
// the ETag can be compared before any bytes are handed to the caller.
func (p *Provider) GetObjectIfNoneMatch(ctx context.Context, key, etag string) (*provider.Object, error) {
	_ = ctx
	full, err := p.fullPath(key)
	if err != nil {
		return nil, p.wrapError("GetObject", key, err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, p.wrapError("GetObject", key, err)
	}

	sum := md5.Sum(data)
	current := hex.EncodeToString(sum[:])
	if etag != "" && strings.Trim(etag, "\"") == current {
		return nil, p.wrapError("GetObject", key, provider.ErrNotModified)
	}

	return &provider.Object{
		Key:           key,
		ETag:          current,
		ContentLength: int64(len(data)),
		Body:          io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func (p *Provider) fullPath(key string) (string, error) {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "/")
	// Prevent path traversal.
	clean := filepath.Clean("/" + key)
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key path %q", key)
	}
	return filepath.Join(p.baseDir, filepath.FromSlash(clean)), nil
}

func (p *Provider) wrapError(op, key string, err error) error {
	wrapped := &provider.ProviderError{Op: op, Provider: provider.ProviderFile, Bucket: p.baseDir, Key: key, Err: err}
	// Normalize common filesystem errors to provider sentinels.
	if os.IsNotExist(err) {
		wrapped.Err = provider.ErrNotFound
	}
	if os.IsPermission(err) {
		wrapped.Err = provider.ErrAccessDenied
	}
	return wrapped
}
