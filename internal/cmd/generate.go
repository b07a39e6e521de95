package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3leaps/s3redirects/internal/config"
	"github.com/3leaps/s3redirects/internal/observability"
	"github.com/3leaps/s3redirects/pkg/fetch"
	"github.com/3leaps/s3redirects/pkg/provider/file"
	"github.com/3leaps/s3redirects/pkg/redirect"
)

type generateOptions struct {
	Config *config.Config

	// Out is the Nginx configuration file to (over)write.
	Out string

	// ETag skips generation when the remote object still matches it.
	ETag string

	// Stdin reads the CSV from the command's input instead of fetching it.
	Stdin bool
}

// generate runs one fetch -> parse -> build -> write pass. The new ETag is
// printed to stdout only after the configuration has been written.
func generate(ctx context.Context, opts generateOptions, stdin io.Reader, stdout io.Writer) error {
	log := observability.CLILogger.With(zap.String("run_id", uuid.New().String()))

	src, etag, err := openSource(ctx, opts, stdin, log)
	if err != nil {
		return err
	}

	rules, err := redirect.Parse(src)
	if err != nil {
		log.Error("Failed to parse redirect rules", zap.Error(err))
		return loggedExitError(foundry.ExitFileReadError, "Failed to parse redirect rules", err)
	}
	log.Debug("Parsed redirect rules", zap.Int("rules", len(rules)))

	conf := redirect.BuildConf(rules)
	if err := redirect.WriteConf(opts.Out, conf); err != nil {
		log.Error("Failed to write nginx config", zap.String("path", opts.Out), zap.Error(err))
		return loggedExitError(foundry.ExitFileWriteError, "Failed to write nginx config", err)
	}
	log.Info("Wrote nginx config",
		zap.String("path", opts.Out),
		zap.Int("rules", len(rules)),
		zap.Int("bytes", len(conf)))

	if etag != "" {
		if _, err := fmt.Fprintln(stdout, etag); err != nil {
			return exitError(foundry.ExitFileWriteError, "Failed to print etag", err)
		}
	}
	return nil
}

// openSource returns the CSV stream and, for fetched objects, its ETag.
func openSource(ctx context.Context, opts generateOptions, stdin io.Reader, log *zap.Logger) (io.Reader, string, error) {
	if opts.Stdin {
		log.Debug("Reading redirect rules from stdin")
		return stdin, "", nil
	}

	cfg := opts.Config
	key := cfg.Source.Key

	var (
		fetcher *fetch.Fetcher
		err     error
	)
	if cfg.Source.Dir != "" {
		var p *file.Provider
		p, err = file.New(file.Config{BaseDir: cfg.Source.Dir})
		if err == nil {
			fetcher = fetch.New(p)
		}
		log.Debug("Using local source", zap.String("dir", cfg.Source.Dir), zap.String("key", key))
	} else {
		fetcher, err = fetch.NewS3(ctx, cfg.S3Config())
		log.Debug("Using S3 source",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("region", cfg.S3.Region),
			zap.String("key", key))
	}
	if err != nil {
		return nil, "", fetchExitError(log, err)
	}

	remote, err := fetcher.Fetch(ctx, key, opts.ETag)
	if err != nil {
		return nil, "", fetchExitError(log, err)
	}

	etag, _ := remote.ETag()
	log.Info("Fetched redirect rules",
		zap.String("key", key),
		zap.String("etag", etag),
		zap.Int("bytes", remote.Size()))
	return remote.Body(), etag, nil
}

// fetchExitError maps a fetch failure to its exit code. Not-modified is the
// only non-fatal outcome.
func fetchExitError(log *zap.Logger, err error) error {
	switch fetch.KindOf(err) {
	case fetch.KindNotModified:
		log.Info("Redirect rules not modified")
		return exitError(ExitNotModified, "Redirect rules not modified", err)
	case fetch.KindNotFound:
		log.Error("Redirect rules not found", zap.Error(err))
		return loggedExitError(foundry.ExitFileNotFound, "Redirect rules not found", err)
	case fetch.KindUnauthorized:
		log.Error("Storage authorization failed", zap.Error(err))
		return loggedExitError(foundry.ExitExternalServiceUnavailable, "Storage authorization failed", err)
	default:
		log.Error("Failed to fetch redirect rules", zap.Error(err))
		return loggedExitError(foundry.ExitExternalServiceUnavailable, "Failed to fetch redirect rules", err)
	}
}
