// Package cmd implements the s3redirects command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/3leaps/s3redirects/internal/config"
	"github.com/3leaps/s3redirects/internal/observability"
)

const appName = "s3redirects"

var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata reported by the version command.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Generate Nginx redirects from a CSV rule list stored in S3",
	Long: `Fetch a CSV list of redirect rules and render it as Nginx location blocks.

The CSV must have a header row naming match_pattern and redirect_pattern.
Each row becomes:

    location ~* <match_pattern> {
        return 301 <redirect_pattern>;
    }

Bucket, region and credentials come from REDIRECTS_S3_BUCKET,
REDIRECTS_S3_REGION, REDIRECTS_AWS_ACCESS_KEY_ID and
REDIRECTS_AWS_SECRET_ACCESS_KEY (or the AWS default credential chain).

On success the ETag of the fetched object is printed to stdout. Pass it back
with --etag on the next run; if the rules are unchanged the command exits with
code 3 and writes nothing.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var (
	rootIn        string
	rootOut       string
	rootETag      string
	rootStdin     bool
	rootConfig    string
	rootBucket    string
	rootRegion    string
	rootEndpoint  string
	rootProfile   string
	rootSourceDir string
	rootLogLevel  string
	rootVerbose   bool
)

func init() {
	rootCmd.Flags().StringVarP(&rootIn, "in", "i", config.DefaultSourceKey, "Object key of the redirect rules CSV")
	rootCmd.Flags().StringVarP(&rootOut, "out", "o", "", "Nginx configuration output file path")
	rootCmd.Flags().StringVarP(&rootETag, "etag", "t", "", "ETag of the last fetched rules; skip generation if unchanged")
	rootCmd.Flags().BoolVar(&rootStdin, "stdin", false, "Read the rules CSV from stdin instead of fetching it")
	_ = rootCmd.MarkFlagRequired("out")

	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootBucket, "bucket", "", "S3 bucket (overrides REDIRECTS_S3_BUCKET)")
	rootCmd.PersistentFlags().StringVarP(&rootRegion, "region", "r", "", "AWS region (overrides REDIRECTS_S3_REGION)")
	rootCmd.PersistentFlags().StringVar(&rootEndpoint, "endpoint", "", "Custom S3 endpoint")
	rootCmd.PersistentFlags().StringVarP(&rootProfile, "profile", "p", "", "AWS profile")
	rootCmd.PersistentFlags().StringVar(&rootSourceDir, "source-dir", "", "Read rules from a local directory instead of S3")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// loadConfig resolves configuration with command-line flags as the highest
// precedence layer, then installs the CLI logger it describes.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(cmd.Context(), rootConfig, flagOverrides(cmd))
	if err != nil {
		return nil, exitError(foundry.ExitInvalidArgument, "Invalid configuration", err)
	}

	level := cfg.Logging.Level
	if rootVerbose {
		level = "debug"
	}
	logger, err := observability.NewCLILogger(appName, level, cfg.Logging.Format)
	if err != nil {
		return nil, exitError(foundry.ExitInvalidArgument, "Invalid logging configuration", err)
	}
	observability.SetCLILogger(logger)

	return cfg, nil
}

// flagOverrides collects only the flags the user actually set.
func flagOverrides(cmd *cobra.Command) map[string]any {
	s3 := map[string]any{}
	source := map[string]any{}
	logging := map[string]any{}

	flags := cmd.Flags()
	set := func(dst map[string]any, key, flag, val string) {
		if flags.Lookup(flag) != nil && flags.Changed(flag) {
			dst[key] = val
		}
	}
	set(s3, "bucket", "bucket", rootBucket)
	set(s3, "region", "region", rootRegion)
	set(s3, "endpoint", "endpoint", rootEndpoint)
	set(s3, "profile", "profile", rootProfile)
	set(source, "dir", "source-dir", rootSourceDir)
	set(source, "key", "in", rootIn)
	set(logging, "level", "log-level", rootLogLevel)

	out := map[string]any{}
	for name, m := range map[string]map[string]any{"s3": s3, "source": source, "logging": logging} {
		if len(m) > 0 {
			out[name] = m
		}
	}
	return out
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := validateRootFlags(); err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid arguments", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = observability.CLILogger.Sync() }()

	return generate(cmd.Context(), generateOptions{
		Config: cfg,
		Out:    rootOut,
		ETag:   rootETag,
		Stdin:  rootStdin,
	}, cmd.InOrStdin(), cmd.OutOrStdout())
}

func validateRootFlags() error {
	if rootOut == "" {
		return fmt.Errorf("--out is required")
	}
	if rootStdin && rootETag != "" {
		return fmt.Errorf("--etag cannot be combined with --stdin")
	}
	if rootStdin && rootSourceDir != "" {
		return fmt.Errorf("--source-dir cannot be combined with --stdin")
	}
	return nil
}
