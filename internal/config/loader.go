package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "REDIRECTS"

// EnvSpec maps an environment variable to a configuration key.
type EnvSpec struct {
	Name string
	Path string
}

// getEnvSpecs lists the environment variables bound by Load.
func getEnvSpecs() []EnvSpec {
	return []EnvSpec{
		{Name: EnvPrefix + "_AWS_ACCESS_KEY_ID", Path: "s3.access_key_id"},
		{Name: EnvPrefix + "_AWS_SECRET_ACCESS_KEY", Path: "s3.secret_access_key"},
		{Name: EnvPrefix + "_S3_BUCKET", Path: "s3.bucket"},
		{Name: EnvPrefix + "_S3_REGION", Path: "s3.region"},
		{Name: EnvPrefix + "_S3_ENDPOINT", Path: "s3.endpoint"},
		{Name: EnvPrefix + "_S3_PROFILE", Path: "s3.profile"},
		{Name: EnvPrefix + "_S3_FORCE_PATH_STYLE", Path: "s3.force_path_style"},
		{Name: EnvPrefix + "_SOURCE_KEY", Path: "source.key"},
		{Name: EnvPrefix + "_SOURCE_DIR", Path: "source.dir"},
		{Name: EnvPrefix + "_LOG_LEVEL", Path: "logging.level"},
		{Name: EnvPrefix + "_LOG_FORMAT", Path: "logging.format"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.profile", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.force_path_style", false)

	v.SetDefault("source.key", DefaultSourceKey)
	v.SetDefault("source.dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load resolves configuration without a config file.
func Load(ctx context.Context, overrides ...map[string]any) (*Config, error) {
	return LoadFile(ctx, "", overrides...)
}

// LoadFile resolves configuration with precedence
// overrides > environment > file > defaults. Empty environment values are
// ignored, and surrounding whitespace is trimmed from every string setting.
func LoadFile(ctx context.Context, path string, overrides ...map[string]any) (*Config, error) {
	_ = ctx
	v := viper.New()
	setDefaults(v)

	for _, spec := range getEnvSpecs() {
		if err := v.BindEnv(spec.Path, spec.Name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", spec.Name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	for _, o := range overrides {
		for key, val := range flatten("", o) {
			v.Set(key, val)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.DecodeHookFuncType(trimSpaceHook))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Source.Key == "" {
		cfg.Source.Key = DefaultSourceKey
	}

	return &cfg, nil
}

// flatten turns nested override maps into dotted viper keys.
func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[strings.ToLower(key)] = val
	}
	return out
}

func trimSpaceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}
