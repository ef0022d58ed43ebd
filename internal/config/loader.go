package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MPA_CONFIG is set
//  3. env (prefix MPA_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MPA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MPA_ADDR, MPA_MAX_FILE_SIZE_MB, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MPA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "mpa_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("%w: max_file_size_mb must be positive", ErrInvalidConfig)
	}
	if cfg.UploadQueueSize <= 0 {
		return nil, fmt.Errorf("%w: upload_queue_size must be positive", ErrInvalidConfig)
	}
	switch cfg.MatchPolicy {
	case MatchPolicyEmailCompanyDOBOrName, MatchPolicyUsernameExact:
	default:
		return nil, fmt.Errorf("%w: unknown match_policy %q", ErrInvalidConfig, cfg.MatchPolicy)
	}
	return &cfg, nil
}
