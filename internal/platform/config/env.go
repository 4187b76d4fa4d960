package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by pipsheet commands.
const EnvPrefix = "PIPSHEET_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithPrefix loads configuration whose struct tags omit the shared
// prefix, e.g. `env:"DB_PATH"` resolves PIPSHEET_DB_PATH.
func ParseEnvWithPrefix(target any, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ParseEnv(target)
	}
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env %s*: %w", prefix, err)
	}
	return nil
}
