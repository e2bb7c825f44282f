// Package config loads changegen settings using koanf.
// Values are resolved with priority: command flags (applied by the caller)
// > CHANGEGEN_* environment variables > defaults. There is no configuration file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "CHANGEGEN_"

// Configuration holds the settings that can come from the environment.
type Configuration struct {
	// GitBackend selects log retrieval: "cli" runs the git binary, "gogit" reads the repository directly.
	GitBackend string `koanf:"git_backend" validate:"oneof=cli gogit"`
	// GitBinary is the git executable used by the cli backend.
	GitBinary string `koanf:"git_binary" validate:"required"`
	// Timeout bounds log retrieval. Zero disables the limit.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
	// Format is the default output format.
	Format string `koanf:"format" validate:"oneof=text yaml pretty"`
}

// Load builds the configuration from defaults and the environment, then validates it.
func Load() (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged values
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("decoding environment: %v", err)}
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGEGEN_GIT_BACKEND -> git_backend
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// EnvVar returns the environment variable that sets key.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}
