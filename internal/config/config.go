package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/relgate/relgate/internal/domain"
	"github.com/spf13/viper"
)

// Git backend selectors.
const (
	BackendNative = "native"
	BackendCLI    = "cli"
)

type Config struct {
	Changelog       string   `mapstructure:"changelog"`
	Manifest        string   `mapstructure:"manifest"`
	AllowDirty      []string `mapstructure:"allow_dirty"`
	UntrackedFiles  string   `mapstructure:"untracked_files"`
	AddUntracked    bool     `mapstructure:"add_untracked"`
	FirstVersion    string   `mapstructure:"first_version"`
	VersionRegexp   string   `mapstructure:"version_regexp"`
	VersionOverride string   `mapstructure:"version_override"`
	GitBackend      string   `mapstructure:"git_backend"`
	StateDir        string   `mapstructure:"state_dir"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Changelog:      "Changes",
		Manifest:       "go.mod",
		UntrackedFiles: string(domain.UntrackedDie),
		FirstVersion:   "0.001",
		VersionRegexp:  `^v(.+)$`,
		GitBackend:     BackendNative,
		StateDir:       ".relgate",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := domain.ParseUntrackedPolicy(c.UntrackedFiles); err != nil {
		return err
	}
	if _, err := c.VersionPattern(); err != nil {
		return err
	}
	if c.GitBackend != BackendNative && c.GitBackend != BackendCLI {
		return fmt.Errorf("invalid git_backend: %q (expected %s or %s)", c.GitBackend, BackendNative, BackendCLI)
	}
	if c.FirstVersion == "" {
		return fmt.Errorf("first_version cannot be empty")
	}
	if strings.Contains(c.StateDir, "..") {
		return fmt.Errorf("state_dir contains invalid path traversal")
	}
	return nil
}

// VersionPattern compiles version_regexp and checks it captures the
// version substring in its first group.
func (c *Config) VersionPattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.VersionRegexp)
	if err != nil {
		return nil, fmt.Errorf("invalid version_regexp: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("version_regexp must contain a capture group: %q", c.VersionRegexp)
	}
	return re, nil
}

// UntrackedPolicy returns the parsed untracked-files policy. Validate
// must have accepted the configuration first.
func (c *Config) UntrackedPolicy() domain.UntrackedPolicy {
	policy, err := domain.ParseUntrackedPolicy(c.UntrackedFiles)
	if err != nil {
		return domain.UntrackedDie
	}
	return policy
}

// IsAllowedDirty reports whether a path is exempt from the dirty-file
// check.
func (c *Config) IsAllowedDirty(path string) bool {
	return slices.Contains(c.AllowDirty, path)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".relgate")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("RELGATE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("version_override", "V", "RELGATE_VERSION_OVERRIDE"); err != nil {
		return nil, fmt.Errorf("failed to bind version_override env: %w", err)
	}
	if err := viper.BindEnv("untracked_files", "RELGATE_UNTRACKED_FILES"); err != nil {
		return nil, fmt.Errorf("failed to bind untracked_files env: %w", err)
	}
	if err := viper.BindEnv("first_version", "RELGATE_FIRST_VERSION"); err != nil {
		return nil, fmt.Errorf("failed to bind first_version env: %w", err)
	}
	if err := viper.BindEnv("git_backend", "RELGATE_GIT_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind git_backend env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("changelog", defaults.Changelog)
	viper.SetDefault("manifest", defaults.Manifest)
	viper.SetDefault("untracked_files", defaults.UntrackedFiles)
	viper.SetDefault("first_version", defaults.FirstVersion)
	viper.SetDefault("version_regexp", defaults.VersionRegexp)
	viper.SetDefault("git_backend", defaults.GitBackend)
	viper.SetDefault("state_dir", defaults.StateDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	// The changelog and manifest are expected to change during a
	// release, so they are exempt unless the operator overrides the
	// allow-list.
	if len(config.AllowDirty) == 0 {
		config.AllowDirty = []string{config.Changelog, config.Manifest}
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
