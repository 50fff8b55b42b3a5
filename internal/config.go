package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName   = "config"
	configType   = "yaml"
	envPrefix    = "GITWEEKLY"
	envSeparator = "_"
)

// Defaults
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
	DefaultStore       = "file"
	DefaultLogLevel    = "info"
)

var (
	ErrEmptyRepoPath      = errors.New("repository path is empty")
	ErrInvalidStore       = errors.New("store backend must be one of file, sqlite, redis, memory")
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 2")
	ErrInvalidMaxTokens   = errors.New("max_tokens must be positive")
	ErrInvalidOutputLimit = errors.New("max_output_bytes must not be negative")
	ErrInvalidBranch      = errors.New("invalid branch name")
)

// Config is the full application configuration
type Config struct {
	Repositories []RepositorySelection `mapstructure:"repositories"`
	Authors      []string              `mapstructure:"authors"`
	AI           AIConfig              `mapstructure:"ai"`
	Remote       RemoteConfig          `mapstructure:"remote"`
	Git          GitConfig             `mapstructure:"git"`
	Store        StoreConfig           `mapstructure:"store"`
	Logging      LoggingConfig         `mapstructure:"logging"`
}

// AIConfig configures the report optimizer
type AIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	PromptTemplate string  `mapstructure:"prompt_template"`
	Provider       string  `mapstructure:"provider"`
	APIURL         string  `mapstructure:"api_url"`
	CustomModel    string  `mapstructure:"custom_model"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
}

// RemoteConfig configures hosting API access
type RemoteConfig struct {
	Token     string          `mapstructure:"token"`
	Endpoints RemoteEndpoints `mapstructure:"endpoints"`
}

// GitConfig configures the git binary invocation
type GitConfig struct {
	Binary         string `mapstructure:"binary"`
	MaxOutputBytes int    `mapstructure:"max_output_bytes"`
}

// LoggingConfig configures the global logger
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfigDir returns ~/.config/git-weekly
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "git-weekly"), nil
}

// LoadConfig loads configuration from file, environment and defaults.
// An explicit path must exist; otherwise config.yaml is searched in the working
// directory and DefaultConfigDir, and a missing file means defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envSeparator))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		LogDebug("No config file found, using defaults")
	} else {
		LogDebug("Loaded config from %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("repositories", []RepositorySelection{})
	v.SetDefault("authors", []string{})

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.prompt_template", "")
	v.SetDefault("ai.provider", "")
	v.SetDefault("ai.api_url", "")
	v.SetDefault("ai.custom_model", "")
	v.SetDefault("ai.temperature", DefaultTemperature)
	v.SetDefault("ai.max_tokens", DefaultMaxTokens)

	endpoints := DefaultRemoteEndpoints()
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.endpoints.github", endpoints.GitHub)
	v.SetDefault("remote.endpoints.gitlab", endpoints.GitLab)
	v.SetDefault("remote.endpoints.gitee", endpoints.Gitee)
	v.SetDefault("remote.endpoints.codeup", endpoints.Codeup)

	v.SetDefault("git.binary", "git")
	v.SetDefault("git.max_output_bytes", DefaultMaxOutputBytes)

	v.SetDefault("store.backend", DefaultStore)
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_prefix", defaultRedisPrefix)

	v.SetDefault("logging.level", DefaultLogLevel)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if err := ValidateSelections(c.Repositories); err != nil {
		return &ConfigError{Field: "repositories", Err: err}
	}

	switch c.Store.Backend {
	case "file", "sqlite", "redis", "memory":
	default:
		return &ConfigError{Field: "store.backend", Err: ErrInvalidStore}
	}

	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return &ConfigError{Field: "ai.temperature", Err: ErrInvalidTemperature}
	}
	if c.AI.MaxTokens <= 0 {
		return &ConfigError{Field: "ai.max_tokens", Err: ErrInvalidMaxTokens}
	}
	if c.Git.MaxOutputBytes < 0 {
		return &ConfigError{Field: "git.max_output_bytes", Err: ErrInvalidOutputLimit}
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Err: err}
	}
	return nil
}

// ApplySettings fills AI fields left empty by file and environment with stored settings
func (c *AIConfig) ApplySettings(s AISettings) {
	if c.APIKey == "" {
		c.APIKey = s.APIKey
	}
	if c.Model == "" {
		c.Model = s.Model
	}
	if c.PromptTemplate == "" {
		c.PromptTemplate = s.PromptTemplate
	}
	if c.Provider == "" {
		c.Provider = s.Provider
	}
}

// ValidateSelections rejects empty paths and repositories listed more than once
func ValidateSelections(repos []RepositorySelection) error {
	seen := make(map[string]bool, len(repos))
	for _, r := range repos {
		if strings.TrimSpace(r.Path) == "" {
			return ErrEmptyRepoPath
		}
		for _, b := range r.SelectedBranches {
			if err := ValidateBranchName(b); err != nil {
				return err
			}
		}
		key := filepath.Clean(r.Path)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateRepository, r.Path)
		}
		seen[key] = true
	}
	return nil
}

// ParseRepoFlag parses "path" or "path@branch1,branch2" into a selection
func ParseRepoFlag(value string) (RepositorySelection, error) {
	value = strings.TrimSpace(value)
	path := value
	var branches []string

	if i := strings.LastIndex(value, "@"); i >= 0 {
		path = value[:i]
		for _, b := range strings.Split(value[i+1:], ",") {
			if b = strings.TrimSpace(b); b != "" {
				branches = append(branches, b)
			}
		}
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return RepositorySelection{}, ErrEmptyRepoPath
	}
	for _, b := range branches {
		if err := ValidateBranchName(b); err != nil {
			return RepositorySelection{}, err
		}
	}
	return RepositorySelection{Path: path, SelectedBranches: branches}, nil
}

// ValidateBranchName rejects names git would read as an option
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidBranch, name)
	}
	return nil
}
