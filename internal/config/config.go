package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrConfiguration marks settings that prevent the process from starting.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Rate Limiting, 0 disables
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Security
	EnableAuditLogging bool `json:"enable_audit_logging"`
	EnforceReadOnly    bool `json:"enforce_read_only"`

	LLM      LLMConfig      `json:"llm"`
	Database DatabaseConfig `json:"database"`
}

// LLMConfig selects the text-generation provider and its credential.
type LLMConfig struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`

	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for proxies
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIBaseURL    string `json:"openai_base_url"` // OpenAI-compatible gateways
}

// APIKey returns the credential of the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	default:
		return c.AnthropicAPIKey
	}
}

// APIKeyVar names the environment variable holding the selected provider's credential.
func (c LLMConfig) APIKeyVar() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "ANTHROPIC_API_KEY"
	}
}

// BaseURL returns the endpoint override of the selected provider, if any.
func (c LLMConfig) BaseURL() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIBaseURL
	default:
		return c.AnthropicBaseURL
	}
}

type DatabaseConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		EnableAuditLogging: true,
		LLM: LLMConfig{
			Provider:  DefaultLLMProvider,
			MaxTokens: DefaultMaxTokens,
		},
		Database: DatabaseConfig{
			Driver: DefaultDatabaseDriver,
			Path:   DefaultDatabasePath,
		},
	}

	// .env never overrides variables already present in the process environment
	if err := godotenv.Load(getEnv("MEDQUERY_ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	if path := getEnv("MEDQUERY_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModels[cfg.LLM.Provider]
	}

	return cfg, nil
}

// Validate reports settings the service cannot run without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderAnthropic, ProviderOpenAI:
		if c.LLM.APIKey() == "" {
			return fmt.Errorf("%w: %s environment variable not set, configure your .env file", ErrConfiguration, c.LLM.APIKeyVar())
		}
	default:
		return fmt.Errorf("%w: unknown LLM provider %q", ErrConfiguration, c.LLM.Provider)
	}
	return c.ValidateDatabase()
}

// ValidateDatabase checks only the database settings, for tools that never call the model.
func (c *Config) ValidateDatabase() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverDuckDB:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrConfiguration, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database path is empty", ErrConfiguration)
	}
	return nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("MEDQUERY_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("MEDQUERY_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("MEDQUERY_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("MEDQUERY_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("MEDQUERY_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = parseBool(v)
	}
	if v := getEnv("ENFORCE_READ_ONLY", ""); v != "" {
		cfg.EnforceReadOnly = parseBool(v)
	}
	if v := getEnv("LLM_PROVIDER", ""); v != "" {
		cfg.LLM.Provider = strings.ToLower(v)
	}
	if v := getEnv("MEDQUERY_MODEL", ""); v != "" {
		cfg.LLM.Model = v
	}
	if v := getEnv("LLM_MAX_TOKENS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = n
		}
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.LLM.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.LLM.AnthropicBaseURL = v
	}
	if v := getEnv("OPENAI_API_KEY", ""); v != "" {
		cfg.LLM.OpenAIAPIKey = v
	}
	if v := getEnv("OPENAI_BASE_URL", ""); v != "" {
		cfg.LLM.OpenAIBaseURL = v
	}
	if v := getEnv("DATABASE_DRIVER", ""); v != "" {
		cfg.Database.Driver = strings.ToLower(v)
	}
	if v := getEnv("DATABASE_PATH", ""); v != "" {
		cfg.Database.Path = v
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
