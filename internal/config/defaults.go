package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 5000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultLLMProvider = ProviderAnthropic
	DefaultMaxTokens   = 1024

	DefaultDatabaseDriver = DriverSQLite
	DefaultDatabasePath   = "test.db"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// DefaultModels maps provider -> model ID used when no model is configured.
var DefaultModels = map[string]string{
	ProviderAnthropic: "claude-sonnet-4-6",
	ProviderOpenAI:    "gpt-4o",
}

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
