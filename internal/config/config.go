// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	ai "github.com/m-rashid-2024/careagent"
)

// Config holds the process configuration.
type Config struct {
	// Model backend
	Provider   ai.Provider
	OllamaHost string
	Model      string
	APIKey     string

	// Care API credentials
	Username string
	Password string
	AuthURL  string
	Realm    string
	ClientID string
	APIURL   string

	// Transport
	HTTPTimeout   time.Duration
	RetryAttempts int
	TokenReuse    bool

	// Conversation
	HistoryDir string
	SeedFile   string

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load reads a .env file if present (or the given files) and then the environment.
// Variables already set in the environment take precedence over file values.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	provider := ai.Provider(strings.ToLower(getEnvOrDefault("CARE_PROVIDER", string(ai.ProviderOllama))))

	// Hosted providers fall back to their client's default model.
	model := os.Getenv("CARE_MODEL")
	if model == "" && provider == ai.ProviderOllama {
		model = getEnvOrDefault("ollama_model", "llama3.1")
	}

	return &Config{
		Provider:      provider,
		OllamaHost:    getEnvOrDefault("ollama_host", "http://localhost:11434"),
		Model:         model,
		APIKey:        os.Getenv("CARE_MODEL_API_KEY"),
		Username:      os.Getenv("username"),
		Password:      os.Getenv("password"),
		AuthURL:       getEnvOrDefault("CARE_AUTH_URL", "https://login.login-one.de"),
		Realm:         getEnvOrDefault("CARE_REALM", "one"),
		ClientID:      getEnvOrDefault("CARE_CLIENT_ID", "optadata-care"),
		APIURL:        getEnvOrDefault("CARE_API_URL", "https://api.optadatacare.de/api/fe"),
		HTTPTimeout:   getEnvDurationOrDefault("CARE_HTTP_TIMEOUT", 30*time.Second),
		RetryAttempts: getEnvIntOrDefault("CARE_RETRY_ATTEMPTS", 1),
		TokenReuse:    getEnvBoolOrDefault("CARE_TOKEN_REUSE", false),
		HistoryDir:    os.Getenv("CARE_HISTORY_DIR"),
		SeedFile:      os.Getenv("CARE_SEED_FILE"),
		LogLevel:      getEnvOrDefault("logger_level", "INFO"),
		LogPretty:     getEnvBoolOrDefault("CARE_LOG_PRETTY", true),
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	if _, err := ai.ParseProvider(string(c.Provider)); err != nil {
		return fmt.Errorf("CARE_PROVIDER: %w (must be ollama, openai, anthropic or google)", err)
	}
	if c.Provider != ai.ProviderOllama && c.APIKey == "" {
		return fmt.Errorf("CARE_MODEL_API_KEY is required for %s provider", c.Provider)
	}
	for name, raw := range map[string]string{
		"ollama_host":   c.OllamaHost,
		"CARE_AUTH_URL": c.AuthURL,
		"CARE_API_URL":  c.APIURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("CARE_HTTP_TIMEOUT must be positive")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("CARE_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

// TokenURL is the password-grant endpoint of the configured realm.
func (c *Config) TokenURL() string {
	return strings.TrimRight(c.AuthURL, "/") + "/auth/realms/" + url.PathEscape(c.Realm) + "/protocol/openid-connect/token"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
