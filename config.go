package metadataai

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/metadata-ai/metadata-ai-go/internal/transport"
)

// envPrefix is the prefix of every configuration environment variable.
const envPrefix = "METADATA_AI_"

// Config holds client configuration, typically loaded from the environment.
type Config struct {
	// Host is the server URL, e.g. "https://metadata.example.com". Required.
	Host string
	// Token is the JWT bot token. Required.
	Token string
	// Timeout bounds each request attempt.
	Timeout time.Duration
	// VerifySSL controls TLS certificate verification.
	VerifySSL bool
	// MaxRetries is the number of retries for transient errors.
	MaxRetries int
	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// LogLevel enables SDK logging at the given level when non-empty
	// (DEBUG|INFO|WARN|ERROR).
	LogLevel string
}

// DefaultConfig returns a Config with defaults applied. Host and Token must
// still be filled in.
func DefaultConfig() Config {
	return Config{
		Timeout:    transport.DefaultTimeout,
		VerifySSL:  true,
		MaxRetries: transport.DefaultMaxRetries,
		RetryDelay: transport.DefaultRetryDelay,
	}
}

// Validate checks the configuration and normalizes the host.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing host: set %sHOST to your server URL", envPrefix)
	}
	if c.Token == "" {
		return fmt.Errorf("missing token: set %sTOKEN to your bot JWT token", envPrefix)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	c.Host = strings.TrimSuffix(c.Host, "/")
	return nil
}

// FromEnv loads configuration from METADATA_AI_* environment variables. A
// .env file in the working directory is loaded first when present, without
// overriding variables already set in the environment.
//
// Recognized variables: HOST, TOKEN, TIMEOUT (seconds), VERIFY_SSL,
// MAX_RETRIES, RETRY_DELAY (seconds), USER_AGENT, LOG_LEVEL.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.Host = os.Getenv(envPrefix + "HOST")
	cfg.Token = os.Getenv(envPrefix + "TOKEN")
	cfg.UserAgent = os.Getenv(envPrefix + "USER_AGENT")
	cfg.LogLevel = os.Getenv(envPrefix + "LOG_LEVEL")

	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %sTIMEOUT %q: %w", envPrefix, v, err)
		}
		cfg.Timeout = time.Duration(secs * float64(time.Second))
	}
	if v := os.Getenv(envPrefix + "VERIFY_SSL"); v != "" {
		cfg.VerifySSL = parseBool(v)
	}
	if v := os.Getenv(envPrefix + "MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sMAX_RETRIES %q: %w", envPrefix, v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv(envPrefix + "RETRY_DELAY"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %sRETRY_DELAY %q: %w", envPrefix, v, err)
		}
		cfg.RetryDelay = time.Duration(secs * float64(time.Second))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
