package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client configuration
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	StateDir    string // durable client state (session file) lives here
	CacheSize   int
	CacheTTL    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getEnv(EnvAPIBaseURL, DefaultAPIBaseURL),
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
	}

	timeoutSec, err := getEnvInt(EnvHTTPTimeoutSeconds, DefaultHTTPTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	cacheSize, err := getEnvInt(EnvCacheSize, DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	cfg.CacheSize = cacheSize

	cacheTTLSec, err := getEnvInt(EnvCacheTTLSeconds, DefaultCacheTTLSeconds)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(cacheTTLSec) * time.Second

	stateDir := getEnv(EnvStateDir, "")
	if stateDir == "" {
		stateDir, err = defaultStateDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state dir: %w", err)
		}
	}
	cfg.StateDir = stateDir

	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultStateDir places durable client state under the user config dir
// (respects XDG_CONFIG_HOME on Linux).
func defaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DefaultServiceName), nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
