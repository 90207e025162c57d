package config

// Environment variable names
const (
	EnvSchemaVersion      = "ENV_SCHEMA_VERSION"
	EnvAPIBaseURL         = "API_BASE_URL"
	EnvHTTPTimeoutSeconds = "HTTP_TIMEOUT_SECONDS"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
	EnvEnvironment        = "ENVIRONMENT"
	EnvStateDir           = "STATE_DIR"
	EnvCacheSize          = "CACHE_SIZE"
	EnvCacheTTLSeconds    = "CACHE_TTL_SECONDS"
)

// Default configuration values
const (
	DefaultAPIBaseURL         = "http://localhost:8000/api"
	DefaultHTTPTimeoutSeconds = 30
	DefaultLogLevel           = "INFO"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "dropclient"
	DefaultVersion            = "dev"
	DefaultCacheSize          = 128
	DefaultCacheTTLSeconds    = 300
)
