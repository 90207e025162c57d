package config

import (
	"fmt"
	"net/url"
	"os"
)

// ExpectedEnvSchemaVersion is the schema version that the client expects
const ExpectedEnvSchemaVersion = "1.0"

// ValidateEnv checks that the environment is coherent: the schema version (if
// declared) matches expectations and the API base URL is a parseable absolute URL.
func ValidateEnv() error {
	if schemaVersion := os.Getenv(EnvSchemaVersion); schemaVersion != "" && schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%s mismatch: expected %s, got %s - your .env file may be outdated",
			EnvSchemaVersion, ExpectedEnvSchemaVersion, schemaVersion)
	}

	base := os.Getenv(EnvAPIBaseURL)
	if base == "" {
		return nil // default is used
	}
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvAPIBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid %s: %q is not an absolute URL", EnvAPIBaseURL, base)
	}
	return nil
}
