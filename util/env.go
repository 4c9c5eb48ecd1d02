package util

import (
	"os"
)

// EnvExists determines if an environment variable exists.
func EnvExists(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// IsDebug returns true if debug mode is enabled based
// on an environment variable.
func IsDebug() bool {
	return EnvExists("DEBUG")
}

// GetSentryDSN returns the Sentry DSN, or an empty string
// when error reporting is disabled.
func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

// GetMetricsToken returns the token used to authenticate against
// the metrics endpoint. Metrics are disabled when it is empty.
func GetMetricsToken() string {
	return os.Getenv("METRICS_TOKEN")
}

// GetConfigPath returns the path of the JSON configuration file,
// or an empty string if none was set.
func GetConfigPath() string {
	return os.Getenv("SRI_CONFIG")
}
