// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, YAML files, .env files, environment variables
// and command-line flags). It provides type-safe access to application settings
// needed by different components while keeping configuration details separate
// from business logic.
package config
