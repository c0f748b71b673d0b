package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Game     GameConfig     `mapstructure:"game"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`

	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`

	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the card source backend. SQLite is read-only and only
	// supplies cards; sessions then live in memory.
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// AuthConfig contains the settings used to validate bearer tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// Supported session store backends
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// GameConfig contains the matching game settings.
type GameConfig struct {
	// DefaultTileLimit is the number of cards sampled when a start request gives no limit.
	DefaultTileLimit int `mapstructure:"default_tile_limit" validate:"required,gt=0"`

	// MaxTileLimit caps the number of cards a single board may use.
	MaxTileLimit int `mapstructure:"max_tile_limit" validate:"required,gtefield=DefaultTileLimit"`

	SessionStore string `mapstructure:"session_store" validate:"required,oneof=memory postgres"`
}
