package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SCRY_SERVER_PORT for server.port.
const EnvPrefix = "SCRY"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":          "server.port",
	"log-level":     "server.log_level",
	"database-url":  "database.url",
	"db-driver":     "database.driver",
	"session-store": "game.session_store",
}

// envKeys lists keys without defaults that must still be readable from the environment.
var envKeys = []string{
	"database.url",
	"auth.jwt_secret",
}

type loadOptions struct {
	configFile string
	envFile    string
	flags      *pflag.FlagSet
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads the given YAML file before applying environment overrides.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile loads environment variables from the given dotenv file.
// Variables already present in the environment are not overridden.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithFlags binds the known command-line flags of fs. Flags that were set
// take precedence over every other source.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *loadOptions) { o.flags = fs }
}

// RegisterFlags declares the configuration flags understood by WithFlags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", 8080, "HTTP port to listen on")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("database-url", "", "database connection URL or SQLite file path")
	fs.String("db-driver", DriverPostgres, "card source driver (postgres, sqlite)")
	fs.String("session-store", SessionStoreMemory, "session store backend (memory, postgres)")
}

// Load configuration from defaults, an optional config file, an optional
// .env file, environment variables and command-line flags, in increasing
// order of precedence. Returns a populated Config or an error if loading or
// validation fails.
func Load(opts ...Option) (*Config, error) {
	cfg, err := load(opts...)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadAuth reads configuration from the same sources as Load but validates
// only the auth section, for tools that sign tokens without a database.
func LoadAuth(opts ...Option) (*AuthConfig, error) {
	cfg, err := load(opts...)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg.Auth); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return &cfg.Auth, nil
}

func load(opts ...Option) (*Config, error) {
	o := loadOptions{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if o.flags != nil {
		for name, key := range flagKeys {
			f := o.flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks field constraints and the combinations between sections.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Game.SessionStore == SessionStorePostgres && cfg.Database.Driver != DriverPostgres {
		return fmt.Errorf(
			"config validation failed: session store %q requires database driver %q, got %q",
			SessionStorePostgres, DriverPostgres, cfg.Database.Driver,
		)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("game.default_tile_limit", 10)
	v.SetDefault("game.max_tile_limit", 50)
	v.SetDefault("game.session_store", SessionStoreMemory)
}
