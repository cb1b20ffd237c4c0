package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// CORSConfig is the CORS configuration for the HTTP server.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to make cross-origin requests.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`

	// AllowedHeaders is the list of request headers allowed in cross-origin requests.
	AllowedHeaders []string `env:"ALLOWED_HEADERS" envSeparator:"," yaml:"allowed_headers"`

	// AllowedMethods is the list of methods allowed in cross-origin requests.
	AllowedMethods []string `env:"ALLOWED_METHODS" envSeparator:"," yaml:"allowed_methods"`
}

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// MaxUploadSize is the largest accepted upload request body in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" yaml:"max_upload_size"`

	// CORS is the cross-origin configuration.
	CORS CORSConfig `envPrefix:"CORS_" yaml:"cors"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled is whether the stats server is started.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// StorageConfig is the blob storage configuration.
type StorageConfig struct {
	// Path is the root directory holding one repo_<id> directory per
	// repository. Relative paths are resolved against the data path.
	Path string `env:"PATH" yaml:"path"`
}

// AuthConfig is the token authentication configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC secret used to sign access tokens.
	JWTSecret string `env:"JWT_SECRET" yaml:"jwt_secret"`

	// AccessTokenExpireMinutes is the lifetime of issued access tokens.
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES" yaml:"access_token_expire_minutes"`

	// LoginRateLimit is the number of login attempts allowed per minute
	// and remote address.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" yaml:"login_rate_limit"`
}

// Config is the configuration for TicsLab.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Storage is the blob storage configuration.
	Storage StorageConfig `envPrefix:"STORAGE_" yaml:"storage"`

	// Auth is the authentication configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// DataPath is the path to the directory where TicsLab will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// ErrNilConfig is returned when a nil config is passed where one is required.
var ErrNilConfig = errors.New("nil config")

// ErrMissingJWTSecret is returned when the server is started without a
// token signing secret.
var ErrMissingJWTSecret = errors.New("missing jwt secret, set TICS_AUTH_JWT_SECRET or auth.jwt_secret")

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("TICS_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("TICS_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "TICS_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600) // nolint: gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the TICS_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("TICS_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file. TICS_CONFIG_LOCATION
// takes precedence when it points to an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("TICS_CONFIG_LOCATION"); path != "" && exist(path) {
		return path
	}
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "TicsLab",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr:    ":8000",
			PublicURL:     "http://localhost:8000",
			MaxUploadSize: 100 << 20,
			CORS: CORSConfig{
				AllowedOrigins: []string{
					"https://ticslab.dev",
					"http://localhost",
					"http://localhost:3001",
				},
				AllowedHeaders: []string{
					"Accept",
					"Accept-Language",
					"Authorization",
					"Content-Language",
					"Content-Type",
					"Origin",
					"X-Requested-With",
				},
				AllowedMethods: []string{
					"GET",
					"HEAD",
					"POST",
					"PUT",
					"DELETE",
					"OPTIONS",
				},
			},
		},
		Stats: StatsConfig{
			Enabled:    true,
			ListenAddr: "localhost:8001",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "tics.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
		Storage: StorageConfig{
			Path: "storage",
		},
		Auth: AuthConfig{
			AccessTokenExpireMinutes: 30,
			LoginRateLimit:           5,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.Storage.Path == "" {
		c.Storage.Path = "storage"
	}
	if !filepath.IsAbs(c.Storage.Path) {
		c.Storage.Path = filepath.Join(c.DataPath, c.Storage.Path)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	switch c.Log.Format {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Auth.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("invalid access token lifetime: %d minutes", c.Auth.AccessTokenExpireMinutes)
	}

	if c.Auth.LoginRateLimit <= 0 {
		return fmt.Errorf("invalid login rate limit: %d", c.Auth.LoginRateLimit)
	}

	if c.HTTP.MaxUploadSize <= 0 {
		return fmt.Errorf("invalid max upload size: %d", c.HTTP.MaxUploadSize)
	}

	return nil
}

// AccessTokenTTL returns the access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Auth.AccessTokenExpireMinutes) * time.Minute
}

// GenerateSecret returns a random hex encoded secret suitable for signing
// access tokens.
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
