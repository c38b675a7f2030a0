package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Storage   StorageSettings   `yaml:"storage"`
	Server    ServerSettings    `yaml:"server"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	Generator GeneratorSettings `yaml:"generator"`
	Platform  PlatformSettings  `yaml:"platform"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
	Contact   ContactSettings   `yaml:"contact"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// StorageSettings selects where settings, history and the current user are
// persisted. The file and sqlite drivers only use Path; mysql and postgres
// use the connection fields.
type StorageSettings struct {
	Driver   string `yaml:"driver" env:"STORAGE_DRIVER"`
	Path     string `yaml:"path" env:"STORAGE_PATH"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// GeneratorSettings bounds the size slider
type GeneratorSettings struct {
	MinSize int `yaml:"min_size" env:"QR_MIN_SIZE"`
	MaxSize int `yaml:"max_size" env:"QR_MAX_SIZE"`
}

// PlatformSettings configures the host capabilities used by copy and share.
// Empty commands mean auto-detection for the clipboard and no share support.
type PlatformSettings struct {
	ClipboardCommand string        `yaml:"clipboard_command" env:"CLIPBOARD_COMMAND"`
	ShareCommand     string        `yaml:"share_command" env:"SHARE_COMMAND"`
	TaskTimeout      time.Duration `yaml:"task_timeout" env:"PLATFORM_TASK_TIMEOUT"`
}

// RateLimitSettings configures the per-client token bucket
type RateLimitSettings struct {
	Enabled           bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// ContactSettings configures delivery of contact form messages. Without a
// SendGrid API key messages are only logged.
type ContactSettings struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromAddress    string `yaml:"from_address" env:"CONTACT_FROM_ADDRESS"`
	FromName       string `yaml:"from_name" env:"CONTACT_FROM_NAME"`
	Recipient      string `yaml:"recipient" env:"CONTACT_RECIPIENT"`
}

// DeliveryEnabled reports whether contact messages are forwarded by e-mail
func (c *ContactSettings) DeliveryEnabled() bool {
	return c.SendGridAPIKey != "" && c.Recipient != ""
}

// ConnectionString returns the driver-specific data source name
func (s *StorageSettings) ConnectionString() string {
	switch strings.ToLower(s.Driver) {
	case constants.StorageDriverMySQL:
		// username:password@tcp(host:port)/dbname
		password := s.Password
		if password != "" {
			password = ":" + password
		}
		return fmt.Sprintf(
			"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
			s.User, password, s.Host, s.Port, s.Name,
		)
	case constants.StorageDriverPostgres:
		conn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s %s",
			s.Host, s.Port, s.User, s.Name, constants.PostgresSSLDisable)
		if s.Password != "" {
			conn += fmt.Sprintf(" password=%s", s.Password)
		}
		return conn
	case constants.StorageDriverSQLite:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.Path)
	default:
		return s.Path
	}
}

// IsSQL reports whether the configured driver is backed by database/sql
func (s *StorageSettings) IsSQL() bool {
	switch strings.ToLower(s.Driver) {
	case constants.StorageDriverMySQL, constants.StorageDriverPostgres, constants.StorageDriverSQLite:
		return true
	}
	return false
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// A missing file is fine; env and defaults fill the gaps
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Storage defaults
	if config.Storage.Driver == "" {
		config.Storage.Driver = constants.StorageDriverFile
	}
	config.Storage.Driver = strings.ToLower(config.Storage.Driver)
	if config.Storage.Path == "" {
		if config.Storage.Driver == constants.StorageDriverSQLite {
			config.Storage.Path = constants.DefaultSQLitePath
		} else {
			config.Storage.Path = constants.DefaultStoragePath
		}
	}
	if config.Storage.Port == 0 {
		switch config.Storage.Driver {
		case constants.StorageDriverMySQL:
			config.Storage.Port = 3306
		case constants.StorageDriverPostgres:
			config.Storage.Port = 5432
		}
	}
	if config.Storage.MaxConns == 0 {
		config.Storage.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Storage.MinConns == 0 {
		config.Storage.MinConns = constants.DefaultDBMinConnections
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// Generator defaults
	if config.Generator.MinSize == 0 {
		config.Generator.MinSize = constants.DefaultMinSize
	}
	if config.Generator.MaxSize == 0 {
		config.Generator.MaxSize = constants.DefaultMaxSize
	}

	// Platform defaults
	if config.Platform.TaskTimeout == 0 {
		config.Platform.TaskTimeout = constants.DefaultPlatformTaskTimeout
	}

	// Rate limit defaults
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRequestsPerSecond
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}

	// Contact defaults
	if config.Contact.FromAddress == "" {
		config.Contact.FromAddress = constants.DefaultContactFromAddress
	}
	if config.Contact.FromName == "" {
		config.Contact.FromName = constants.DefaultContactFromName
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	switch config.Storage.Driver {
	case constants.StorageDriverFile, constants.StorageDriverMemory, constants.StorageDriverSQLite:
	case constants.StorageDriverMySQL, constants.StorageDriverPostgres:
		if config.Storage.User == "" {
			return fmt.Errorf("database user must be set for driver %s", config.Storage.Driver)
		}
		if config.Storage.Host == "" {
			return fmt.Errorf("database host must be set for driver %s", config.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", config.Storage.Driver)
	}

	if config.Generator.MinSize <= 0 || config.Generator.MinSize > config.Generator.MaxSize {
		return fmt.Errorf("invalid generator size range: %d-%d", config.Generator.MinSize, config.Generator.MaxSize)
	}
	if constants.DefaultSize < config.Generator.MinSize || constants.DefaultSize > config.Generator.MaxSize {
		return fmt.Errorf("generator size range %d-%d must include the default size %d",
			config.Generator.MinSize, config.Generator.MaxSize, constants.DefaultSize)
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	event := log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("storage_driver", config.Storage.Driver).
		Str("log_level", config.Logging.Level).
		Int("min_size", config.Generator.MinSize).
		Int("max_size", config.Generator.MaxSize)

	if config.Storage.IsSQL() && config.Storage.Driver != constants.StorageDriverSQLite {
		event = event.
			Str("db_host", config.Storage.Host).
			Int("db_port", config.Storage.Port).
			Str("db_name", config.Storage.Name).
			Bool("db_password_set", config.Storage.Password != "")
	} else {
		event = event.Str("storage_path", config.Storage.Path)
	}

	event = event.Bool("contact_delivery", config.Contact.DeliveryEnabled())

	event.Msg("Configuration loaded")
}
