// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 10

	// DefaultDBMinConnections is the default minimum number of idle database connections.
	DefaultDBMinConnections = 2

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the application name reported by /version and the logger.
	DefaultAppName = "QRForge"

	// DefaultAppVersion is used when no version is configured.
	DefaultAppVersion = "1.0.0"

	// DefaultContactFromAddress is the sender of forwarded contact messages.
	DefaultContactFromAddress = "no-reply@qrforge.app"

	// DefaultContactFromName is the sender name of forwarded contact messages.
	DefaultContactFromName = "QRForge Contact Form"
)

// Generator Limits bound the size slider of the generator.
const (
	// DefaultMinSize is the smallest image edge in pixels.
	DefaultMinSize = 100

	// DefaultMaxSize is the largest image edge in pixels.
	DefaultMaxSize = 1000
)

// Environment Types define the recognized application running environments.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
const MaxRequestBodySize = 1048576 // 1MB in bytes
