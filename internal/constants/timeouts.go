package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 45 * time.Second // outlasts DefaultPlatformTaskTimeout
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Storage Timeouts
const (
	DBConnectionTimeout   = 30 * time.Second
	DBQueryTimeout        = 15 * time.Second
	DBHealthCheckTimeout  = 5 * time.Second
	DBConnMaxLifetime     = 1 * time.Hour
	DBConnMaxIdleTime     = 30 * time.Minute
	DBMaintenanceInterval = 1 * time.Hour
)

// Platform Timeouts
const (
	DefaultPlatformTaskTimeout = 30 * time.Second
)

// Event Stream Timing
const (
	EventWriteWait  = 10 * time.Second
	EventPongWait   = 60 * time.Second
	EventPingPeriod = (EventPongWait * 9) / 10
)

// Rate Limiter Housekeeping
const (
	RateLimitCleanupInterval = 5 * time.Minute
	RateLimitIdleTTL         = 10 * time.Minute
)
