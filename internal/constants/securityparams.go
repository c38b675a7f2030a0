package constants

// Context Key Names
const (
	RequestIDContextKey = "request_id"
)

// Account Validation
const (
	MinPasswordLength = 6
)

// Rate Limiting
const (
	DefaultRequestsPerSecond = 20
	DefaultRateLimitBurst    = 40
)

// Rate limit categories. Exports touch the clipboard and share helpers, so
// they get a tighter bucket than the rest of the API.
const (
	RateLimitCategoryAPI    = "api"
	RateLimitCategoryExport = "export"
	ExportRequestsPerSecond = 2
	ExportRateLimitBurst    = 5
)
