// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as status codes,
// response codes, headers, and content types.
package constants

// HTTP Status Codes define the standard HTTP response status codes used in the application.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusConflict            = 409
	StatusUnprocessable       = 422
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusServiceUnavailable  = 503
)

// HTTP Response Code Types define application-specific response codes.
const (
	// ResponseSuccess indicates that the request was processed successfully.
	ResponseSuccess = true

	// ResponseFailure indicates that the request processing failed.
	ResponseFailure = false

	CodeBadRequest          = "bad_request"
	CodeNotFound            = "not_found"
	CodeMethodNotAllowed    = "method_not_allowed"
	CodeConflict            = "conflict"
	CodeInternalError       = "internal_error"
	CodeValidationError     = "validation_error"
	CodeDuplicateResource   = "duplicate_resource"
	CodeRateLimited         = "rate_limited"
	CodeRenderError         = "render_error"
	CodePersistenceError    = "persistence_error"
	CodePlatformUnsupported = "platform_unsupported"
	CodeNotGenerated        = "qr_not_generated"
	CodeServiceUnavailable  = "service_unavailable"
)

// HTTP Header Names define common HTTP headers used in requests and responses.
const (
	HeaderContentType           = "Content-Type"
	HeaderContentLength         = "Content-Length"
	HeaderContentDisposition    = "Content-Disposition"
	HeaderCacheControl          = "Cache-Control"
	HeaderPragma                = "Pragma"
	HeaderExpires               = "Expires"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderRetryAfter            = "Retry-After"
	HeaderXForwardedFor         = "X-Forwarded-For"
	HeaderXRealIP               = "X-Real-IP"
	HeaderOrigin                = "Origin"
)

// HTTP Content Types define media types used in the Content-Type header.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypePNG         = "image/png"
	ContentTypeJPEG        = "image/jpeg"
	ContentTypeSVG         = "image/svg+xml"
)

// Security Header Values define the values for various security-related HTTP headers.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'; img-src 'self' data:"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
	PragmaNoCache              = "no-cache"
	ExpiresZero                = "0"
)
