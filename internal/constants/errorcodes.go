// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling and user-facing
// messages. The notification texts are shown verbatim by the UI as toasts.
package constants

// Error Types define the categories of errors that can occur in the application.
const (
	ErrorNotFound            = "resource not found"
	ErrorBadRequest          = "invalid request"
	ErrorInternalServer      = "internal server error"
	ErrorValidation          = "validation error"
	ErrorRender              = "render error"
	ErrorPersistence         = "persistence error"
	ErrorPlatformUnsupported = "platform capability unsupported"
	ErrorNotGenerated        = "no qr code generated"
)

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	MsgInternalServerError = "An internal server error occurred"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"
	MsgResourceNotFound    = "The requested resource could not be found"
	MsgMethodNotAllowed    = "This method is not allowed for this resource"
	MsgServiceUnhealthy    = "Service is not healthy"
	MsgRenderFailed        = "Error generating QR code"
	MsgEmptyContent        = "Please enter content to encode"
	MsgUnknownField        = "Unknown settings field"
	MsgUnknownPreset       = "Unknown preset"
	MsgUnknownSizePreset   = "Unknown size preset"
	MsgConfirmationNeeded  = "Clearing history requires confirmation"
	MsgNotSignedIn         = "No user is signed in"
)

// Notification Messages are the toast texts reported for user actions.
const (
	MsgGenerateFirst      = "Please generate a QR code first"
	MsgDownloaded         = "QR code downloaded successfully!"
	MsgDownloadFailed     = "Error downloading QR code"
	MsgCopied             = "QR code copied to clipboard!"
	MsgCopyFailed         = "Error copying to clipboard"
	MsgShared             = "QR code shared successfully!"
	MsgShareUnsupported   = "Share not supported on this device"
	MsgShareFailed        = "Error sharing QR code"
	MsgClipboardMissing   = "Clipboard not supported on this device"
	MsgHistoryItemRemoved = "Item removed from history"
	MsgHistoryCleared     = "History cleared"
	MsgSettingsReset      = "Settings reset"
	MsgSessionSaved       = "Session saved"
	MsgContactSent        = "Message sent! We will get back to you soon."
	MsgContactFailed      = "Error sending message. Please try again later."
	MsgFillAllFields      = "Please fill in all fields"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgSignedIn           = "Signed in successfully!"
	MsgAccountCreated     = "Account created successfully!"
	MsgSignedOut          = "Signed out"
)

// Notification Levels classify toasts.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// PostgreSQL error codes recognized when mapping driver errors.
const (
	PGErrorDuplicateConstraint  = "23505"
	PGErrorForeignKeyConstraint = "23503"
	PGErrorNotNullConstraint    = "23502"
)

// MySQL error numbers recognized when mapping driver errors.
const (
	MySQLErrorDuplicateEntry = 1062
	MySQLErrorNoSuchTable    = 1146
)

// Logger Constants define values used for structured logging.
const (
	LogCategoryStorage = "storage"
	LogCategoryRender  = "render"
	LogCategoryAuth    = "auth"
	LogCategoryExport  = "export"
	LogCategoryContact = "contact"
	LogEventSignIn     = "signin"
	LogEventSignUp     = "signup"
	LogEventSignOut    = "signout"
	LogRedactedValue   = "[REDACTED]"
)
