// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines the storage keys, limits and default values of
// the generator state model. These values are part of the persisted data contract,
// so changing a key name orphans data written by earlier versions.
package constants

// Storage Keys define the names under which state is persisted in the key/value store.
const (
	// StorageKeyCurrentUser holds the simulated signed-in user ({email?, name}).
	StorageKeyCurrentUser = "currentUser"

	// StorageKeySettings holds the serialized generator settings.
	StorageKeySettings = "qrSettings"

	// StorageKeyHistory holds the serialized export history.
	StorageKeyHistory = "qrHistory"
)

// History Limits define the bounds of the export history.
const (
	// HistoryLimit is the maximum number of history items kept; the oldest is evicted.
	HistoryLimit = 20

	// HistoryPanelPreviewLength is the number of content characters shown in the history panel.
	HistoryPanelPreviewLength = 20

	// GalleryPreviewLength is the number of content characters shown in the gallery.
	GalleryPreviewLength = 30

	// HistoryTimestampLayout is the time-of-day layout used for history timestamps.
	HistoryTimestampLayout = "15:04:05"
)

// Default Settings define the generator configuration of a fresh session.
const (
	DefaultContent         = ""
	DefaultContentType     = "text"
	DefaultDarkColor       = "#000000"
	DefaultLightColor      = "#ffffff"
	DefaultSize            = 300
	DefaultErrorCorrection = "M"
	DefaultFormat          = "png"
)

// Settings Fields define the field names accepted by single-field updates.
const (
	FieldContent         = "content"
	FieldType            = "type"
	FieldDarkColor       = "darkColor"
	FieldLightColor      = "lightColor"
	FieldSize            = "size"
	FieldErrorCorrection = "errorCorrection"
	FieldFormat          = "format"
)

// Export Formats define the image formats the generator can export.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatSVG = "svg"
)

// Error Correction Levels define the four QR error-correction levels.
const (
	ErrorCorrectionLow      = "L"
	ErrorCorrectionMedium   = "M"
	ErrorCorrectionQuartile = "Q"
	ErrorCorrectionHigh     = "H"
)

// Preset Names define the built-in color presets.
const (
	PresetClassic  = "classic"
	PresetColorful = "colorful"
	PresetNeon     = "neon"
	PresetPastel   = "pastel"
)

// Size Preset Names define the built-in image sizes.
const (
	SizePresetSmall  = "small"
	SizePresetMedium = "medium"
	SizePresetLarge  = "large"
)

// Display Placeholders are shown when a history view has no items.
const (
	HistoryEmptyPlaceholder = "No history yet"
	GalleryEmptyPlaceholder = "No QR codes yet. Generate one from the Generator page!"
)

// ExportFilenamePrefix and ExportDateLayout build names like qrcode-2024-05-01.png.
const (
	ExportFilenamePrefix = "qrcode-"
	ExportDateLayout     = "2006-01-02"
)

// Share Payload names the file and fallback text handed to the share mechanism.
const (
	ShareFileName     = "qrcode.png"
	ShareFallbackText = "Check out this QR code!"
)
