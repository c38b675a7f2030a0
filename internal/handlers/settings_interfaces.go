// Package handlers provides HTTP request handlers for the QRForge API.
package handlers

import (
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
)

// SettingsServiceInterface defines methods required from the generator service
// for settings management. It is used by the settings handlers to interact with
// the generator state without being tightly coupled to the implementation.
type SettingsServiceInterface interface {
	// Settings returns the current generator settings.
	Settings() models.Settings

	// UpdateSettings applies a partial update and re-renders the preview.
	//
	// Parameters:
	//   - update: The fields to change; nil fields are left untouched
	//
	// Returns:
	//   - The updated settings
	UpdateSettings(update *models.SettingsUpdate) models.Settings

	// UpdateField sets a single field from its raw form value.
	//
	// Parameters:
	//   - field: The JSON name of the field
	//   - value: The raw value
	//
	// Returns:
	//   - The updated settings
	//   - A validation error for unknown fields or unparsable values
	UpdateField(field, value string) (models.Settings, error)

	// Reset restores the default settings.
	//
	// Returns:
	//   - The default settings
	//   - The notification to show
	Reset() (models.Settings, models.Notification)

	// Presets lists the built-in color presets.
	Presets() []models.Preset

	// ApplyPreset sets both colors from a named preset.
	//
	// Returns:
	//   - The updated settings
	//   - A not-found error for unknown presets
	ApplyPreset(name string) (models.Settings, error)

	// SizePresets lists the built-in size presets.
	SizePresets() []models.SizePreset

	// ApplySizePreset sets the size from a named size preset.
	//
	// Returns:
	//   - The updated settings
	//   - A not-found error for unknown names, a validation error for sizes out of range
	ApplySizePreset(name string) (models.Settings, error)

	// Statistics estimates the symbol version and capacity of the current content.
	Statistics() models.Statistics
}
