// Package models provides the data structures and pure state transitions of
// the QR generator: the settings store, color presets, the bounded export
// history and the capacity estimator. Nothing in this package performs I/O;
// persistence and rendering are layered on top by the service package.
package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// Settings is the generator configuration of the current session.
// Field names in JSON match the persisted blob under the qrSettings key.
// The validate tags describe the value domains every stored value must be in.
type Settings struct {
	// Content is the text encoded into the symbol
	Content string `json:"content" validate:"max=2953"`

	// Type is the content-type hint selected in the UI (text, url, wifi, ...).
	// It is stored with the settings but does not affect rendering.
	Type string `json:"type" validate:"oneof=text url email phone wifi location contact calendar sms vcard"`

	// DarkColor and LightColor are 6-digit hex colors for modules and background
	DarkColor  string `json:"darkColor" validate:"qrcolor"`
	LightColor string `json:"lightColor" validate:"qrcolor"`

	// Size is the edge length of the rendered image in pixels
	Size int `json:"size" validate:"qrsize"`

	// ErrorCorrection is one of L, M, Q, H
	ErrorCorrection string `json:"errorCorrection" validate:"oneof=L M Q H"`

	// Format is the export format: png, jpg or svg
	Format string `json:"format" validate:"oneof=png jpg svg"`
}

// DefaultSettings returns the configuration of a fresh session.
func DefaultSettings() Settings {
	return Settings{
		Content:         constants.DefaultContent,
		Type:            constants.DefaultContentType,
		DarkColor:       constants.DefaultDarkColor,
		LightColor:      constants.DefaultLightColor,
		Size:            constants.DefaultSize,
		ErrorCorrection: constants.DefaultErrorCorrection,
		Format:          constants.DefaultFormat,
	}
}

// Reset restores every field to its default.
func (s *Settings) Reset() {
	*s = DefaultSettings()
}

// ApplyPreset sets both colors from the named preset.
//
// Returns:
//   - false when the name is unknown; the settings are left untouched
func (s *Settings) ApplyPreset(name string) bool {
	preset, ok := LookupPreset(name)
	if !ok {
		return false
	}
	s.DarkColor = preset.DarkColor
	s.LightColor = preset.LightColor
	return true
}

// ApplySizePreset sets the size from the named size preset.
func (s *Settings) ApplySizePreset(name string) bool {
	preset, ok := LookupSizePreset(name)
	if !ok {
		return false
	}
	s.Size = preset.Size
	return true
}

// UpdateField sets one field from its raw form value.
//
// The store does not enforce value domains: an out-of-range size or an
// unsupported format is accepted here and rejected at the request boundary.
// Only unknown field names and non-numeric sizes are errors, since they
// cannot be represented at all.
//
// Parameters:
//   - field: the JSON name of the field (content, darkColor, size, ...)
//   - value: the raw value as submitted by the form
//
// Returns:
//   - a validation error for unknown fields or unparsable sizes, nil otherwise
func (s *Settings) UpdateField(field, value string) error {
	switch field {
	case constants.FieldContent:
		s.Content = value
	case constants.FieldType:
		s.Type = value
	case constants.FieldDarkColor:
		s.DarkColor = value
	case constants.FieldLightColor:
		s.LightColor = value
	case constants.FieldSize:
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return utils.NewValidationError(constants.FieldSize, "Must be a whole number of pixels")
		}
		s.Size = size
	case constants.FieldErrorCorrection:
		s.ErrorCorrection = strings.ToUpper(value)
	case constants.FieldFormat:
		s.Format = strings.ToLower(value)
	default:
		return utils.NewValidationError(field, constants.MsgUnknownField)
	}
	return nil
}

// SettingsUpdate is a partial update of the settings. Nil fields are left
// unchanged. Validation tags enforce the value domains at the API boundary;
// a present field is validated even when it holds the zero value.
type SettingsUpdate struct {
	Content         *string `json:"content" validate:"omitnil,max=2953"`
	Type            *string `json:"type" validate:"omitnil,oneof=text url email phone wifi location contact calendar sms vcard"`
	DarkColor       *string `json:"darkColor" validate:"omitnil,qrcolor"`
	LightColor      *string `json:"lightColor" validate:"omitnil,qrcolor"`
	Size            *int    `json:"size" validate:"omitnil,qrsize"`
	ErrorCorrection *string `json:"errorCorrection" validate:"omitnil,oneof=L M Q H"`
	Format          *string `json:"format" validate:"omitnil,oneof=png jpg svg"`
}

// IsEmpty reports whether the update carries no fields.
func (u *SettingsUpdate) IsEmpty() bool {
	return u.Content == nil && u.Type == nil && u.DarkColor == nil && u.LightColor == nil &&
		u.Size == nil && u.ErrorCorrection == nil && u.Format == nil
}

// Apply copies every non-nil field of the update into the settings.
func (s *Settings) Apply(update *SettingsUpdate) {
	if update == nil {
		return
	}
	if update.Content != nil {
		s.Content = *update.Content
	}
	if update.Type != nil {
		s.Type = *update.Type
	}
	if update.DarkColor != nil {
		s.DarkColor = *update.DarkColor
	}
	if update.LightColor != nil {
		s.LightColor = *update.LightColor
	}
	if update.Size != nil {
		s.Size = *update.Size
	}
	if update.ErrorCorrection != nil {
		s.ErrorCorrection = *update.ErrorCorrection
	}
	if update.Format != nil {
		s.Format = *update.Format
	}
}

// FieldUpdate is the body of a single-field update request.
type FieldUpdate struct {
	Value string `json:"value"`
}

// ValidateField checks a raw form value against the domain of its field
// without touching any stored settings. UpdateField itself stays permissive,
// so callers run this first.
//
// Returns:
//   - a validation error naming the field, nil when the value is acceptable
func ValidateField(field, value string) error {
	staged := DefaultSettings()
	if err := staged.UpdateField(field, value); err != nil {
		return err
	}
	return utils.ValidateStruct(staged)
}

// Sanitize resets every field outside its value domain to the default.
//
// Returns:
//   - the JSON names of the fields that were reset
func (s *Settings) Sanitize() []string {
	invalid := utils.InvalidFields(s)
	if len(invalid) == 0 {
		return nil
	}
	defaults := DefaultSettings()
	for _, field := range invalid {
		switch field {
		case constants.FieldContent:
			s.Content = defaults.Content
		case constants.FieldType:
			s.Type = defaults.Type
		case constants.FieldDarkColor:
			s.DarkColor = defaults.DarkColor
		case constants.FieldLightColor:
			s.LightColor = defaults.LightColor
		case constants.FieldSize:
			s.Size = defaults.Size
		case constants.FieldErrorCorrection:
			s.ErrorCorrection = defaults.ErrorCorrection
		case constants.FieldFormat:
			s.Format = defaults.Format
		}
	}
	return invalid
}

// Serialize encodes the settings for persistence.
func (s Settings) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// Merge overlays a persisted blob on the current settings: fields present in
// the blob overwrite, absent fields keep their current value. On malformed
// data the receiver is left untouched and a persistence error is returned.
func (s *Settings) Merge(blob []byte) error {
	if len(blob) == 0 {
		return nil
	}
	merged := *s
	if err := json.Unmarshal(blob, &merged); err != nil {
		return utils.NewPersistenceError(constants.StorageKeySettings, err)
	}
	*s = merged
	return nil
}

// DeserializeSettings restores settings from a persisted blob merged over the
// defaults. An empty blob yields the defaults without error; a malformed blob
// yields the defaults together with a persistence error.
func DeserializeSettings(blob []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := settings.Merge(blob); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}
