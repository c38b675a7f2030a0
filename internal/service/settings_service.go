package service

import (
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/events"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// Settings returns a copy of the current settings.
func (s *GeneratorService) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies a partial update and re-renders.
//
// Parameters:
//   - update: the fields to change; nil fields are left untouched
//
// Returns:
//   - The updated settings
func (s *GeneratorService) UpdateSettings(update *models.SettingsUpdate) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Apply(update)
	s.settingsChangedLocked()
	return s.settings
}

// UpdateField sets a single field from its raw form value and re-renders.
//
// Returns:
//   - The updated settings
//   - A validation error for unknown fields or unparsable numbers; the
//     settings are unchanged in that case
func (s *GeneratorService) UpdateField(field, value string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.UpdateField(field, value); err != nil {
		return s.settings, err
	}
	s.settingsChangedLocked()
	return s.settings, nil
}

// Reset restores the default settings. The previous render is discarded.
func (s *GeneratorService) Reset() (models.Settings, models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Reset()
	s.settingsChangedLocked()

	log.Info().Msg("Generator settings reset")
	return s.settings, s.notify(models.Info(constants.MsgSettingsReset))
}

// Presets lists the built-in color presets.
func (s *GeneratorService) Presets() []models.Preset {
	return models.Presets()
}

// ApplyPreset sets both colors from a named preset and re-renders.
//
// Returns:
//   - The updated settings
//   - A not-found error for unknown presets; the settings are unchanged
func (s *GeneratorService) ApplyPreset(name string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.ApplyPreset(name) {
		return s.settings, utils.New(utils.ErrNotFound, constants.StatusNotFound, constants.MsgUnknownPreset)
	}
	s.settingsChangedLocked()
	return s.settings, nil
}

// SizePresets lists the built-in size presets.
func (s *GeneratorService) SizePresets() []models.SizePreset {
	return models.SizePresets()
}

// ApplySizePreset sets the size from a named size preset and re-renders.
//
// Returns:
//   - The updated settings
//   - A not-found error for unknown names
//   - A validation error when the preset lies outside the configured size range
func (s *GeneratorService) ApplySizePreset(name string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.settings
	if !staged.ApplySizePreset(name) {
		return s.settings, utils.New(utils.ErrNotFound, constants.StatusNotFound, constants.MsgUnknownSizePreset)
	}
	if err := utils.ValidateStruct(staged); err != nil {
		return s.settings, err
	}
	s.settings = staged
	s.settingsChangedLocked()
	return s.settings, nil
}

func (s *GeneratorService) settingsChangedLocked() {
	s.publisher.Publish(events.TypeSettingsUpdated, s.settings)
	s.rerenderLocked()
}
