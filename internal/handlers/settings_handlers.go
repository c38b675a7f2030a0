package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// SettingsResponse carries settings together with an optional notification.
type SettingsResponse struct {
	Settings     models.Settings      `json:"settings"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// StatisticsResponse is the capacity estimate of the current content.
type StatisticsResponse struct {
	models.Statistics
	VersionLabel string `json:"versionLabel"`
}

// SettingsHandler handles settings-related routes
type SettingsHandler struct {
	settingsService SettingsServiceInterface
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings returns the current settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.settingsService.Settings())
}

// UpdateSettings applies a partial settings update.
//
// HTTP Method:
//   - PUT
//
// URL Path:
//   - /api/settings
//
// Responses:
//   - 200 OK: The updated settings
//   - 400 Bad Request: Empty update, malformed JSON or out-of-domain values
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var update models.SettingsUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if update.IsEmpty() {
		utils.BadRequest(w, constants.MsgEmptyRequestBody, nil)
		return
	}

	settings := h.settingsService.UpdateSettings(&update)
	utils.JSON(w, constants.StatusOK, settings)
}

// UpdateField sets a single settings field from its raw value.
//
// HTTP Method:
//   - PATCH
//
// URL Path:
//   - /api/settings/fields/{field}
//
// Responses:
//   - 200 OK: The updated settings
//   - 400 Bad Request: Unknown field, or a value outside the field's domain
func (h *SettingsHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, constants.ParamField)

	var body models.FieldUpdate
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// the store accepts any representable value
	if err := models.ValidateField(field, body.Value); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	settings, err := h.settingsService.UpdateField(field, body.Value)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, settings)
}

// ResetSettings restores the defaults
func (h *SettingsHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	settings, notification := h.settingsService.Reset()
	utils.JSON(w, constants.StatusOK, SettingsResponse{
		Settings:     settings,
		Notification: &notification,
	})
}

// ListPresets returns the built-in color presets
func (h *SettingsHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.settingsService.Presets())
}

// ApplyPreset sets both colors from the named preset.
//
// Responses:
//   - 200 OK: The updated settings
//   - 404 Not Found: Unknown preset name
func (h *SettingsHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, constants.ParamName)

	settings, err := h.settingsService.ApplyPreset(name)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, settings)
}

// ListSizePresets returns the built-in size presets
func (h *SettingsHandler) ListSizePresets(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.settingsService.SizePresets())
}

// ApplySizePreset sets the image size from the named size preset.
//
// Responses:
//   - 200 OK: The updated settings
//   - 400 Bad Request: The preset size lies outside the configured range
//   - 404 Not Found: Unknown size preset name
func (h *SettingsHandler) ApplySizePreset(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.ApplySizePreset(chi.URLParam(r, constants.ParamName))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, settings)
}

// GetStatistics returns the capacity estimate of the current content
func (h *SettingsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats := h.settingsService.Statistics()
	utils.JSON(w, constants.StatusOK, StatisticsResponse{
		Statistics:   stats,
		VersionLabel: stats.VersionLabel(),
	})
}
