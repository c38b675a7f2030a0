package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// GeneratorHandler serves previews and exports of the current QR code.
type GeneratorHandler struct {
	generatorService GeneratorServiceInterface
}

// NewGeneratorHandler creates a new GeneratorHandler
func NewGeneratorHandler(generatorService GeneratorServiceInterface) *GeneratorHandler {
	return &GeneratorHandler{
		generatorService: generatorService,
	}
}

// GetPreview returns the last render as a data URI with its statistics.
//
// HTTP Method:
//   - GET
//
// URL Path:
//   - /api/qr/preview
//
// Responses:
//   - 200 OK: The preview
//   - 422 Unprocessable Entity: The current settings cannot be rendered;
//     the message is shown in place of the preview
func (h *GeneratorHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.generatorService.Preview()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, preview)
}

// GetPreviewPNG returns the raw PNG of the last render
func (h *GeneratorHandler) GetPreviewPNG(w http.ResponseWriter, r *http.Request) {
	png, err := h.generatorService.PreviewPNG()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Image(w, png, constants.ContentTypePNG)
}

// Download exports the last render in the selected format as an attachment.
//
// HTTP Method:
//   - GET
//
// URL Path:
//   - /api/qr/download
//
// Responses:
//   - 200 OK: The image file, named qrcode-<date>.<ext>
//   - 409 Conflict: Nothing has been generated yet
//   - 422 Unprocessable Entity: The image could not be encoded
func (h *GeneratorHandler) Download(w http.ResponseWriter, r *http.Request) {
	download, err := h.generatorService.Download(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.File(w, download.Data, download.ContentType, download.Filename)
}

// Copy writes the last render to the host clipboard.
//
// Responses:
//   - 200 OK: The notification to show
//   - 409 Conflict: Nothing has been generated yet
//   - 501 Not Implemented: No clipboard is available on this host
func (h *GeneratorHandler) Copy(w http.ResponseWriter, r *http.Request) {
	h.awaitTask(w, r, h.generatorService.Copy(), "copy")
}

// Share hands the last render to the host share command.
//
// Responses:
//   - 200 OK: The notification to show
//   - 204 No Content: The user dismissed the share
//   - 409 Conflict: Nothing has been generated yet
//   - 501 Not Implemented: Sharing is not configured on this host
func (h *GeneratorHandler) Share(w http.ResponseWriter, r *http.Request) {
	h.awaitTask(w, r, h.generatorService.Share(), "share")
}

// awaitTask waits for a platform task and writes its outcome. A task outlives
// a cancelled request, so the export is still recorded.
func (h *GeneratorHandler) awaitTask(w http.ResponseWriter, r *http.Request, task *platform.Task[models.Notification], operation string) {
	notification, err := task.Wait(r.Context())
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			log.Warn().Str("operation", operation).Msg("Client left before the export finished")
			return
		}
		if utils.IsPlatformCapabilityError(err) {
			log.Info().Str("operation", operation).Msg("Export target unavailable on this host")
		}
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if notification.Message == "" {
		utils.NoContent(w)
		return
	}

	utils.JSON(w, constants.StatusOK, notification)
}
