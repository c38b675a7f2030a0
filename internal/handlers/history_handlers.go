package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// HistoryHandler handles the export history, the gallery and session persistence.
type HistoryHandler struct {
	historyService HistoryServiceInterface
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetHistory returns the history panel view
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.historyService.HistoryPanel())
}

// GetGallery returns the gallery view
func (h *HistoryHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.historyService.Gallery())
}

// RemoveHistoryItem deletes one history item.
//
// HTTP Method:
//   - DELETE
//
// URL Path:
//   - /api/history/{id}
//
// Responses:
//   - 200 OK: The notification to show; unknown ids are not an error
//   - 400 Bad Request: The id is not a number
func (h *HistoryHandler) RemoveHistoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, constants.ParamID), 10, 64)
	if err != nil {
		utils.BadRequest(w, "Invalid history item ID", nil)
		return
	}

	notification := h.historyService.RemoveHistoryItem(r.Context(), id)
	utils.JSON(w, constants.StatusOK, notification)
}

// ClearHistory removes every history item. The caller must confirm with
// ?confirm=true.
//
// Responses:
//   - 200 OK: The notification to show
//   - 400 Bad Request: Confirmation missing
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get(constants.QueryParamConfirm))
	if !confirmed {
		utils.BadRequest(w, constants.MsgConfirmationNeeded, nil)
		return
	}

	notification := h.historyService.ClearHistory(r.Context())
	utils.JSON(w, constants.StatusOK, notification)
}

// EndSession persists the settings and the history
func (h *HistoryHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	notification := h.historyService.SaveSession(r.Context())
	utils.JSON(w, constants.StatusOK, notification)
}
