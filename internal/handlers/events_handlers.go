package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// EventsHandler upgrades clients to the state change stream
type EventsHandler struct {
	streamer EventStreamer
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(streamer EventStreamer) *EventsHandler {
	return &EventsHandler{streamer: streamer}
}

// Stream serves GET /api/events. Subscribers receive settings.updated,
// history.updated, render.updated and notification events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.streamer == nil {
		utils.Error(w, constants.StatusNotImplemented, constants.CodePlatformUnsupported, "Event stream is disabled", nil)
		return
	}
	h.streamer.ServeWS(w, r)
}
