package handlers

import (
	"context"
	"net/http"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/service"
)

// GeneratorServiceInterface defines methods required from the generator
// service for previews and exports.
type GeneratorServiceInterface interface {
	// Preview returns the last render.
	//
	// Returns:
	//   - The preview, or the render error of the current settings
	Preview() (*service.Preview, error)

	// PreviewPNG returns the raw PNG of the last render.
	PreviewPNG() ([]byte, error)

	// Download encodes the last render in the selected format and records it
	// in the history.
	//
	// Parameters:
	//   - ctx: Context for persisting the history
	//
	// Returns:
	//   - The exported file
	//   - A not-generated error when nothing has been rendered
	Download(ctx context.Context) (*service.Download, error)

	// Copy starts writing the last render to the clipboard.
	Copy() *platform.Task[models.Notification]

	// Share starts handing the last render to the share mechanism.
	Share() *platform.Task[models.Notification]
}

// HistoryServiceInterface defines methods required from the generator service
// for history and session management.
type HistoryServiceInterface interface {
	// HistoryPanel returns the compact history list.
	HistoryPanel() models.HistoryView

	// Gallery returns the gallery listing.
	Gallery() models.HistoryView

	// RemoveHistoryItem deletes one item. Unknown ids are not an error.
	RemoveHistoryItem(ctx context.Context, id int64) models.Notification

	// ClearHistory removes every item.
	ClearHistory(ctx context.Context) models.Notification

	// SaveSession persists the settings and the history.
	SaveSession(ctx context.Context) models.Notification
}

// EventStreamer upgrades requests to an event stream.
type EventStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}
