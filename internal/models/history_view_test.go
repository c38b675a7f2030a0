package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
)

func TestNewHistoryPanelView_Empty(t *testing.T) {
	view := models.NewHistoryPanelView(nil)

	assert.Equal(t, "No history yet", view.Placeholder)
	assert.Equal(t, 0, view.Count)
	assert.NotNil(t, view.Items)
}

func TestNewGalleryView_Empty(t *testing.T) {
	view := models.NewGalleryView([]models.HistoryItem{})

	assert.Equal(t, "No QR codes yet. Generate one from the Generator page!", view.Placeholder)
}

func TestHistoryViews_TruncatePreview(t *testing.T) {
	long := strings.Repeat("a", 25) + strings.Repeat("b", 10)
	items := []models.HistoryItem{{ID: 7, Content: long, Timestamp: "09:00:00", Image: "data:x"}}

	panel := models.NewHistoryPanelView(items)
	gallery := models.NewGalleryView(items)

	require.Len(t, panel.Items, 1)
	assert.Equal(t, strings.Repeat("a", 20), panel.Items[0].Preview)
	assert.Equal(t, strings.Repeat("a", 25)+"bbbbb", gallery.Items[0].Preview)
	assert.Equal(t, long, panel.Items[0].Content, "full content is still available")
	assert.Empty(t, panel.Placeholder)
	assert.Equal(t, 1, gallery.Count)
}
