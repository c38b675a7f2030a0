package models

import (
	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// HistoryEntryView is a history item prepared for display, with the content
// shortened to the width of the view.
type HistoryEntryView struct {
	ID        int64  `json:"id"`
	Preview   string `json:"preview"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Image     string `json:"image"`
}

// HistoryView is a rendered list of history items. Placeholder is set only
// when there are no items.
type HistoryView struct {
	Items       []HistoryEntryView `json:"items"`
	Count       int                `json:"count"`
	Placeholder string             `json:"placeholder,omitempty"`
}

// NewHistoryPanelView builds the compact history panel of the generator page.
func NewHistoryPanelView(items []HistoryItem) HistoryView {
	return newHistoryView(items, constants.HistoryPanelPreviewLength, constants.HistoryEmptyPlaceholder)
}

// NewGalleryView builds the gallery page listing.
func NewGalleryView(items []HistoryItem) HistoryView {
	return newHistoryView(items, constants.GalleryPreviewLength, constants.GalleryEmptyPlaceholder)
}

func newHistoryView(items []HistoryItem, previewLength int, placeholder string) HistoryView {
	view := HistoryView{
		Items: make([]HistoryEntryView, 0, len(items)),
		Count: len(items),
	}
	for _, item := range items {
		view.Items = append(view.Items, HistoryEntryView{
			ID:        item.ID,
			Preview:   utils.TruncateForDisplay(item.Content, previewLength),
			Content:   item.Content,
			Timestamp: item.Timestamp,
			Image:     item.Image,
		})
	}
	if len(items) == 0 {
		view.Placeholder = placeholder
	}
	return view
}
