package models

import (
	"encoding/json"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// HistoryItem is an immutable record of one exported QR code.
type HistoryItem struct {
	// ID is the export time in Unix milliseconds, unique within a history
	ID int64 `json:"id"`

	// Content is the full encoded text, never truncated in storage
	Content string `json:"content"`

	// Timestamp is the human-readable time of day of the export
	Timestamp string `json:"timestamp"`

	// Image is the PNG data URI of the exported symbol
	Image string `json:"image"`
}

// History is the bounded, newest-first log of exports.
// It is not safe for concurrent use; callers serialize access.
type History struct {
	items []HistoryItem
	limit int
}

// NewHistory creates an empty history holding at most HistoryLimit items.
func NewHistory() *History {
	return NewHistoryWithLimit(constants.HistoryLimit)
}

// NewHistoryWithLimit creates an empty history with a custom bound.
// Non-positive limits fall back to HistoryLimit.
func NewHistoryWithLimit(limit int) *History {
	if limit <= 0 {
		limit = constants.HistoryLimit
	}
	return &History{limit: limit}
}

// Append inserts item at the front. When the history then exceeds its limit
// the oldest item is evicted and returned.
func (h *History) Append(item HistoryItem) (evicted *HistoryItem) {
	h.items = append([]HistoryItem{item}, h.items...)
	if len(h.items) > h.limit {
		last := h.items[len(h.items)-1]
		h.items = h.items[:h.limit]
		return &last
	}
	return nil
}

// Remove deletes the item with the given id. It reports whether an item was
// removed; an unknown id leaves the history unchanged.
func (h *History) Remove(id int64) bool {
	for i, item := range h.items {
		if item.ID == id {
			h.items = append(h.items[:i:i], h.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every item.
func (h *History) Clear() {
	h.items = nil
}

// Get returns the item with the given id.
func (h *History) Get(id int64) (HistoryItem, bool) {
	for _, item := range h.items {
		if item.ID == id {
			return item, true
		}
	}
	return HistoryItem{}, false
}

// Items returns a copy of the items, newest first.
func (h *History) Items() []HistoryItem {
	out := make([]HistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of items.
func (h *History) Len() int {
	return len(h.items)
}

// Limit returns the maximum number of items kept.
func (h *History) Limit() int {
	return h.limit
}

// NewestID returns the id of the most recent item, or 0 when empty.
func (h *History) NewestID() int64 {
	if len(h.items) == 0 {
		return 0
	}
	return h.items[0].ID
}

// Serialize encodes the items for persistence as a JSON array.
func (h *History) Serialize() ([]byte, error) {
	items := h.items
	if items == nil {
		items = []HistoryItem{}
	}
	return json.Marshal(items)
}

// DeserializeHistory restores a history from a persisted blob. An empty blob
// yields an empty history; a corrupt blob yields an empty history together
// with a persistence error. Blobs longer than the limit keep the newest items.
func DeserializeHistory(blob []byte) (*History, error) {
	h := NewHistory()
	if len(blob) == 0 {
		return h, nil
	}

	var items []HistoryItem
	if err := json.Unmarshal(blob, &items); err != nil {
		return h, utils.NewPersistenceError(constants.StorageKeyHistory, err)
	}
	if len(items) > h.limit {
		items = items[:h.limit]
	}
	h.items = items
	return h, nil
}
