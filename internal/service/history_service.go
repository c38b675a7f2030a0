package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/events"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
)

// HistoryPanel returns the compact history list of the generator page.
func (s *GeneratorService) HistoryPanel() models.HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewHistoryPanelView(s.history.Items())
}

// Gallery returns the gallery listing of every kept export.
func (s *GeneratorService) Gallery() models.HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewGalleryView(s.history.Items())
}

// HistoryItem returns a single history item.
func (s *GeneratorService) HistoryItem(id int64) (models.HistoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Get(id)
}

// RemoveHistoryItem deletes one item. Removing an unknown id changes nothing
// and still reports success.
func (s *GeneratorService) RemoveHistoryItem(ctx context.Context, id int64) models.Notification {
	s.mu.Lock()
	removed := s.history.Remove(id)
	var snapshot *models.History
	if removed {
		snapshot = s.historyChangedLocked()
	}
	s.mu.Unlock()

	if snapshot != nil {
		logPersistence("save", s.historyRepo.Save(ctx, snapshot))
	}
	log.Debug().Int64("id", id).Bool("removed", removed).Msg("History item removal")
	return s.notify(models.Success(constants.MsgHistoryItemRemoved))
}

// ClearHistory removes every item. Confirmation is the caller's concern.
func (s *GeneratorService) ClearHistory(ctx context.Context) models.Notification {
	s.mu.Lock()
	s.history.Clear()
	snapshot := s.historyChangedLocked()
	s.mu.Unlock()

	logPersistence("save", s.historyRepo.Save(ctx, snapshot))
	log.Info().Msg("History cleared")
	return s.notify(models.Success(constants.MsgHistoryCleared))
}

// appendHistory records an export of artifact and persists the history.
func (s *GeneratorService) appendHistory(ctx context.Context, artifact *render.Artifact) models.HistoryItem {
	s.mu.Lock()
	now := s.now()
	id := now.UnixMilli()
	if newest := s.history.NewestID(); id <= newest {
		id = newest + 1
	}
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	item := models.HistoryItem{
		ID:        id,
		Content:   artifact.Request().Content,
		Timestamp: now.Format(constants.HistoryTimestampLayout),
		Image:     artifact.DataURI(),
	}
	if evicted := s.history.Append(item); evicted != nil {
		log.Debug().Int64("evicted_id", evicted.ID).Msg("Oldest history item evicted")
	}
	snapshot := s.historyChangedLocked()
	s.mu.Unlock()

	logPersistence("save", s.historyRepo.Save(ctx, snapshot))
	return item
}

// historyChangedLocked publishes the new history and returns a snapshot to persist.
func (s *GeneratorService) historyChangedLocked() *models.History {
	s.publisher.Publish(events.TypeHistoryUpdated, models.NewHistoryPanelView(s.history.Items()))
	return s.snapshotHistoryLocked()
}
