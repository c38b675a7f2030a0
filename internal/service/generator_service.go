// Package service provides the business logic of QRForge.
//
// GeneratorService owns the generator state of the session: the settings,
// the export history and the most recent render. Every state transition is
// serialized by one mutex, so HTTP handlers may call it concurrently.
// Persistence failures are logged and never returned to callers.
package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/events"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// GeneratorService is the controller of the generator state.
type GeneratorService struct {
	settingsRepo repository.SettingsRepository
	historyRepo  repository.HistoryRepository
	renderer     render.Renderer
	clipboard    platform.Clipboard
	sharer       platform.Sharer
	publisher    events.Publisher
	taskTimeout  time.Duration
	now          func() time.Time

	mu        sync.Mutex
	settings  models.Settings
	history   *models.History
	artifact  *render.Artifact
	renderErr error
	lastID    int64
}

// GeneratorDeps groups the collaborators of a GeneratorService.
type GeneratorDeps struct {
	SettingsRepo repository.SettingsRepository
	HistoryRepo  repository.HistoryRepository
	Renderer     render.Renderer
	Clipboard    platform.Clipboard
	Sharer       platform.Sharer
	Publisher    events.Publisher

	// TaskTimeout bounds clipboard and share operations
	TaskTimeout time.Duration
}

// NewGeneratorService creates a service holding the default state. Call
// Start to restore the persisted state.
func NewGeneratorService(deps GeneratorDeps) *GeneratorService {
	s := &GeneratorService{
		settingsRepo: deps.SettingsRepo,
		historyRepo:  deps.HistoryRepo,
		renderer:     deps.Renderer,
		clipboard:    deps.Clipboard,
		sharer:       deps.Sharer,
		publisher:    deps.Publisher,
		taskTimeout:  deps.TaskTimeout,
		now:          time.Now,
		settings:     models.DefaultSettings(),
		history:      models.NewHistory(),
	}
	if s.renderer == nil {
		s.renderer = render.NewQRRenderer(constants.DefaultMaxSize)
	}
	if s.clipboard == nil {
		s.clipboard = platform.UnsupportedClipboard{}
	}
	if s.sharer == nil {
		s.sharer = platform.UnsupportedSharer{}
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.taskTimeout <= 0 {
		s.taskTimeout = constants.DefaultPlatformTaskTimeout
	}
	return s
}

// Start restores the persisted settings and history and renders the
// restored settings. Unreadable state falls back to defaults, and restored
// fields outside their value domain fall back to their default value.
func (s *GeneratorService) Start(ctx context.Context) {
	settings, err := s.settingsRepo.Load(ctx)
	logPersistence("load", err)

	if err := utils.ValidateStruct(settings); err != nil {
		reset := settings.Sanitize()
		logPersistence("load", utils.NewPersistenceError(constants.StorageKeySettings, err))
		log.Warn().
			Str("category", constants.LogCategoryStorage).
			Strs("fields", reset).
			Msg("Restored settings out of range, defaults used")
	}

	history, err := s.historyRepo.Load(ctx)
	logPersistence("load", err)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.history = history
	s.lastID = history.NewestID()
	s.rerenderLocked()

	log.Info().
		Int("history_items", history.Len()).
		Bool("rendered", s.artifact != nil).
		Msg("Generator state restored")
}

// RenderStatus summarizes the most recent render for event subscribers.
type RenderStatus struct {
	Rendered   bool              `json:"rendered"`
	Version    int               `json:"version,omitempty"`
	Error      string            `json:"error,omitempty"`
	Statistics models.Statistics `json:"statistics"`
}

// Preview is the most recent successful render.
type Preview struct {
	Image      string            `json:"image"`
	Version    int               `json:"version"`
	Modules    int               `json:"modules"`
	Statistics models.Statistics `json:"statistics"`
	Settings   models.Settings   `json:"settings"`
}

// Preview returns the last render.
//
// Returns:
//   - the render error of the current settings when they cannot be rendered
func (s *GeneratorService) Preview() (*Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		return nil, s.renderErr
	}
	return &Preview{
		Image:      s.artifact.DataURI(),
		Version:    s.artifact.Version(),
		Modules:    s.artifact.Modules(),
		Statistics: s.statisticsLocked(),
		Settings:   s.settings,
	}, nil
}

// PreviewPNG returns the raw PNG of the last render.
func (s *GeneratorService) PreviewPNG() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		return nil, s.renderErr
	}
	return s.artifact.PNG(), nil
}

// Statistics estimates the symbol version and capacity of the current content.
func (s *GeneratorService) Statistics() models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statisticsLocked()
}

// statisticsLocked measures content in UTF-16 code units, the unit browsers
// report as a string's length.
func (s *GeneratorService) statisticsLocked() models.Statistics {
	return models.EstimateCapacity(len(utf16.Encode([]rune(s.settings.Content))))
}

// SaveSession persists the settings and the history.
func (s *GeneratorService) SaveSession(ctx context.Context) models.Notification {
	s.mu.Lock()
	settings := s.settings
	history := s.snapshotHistoryLocked()
	s.mu.Unlock()

	logPersistence("save", s.settingsRepo.Save(ctx, settings))
	logPersistence("save", s.historyRepo.Save(ctx, history))

	log.Info().Int("history_items", history.Len()).Msg("Session saved")
	return models.Success(constants.MsgSessionSaved)
}

// rerenderLocked renders the current settings and keeps the result. A failed
// render clears the artifact so stale images are never exported.
func (s *GeneratorService) rerenderLocked() {
	artifact, err := s.renderer.Render(render.NewRequest(s.settings))
	if err != nil {
		s.artifact = nil
		s.renderErr = err
		switch {
		case !utils.IsRenderError(err):
			utils.LogError(err, map[string]interface{}{
				"category": constants.LogCategoryRender,
				"size":     s.settings.Size,
			})
		case s.settings.Content != "":
			log.Debug().
				Err(err).
				Str("category", constants.LogCategoryRender).
				Int("content_length", len(s.settings.Content)).
				Str("error_correction", s.settings.ErrorCorrection).
				Msg("Render failed")
		}
	} else {
		s.artifact = artifact
		s.renderErr = nil
	}
	s.publisher.Publish(events.TypeRenderUpdated, s.renderStatusLocked())
}

func (s *GeneratorService) renderStatusLocked() RenderStatus {
	status := RenderStatus{Statistics: s.statisticsLocked()}
	if s.artifact != nil {
		status.Rendered = true
		status.Version = s.artifact.Version()
		return status
	}
	if s.renderErr != nil {
		var appErr *utils.AppError
		if errors.As(s.renderErr, &appErr) {
			status.Error = appErr.Message
		} else {
			status.Error = s.renderErr.Error()
		}
	}
	return status
}

// snapshotHistoryLocked copies the history so it can be saved without the lock.
func (s *GeneratorService) snapshotHistoryLocked() *models.History {
	snapshot := models.NewHistoryWithLimit(s.history.Limit())
	items := s.history.Items()
	for i := len(items) - 1; i >= 0; i-- {
		snapshot.Append(items[i])
	}
	return snapshot
}

// notify sends a notification to event subscribers and returns it.
func (s *GeneratorService) notify(n models.Notification) models.Notification {
	s.publisher.Publish(events.TypeNotification, n)
	return n
}

// logPersistence logs a recovered persistence failure.
func logPersistence(operation string, err error) {
	if err == nil {
		return
	}
	key := ""
	var appErr *utils.AppError
	if utils.IsPersistenceError(err) && errors.As(err, &appErr) {
		key = appErr.Field
	}
	utils.LogPersistenceFailure(key, operation, err)
}
