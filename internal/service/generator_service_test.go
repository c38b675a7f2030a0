package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/events"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// MockClipboard is a mock implementation of platform.Clipboard
type MockClipboard struct {
	mock.Mock
}

func (m *MockClipboard) WritePNG(ctx context.Context, png []byte) error {
	args := m.Called(ctx, png)
	return args.Error(0)
}

// MockSharer is a mock implementation of platform.Sharer
type MockSharer struct {
	mock.Mock
}

func (m *MockSharer) Share(ctx context.Context, file platform.File, text string) error {
	args := m.Called(ctx, file, text)
	return args.Error(0)
}

// recordingRenderer renders for real and keeps every request it saw
type recordingRenderer struct {
	mu       sync.Mutex
	requests []render.Request
	inner    *render.QRRenderer
}

func (r *recordingRenderer) Render(req render.Request) (*render.Artifact, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return r.inner.Render(req)
}

func (r *recordingRenderer) last() render.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events.Event{Type: eventType, Data: data})
}

func (p *recordingPublisher) notifications() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []models.Notification
	for _, e := range p.events {
		if n, ok := e.Data.(models.Notification); ok && e.Type == events.TypeNotification {
			out = append(out, n)
		}
	}
	return out
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type fixture struct {
	svc       *GeneratorService
	store     *repository.MemoryKeyValueStore
	renderer  *recordingRenderer
	publisher *recordingPublisher
	clipboard *MockClipboard
	sharer    *MockSharer
}

var fixedNow = time.Date(2024, 5, 1, 14, 30, 5, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     repository.NewMemoryKeyValueStore(),
		renderer:  &recordingRenderer{inner: render.NewQRRenderer(constants.DefaultMaxSize)},
		publisher: &recordingPublisher{},
		clipboard: new(MockClipboard),
		sharer:    new(MockSharer),
	}
	f.svc = NewGeneratorService(GeneratorDeps{
		SettingsRepo: repository.NewSettingsRepository(f.store),
		HistoryRepo:  repository.NewHistoryRepository(f.store),
		Renderer:     f.renderer,
		Clipboard:    f.clipboard,
		Sharer:       f.sharer,
		Publisher:    f.publisher,
		TaskTimeout:  time.Second,
	})
	f.svc.now = func() time.Time { return fixedNow }
	f.svc.Start(context.Background())
	return f
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func waitTask(t *testing.T, task *platform.Task[models.Notification]) (models.Notification, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := task.Wait(ctx)
	require.False(t, errors.Is(err, context.DeadlineExceeded), "task did not resolve")
	return n, err
}

func TestGeneratorService_FreshSession(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, models.DefaultSettings(), f.svc.Settings())

	preview, err := f.svc.Preview()
	assert.Nil(t, preview)
	require.Error(t, err)
	assert.True(t, utils.IsRenderError(err))

	panel := f.svc.HistoryPanel()
	assert.Empty(t, panel.Items)
	assert.Equal(t, constants.HistoryEmptyPlaceholder, panel.Placeholder)

	gallery := f.svc.Gallery()
	assert.Equal(t, 0, gallery.Count)
	assert.Equal(t, constants.GalleryEmptyPlaceholder, gallery.Placeholder)

	stats := f.svc.Statistics()
	assert.Equal(t, 0, stats.Length)
}

func TestGeneratorService_UpdateSettingsRendersRequest(t *testing.T) {
	f := newFixture(t)

	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
	_, err := f.svc.ApplyPreset(constants.PresetPastel)
	require.NoError(t, err)
	settings := f.svc.UpdateSettings(&models.SettingsUpdate{Size: intPtr(500)})

	assert.Equal(t, "hello", settings.Content)
	assert.Equal(t, "#d4a5ff", settings.DarkColor)
	assert.Equal(t, "#fff5f7", settings.LightColor)

	req := f.renderer.last()
	assert.Equal(t, "hello", req.Content)
	assert.Equal(t, 500, req.Size)
	assert.Equal(t, "#d4a5ff", req.DarkColor)
	assert.Equal(t, "#fff5f7", req.LightColor)
	assert.Equal(t, "M", req.ErrorCorrection)

	preview, err := f.svc.Preview()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(preview.Image, "data:image/png;base64,"))
	assert.Equal(t, models.EstimateCapacity(5), preview.Statistics)
	assert.Equal(t, settings, preview.Settings)

	png, err := f.svc.PreviewPNG()
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	assert.Positive(t, f.publisher.count(events.TypeSettingsUpdated))
	assert.Positive(t, f.publisher.count(events.TypeRenderUpdated))
}

func TestGeneratorService_StatisticsCountUTF16Units(t *testing.T) {
	f := newFixture(t)

	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("héllo😀")})

	stats := f.svc.Statistics()
	assert.Equal(t, 7, stats.Length, "é is one unit, the emoji is a surrogate pair")
	assert.Equal(t, 1, stats.Version)
}

func TestGeneratorService_UpdateField(t *testing.T) {
	f := newFixture(t)

	settings, err := f.svc.UpdateField(constants.FieldErrorCorrection, "h")
	require.NoError(t, err)
	assert.Equal(t, "H", settings.ErrorCorrection)

	_, err = f.svc.UpdateField(constants.FieldSize, "big")
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, constants.DefaultSize, f.svc.Settings().Size)

	_, err = f.svc.UpdateField("margin", "4")
	assert.True(t, utils.IsValidationError(err))
}

func TestGeneratorService_ApplyUnknownPreset(t *testing.T) {
	f := newFixture(t)

	settings, err := f.svc.ApplyPreset("sunset")

	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestGeneratorService_ApplySizePreset(t *testing.T) {
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})

	settings, err := f.svc.ApplySizePreset(constants.SizePresetSmall)

	require.NoError(t, err)
	assert.Equal(t, 200, settings.Size)
	assert.Equal(t, 200, f.renderer.last().Size)
	assert.Len(t, f.svc.SizePresets(), 3)

	_, err = f.svc.ApplySizePreset("huge")
	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, 200, f.svc.Settings().Size)
}

func TestGeneratorService_ApplySizePresetOutsideConfiguredRange(t *testing.T) {
	min, max := utils.SizeRange()
	defer utils.SetSizeRange(min, max)
	utils.SetSizeRange(250, 400)

	f := newFixture(t)

	settings, err := f.svc.ApplySizePreset(constants.SizePresetLarge)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, models.DefaultSettings().Size, settings.Size)
}

func TestGeneratorService_ResetDiscardsRender(t *testing.T) {
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello"), Size: intPtr(400)})

	settings, n := f.svc.Reset()

	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Equal(t, constants.MsgSettingsReset, n.Message)
	_, err := f.svc.Preview()
	assert.Error(t, err)
}

func TestGeneratorService_FailedRenderClearsArtifact(t *testing.T) {
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
	_, err := f.svc.Preview()
	require.NoError(t, err)

	f.svc.UpdateSettings(&models.SettingsUpdate{DarkColor: strPtr("not-a-color")})

	_, err = f.svc.Preview()
	require.Error(t, err)
	assert.True(t, utils.IsRenderError(err))

	_, err = f.svc.Download(context.Background())
	assert.ErrorIs(t, err, utils.ErrNotGenerated)
}

func TestGeneratorService_StartRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeySettings, []byte(`{"content":"restored","size":250}`)))
	require.NoError(t, store.Set(ctx, constants.StorageKeyHistory, []byte(`[{"id":42,"content":"old","timestamp":"09:00:00","image":"data:image/png;base64,AA=="}]`)))

	svc := NewGeneratorService(GeneratorDeps{
		SettingsRepo: repository.NewSettingsRepository(store),
		HistoryRepo:  repository.NewHistoryRepository(store),
	})
	svc.Start(ctx)

	assert.Equal(t, "restored", svc.Settings().Content)
	assert.Equal(t, 250, svc.Settings().Size)
	assert.Equal(t, 1, svc.Gallery().Count)

	preview, err := svc.Preview()
	require.NoError(t, err)
	assert.NotEmpty(t, preview.Image)
}

func TestGeneratorService_StartWithCorruptStateUsesDefaults(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeySettings, []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, constants.StorageKeyHistory, []byte(`"nope"`)))

	svc := NewGeneratorService(GeneratorDeps{
		SettingsRepo: repository.NewSettingsRepository(store),
		HistoryRepo:  repository.NewHistoryRepository(store),
	})
	svc.Start(ctx)

	assert.Equal(t, models.DefaultSettings(), svc.Settings())
	assert.Equal(t, 0, svc.Gallery().Count)
}

func TestGeneratorService_StartResetsOutOfRangeFields(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKeyValueStore()
	blob := `{"content":"restored","size":4000000000,"darkColor":"red","errorCorrection":"Z","format":"svg"}`
	require.NoError(t, store.Set(ctx, constants.StorageKeySettings, []byte(blob)))

	svc := NewGeneratorService(GeneratorDeps{
		SettingsRepo: repository.NewSettingsRepository(store),
		HistoryRepo:  repository.NewHistoryRepository(store),
	})
	require.NotPanics(t, func() { svc.Start(ctx) })

	settings := svc.Settings()
	assert.Equal(t, "restored", settings.Content)
	assert.Equal(t, "svg", settings.Format)
	assert.Equal(t, constants.DefaultSize, settings.Size)
	assert.Equal(t, constants.DefaultDarkColor, settings.DarkColor)
	assert.Equal(t, constants.DefaultErrorCorrection, settings.ErrorCorrection)
	assert.NoError(t, utils.ValidateStruct(settings))

	preview, err := svc.Preview()
	require.NoError(t, err)
	assert.NotEmpty(t, preview.Image)
}

func TestGeneratorService_SaveSessionPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("persist me")})

	n := f.svc.SaveSession(ctx)
	assert.Equal(t, constants.MsgSessionSaved, n.Message)

	loaded, err := repository.NewSettingsRepository(f.store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persist me", loaded.Content)
}
