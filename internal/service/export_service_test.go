package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "qrcode-2024-05-01.png", ExportFilename(fixedNow, "png"))
	assert.Equal(t, "qrcode-2024-05-01.svg", ExportFilename(fixedNow, "svg"))
}

func TestDownload_BeforeGenerate(t *testing.T) {
	f := newFixture(t)

	download, err := f.svc.Download(context.Background())

	assert.Nil(t, download)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotGenerated)
	assert.Contains(t, f.publisher.notifications(), models.Warning(constants.MsgGenerateFirst))
	assert.Equal(t, 0, f.svc.Gallery().Count)
}

func TestDownload_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})

	download, err := f.svc.Download(ctx)
	require.NoError(t, err)

	assert.Equal(t, "qrcode-2024-05-01.png", download.Filename)
	assert.Equal(t, constants.ContentTypePNG, download.ContentType)
	assert.NotEmpty(t, download.Data)
	assert.Equal(t, models.Success(constants.MsgDownloaded), download.Notification)

	assert.Equal(t, fixedNow.UnixMilli(), download.Item.ID)
	assert.Equal(t, "14:30:05", download.Item.Timestamp)
	assert.Equal(t, "hello", download.Item.Content)

	history, err := repository.NewHistoryRepository(f.store).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, history.Len())
	assert.Equal(t, download.Item, history.Items()[0])
}

func TestDownload_Formats(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		filename    string
	}{
		{"png", "image/png", "qrcode-2024-05-01.png"},
		{"jpg", "image/jpeg", "qrcode-2024-05-01.jpg"},
		{"svg", "image/svg+xml", "qrcode-2024-05-01.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f := newFixture(t)
			f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello"), Format: strPtr(tt.format)})

			download, err := f.svc.Download(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, download.ContentType)
			assert.Equal(t, tt.filename, download.Filename)
		})
	}
}

func TestDownload_UniqueIDsAndLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})

	for i := 0; i < constants.HistoryLimit+1; i++ {
		_, err := f.svc.Download(ctx)
		require.NoError(t, err)
	}

	items := f.svc.Gallery().Items
	require.Len(t, items, constants.HistoryLimit)
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i-1].ID, items[i].ID)
	}
	assert.Equal(t, fixedNow.UnixMilli()+int64(constants.HistoryLimit), items[0].ID)
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name         string
		clipboardErr error
		wantMessage  string
		wantErr      func(error) bool
		wantHistory  int
	}{
		{
			name:        "copied",
			wantMessage: constants.MsgCopied,
			wantHistory: 1,
		},
		{
			name:         "unsupported",
			clipboardErr: platform.ErrUnsupported,
			wantErr:      utils.IsPlatformCapabilityError,
		},
		{
			name:         "command failed",
			clipboardErr: errors.New("xclip: exit status 1"),
			wantErr: func(err error) bool {
				return utils.StatusCode(err) == constants.StatusInternalServerError
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
			f.clipboard.On("WritePNG", mock.Anything, mock.AnythingOfType("[]uint8")).Return(tt.clipboardErr)

			n, err := waitTask(t, f.svc.Copy())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantMessage, n.Message)
			}
			assert.Equal(t, tt.wantHistory, f.svc.Gallery().Count)
			f.clipboard.AssertExpectations(t)
		})
	}
}

func TestCopy_BeforeGenerate(t *testing.T) {
	f := newFixture(t)

	_, err := waitTask(t, f.svc.Copy())

	assert.ErrorIs(t, err, utils.ErrNotGenerated)
	f.clipboard.AssertNotCalled(t, "WritePNG", mock.Anything, mock.Anything)
}

func TestShare(t *testing.T) {
	tests := []struct {
		name        string
		shareErr    error
		wantNotice  models.Notification
		wantErr     func(error) bool
		wantHistory int
	}{
		{
			name:        "shared",
			wantNotice:  models.Success(constants.MsgShared),
			wantHistory: 1,
		},
		{
			name:     "dismissed",
			shareErr: platform.ErrAborted,
		},
		{
			name:     "unsupported",
			shareErr: platform.ErrUnsupported,
			wantErr:  utils.IsPlatformCapabilityError,
		},
		{
			name:     "failed",
			shareErr: errors.New("boom"),
			wantErr: func(err error) bool {
				return utils.StatusCode(err) == constants.StatusInternalServerError
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
			isShareFile := mock.MatchedBy(func(file platform.File) bool {
				return file.Name == constants.ShareFileName && file.ContentType == constants.ContentTypePNG && len(file.Data) > 0
			})
			f.sharer.On("Share", mock.Anything, isShareFile, "hello").Return(tt.shareErr)

			n, err := waitTask(t, f.svc.Share())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantNotice, n)
			}
			assert.Equal(t, tt.wantHistory, f.svc.Gallery().Count)
			f.sharer.AssertExpectations(t)
		})
	}
}

func TestRemoveHistoryItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
	first, err := f.svc.Download(ctx)
	require.NoError(t, err)
	second, err := f.svc.Download(ctx)
	require.NoError(t, err)

	n := f.svc.RemoveHistoryItem(ctx, first.Item.ID)
	assert.Equal(t, models.Success(constants.MsgHistoryItemRemoved), n)

	items := f.svc.Gallery().Items
	require.Len(t, items, 1)
	assert.Equal(t, second.Item.ID, items[0].ID)

	_, ok := f.svc.HistoryItem(first.Item.ID)
	assert.False(t, ok)

	n = f.svc.RemoveHistoryItem(ctx, 12345)
	assert.Equal(t, constants.LevelSuccess, n.Level)
	assert.Equal(t, 1, f.svc.Gallery().Count)

	history, err := repository.NewHistoryRepository(f.store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Len())
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.UpdateSettings(&models.SettingsUpdate{Content: strPtr("hello")})
	_, err := f.svc.Download(ctx)
	require.NoError(t, err)

	n := f.svc.ClearHistory(ctx)

	assert.Equal(t, models.Success(constants.MsgHistoryCleared), n)
	assert.Equal(t, 0, f.svc.Gallery().Count)
	assert.Equal(t, constants.HistoryEmptyPlaceholder, f.svc.HistoryPanel().Placeholder)

	history, err := repository.NewHistoryRepository(f.store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, history.Len())
}
