package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// Download is an exported image file.
type Download struct {
	Filename     string
	ContentType  string
	Data         []byte
	Item         models.HistoryItem
	Notification models.Notification
}

// ExportFilename builds the download name for a date and extension,
// e.g. qrcode-2024-05-01.png.
func ExportFilename(t time.Time, ext string) string {
	return constants.ExportFilenamePrefix + t.Format(constants.ExportDateLayout) + "." + ext
}

// currentArtifact returns the last render, or a not-generated error.
func (s *GeneratorService) currentArtifact() (*render.Artifact, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		s.notify(models.Warning(constants.MsgGenerateFirst))
		return nil, "", utils.NewNotGeneratedError()
	}
	return s.artifact, s.settings.Format, nil
}

// Download encodes the last render in the selected format and records the
// export in the history.
//
// Returns:
//   - A not-generated error when nothing has been rendered yet
//   - A render error when the image cannot be encoded
func (s *GeneratorService) Download(ctx context.Context) (*Download, error) {
	artifact, format, err := s.currentArtifact()
	if err != nil {
		return nil, err
	}

	export, err := artifact.Encode(format)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"category": constants.LogCategoryExport, "operation": "download", "format": format})
		s.notify(models.Failure(constants.MsgDownloadFailed))
		return nil, utils.NewWithDevInfo(utils.ErrRender, constants.StatusUnprocessable, constants.MsgDownloadFailed, err.Error())
	}

	item := s.appendHistory(ctx, artifact)

	log.Info().
		Str("category", constants.LogCategoryExport).
		Str("format", export.Extension).
		Int("bytes", len(export.Data)).
		Msg("QR code downloaded")

	return &Download{
		Filename:     ExportFilename(s.now(), export.Extension),
		ContentType:  export.ContentType,
		Data:         export.Data,
		Item:         item,
		Notification: s.notify(models.Success(constants.MsgDownloaded)),
	}, nil
}

// Copy writes the last render to the clipboard. The returned task resolves
// with the notification to show; its continuation records the export even
// when nobody waits for it.
func (s *GeneratorService) Copy() *platform.Task[models.Notification] {
	artifact, _, err := s.currentArtifact()
	if err != nil {
		return platform.Failed[models.Notification](err)
	}

	write := platform.Go(func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.taskTimeout)
		defer cancel()
		return struct{}{}, s.clipboard.WritePNG(ctx, artifact.PNG())
	})

	return platform.Then(write, func(_ struct{}, err error) (models.Notification, error) {
		if err != nil {
			if errors.Is(err, platform.ErrUnsupported) {
				s.notify(models.Warning(constants.MsgClipboardMissing))
				return models.Notification{}, utils.NewPlatformCapabilityError(constants.MsgClipboardMissing, err)
			}
			utils.LogError(err, map[string]interface{}{"category": constants.LogCategoryExport, "operation": "copy"})
			s.notify(models.Failure(constants.MsgCopyFailed))
			return models.Notification{}, utils.NewWithDevInfo(utils.ErrInternalServer, constants.StatusInternalServerError, constants.MsgCopyFailed, err.Error())
		}

		s.appendHistory(context.Background(), artifact)
		log.Info().Str("category", constants.LogCategoryExport).Msg("QR code copied")
		return s.notify(models.Success(constants.MsgCopied)), nil
	})
}

// Share hands the last render and its content to the share mechanism. A
// share the user dismisses resolves with an empty notification and no error.
func (s *GeneratorService) Share() *platform.Task[models.Notification] {
	artifact, _, err := s.currentArtifact()
	if err != nil {
		return platform.Failed[models.Notification](err)
	}

	text := artifact.Request().Content
	if text == "" {
		text = constants.ShareFallbackText
	}
	file := platform.File{
		Name:        constants.ShareFileName,
		ContentType: constants.ContentTypePNG,
		Data:        artifact.PNG(),
	}

	share := platform.Go(func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.taskTimeout)
		defer cancel()
		return struct{}{}, s.sharer.Share(ctx, file, text)
	})

	return platform.Then(share, func(_ struct{}, err error) (models.Notification, error) {
		switch {
		case err == nil:
			s.appendHistory(context.Background(), artifact)
			log.Info().Str("category", constants.LogCategoryExport).Msg("QR code shared")
			return s.notify(models.Success(constants.MsgShared)), nil
		case errors.Is(err, platform.ErrAborted):
			return models.Notification{}, nil
		case errors.Is(err, platform.ErrUnsupported):
			s.notify(models.Warning(constants.MsgShareUnsupported))
			return models.Notification{}, utils.NewPlatformCapabilityError(constants.MsgShareUnsupported, err)
		default:
			utils.LogError(err, map[string]interface{}{"category": constants.LogCategoryExport, "operation": "share"})
			s.notify(models.Failure(constants.MsgShareFailed))
			return models.Notification{}, utils.NewWithDevInfo(utils.ErrInternalServer, constants.StatusInternalServerError, constants.MsgShareFailed, err.Error())
		}
	})
}
