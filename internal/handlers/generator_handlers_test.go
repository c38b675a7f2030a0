package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/handlers"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/service"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// MockGeneratorService is a mock implementation of GeneratorServiceInterface
type MockGeneratorService struct {
	mock.Mock
}

func (m *MockGeneratorService) Preview() (*service.Preview, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Preview), args.Error(1)
}

func (m *MockGeneratorService) PreviewPNG() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGeneratorService) Download(ctx context.Context) (*service.Download, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}

func (m *MockGeneratorService) Copy() *platform.Task[models.Notification] {
	args := m.Called()
	return args.Get(0).(*platform.Task[models.Notification])
}

func (m *MockGeneratorService) Share() *platform.Task[models.Notification] {
	args := m.Called()
	return args.Get(0).(*platform.Task[models.Notification])
}

func TestGeneratorHandler_GetPreview(t *testing.T) {
	tests := []struct {
		name           string
		preview        *service.Preview
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "rendered",
			preview: &service.Preview{
				Image:      "data:image/png;base64,AAAA",
				Version:    1,
				Statistics: models.Statistics{Length: 5, Version: 1, Capacity: 25},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "render error shown inline",
			err:            utils.NewRenderError(errors.New("content too long")),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   constants.CodeRenderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGeneratorService)
			if tt.preview != nil {
				mockService.On("Preview").Return(tt.preview, nil)
			} else {
				mockService.On("Preview").Return(nil, tt.err)
			}
			handler := handlers.NewGeneratorHandler(mockService)

			rr := httptest.NewRecorder()
			handler.GetPreview(rr, httptest.NewRequest(http.MethodGet, constants.QRPreviewPath, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.preview != nil {
				var got service.Preview
				decodeResponse(t, rr, &got)
				assert.Equal(t, tt.preview.Image, got.Image)
				assert.Equal(t, tt.preview.Statistics, got.Statistics)
			} else {
				resp := decodeResponse(t, rr, nil)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
				assert.Equal(t, constants.MsgRenderFailed, resp.Error.Message)
			}
		})
	}
}

func TestGeneratorHandler_GetPreviewPNG(t *testing.T) {
	mockService := new(MockGeneratorService)
	mockService.On("PreviewPNG").Return([]byte{0x89, 'P', 'N', 'G'}, nil)
	handler := handlers.NewGeneratorHandler(mockService)

	rr := httptest.NewRecorder()
	handler.GetPreviewPNG(rr, httptest.NewRequest(http.MethodGet, constants.QRPreviewPNGPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constants.ContentTypePNG, rr.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rr.Body.Bytes())
}

func TestGeneratorHandler_Download(t *testing.T) {
	mockService := new(MockGeneratorService)
	mockService.On("Download", mock.Anything).Return(&service.Download{
		Filename:    "qrcode-2024-05-01.svg",
		ContentType: constants.ContentTypeSVG,
		Data:        []byte("<svg/>"),
	}, nil).Once()
	mockService.On("Download", mock.Anything).Return(nil, utils.NewNotGeneratedError()).Once()
	handler := handlers.NewGeneratorHandler(mockService)

	rr := httptest.NewRecorder()
	handler.Download(rr, httptest.NewRequest(http.MethodGet, constants.QRDownloadPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constants.ContentTypeSVG, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="qrcode-2024-05-01.svg"`)
	assert.Equal(t, "<svg/>", rr.Body.String())

	rr = httptest.NewRecorder()
	handler.Download(rr, httptest.NewRequest(http.MethodGet, constants.QRDownloadPath, nil))

	assert.Equal(t, http.StatusConflict, rr.Code)
	resp := decodeResponse(t, rr, nil)
	assert.Equal(t, constants.CodeNotGenerated, resp.Error.Code)
	assert.Equal(t, constants.MsgGenerateFirst, resp.Error.Message)
	mockService.AssertExpectations(t)
}

// resolvedTask returns a task that resolves with n
func resolvedTask(n models.Notification) *platform.Task[models.Notification] {
	return platform.Go(func() (models.Notification, error) { return n, nil })
}

func TestGeneratorHandler_CopyAndShare(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		task           *platform.Task[models.Notification]
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "copied",
			method:         "Copy",
			task:           resolvedTask(models.Success(constants.MsgCopied)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "clipboard missing",
			method:         "Copy",
			task:           platform.Failed[models.Notification](utils.NewPlatformCapabilityError(constants.MsgClipboardMissing, platform.ErrUnsupported)),
			expectedStatus: http.StatusNotImplemented,
			expectedCode:   constants.CodePlatformUnsupported,
		},
		{
			name:           "shared",
			method:         "Share",
			task:           resolvedTask(models.Success(constants.MsgShared)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "share dismissed",
			method:         "Share",
			task:           resolvedTask(models.Notification{}),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "not generated",
			method:         "Share",
			task:           platform.Failed[models.Notification](utils.NewNotGeneratedError()),
			expectedStatus: http.StatusConflict,
			expectedCode:   constants.CodeNotGenerated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGeneratorService)
			mockService.On(tt.method).Return(tt.task)
			handler := handlers.NewGeneratorHandler(mockService)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, constants.QRCopyPath, nil)
			if tt.method == "Copy" {
				handler.Copy(rr, req)
			} else {
				handler.Share(rr, req)
			}

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode != "" {
				resp := decodeResponse(t, rr, nil)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestGeneratorHandler_CopyClientGone(t *testing.T) {
	mockService := new(MockGeneratorService)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	pending := platform.Go(func() (models.Notification, error) {
		<-release
		return models.Success(constants.MsgCopied), nil
	})
	mockService.On("Copy").Return(pending)
	handler := handlers.NewGeneratorHandler(mockService)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, constants.QRCopyPath, nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.Copy(rr, req)

	assert.Empty(t, rr.Body.String())
}
