// Package render turns a snapshot of generator settings into a QR image.
//
// Symbol encoding is delegated to github.com/skip2/go-qrcode; this package
// maps settings onto the encoder, applies the colors and exports the result
// as PNG, JPEG or SVG. A Renderer never mutates application state.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

// ErrEmptyContent is returned for requests without content to encode.
var ErrEmptyContent = errors.New("no content to encode")

// Request is the immutable input of a render.
type Request struct {
	Content         string `json:"content"`
	Size            int    `json:"size"`
	DarkColor       string `json:"darkColor"`
	LightColor      string `json:"lightColor"`
	ErrorCorrection string `json:"errorCorrection"`
}

// NewRequest snapshots the render-relevant fields of the settings.
func NewRequest(s models.Settings) Request {
	return Request{
		Content:         s.Content,
		Size:            s.Size,
		DarkColor:       s.DarkColor,
		LightColor:      s.LightColor,
		ErrorCorrection: s.ErrorCorrection,
	}
}

// Renderer produces an image artifact from a request.
type Renderer interface {
	Render(req Request) (*Artifact, error)
}

// QRRenderer renders with github.com/skip2/go-qrcode.
type QRRenderer struct {
	maxSize int
}

// NewQRRenderer creates a renderer backed by go-qrcode. Images larger than
// maxSize pixels are refused; a non-positive maxSize uses the default limit.
func NewQRRenderer(maxSize int) *QRRenderer {
	if maxSize <= 0 {
		maxSize = constants.DefaultMaxSize
	}
	return &QRRenderer{maxSize: maxSize}
}

// Render encodes the request content and rasterizes it at the requested size.
//
// Returns:
//   - a render error when the content is empty, the size exceeds the limit,
//     a parameter cannot be represented, or the encoder rejects the content (for example when it is
//     too long for the chosen error-correction level)
func (r *QRRenderer) Render(req Request) (*Artifact, error) {
	if req.Content == "" {
		return nil, &utils.AppError{
			Err:        utils.ErrRender,
			StatusCode: constants.StatusUnprocessable,
			Message:    constants.MsgEmptyContent,
			DevInfo:    ErrEmptyContent.Error(),
		}
	}
	if req.Size <= 0 || req.Size > r.maxSize {
		return nil, utils.NewRenderError(fmt.Errorf("size %d outside 1..%d", req.Size, r.maxSize))
	}

	level, err := ParseLevel(req.ErrorCorrection)
	if err != nil {
		return nil, utils.NewRenderError(err)
	}
	dark, err := ParseHexColor(req.DarkColor)
	if err != nil {
		return nil, utils.NewRenderError(err)
	}
	light, err := ParseHexColor(req.LightColor)
	if err != nil {
		return nil, utils.NewRenderError(err)
	}

	code, err := qrcode.New(req.Content, level)
	if err != nil {
		return nil, utils.NewRenderError(err)
	}
	code.ForegroundColor = dark
	code.BackgroundColor = light

	png, err := code.PNG(req.Size)
	if err != nil {
		return nil, utils.NewRenderError(err)
	}

	return &Artifact{
		request: req,
		png:     png,
		bitmap:  code.Bitmap(),
		version: code.VersionNumber,
		dark:    dark,
		light:   light,
	}, nil
}

// ParseLevel maps an error-correction letter onto the encoder's recovery
// level. go-qrcode names the four levels Low, Medium, High and Highest,
// which correspond to L, M, Q and H.
func ParseLevel(level string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(level) {
	case constants.ErrorCorrectionLow:
		return qrcode.Low, nil
	case constants.ErrorCorrectionMedium:
		return qrcode.Medium, nil
	case constants.ErrorCorrectionQuartile:
		return qrcode.High, nil
	case constants.ErrorCorrectionHigh:
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("unknown error correction level %q", level)
	}
}

// ParseHexColor parses a '#rrggbb' color into an opaque RGBA value.
func ParseHexColor(s string) (color.RGBA, error) {
	if !utils.IsHexColor(s) {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// HexColor formats c as '#rrggbb'.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
