package render_test

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/models"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils"
)

const testMaxSize = 1000

func defaultRequest(content string) render.Request {
	s := models.DefaultSettings()
	s.Content = content
	return render.NewRequest(s)
}

func TestRender_DefaultSettings(t *testing.T) {
	artifact, err := render.NewQRRenderer(testMaxSize).Render(defaultRequest("hello"))
	require.NoError(t, err)

	assert.Equal(t, 1, artifact.Version())
	assert.Equal(t, "hello", artifact.Request().Content)
	assert.Greater(t, artifact.Modules(), 21)

	img, err := png.Decode(bytes.NewReader(artifact.PNG()))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRender_Colors(t *testing.T) {
	req := defaultRequest("hello")
	req.DarkColor = "#ff00ff"
	req.LightColor = "#00ffff"

	artifact, err := render.NewQRRenderer(testMaxSize).Render(req)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(artifact.PNG()))
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*render.Request)
	}{
		{"Empty content", func(r *render.Request) { r.Content = "" }},
		{"Zero size", func(r *render.Request) { r.Size = 0 }},
		{"Size above limit", func(r *render.Request) { r.Size = testMaxSize + 1 }},
		{"Huge size", func(r *render.Request) { r.Size = 4000000000 }},
		{"Unknown level", func(r *render.Request) { r.ErrorCorrection = "X" }},
		{"Bad dark color", func(r *render.Request) { r.DarkColor = "black" }},
		{"Bad light color", func(r *render.Request) { r.LightColor = "#fff" }},
		{"Content too long", func(r *render.Request) {
			r.Content = strings.Repeat("a", 3000)
			r.ErrorCorrection = constants.ErrorCorrectionHigh
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := defaultRequest("hello")
			tt.mutate(&req)

			artifact, err := render.NewQRRenderer(testMaxSize).Render(req)
			assert.Nil(t, artifact)
			require.Error(t, err)
			assert.True(t, utils.IsRenderError(err))
			assert.Equal(t, constants.StatusUnprocessable, utils.StatusCode(err))
		})
	}
}

func TestRender_DefaultLimit(t *testing.T) {
	req := defaultRequest("hello")
	req.Size = constants.DefaultMaxSize + 1

	_, err := render.NewQRRenderer(0).Render(req)
	assert.True(t, utils.IsRenderError(err))

	req.Size = constants.DefaultMaxSize
	_, err = render.NewQRRenderer(0).Render(req)
	assert.NoError(t, err)
}

func TestRender_EmptyContentMessage(t *testing.T) {
	_, err := render.NewQRRenderer(testMaxSize).Render(defaultRequest(""))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constants.MsgEmptyContent, appErr.Message)
}

func TestArtifact_SVG(t *testing.T) {
	req := defaultRequest("hello")
	req.DarkColor = "#112233"
	req.LightColor = "#AABBCC"

	artifact, err := render.NewQRRenderer(testMaxSize).Render(req)
	require.NoError(t, err)

	svg := string(artifact.SVG())
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `width="300"`)
	assert.Contains(t, svg, `fill="#112233"`)
	assert.Contains(t, svg, `fill="#aabbcc"`)
	assert.Contains(t, svg, "<path")
}

func TestArtifact_JPEG(t *testing.T) {
	artifact, err := render.NewQRRenderer(testMaxSize).Render(defaultRequest("hello"))
	require.NoError(t, err)

	data, err := artifact.JPEG()
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestArtifact_Encode(t *testing.T) {
	artifact, err := render.NewQRRenderer(testMaxSize).Render(defaultRequest("hello"))
	require.NoError(t, err)

	tests := []struct {
		format      string
		contentType string
		ext         string
	}{
		{constants.FormatPNG, constants.ContentTypePNG, "png"},
		{constants.FormatJPG, constants.ContentTypeJPEG, "jpg"},
		{"JPEG", constants.ContentTypeJPEG, "jpg"},
		{constants.FormatSVG, constants.ContentTypeSVG, "svg"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			export, err := artifact.Encode(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, export.ContentType)
			assert.Equal(t, tt.ext, export.Extension)
			assert.NotEmpty(t, export.Data)
		})
	}

	_, err = artifact.Encode("gif")
	assert.Error(t, err)
}

func TestArtifact_DataURI(t *testing.T) {
	artifact, err := render.NewQRRenderer(testMaxSize).Render(defaultRequest("hello"))
	require.NoError(t, err)

	uri := artifact.DataURI()
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, artifact.PNG(), decoded)
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H", "q"} {
		_, err := render.ParseLevel(level)
		assert.NoError(t, err, level)
	}
	_, err := render.ParseLevel("")
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := render.ParseHexColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, c)
	assert.Equal(t, "#ff8800", render.HexColor(c))

	_, err = render.ParseHexColor("ff8800")
	assert.Error(t, err)
}
