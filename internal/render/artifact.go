package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
)

// jpegQuality keeps module edges crisp enough for scanners.
const jpegQuality = 92

// Artifact is a rendered QR code. It is immutable once created.
type Artifact struct {
	request Request
	png     []byte
	bitmap  [][]bool
	version int
	dark    color.RGBA
	light   color.RGBA
}

// Export is an encoded artifact ready to be sent or saved.
type Export struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Request returns the request the artifact was rendered from.
func (a *Artifact) Request() Request {
	return a.request
}

// Version returns the symbol version chosen by the encoder.
func (a *Artifact) Version() int {
	return a.version
}

// Modules returns the edge length of the symbol in modules, quiet zone included.
func (a *Artifact) Modules() int {
	return len(a.bitmap)
}

// PNG returns the native PNG encoding.
func (a *Artifact) PNG() []byte {
	return a.png
}

// DataURI returns the PNG as a data URI, the form stored in history items.
func (a *Artifact) DataURI() string {
	return "data:" + constants.ContentTypePNG + ";base64," + base64.StdEncoding.EncodeToString(a.png)
}

// JPEG re-encodes the PNG raster as JPEG on an opaque canvas.
func (a *Artifact) JPEG() ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(a.png))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: a.light}, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// SVG builds a vector document from the symbol bitmap. Dark modules on the
// same row are merged into a single horizontal run.
func (a *Artifact) SVG() []byte {
	n := len(a.bitmap)
	size := a.request.Size

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		size, size, n, n)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`, n, n, HexColor(a.light))

	var path strings.Builder
	for y, row := range a.bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&path, "M%d %dh%dv1h-%dz", start, y, x-start, x-start)
		}
	}
	if path.Len() > 0 {
		fmt.Fprintf(&buf, `<path fill="%s" d="%s"/>`, HexColor(a.dark), path.String())
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

// Encode exports the artifact in the given format (png, jpg or svg).
func (a *Artifact) Encode(format string) (*Export, error) {
	switch strings.ToLower(format) {
	case constants.FormatPNG:
		return &Export{Data: a.PNG(), ContentType: constants.ContentTypePNG, Extension: constants.FormatPNG}, nil
	case constants.FormatJPG, "jpeg":
		data, err := a.JPEG()
		if err != nil {
			return nil, err
		}
		return &Export{Data: data, ContentType: constants.ContentTypeJPEG, Extension: constants.FormatJPG}, nil
	case constants.FormatSVG:
		return &Export{Data: a.SVG(), ContentType: constants.ContentTypeSVG, Extension: constants.FormatSVG}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
