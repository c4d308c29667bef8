// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging decodes uploaded raster images and lays them out on a
// US Letter canvas at print resolution.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

const (
	// DPI is the raster resolution of a letter canvas.
	DPI = 300

	// CanvasWidth and CanvasHeight are 8.5" x 11" at DPI.
	CanvasWidth  = 2550
	CanvasHeight = 3300
)

// DefaultMaxPixels bounds the declared size of a decoded image.
const DefaultMaxPixels = 100_000_000

var maxPixels atomic.Int64

func init() {
	maxPixels.Store(DefaultMaxPixels)
}

// SetMaxPixels sets the largest width x height Decode accepts. Values
// below 1 restore DefaultMaxPixels.
func SetMaxPixels(n int64) {
	if n < 1 {
		n = DefaultMaxPixels
	}
	maxPixels.Store(n)
}

// MaxPixels returns the current decode limit.
func MaxPixels() int64 {
	return maxPixels.Load()
}

// Kind classifies an input buffer by its content, not its name.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindPNG
	KindJPEG
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindPNG:
		return "png"
	case KindJPEG:
		return "jpeg"
	}
	return "unknown"
}

// IsImage reports whether k is a supported raster format.
func (k Kind) IsImage() bool {
	return k == KindPNG || k == KindJPEG
}

// Detect sniffs the content type of data.
func Detect(data []byte) Kind {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return KindPDF
	case mt.Is("image/png"):
		return KindPNG
	case mt.Is("image/jpeg"):
		return KindJPEG
	}
	return KindUnknown
}

// Decode decodes a PNG or JPEG image. Other formats and corrupt data are
// reported as InvalidInput naming the input.
func Decode(in types.Input) (image.Image, error) {
	var (
		decodeConfig func(io.Reader) (image.Config, error)
		decode       func(io.Reader) (image.Image, error)
	)
	switch Detect(in.Data) {
	case KindPNG:
		decodeConfig, decode = png.DecodeConfig, png.Decode
	case KindJPEG:
		decodeConfig, decode = jpeg.DecodeConfig, jpeg.Decode
	default:
		return nil, types.Errorf(types.KindInvalidInput, in.Name,
			"%s is not a supported image (png, jpg, jpeg)", in.Name)
	}

	// The header is checked first: the decoder allocates for the declared
	// size, whatever the length of the data.
	cfg, err := decodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return nil, types.WrapInvalid(in.Name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, types.Errorf(types.KindInvalidInput, in.Name, "%s has no pixels", in.Name)
	}
	if limit := MaxPixels(); int64(cfg.Width)*int64(cfg.Height) > limit {
		return nil, types.Errorf(types.KindInvalidInput, in.Name,
			"%s is %dx%d pixels, more than the limit of %d", in.Name, cfg.Width, cfg.Height, limit)
	}

	img, err := decode(bytes.NewReader(in.Data))
	if err != nil {
		return nil, types.WrapInvalid(in.Name, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, types.Errorf(types.KindInvalidInput, in.Name, "%s has no pixels", in.Name)
	}
	return img, nil
}

// FitRect returns the largest rectangle with the aspect ratio of a w x h
// image that fits inside the canvas, centered on it.
func FitRect(w, h int) image.Rectangle {
	scale := min(float64(CanvasWidth)/float64(w), float64(CanvasHeight)/float64(h))
	dw := max(1, min(CanvasWidth, int(float64(w)*scale+0.5)))
	dh := max(1, min(CanvasHeight, int(float64(h)*scale+0.5)))
	x := (CanvasWidth - dw) / 2
	y := (CanvasHeight - dh) / 2
	return image.Rect(x, y, x+dw, y+dh)
}

// LetterCanvas composites img over white into an opaque RGB canvas of
// CanvasWidth x CanvasHeight, scaled to fit without cropping and centered.
func LetterCanvas(img image.Image) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	b := img.Bounds()
	dst := FitRect(b.Dx(), b.Dy())
	if dst.Dx() == b.Dx() && dst.Dy() == b.Dy() {
		draw.Draw(canvas, dst, img, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(canvas, dst, img, b, draw.Over, nil)
	}
	return canvas
}

// EncodePNG encodes img losslessly, favoring speed over size.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderLetterPNG decodes in and returns its letter canvas as PNG.
func RenderLetterPNG(in types.Input) ([]byte, error) {
	img, err := Decode(in)
	if err != nil {
		return nil, err
	}
	return EncodePNG(LetterCanvas(img))
}
