package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/nfnt/resize"
	"github.com/soypat/slab"
)

const (
	// DefaultDPI is the raster resolution used when Raster.DPI is not set.
	DefaultDPI = 150
	// MaxRasterSide bounds the width and height of rendered images in pixels.
	MaxRasterSide = 1 << 15
)

var ErrRasterTooLarge = errors.New("raster exceeds maximum size")

// Raster renders documents to PNG images.
type Raster struct {
	// DPI is the resolution in dots per inch. Zero selects DefaultDPI.
	DPI float64
	// Thumbnail, when non-zero, downscales the image so neither side
	// exceeds Thumbnail pixels.
	Thumbnail uint
}

var _ Renderer = Raster{}

// PixelSize returns the image size in pixels a document renders at.
func (r Raster) PixelSize(doc Document) (w, h int) {
	dpi := r.Resolution()
	size := documentSize(doc)
	return int(math.Round(size.X * dpi / slab.MillimetresPerInch)), int(math.Round(size.Y * dpi / slab.MillimetresPerInch))
}

// Resolution returns the DPI the raster renders at.
func (r Raster) Resolution() float64 {
	if r.DPI > 0 && !math.IsInf(r.DPI, 0) {
		return r.DPI
	}
	return DefaultDPI
}

// Image draws doc into a new image.
func (r Raster) Image(doc Document) (image.Image, error) {
	w, h := r.PixelSize(doc)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: raster: empty document %dx%d", w, h)
	}
	if w > MaxRasterSide || h > MaxRasterSide {
		return nil, fmt.Errorf("render: raster: %dx%d: %w", w, h, ErrRasterTooLarge)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gc := draw2dimg.NewGraphicContext(img)
	viewTransform(gc, doc, r.Resolution()/slab.MillimetresPerInch)
	drawScene(gc, doc)
	if r.Thumbnail == 0 {
		return img, nil
	}
	return resize.Thumbnail(r.Thumbnail, r.Thumbnail, img, resize.Lanczos3), nil
}

// Render encodes the rendered document as PNG.
func (r Raster) Render(ctx context.Context, doc Document) ([]byte, error) {
	img, err := r.Image(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: raster: %w", err)
	}
	return buf.Bytes(), nil
}
