package qr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"

	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	"github.com/Badsnus/qrgen-studio/pkg/logo"
)

var ErrEmptyContent = errors.New("qr: empty content")

type Renderer struct {
	log *types.Logger
}

func NewRenderer(log *types.Logger) *Renderer {
	return &Renderer{log: log}
}

// Image is one rendered code. The base drawing is available as soon as Render returns;
// when a logo is requested it is loaded in the background and Ready is closed once it is
// placed (or once loading failed, in which case the code stays logo-free).
type Image struct {
	opts   Options
	matrix [][]bool
	level  qrcode.RecoveryLevel
	ready  chan struct{}

	mu     sync.RWMutex
	layout layout
	logo   image.Image
}

// Render encodes opts.Content and lays out the code. The error correction level is High
// when a logo covers part of the code and Medium otherwise.
func (r *Renderer) Render(ctx context.Context, opts Options) (*Image, error) {
	opts = normalize(opts)
	if opts.Content == "" {
		return nil, ErrEmptyContent
	}

	level := qrcode.Medium
	if opts.Logo.Source != "" {
		level = qrcode.High
	}
	code, err := qrcode.New(opts.Content, level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.DisableBorder = true

	img := &Image{
		opts:   opts,
		matrix: code.Bitmap(),
		level:  level,
		ready:  make(chan struct{}),
	}
	img.layout = buildLayout(opts, img.matrix, 0, 0)

	if opts.Logo.Source == "" {
		close(img.ready)
		return img, nil
	}
	go img.loadLogo(ctx, r.log)
	return img, nil
}

func (img *Image) loadLogo(ctx context.Context, log *types.Logger) {
	defer close(img.ready)

	src, err := logo.Load(img.opts.Logo.Source)
	if err != nil {
		if log != nil {
			log.Warnf("logo not loaded, rendering without it: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	inner := float64(img.opts.Size - 2*img.opts.QuietZone)
	box := inner * img.opts.Logo.Size
	b := src.Bounds()
	ratio := math.Min(box/float64(b.Dx()), box/float64(b.Dy()))
	w, h := uint(math.Max(1, float64(b.Dx())*ratio)), uint(math.Max(1, float64(b.Dy())*ratio))
	scaled := resize.Resize(w, h, src, resize.Lanczos3)

	img.mu.Lock()
	img.logo = scaled
	img.layout = buildLayout(img.opts, img.matrix, float64(w), float64(h))
	img.mu.Unlock()
}

// Ready is closed when background work for this image has finished.
func (img *Image) Ready() <-chan struct{} {
	return img.ready
}

func (img *Image) Size() int {
	return img.opts.Size
}

// HasLogo reports whether a logo has been placed.
func (img *Image) HasLogo() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.logo != nil
}

// Encode writes the current drawing. It does not wait for Ready.
func (img *Image) Encode(w io.Writer, f Format) error {
	img.mu.RLock()
	defer img.mu.RUnlock()

	switch f {
	case FormatPNG:
		return png.Encode(w, img.layout.raster(img.logo))
	case FormatJPEG:
		return jpeg.Encode(w, onWhite(img.layout.raster(img.logo)), &jpeg.Options{Quality: 92})
	case FormatSVG:
		return img.layout.writeSVG(w, img.logo)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Bytes is Encode into memory.
func (img *Image) Bytes(f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := img.Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalize(opts Options) Options {
	if opts.Size <= 0 {
		opts.Size = Default.Size
	}
	if opts.QuietZone < 0 || 2*opts.QuietZone >= opts.Size {
		opts.QuietZone = 0
	}
	if opts.Dots == "" {
		opts.Dots = DotSquare
	}
	if opts.DotPaint.Color == "" && opts.DotPaint.Gradient == nil {
		opts.DotPaint.Color = "#000000"
	}
	if opts.CornerSquare.Color == "" {
		opts.CornerSquare.Color = "#000000"
	}
	if opts.CornerDot.Color == "" {
		opts.CornerDot.Color = "#000000"
	}
	switch {
	case opts.Logo.Size <= 0:
		opts.Logo.Size = Default.Logo.Size
	case opts.Logo.Size > 0.5:
		opts.Logo.Size = 0.5
	}
	if opts.Logo.Margin < 0 {
		opts.Logo.Margin = 0
	}
	return opts
}
