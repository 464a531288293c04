package qr

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Format is an output encoding of a rendered code.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

var Formats = []Format{FormatPNG, FormatSVG, FormatJPEG}

var ErrUnsupportedFormat = errors.New("qr: unsupported format")

// ParseFormat accepts a format name or a file extension ("jpg", ".png").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// MIME returns the content type of f.
func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Dot patterns.
const (
	DotSquare        = "square"
	DotDots          = "dots"
	DotRounded       = "rounded"
	DotExtraRounded  = "extra-rounded"
	DotClassy        = "classy"
	DotClassyRounded = "classy-rounded"
)

// Corner styles, used by both finder layers.
const (
	CornerSquare       = "square"
	CornerDot          = "dot"
	CornerExtraRounded = "extra-rounded"
)

const (
	GradientLinear = "linear"
	GradientRadial = "radial"
)

// Transparent as a background leaves the canvas empty.
const Transparent = "transparent"

// Gradient paints the dot layer with two stops. Rotation is in radians.
type Gradient struct {
	Type     string
	Color1   string
	Color2   string
	Rotation float64
}

// Paint is either a flat Color or, when Gradient is set, a gradient.
type Paint struct {
	Color    string
	Gradient *Gradient
}

type Corner struct {
	Style string
	Color string
}

type Logo struct {
	// Source is a data URL or a file path.
	Source string
	// Size is the fraction of the code area the logo may cover.
	Size float64
	// Margin in px kept free of dots around the logo.
	Margin int
}

// Options describe one render.
type Options struct {
	Content string
	Size    int
	// QuietZone is the blank border in px.
	QuietZone int

	Background   string
	Dots         string
	DotPaint     Paint
	CornerSquare Corner
	CornerDot    Corner
	Logo         Logo
}

var Default = Options{
	Size:         300,
	QuietZone:    10,
	Background:   "#ffffff",
	Dots:         DotSquare,
	DotPaint:     Paint{Color: "#000000"},
	CornerSquare: Corner{Style: CornerSquare, Color: "#000000"},
	CornerDot:    Corner{Style: CornerSquare, Color: "#000000"},
	Logo:         Logo{Size: 0.4, Margin: 5},
}

// parseColor reads a hex color. Unparseable input falls back to black so a half-typed
// value never breaks a render.
func parseColor(s string) color.Color {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.Black
	}
	return c.Clamped()
}

func hexColor(s string) string {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "#000000"
	}
	return c.Clamped().Hex()
}
