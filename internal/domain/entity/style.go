package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// TransparentBackground is what EffectiveBackground reports when transparency is on.
const TransparentBackground = "transparent"

type DotPattern string

const (
	DotSquare        DotPattern = "square"
	DotDots          DotPattern = "dots"
	DotRounded       DotPattern = "rounded"
	DotExtraRounded  DotPattern = "extra-rounded"
	DotClassy        DotPattern = "classy"
	DotClassyRounded DotPattern = "classy-rounded"
)

// DotPatterns lists the supported dot patterns in picker order.
var DotPatterns = []DotPattern{DotSquare, DotDots, DotRounded, DotExtraRounded, DotClassy, DotClassyRounded}

type CornerStyle string

const (
	CornerSquare       CornerStyle = "square"
	CornerDot          CornerStyle = "dot"
	CornerExtraRounded CornerStyle = "extra-rounded"
)

// CornerStyles lists the supported corner styles in picker order.
var CornerStyles = []CornerStyle{CornerSquare, CornerDot, CornerExtraRounded}

// CornerLayer selects one of the two finder-pattern layers.
type CornerLayer string

const (
	LayerCornerSquare CornerLayer = "square"
	LayerCornerDot    CornerLayer = "dot"
)

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Gradient is a two-stop gradient for the dot layer.
type Gradient struct {
	Enabled  bool         `json:"enabled"`
	Type     GradientType `json:"type"`
	Color1   string       `json:"color1"`
	Color2   string       `json:"color2"`
	Rotation float64      `json:"rotation"`
}

// Logo is an image overlaid in the middle of the code.
type Logo struct {
	// Image is a data URL or a file path. Empty means no logo.
	Image  string  `json:"image,omitempty"`
	Size   float64 `json:"size"`   // fraction of the QR bounding box
	Margin int     `json:"margin"` // pixels
}

const (
	MinLogoSize     = 0.1
	MaxLogoSize     = 0.5
	DefaultLogoSize = 0.4
)

// StyleConfig is the visual configuration of a code. Output size is not part of it:
// preview and export sizes are owned by their callers.
type StyleConfig struct {
	Foreground  string `json:"fgColor"`
	Background  string `json:"bgColor"`
	Transparent bool   `json:"transparent"`

	DotPattern  DotPattern  `json:"dotsStyle"`
	CornerStyle CornerStyle `json:"cornersStyle"`

	// Optional per-layer corner colors. Empty falls back to Foreground.
	CornerSquareColor string `json:"cornerSquareColor,omitempty"`
	CornerDotColor    string `json:"cornerDotColor,omitempty"`

	Gradient Gradient `json:"gradient"`
	Logo     Logo     `json:"logo"`
}

// DefaultStyle returns the style a fresh session starts with.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Foreground:  "#000000",
		Background:  "#ffffff",
		DotPattern:  DotSquare,
		CornerStyle: CornerSquare,
		Gradient: Gradient{
			Type:   GradientLinear,
			Color1: "#007AFF",
			Color2: "#5856D6",
		},
		Logo: Logo{Size: DefaultLogoSize, Margin: 5},
	}
}

// EffectiveBackground returns TransparentBackground when transparency is enabled,
// otherwise the stored background color. The stored color is kept while transparent.
func (s StyleConfig) EffectiveBackground() string {
	if s.Transparent {
		return TransparentBackground
	}
	return s.Background
}

// EffectiveCornerColor resolves a corner layer color: explicit override first, then the
// flat foreground. Gradients never apply to corners.
func (s StyleConfig) EffectiveCornerColor(layer CornerLayer) string {
	switch layer {
	case LayerCornerSquare:
		if s.CornerSquareColor != "" {
			return s.CornerSquareColor
		}
	case LayerCornerDot:
		if s.CornerDotColor != "" {
			return s.CornerDotColor
		}
	}
	return s.Foreground
}

// DotFill is the resolved paint of the dot layer: exactly one of Gradient or Color is set.
type DotFill struct {
	Color    string
	Gradient *Gradient
}

// EffectiveDotColor returns the gradient when enabled, otherwise the flat foreground.
func (s StyleConfig) EffectiveDotColor() DotFill {
	if s.Gradient.Enabled {
		g := s.Gradient
		return DotFill{Gradient: &g}
	}
	return DotFill{Color: s.Foreground}
}

// ApplyPreset replaces foreground, background and both patterns in one step.
// Logo, gradient and corner overrides are left alone.
func (s *StyleConfig) ApplyPreset(p Preset) {
	s.Foreground = p.Foreground
	s.DotPattern = p.DotPattern
	s.CornerStyle = p.CornerStyle
	if p.Background == TransparentBackground {
		s.Transparent = true
		return
	}
	s.Background = p.Background
	s.Transparent = false
}

// Normalize replaces out-of-range values with usable ones.
func (s *StyleConfig) Normalize() {
	if !validDotPattern(s.DotPattern) {
		s.DotPattern = DotSquare
	}
	if !validCornerStyle(s.CornerStyle) {
		s.CornerStyle = CornerSquare
	}
	if s.Gradient.Type != GradientRadial {
		s.Gradient.Type = GradientLinear
	}
	if s.Foreground == "" {
		s.Foreground = "#000000"
	}
	if s.Background == "" {
		s.Background = "#ffffff"
	}
	switch {
	case s.Logo.Size == 0:
		s.Logo.Size = DefaultLogoSize
	case s.Logo.Size < MinLogoSize:
		s.Logo.Size = MinLogoSize
	case s.Logo.Size > MaxLogoSize:
		s.Logo.Size = MaxLogoSize
	}
	if s.Logo.Margin < 0 {
		s.Logo.Margin = 0
	}
}

func validDotPattern(p DotPattern) bool {
	for _, v := range DotPatterns {
		if v == p {
			return true
		}
	}
	return false
}

func validCornerStyle(c CornerStyle) bool {
	for _, v := range CornerStyles {
		if v == c {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer so gorm stores styles as jsonb.
func (s StyleConfig) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StyleConfig) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = DefaultStyle()
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("style config: unsupported scan source")
	}
}
