package dto

import (
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

type Corner struct {
	Style entity.CornerStyle
	Color string
}

// RenderRequest is what the renderer receives for one drawing. Preview and export build it
// the same way and differ only in Data and Size.
type RenderRequest struct {
	Data string
	Size int

	Background   string // hex color or entity.TransparentBackground
	DotPattern   entity.DotPattern
	DotFill      entity.DotFill
	CornerSquare Corner
	CornerDot    Corner
	Logo         entity.Logo
}

// QuietZone is the blank border around the code, proportional to the size.
func (r RenderRequest) QuietZone() int {
	return r.Size / 30
}

func (r RenderRequest) Options() qr.Options {
	opts := qr.Options{
		Content:    r.Data,
		Size:       r.Size,
		QuietZone:  r.QuietZone(),
		Background: r.Background,
		Dots:       string(r.DotPattern),
		DotPaint:   qr.Paint{Color: r.DotFill.Color},
		CornerSquare: qr.Corner{
			Style: string(r.CornerSquare.Style),
			Color: r.CornerSquare.Color,
		},
		CornerDot: qr.Corner{
			Style: string(r.CornerDot.Style),
			Color: r.CornerDot.Color,
		},
		Logo: qr.Logo{
			Source: r.Logo.Image,
			Size:   r.Logo.Size,
			Margin: r.Logo.Margin,
		},
	}
	if g := r.DotFill.Gradient; g != nil {
		opts.DotPaint = qr.Paint{Gradient: &qr.Gradient{
			Type:     string(g.Type),
			Color1:   g.Color1,
			Color2:   g.Color2,
			Rotation: g.Rotation,
		}}
	}
	return opts
}
