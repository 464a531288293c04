package qr

import (
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

func (l layout) raster(logo image.Image) image.Image {
	dc := gg.NewContext(l.size, l.size)

	if l.background != "" && l.background != Transparent {
		dc.SetColor(parseColor(l.background))
		dc.Clear()
	}

	for _, ly := range l.layers {
		if len(ly.shapes) == 0 {
			continue
		}
		if ly.evenOdd {
			dc.SetFillRuleEvenOdd()
		} else {
			dc.SetFillRuleWinding()
		}
		for _, s := range ly.shapes {
			tracePath(dc, s)
		}
		dc.SetFillStyle(l.pattern(ly.paint))
		dc.Fill()
	}

	if logo != nil && l.logo.w > 0 {
		dc.DrawImage(logo, int(math.Round(l.logo.x)), int(math.Round(l.logo.y)))
	}
	return dc.Image()
}

// pattern resolves a paint. Gradients span the whole canvas so every dot samples the
// same gradient field.
func (l layout) pattern(p Paint) gg.Pattern {
	if p.Gradient == nil {
		return gg.NewSolidPattern(parseColor(p.Color))
	}

	g := p.Gradient
	x0, y0, x1, y1 := l.gradientLine(g)
	var grad gg.Gradient
	if g.Type == GradientRadial {
		c := float64(l.size) / 2
		grad = gg.NewRadialGradient(c, c, 0, c, c, c)
	} else {
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}
	grad.AddColorStop(0, parseColor(g.Color1))
	grad.AddColorStop(1, parseColor(g.Color2))
	return grad
}

// gradientLine returns the endpoints of a linear gradient through the canvas center,
// rotated clockwise by g.Rotation from left-to-right.
func (l layout) gradientLine(g *Gradient) (x0, y0, x1, y1 float64) {
	c := float64(l.size) / 2
	dx, dy := math.Cos(g.Rotation)*c, math.Sin(g.Rotation)*c
	return c - dx, c - dy, c + dx, c + dy
}

func tracePath(dc *gg.Context, s rect) {
	x0, y0, x1, y1 := s.x, s.y, s.x+s.w, s.y+s.h
	tl, tr, br, bl := s.r[0], s.r[1], s.r[2], s.r[3]

	dc.NewSubPath()
	dc.MoveTo(x0+tl, y0)
	dc.LineTo(x1-tr, y0)
	if tr > 0 {
		dc.DrawArc(x1-tr, y0+tr, tr, gg.Radians(270), gg.Radians(360))
	}
	dc.LineTo(x1, y1-br)
	if br > 0 {
		dc.DrawArc(x1-br, y1-br, br, 0, gg.Radians(90))
	}
	dc.LineTo(x0+bl, y1)
	if bl > 0 {
		dc.DrawArc(x0+bl, y1-bl, bl, gg.Radians(90), gg.Radians(180))
	}
	dc.LineTo(x0, y0+tl)
	if tl > 0 {
		dc.DrawArc(x0+tl, y0+tl, tl, gg.Radians(180), gg.Radians(270))
	}
	dc.ClosePath()
}

// onWhite composites img over an opaque white canvas.
func onWhite(img image.Image) image.Image {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
