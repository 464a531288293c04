package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/Badsnus/qrgen-studio/pkg/logo"
)

func (l layout) writeSVG(w io.Writer, logoImg image.Image) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.size, l.size, l.size, l.size)

	if l.background != "" && l.background != Transparent {
		fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`+"\n", l.size, l.size, hexColor(l.background))
	}

	for i, ly := range l.layers {
		if len(ly.shapes) == 0 {
			continue
		}
		fill := hexColor(ly.paint.Color)
		if g := ly.paint.Gradient; g != nil {
			id := fmt.Sprintf("grad%d", i)
			l.writeGradient(&buf, id, g)
			fill = "url(#" + id + ")"
		}

		var d strings.Builder
		for _, s := range ly.shapes {
			pathData(&d, s)
		}
		rule := ""
		if ly.evenOdd {
			rule = ` fill-rule="evenodd"`
		}
		fmt.Fprintf(&buf, `<path d="%s" fill="%s"%s/>`+"\n", d.String(), fill, rule)
	}

	if logoImg != nil && l.logo.w > 0 {
		var img bytes.Buffer
		if err := png.Encode(&img, logoImg); err != nil {
			return err
		}
		fmt.Fprintf(&buf, `<image x="%s" y="%s" width="%s" height="%s" href="%s"/>`+"\n",
			num(l.logo.x), num(l.logo.y), num(l.logo.w), num(l.logo.h), logo.DataURL("image/png", img.Bytes()))
	}

	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func (l layout) writeGradient(buf *bytes.Buffer, id string, g *Gradient) {
	stops := fmt.Sprintf(`<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/>`,
		hexColor(g.Color1), hexColor(g.Color2))
	if g.Type == GradientRadial {
		c := num(float64(l.size) / 2)
		fmt.Fprintf(buf, `<defs><radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">%s</radialGradient></defs>`+"\n",
			id, c, c, c, stops)
		return
	}
	x0, y0, x1, y1 := l.gradientLine(g)
	fmt.Fprintf(buf, `<defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">%s</linearGradient></defs>`+"\n",
		id, num(x0), num(y0), num(x1), num(y1), stops)
}

func pathData(d *strings.Builder, s rect) {
	x0, y0, x1, y1 := s.x, s.y, s.x+s.w, s.y+s.h
	tl, tr, br, bl := s.r[0], s.r[1], s.r[2], s.r[3]
	arc := func(r, x, y float64) {
		if r > 0 {
			fmt.Fprintf(d, "A%s %s 0 0 1 %s %s", num(r), num(r), num(x), num(y))
		}
	}

	fmt.Fprintf(d, "M%s %sH%s", num(x0+tl), num(y0), num(x1-tr))
	arc(tr, x1, y0+tr)
	fmt.Fprintf(d, "V%s", num(y1-br))
	arc(br, x1-br, y1)
	fmt.Fprintf(d, "H%s", num(x0+bl))
	arc(bl, x0, y1-bl)
	fmt.Fprintf(d, "V%s", num(y0+tl))
	arc(tl, x0+tl, y0)
	d.WriteString("Z")
}

func num(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
	return strings.TrimSuffix(s, ".")
}
