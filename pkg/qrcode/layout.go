package qr

// rect is an axis aligned box with per-corner radii (top-left, top-right, bottom-right,
// bottom-left). A square with all radii w/2 is a circle.
type rect struct {
	x, y, w, h float64
	r          [4]float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

func roundedAll(x, y, w, h, r float64) rect {
	return rect{x: x, y: y, w: w, h: h, r: [4]float64{r, r, r, r}}
}

// layer is a set of shapes filled with one paint. evenOdd punches holes where shapes
// overlap, which is how finder rings are drawn.
type layer struct {
	paint   Paint
	evenOdd bool
	shapes  []rect
}

// layout is the vector description of a code, shared by the raster and SVG writers.
type layout struct {
	size       int
	background string
	layers     []layer
	// logo box in px, zero when no logo is placed.
	logo rect
}

const finderSize = 7

func isFinder(n, row, col int) bool {
	top, left := row < finderSize, col < finderSize
	return (top && left) || (top && col >= n-finderSize) || (row >= n-finderSize && left)
}

// buildLayout turns the module matrix into shapes. logoW and logoH are the placed logo
// dimensions in px; when non-zero, dots under the logo and its margin are left out.
func buildLayout(opts Options, matrix [][]bool, logoW, logoH float64) layout {
	n := len(matrix)
	inner := float64(opts.Size - 2*opts.QuietZone)
	m := inner / float64(n)
	origin := float64(opts.QuietZone)

	l := layout{size: opts.Size, background: opts.Background}

	var cleared rect
	if logoW > 0 && logoH > 0 {
		l.logo = rect{
			x: origin + (inner-logoW)/2,
			y: origin + (inner-logoH)/2,
			w: logoW,
			h: logoH,
		}
		margin := float64(opts.Logo.Margin)
		cleared = rect{x: l.logo.x - margin, y: l.logo.y - margin, w: logoW + 2*margin, h: logoH + 2*margin}
	}

	on := func(row, col int) bool {
		if row < 0 || col < 0 || row >= n || col >= n {
			return false
		}
		return matrix[row][col] && !isFinder(n, row, col)
	}

	dots := layer{paint: opts.DotPaint}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !on(row, col) {
				continue
			}
			x, y := origin+float64(col)*m, origin+float64(row)*m
			cell := rect{x: x, y: y, w: m, h: m}
			if cleared.w > 0 && cell.intersects(cleared) {
				continue
			}
			cell.r = dotRadii(opts.Dots, m,
				on(row-1, col), on(row, col+1), on(row+1, col), on(row, col-1))
			dots.shapes = append(dots.shapes, cell)
		}
	}
	l.layers = append(l.layers, dots)

	for _, at := range [][2]int{{0, 0}, {0, n - finderSize}, {n - finderSize, 0}} {
		x := origin + float64(at[1])*m
		y := origin + float64(at[0])*m
		l.layers = append(l.layers,
			finderRing(opts.CornerSquare, x, y, m),
			finderCenter(opts.CornerDot, x, y, m),
		)
	}
	return l
}

// dotRadii picks corner radii for one module from its pattern and its four neighbors.
// A corner is "free" when neither adjacent side has a neighbor.
func dotRadii(pattern string, m float64, top, right, bottom, left bool) [4]float64 {
	free := [4]bool{!top && !left, !top && !right, !bottom && !right, !bottom && !left}
	var r [4]float64
	set := func(radius float64, corners ...int) {
		for _, c := range corners {
			if free[c] {
				r[c] = radius
			}
		}
	}

	switch pattern {
	case DotDots:
		return [4]float64{m / 2, m / 2, m / 2, m / 2}
	case DotRounded:
		set(m*0.35, 0, 1, 2, 3)
	case DotExtraRounded:
		set(m/2, 0, 1, 2, 3)
	case DotClassy:
		set(m/2, 0, 2)
	case DotClassyRounded:
		set(m/2, 0, 2)
		set(m/4, 1, 3)
	}
	return r
}

func finderRing(c Corner, x, y, m float64) layer {
	outer, inner := finderSize*m, (finderSize-2)*m
	var ro, ri float64
	switch c.Style {
	case CornerDot:
		ro, ri = outer/2, inner/2
	case CornerExtraRounded:
		ro, ri = 2.5*m, 1.5*m
	}
	return layer{
		paint:   Paint{Color: c.Color},
		evenOdd: true,
		shapes: []rect{
			roundedAll(x, y, outer, outer, ro),
			roundedAll(x+m, y+m, inner, inner, ri),
		},
	}
}

func finderCenter(c Corner, x, y, m float64) layer {
	side := 3 * m
	var r float64
	switch c.Style {
	case CornerDot:
		r = side / 2
	case CornerExtraRounded:
		r = m
	}
	return layer{
		paint:  Paint{Color: c.Color},
		shapes: []rect{roundedAll(x+2*m, y+2*m, side, side, r)},
	}
}
