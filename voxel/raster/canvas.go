package raster

import (
	"math"
	"sort"
)

// Point is a screen-space vertex. Coordinates are pixels; fractional values are
// sampled at pixel centers.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Canvas renders into an RGBA8888 buffer.
//
// Callers provide the backing buffer and layout (stride), usually straight from
// the host framebuffer.
type Canvas struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int

	xs []float64
}

// NewCanvas allocates a canvas with its own buffer.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{Buf: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func (c *Canvas) Size() (w, h int) { return c.W, c.H }

func (c *Canvas) ok() bool {
	return c != nil && c.Buf != nil && c.Stride > 0 && c.W > 0 && c.H > 0
}

// Clear fills the whole canvas, ignoring alpha.
func (c *Canvas) Clear(col Color) {
	if !c.ok() {
		return
	}
	for y := 0; y < c.H; y++ {
		row := y * c.Stride
		for x := 0; x < c.W; x++ {
			off := row + x*4
			if off+3 >= len(c.Buf) {
				break
			}
			c.Buf[off] = col.R
			c.Buf[off+1] = col.G
			c.Buf[off+2] = col.B
			c.Buf[off+3] = 0xFF
		}
	}
}

// At returns the pixel at (x, y), or the zero color when out of bounds.
func (c *Canvas) At(x, y int) Color {
	if !c.ok() || x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Color{}
	}
	off := y*c.Stride + x*4
	if off+3 >= len(c.Buf) {
		return Color{}
	}
	return Color{R: c.Buf[off], G: c.Buf[off+1], B: c.Buf[off+2], A: c.Buf[off+3]}
}

// SetPixel composites col over the existing pixel. Out-of-bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if !c.ok() || col.A == 0 {
		return
	}
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	off := y*c.Stride + x*4
	if off+3 >= len(c.Buf) {
		return
	}
	if col.A != 0xFF {
		dst := Color{R: c.Buf[off], G: c.Buf[off+1], B: c.Buf[off+2], A: c.Buf[off+3]}
		col = blend(dst, col)
	}
	c.Buf[off] = col.R
	c.Buf[off+1] = col.G
	c.Buf[off+2] = col.B
	c.Buf[off+3] = 0xFF
}

func (c *Canvas) hline(x0, x1, y int, col Color) {
	if y < 0 || y >= c.H {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= c.W {
		x1 = c.W - 1
	}
	for x := x0; x <= x1; x++ {
		c.SetPixel(x, y, col)
	}
}

// FillRect fills the w*h rectangle whose top-left corner is (x, y).
func (c *Canvas) FillRect(x, y, w, h int, col Color) {
	if !c.ok() || w <= 0 || h <= 0 {
		return
	}
	for yy := y; yy < y+h; yy++ {
		c.hline(x, x+w-1, yy, col)
	}
}

func (c *Canvas) StrokeRect(x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Line(x, y, x+w-1, y, col)
	c.Line(x, y+h-1, x+w-1, y+h-1, col)
	c.Line(x, y, x, y+h-1, col)
	c.Line(x+w-1, y, x+w-1, y+h-1, col)
}

// Line draws a 1px Bresenham line. Endpoints far outside the canvas are
// clipped first so the walk stays short.
func (c *Canvas) Line(x0, y0, x1, y1 int, col Color) {
	if !c.ok() {
		return
	}
	fx0, fy0, fx1, fy1, visible := clipLine(float64(x0), float64(y0), float64(x1), float64(y1), -1, -1, float64(c.W), float64(c.H))
	if !visible {
		return
	}
	x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// LineF is Line for fractional endpoints.
func (c *Canvas) LineF(a, b Point, col Color) {
	if !finite(a) || !finite(b) {
		return
	}
	fx0, fy0, fx1, fy1, visible := clipLine(a.X, a.Y, b.X, b.Y, -1, -1, float64(c.W), float64(c.H))
	if !visible {
		return
	}
	c.Line(int(math.Round(fx0)), int(math.Round(fy0)), int(math.Round(fx1)), int(math.Round(fy1)), col)
}

// FillPolygon fills a simple polygon with the even-odd rule. Pixels are
// painted when their center lies inside, so adjacent polygons sharing an edge
// never paint the same pixel twice.
func (c *Canvas) FillPolygon(pts []Point, col Color) {
	if !c.ok() || len(pts) < 3 || col.A == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		if !finite(p) {
			return
		}
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := int(math.Ceil(minY - 0.5))
	y1 := int(math.Ceil(maxY-0.5)) - 1
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= c.H {
		y1 = c.H - 1
	}
	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		xs := c.xs[:0]
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= yc && yc < b.Y) || (b.Y <= yc && yc < a.Y) {
				xs = append(xs, a.X+(yc-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		if len(xs) > 2 {
			sort.Float64s(xs)
		} else if len(xs) == 2 && xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
		}
		for i := 0; i+1 < len(xs); i += 2 {
			left := int(math.Ceil(xs[i] - 0.5))
			right := int(math.Ceil(xs[i+1]-0.5)) - 1
			if right < 0 || left >= c.W {
				continue
			}
			c.hline(left, right, y, col)
		}
		c.xs = xs
	}
}

// StrokePolygon outlines a closed polygon.
func (c *Canvas) StrokePolygon(pts []Point, col Color) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		c.LineF(pts[i], pts[(i+1)%len(pts)], col)
	}
}

// GlowPolygon strokes radius fading outlines around pts, each pushed one pixel
// further out from the centroid.
func (c *Canvas) GlowPolygon(pts []Point, col Color, radius int) {
	if len(pts) < 3 || radius <= 0 {
		return
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	ring := make([]Point, len(pts))
	for i := 1; i <= radius; i++ {
		for j, p := range pts {
			dx, dy := p.X-cx, p.Y-cy
			l := math.Hypot(dx, dy)
			if l == 0 {
				ring[j] = p
				continue
			}
			ring[j] = Point{X: p.X + dx/l*float64(i), Y: p.Y + dy/l*float64(i)}
		}
		a := float64(col.A) * float64(radius-i+1) / float64(radius+1)
		c.StrokePolygon(ring, col.WithAlpha(uint8(a)))
	}
}

// clipLine is Liang-Barsky against [minX, maxX] x [minY, maxY].
func clipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}
	if !clip(-dx, x0-minX) || !clip(dx, maxX-x0) || !clip(-dy, y0-minY) || !clip(dy, maxY-y0) {
		return 0, 0, 0, 0, false
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
