package raster

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	// LineHeight is the vertical advance between text rows.
	LineHeight = 12
	fontAscent = 9
)

var font tinyfont.Fonter = &proggy.TinySZ8pt7b

// textDisplay adapts a Canvas to the tinyfont display interface.
type textDisplay struct {
	c *Canvas
}

var _ drivers.Displayer = textDisplay{}

func (d textDisplay) Size() (x, y int16) {
	if d.c == nil {
		return 0, 0
	}
	return int16(d.c.W), int16(d.c.H)
}

func (d textDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.c.SetPixel(int(x), int(y), Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d textDisplay) Display() error { return nil }

// Text writes s with its top-left corner at (x, y).
func (c *Canvas) Text(x, y int, s string, col Color) {
	if !c.ok() || s == "" {
		return
	}
	// Off-canvas labels are skipped before the int16 conversion can wrap.
	if x >= c.W || y >= c.H || y+LineHeight < 0 || x+TextWidth(s) < 0 {
		return
	}
	tinyfont.WriteLine(textDisplay{c: c}, font, int16(x), int16(y+fontAscent), s, col.RGBA8())
}

// TextWidth reports the pixel width of s.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(font, s)
	return int(w)
}
