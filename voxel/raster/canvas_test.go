package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countColor(c *Canvas, col Color) int {
	n := 0
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if c.At(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestClearAndSetPixel(t *testing.T) {
	c := NewCanvas(4, 3)
	c.Clear(RGB(10, 20, 30))
	require.Equal(t, RGB(10, 20, 30), c.At(3, 2))

	c.SetPixel(1, 1, RGB(255, 0, 0))
	assert.Equal(t, RGB(255, 0, 0), c.At(1, 1))

	// out of bounds writes are dropped
	c.SetPixel(-1, 0, RGB(255, 0, 0))
	c.SetPixel(4, 0, RGB(255, 0, 0))
	assert.Equal(t, 1, countColor(c, RGB(255, 0, 0)))
}

func TestSetPixelBlends(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Clear(RGB(0, 0, 0))
	c.SetPixel(0, 0, RGBA(200, 100, 0, 128))
	got := c.At(0, 0)
	assert.InDelta(t, 100, int(got.R), 1)
	assert.InDelta(t, 50, int(got.G), 1)
	assert.Equal(t, uint8(0), got.B)
}

func TestFillRectClips(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Clear(RGB(0, 0, 0))
	c.FillRect(-2, -2, 4, 4, RGB(1, 2, 3))
	assert.Equal(t, 4, countColor(c, RGB(1, 2, 3)))
}

func TestFillPolygonSquare(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Clear(RGB(0, 0, 0))
	c.FillPolygon([]Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}, RGB(9, 9, 9))
	assert.Equal(t, 16, countColor(c, RGB(9, 9, 9)))
	assert.Equal(t, RGB(9, 9, 9), c.At(2, 2))
	assert.Equal(t, RGB(0, 0, 0), c.At(6, 6))
}

func TestFillPolygonSharedEdgeNoOverdraw(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Clear(RGB(0, 0, 0))
	half := RGBA(200, 0, 0, 128)
	c.FillPolygon([]Point{{0, 0}, {8, 0}, {0, 8}}, half)
	c.FillPolygon([]Point{{8, 0}, {8, 8}, {0, 8}}, half)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.InDelta(t, 100, int(c.At(x, y).R), 1, "pixel %d,%d", x, y)
		}
	}
}

func TestFillPolygonIgnoresDegenerate(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Clear(RGB(0, 0, 0))
	c.FillPolygon([]Point{{0, 0}, {3, 3}}, RGB(5, 5, 5))
	assert.Zero(t, countColor(c, RGB(5, 5, 5)))
}

func TestLineEndpointsAndClipping(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Clear(RGB(0, 0, 0))
	c.Line(0, 0, 9, 0, RGB(7, 7, 7))
	assert.Equal(t, 10, countColor(c, RGB(7, 7, 7)))

	c.Clear(RGB(0, 0, 0))
	c.Line(-1000000, 5, 1000000, 5, RGB(7, 7, 7))
	assert.Equal(t, 10, countColor(c, RGB(7, 7, 7)))
}

func TestColorScaleAndLerp(t *testing.T) {
	c := RGB(200, 100, 50)
	assert.Equal(t, RGB(100, 50, 25), c.Scale(0.5))
	assert.Equal(t, RGB(200, 100, 50), c.Scale(3))
	assert.Equal(t, uint8(0xFF), c.Scale(0).A)

	assert.Equal(t, RGB(100, 100, 100), Lerp(RGB(0, 0, 0), RGB(200, 200, 200), 0.5))
}

func TestTextPaints(t *testing.T) {
	c := NewCanvas(64, 16)
	c.Clear(RGB(0, 0, 0))
	c.Text(1, 1, "FPS", RGB(255, 255, 255))
	assert.Positive(t, countColor(c, RGB(255, 255, 255)))
	assert.Positive(t, TextWidth("FPS"))
}

func TestTextFarOffCanvasDoesNotWrap(t *testing.T) {
	c := NewCanvas(64, 16)
	c.Clear(RGB(0, 0, 0))
	white := RGB(255, 255, 255)
	for _, p := range [][2]int{{65536 + 1, 1}, {1, 65536 + 1}, {-65536 + 1, 1}, {1, -65536 + 1}, {-200, 1}} {
		c.Text(p[0], p[1], "FPS", white)
		assert.Zero(t, countColor(c, white), "label at %v", p)
	}
	c.Text(-2, 1, "FPS", white)
	assert.Positive(t, countColor(c, white), "partly visible label still draws")
}
