package raster

import "image/color"

// Color is an RGBA color in 8-bit channels. A is straight (not premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Scale multiplies the color channels by s, clamped to [0, 1]. Alpha is kept.
func (c Color) Scale(s float64) Color {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	mul := func(ch uint8) uint8 {
		return uint8(float64(ch)*s + 0.5)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Brighten moves the color towards white by t in [0, 1].
func (c Color) Brighten(t float64) Color {
	return Lerp(c, Color{R: 0xFF, G: 0xFF, B: 0xFF, A: c.A}, t)
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// RGBA8 converts to the image/color representation used by tinyfont.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Lerp interpolates every channel, alpha included. t is clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// blend composites src over dst.
func blend(dst, src Color) Color {
	if src.A == 0xFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	sa := uint32(src.A)
	da := 255 - sa
	return Color{
		R: uint8((uint32(src.R)*sa + uint32(dst.R)*da) / 255),
		G: uint8((uint32(src.G)*sa + uint32(dst.G)*da) / 255),
		B: uint8((uint32(src.B)*sa + uint32(dst.B)*da) / 255),
		A: 0xFF,
	}
}
