// Package hal is the boundary between the game and the host: a framebuffer
// to paint into, key events, and a clock.
package hal

import "time"

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook. The size may change
// between frames when the host window is resized.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyEvent is a keyboard transition. Key is the host key name as used in
// key bindings: "W", "ArrowUp", "Space", "ShiftLeft", "F5", "Digit1".
type KeyEvent struct {
	Key   string
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
}

// Clock is the time source for the frame loop. Window hosts run on wall
// time; headless hosts on a virtual clock advanced once per step.
type Clock interface {
	Now() time.Time
}

// HAL provides the only contact point between the game and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Clock() Clock
}

// NewApp builds the per-frame step function from a HAL.
type NewApp func(HAL) (step func() error, err error)
