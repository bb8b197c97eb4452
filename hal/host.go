//go:build !tinygo

package hal

type hostHAL struct {
	fb  *hostFramebuffer
	kbd *hostKeyboard
	clk *hostClock
}

func newHost(width, height int, clk *hostClock) *hostHAL {
	return &hostHAL{
		fb:  newHostFramebuffer(width, height),
		kbd: newHostKeyboard(),
		clk: clk,
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Clock() Clock     { return h.clk }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
