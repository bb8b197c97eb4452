//go:build !tinygo && !cgo

package hal

// hostKeyboard without cgo has no window to poll; events only arrive
// through feed, from a headless key script.
type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {}

// feed queues ev, dropping it when the consumer is 64 events behind.
func (k *hostKeyboard) feed(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}
