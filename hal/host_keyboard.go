//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch      chan KeyEvent
	keys    []ebiten.Key
	focused bool
	held    map[ebiten.Key]bool
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64), focused: true, held: make(map[ebiten.Key]bool)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(key ebiten.Key, press bool) {
	k.feed(KeyEvent{Key: key.String(), Press: press})
}

// feed queues ev, dropping it when the consumer is 64 events behind.
func (k *hostKeyboard) feed(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

// poll turns this tick's key edges into events. Losing focus releases every
// held key so nothing stays stuck down.
func (k *hostKeyboard) poll() {
	focused := ebiten.IsFocused()
	if !focused && k.focused {
		for key := range k.held {
			k.emit(key, false)
			delete(k.held, key)
		}
	}
	k.focused = focused

	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		k.held[key] = true
		k.emit(key, true)
	}
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	for _, key := range k.keys {
		delete(k.held, key)
		k.emit(key, false)
	}
}
