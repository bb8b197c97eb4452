package game

import (
	"go.uber.org/zap"

	"voxelbox/voxel/sim"
)

// HandleKey feeds one key transition, named as in the key bindings. Held
// actions are read by the next ticks; the rest fire once per press.
func (g *Game) HandleKey(key string, pressed bool) {
	a, ok := g.bindings.Resolve(key)
	if !ok {
		return
	}
	if !pressed {
		g.keys.Release(a)
		return
	}
	if !g.keys.Press(a) {
		return
	}
	if a.Held() {
		if a == sim.Jump {
			g.state.Stats.Jumps++
		}
		return
	}

	ui := &g.state.UI
	switch a {
	case sim.CycleCamera:
		mode := g.entities.CycleCamera()
		g.state.Stats.CameraSwitches++
		g.log.Debug("camera mode", zap.Stringer("mode", mode))
	case sim.ToggleInventory:
		ui.Inventory = !ui.Inventory
		ui.Crafting = false
	case sim.ToggleCrafting:
		ui.Crafting = !ui.Crafting
		ui.Inventory = false
	case sim.ToggleMenu:
		ui.Menu = !ui.Menu
	case sim.ToggleDebug:
		ui.Debug = !ui.Debug
	case sim.SaveNow:
		g.saveWanted = true
	default:
		if slot, ok := a.HotbarSlot(); ok {
			g.state.Selected = slot
		}
	}
}

// ReleaseAll drops every held key, e.g. when the window loses focus.
func (g *Game) ReleaseAll() { g.keys.Reset() }
