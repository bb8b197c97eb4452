// Package sim turns key state into player motion on a fixed-rate clock.
package sim

import "fmt"

// Action is a logical control, independent of the physical key.
type Action uint8

const (
	ActionNone Action = iota
	Forward
	Back
	Left
	Right
	Jump
	Crouch
	CycleCamera
	ToggleInventory
	ToggleCrafting
	ToggleMenu
	ToggleDebug
	SaveNow
	Hotbar1
	Hotbar2
	Hotbar3
	Hotbar4
	Hotbar5
	Hotbar6
	Hotbar7
	Hotbar8
	Hotbar9

	actionCount
)

var actionNames = [actionCount]string{
	"none", "forward", "back", "left", "right", "jump", "crouch",
	"cycleCamera", "toggleInventory", "toggleCrafting", "toggleMenu", "toggleDebug", "saveNow",
	"hotbar1", "hotbar2", "hotbar3", "hotbar4", "hotbar5", "hotbar6", "hotbar7", "hotbar8", "hotbar9",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if i > 0 && n == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Actions lists every bindable action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := Forward; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Directional reports whether a moves the player horizontally.
func (a Action) Directional() bool { return a >= Forward && a <= Right }

// Held reports whether a is a continuous action read every tick, as opposed
// to a discrete one fired on press.
func (a Action) Held() bool { return a >= Forward && a <= Crouch }

// HotbarSlot returns the 0-based slot for Hotbar1..Hotbar9.
func (a Action) HotbarSlot() (int, bool) {
	if a >= Hotbar1 && a <= Hotbar9 {
		return int(a - Hotbar1), true
	}
	return 0, false
}
