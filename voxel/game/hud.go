package game

import (
	"fmt"
	"sort"

	"voxelbox/voxel/hud"
	"voxelbox/voxel/world"
)

// HUD builds the overlay contents for the current frame.
func (g *Game) HUD() *hud.Snapshot {
	st := g.state
	p := g.entities.Player
	snap := &hud.Snapshot{
		FPS:           st.FPS,
		ShowFPS:       g.settings.Video.ShowFPS,
		CameraMode:    g.entities.CameraMode.String(),
		Clock:         hud.Clock(st.Time, st.DayLength),
		Weather:       st.Weather.String(),
		Season:        st.Season.String(),
		Pos:           p.Pos,
		ShowCoords:    g.settings.Gameplay.ShowCoordinates,
		Biome:         st.Biome,
		Dimension:     st.Dimension,
		Health:        hud.Fraction(p.Health, p.MaxHealth),
		Hunger:        hud.Fraction(p.Hunger, p.MaxHunger),
		XP:            hud.Fraction(p.XP, p.XPToNext()),
		Level:         p.Level,
		Selected:      st.Selected,
		Alert:         st.UI.Alert,
		ShowInventory: st.UI.Inventory,
		ShowCrafting:  st.UI.Crafting,
		ShowMenu:      st.UI.Menu,
		ShowDebug:     st.UI.Debug,
	}
	if !st.LastSave.IsZero() {
		snap.LastSave = st.LastSave.Local().Format("15:04:05")
	}
	for i, item := range st.Hotbar {
		snap.Hotbar[i] = hud.Slot{Item: item, Count: st.Inventory[item]}
	}
	if st.UI.Inventory {
		snap.Inventory = inventorySlots(st.Inventory)
	}
	if st.UI.Debug {
		f := g.frame
		snap.Debug = []string{
			fmt.Sprintf("blocks %d/%d hidden %d culled %d", f.Drawn, f.Candidates, f.Hidden, f.CulledCorner),
			fmt.Sprintf("faces %d mobs %d particles %d", f.Faces, f.Mobs, f.Particles),
			fmt.Sprintf("chunks %d seed %d tick %.0f", g.world.ChunkCount(), st.Seed, st.Time),
			g.procs.Sample(g.now),
		}
	}
	return snap
}

func inventorySlots(inv map[world.ItemKind]int) []hud.Slot {
	out := make([]hud.Slot, 0, len(inv))
	for k, n := range inv {
		if n > 0 && k != world.ItemNone {
			out = append(out, hud.Slot{Item: k, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}
