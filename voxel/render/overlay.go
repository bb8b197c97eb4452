package render

import (
	"strconv"

	"voxelbox/voxel/hud"
	"voxelbox/voxel/raster"
	"voxelbox/voxel/world"
)

const (
	crosshairArm = 6
	slotSize     = 22
	slotPitch    = 24
	barHeight    = 5
)

var (
	hudText    = raster.RGB(255, 255, 255)
	hudDim     = raster.RGB(200, 200, 200)
	hudBacking = raster.RGBA(0, 0, 0, 120)
	hudPanel   = raster.RGBA(20, 20, 28, 210)
	hudSelect  = raster.RGB(255, 220, 60)
	hudFrame   = raster.RGB(110, 110, 110)
)

func drawCrosshair(s Surface, w, h int) {
	cx, cy := w/2, h/2
	c := raster.RGBA(255, 255, 255, 220)
	s.Line(cx-crosshairArm, cy, cx+crosshairArm, cy, c)
	s.Line(cx, cy-crosshairArm, cx, cy+crosshairArm, c)
}

func drawHUD(s Surface, snap *hud.Snapshot, w, h int) {
	lines := snap.Lines()
	if snap.ShowDebug {
		lines = append(lines, snap.Debug...)
	}
	textBlock(s, 4, 4, lines)

	x0 := (w - 9*slotPitch) / 2
	y0 := h - slotSize - 6
	drawBars(s, snap, x0, y0)
	for i, sl := range snap.Hotbar {
		x := x0 + i*slotPitch
		s.FillRect(x, y0, slotSize, slotSize, hudBacking)
		frame := hudFrame
		if i == snap.Selected {
			frame = hudSelect
		}
		s.StrokeRect(x, y0, slotSize, slotSize, frame)
		drawSlot(s, x, y0, sl)
	}

	if snap.Alert != "" {
		tw := raster.TextWidth(snap.Alert)
		x, y := (w-tw)/2, h/3
		s.FillRect(x-4, y-2, tw+8, raster.LineHeight+4, hudBacking)
		s.Text(x, y, snap.Alert, hudSelect)
	}

	switch {
	case snap.ShowMenu:
		panel(s, w, h, "Paused", []string{"Esc  resume", "F6   save", "F5   camera", "F3   debug"})
	case snap.ShowInventory:
		inventoryPanel(s, w, h, snap.Inventory)
	case snap.ShowCrafting:
		craftingPanel(s, w, h)
	}
}

func textBlock(s Surface, x, y int, lines []string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, raster.TextWidth(l))
	}
	s.FillRect(x, y, width+8, len(lines)*raster.LineHeight+6, hudBacking)
	for i, l := range lines {
		s.Text(x+4, y+3+i*raster.LineHeight, l, hudText)
	}
}

func drawBars(s Surface, snap *hud.Snapshot, x0, y0 int) {
	full := 9*slotPitch - 2
	half := full/2 - 2
	by := y0 - barHeight - 10
	bar(s, x0, by, half, snap.Health, raster.RGB(220, 40, 40))
	bar(s, x0+full-half, by, half, snap.Hunger, raster.RGB(190, 130, 60))
	bar(s, x0, y0-barHeight-2, full, snap.XP, raster.RGB(110, 220, 60))
	if snap.Level > 0 {
		lv := strconv.Itoa(snap.Level)
		s.Text(x0+(full-raster.TextWidth(lv))/2, by-raster.LineHeight+2, lv, raster.RGB(140, 255, 80))
	}
}

func bar(s Surface, x, y, w int, frac float64, c raster.Color) {
	s.FillRect(x, y, w, barHeight, hudBacking)
	s.FillRect(x, y, int(float64(w)*frac), barHeight, c)
	s.StrokeRect(x-1, y-1, w+2, barHeight+2, raster.RGBA(0, 0, 0, 160))
}

func drawSlot(s Surface, x, y int, sl hud.Slot) {
	if sl.Item == world.ItemNone {
		return
	}
	s.Text(x+3, y+1, sl.Item.Short(), hudText)
	if sl.Count > 1 {
		s.Text(x+3, y+slotSize-raster.LineHeight, strconv.Itoa(sl.Count), hudDim)
	}
}

func panel(s Surface, w, h int, title string, lines []string) {
	pw := w / 2
	ph := (len(lines)+2)*raster.LineHeight + 12
	x, y := (w-pw)/2, (h-ph)/2
	s.FillRect(x, y, pw, ph, hudPanel)
	s.StrokeRect(x, y, pw, ph, hudFrame)
	s.Text(x+8, y+6, title, hudSelect)
	for i, l := range lines {
		s.Text(x+8, y+6+(i+2)*raster.LineHeight, l, hudText)
	}
}

func inventoryPanel(s Surface, w, h int, items []hud.Slot) {
	const cols = 9
	rows := max(1, (len(items)+cols-1)/cols)
	pw := cols*slotPitch + 16
	ph := rows*slotPitch + raster.LineHeight + 20
	x, y := (w-pw)/2, (h-ph)/2
	s.FillRect(x, y, pw, ph, hudPanel)
	s.StrokeRect(x, y, pw, ph, hudFrame)
	s.Text(x+8, y+6, "Inventory", hudSelect)
	gy := y + raster.LineHeight + 12
	for i := 0; i < rows*cols; i++ {
		sx := x + 8 + (i%cols)*slotPitch
		sy := gy + (i/cols)*slotPitch
		s.StrokeRect(sx, sy, slotSize, slotSize, hudFrame)
		if i < len(items) {
			drawSlot(s, sx, sy, items[i])
		}
	}
}

func craftingPanel(s Surface, w, h int) {
	pw := 3*slotPitch + 2*slotPitch + 24
	ph := 3*slotPitch + raster.LineHeight + 20
	x, y := (w-pw)/2, (h-ph)/2
	s.FillRect(x, y, pw, ph, hudPanel)
	s.StrokeRect(x, y, pw, ph, hudFrame)
	s.Text(x+8, y+6, "Crafting", hudSelect)
	gy := y + raster.LineHeight + 12
	for i := 0; i < 9; i++ {
		s.StrokeRect(x+8+(i%3)*slotPitch, gy+(i/3)*slotPitch, slotSize, slotSize, hudFrame)
	}
	s.Line(x+8+3*slotPitch+4, gy+slotPitch+slotSize/2, x+8+4*slotPitch, gy+slotPitch+slotSize/2, hudText)
	s.StrokeRect(x+8+4*slotPitch+4, gy+slotPitch, slotSize, slotSize, hudSelect)
}
