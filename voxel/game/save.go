package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"voxelbox/voxel/entity"
	"voxelbox/voxel/persist"
	"voxelbox/voxel/settings"
	"voxelbox/voxel/world"
)

// ErrThrottled is returned by SaveNow when saves come faster than the
// configured throttle allows.
var ErrThrottled = errors.New("save throttled")

// Snapshot captures the persisted part of the state.
func (g *Game) Snapshot(now time.Time) *persist.Snapshot {
	st := g.state
	mobs := make([]entity.Mob, len(g.entities.Mobs))
	for i, m := range g.entities.Mobs {
		mobs[i] = *m
	}
	inv := make(map[world.ItemKind]int, len(st.Inventory))
	for k, v := range st.Inventory {
		inv[k] = v
	}
	return &persist.Snapshot{
		Header:       persist.Header{Version: persist.SnapshotVersion, Seed: st.Seed, SavedAt: now.UTC()},
		Time:         st.Time,
		DayLength:    st.DayLength,
		Weather:      st.Weather,
		WeatherUntil: st.WeatherUntil,
		Season:       st.Season,
		Dimension:    st.Dimension,
		Biome:        st.Biome,
		CameraMode:   g.entities.CameraMode.String(),
		Player:       *g.entities.Player,
		Mobs:         mobs,
		Inventory:    inv,
		Hotbar:       st.Hotbar,
		Selected:     st.Selected,
		Structures:   append([]world.Structure(nil), st.Structures...),
		Chunks:       persist.CaptureChunks(g.world),
		Stats:        st.Stats,
		Achievements: append([]string(nil), st.Achievements...),
	}
}

func (g *Game) save(trigger string, now time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	start := time.Now()
	g.state.Stats.Saves++
	err := g.gw.SaveWorld(ctx, g.Snapshot(now))
	g.metrics.Save(trigger, time.Since(start), err)
	if err != nil {
		g.state.Stats.Saves--
		g.log.Error("save failed", zap.String("trigger", trigger), zap.Error(err))
		g.alert(now, "Save failed")
		return fmt.Errorf("save world: %w", err)
	}
	g.state.LastSave = now
	g.log.Debug("world saved", zap.String("trigger", trigger), zap.Int("chunks", g.world.ChunkCount()))
	return nil
}

// SaveNow saves on demand, subject to the save throttle.
func (g *Game) SaveNow(now time.Time) error {
	if !g.saves.AllowN(now, 1) {
		g.alert(now, "Saving too fast")
		return ErrThrottled
	}
	if err := g.save("manual", now); err != nil {
		return err
	}
	g.alert(now, "World saved")
	return nil
}

// ExportSettings returns the current settings document.
func (g *Game) ExportSettings() ([]byte, error) {
	return settings.Export(g.settings)
}

// ImportSettings validates and applies a settings document, then persists it.
// On failure an alert is shown and nothing changes.
func (g *Game) ImportSettings(ctx context.Context, data []byte) error {
	s, err := settings.Import(data)
	if err == nil {
		err = g.applySettings(s)
	}
	if err != nil {
		g.log.Warn("settings import rejected", zap.Error(err))
		g.alert(g.now, "Import failed: invalid settings")
		return err
	}
	if err := g.gw.SaveSettings(ctx, g.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ExportBackup writes a complete backup: settings, world, achievements and
// statistics.
func (g *Game) ExportBackup(w io.Writer, now time.Time) error {
	return persist.ExportBackup(w, persist.NewBackup(now, g.settings, g.Snapshot(now)))
}

// ImportBackup replaces settings and world with the contents of a backup.
// On failure an alert is shown and nothing changes.
func (g *Game) ImportBackup(ctx context.Context, data []byte) error {
	b, err := persist.ImportBackup(data)
	if err != nil {
		g.log.Warn("backup import rejected", zap.Error(err))
		g.alert(g.now, "Import failed: invalid backup")
		return err
	}
	prev := g.settings
	if err := g.applySettings(b.Settings); err != nil {
		g.alert(g.now, "Import failed: invalid backup")
		return fmt.Errorf("%w: %v", persist.ErrInvalidBackup, err)
	}
	snap := b.World
	snap.Stats = b.Stats
	snap.Achievements = b.Achievements
	if err := g.restore(snap); err != nil {
		_ = g.applySettings(prev)
		g.alert(g.now, "Import failed: invalid backup")
		return fmt.Errorf("%w: %v", persist.ErrInvalidBackup, err)
	}
	if err := g.gw.SaveSettings(ctx, g.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	g.alert(g.now, "Backup restored")
	return nil
}
