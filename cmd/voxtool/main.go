// Command voxtool manages voxelbox saves offline: settings and backup
// import/export, snapshot inspection and headless simulation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"voxelbox/internal/buildinfo"
	"voxelbox/voxel/game"
	"voxelbox/voxel/persist"
	"voxelbox/voxel/projection"
	"voxelbox/voxel/settings"
)

const usage = `usage: voxtool [flags] <command>

commands:
  export-settings   write the settings JSON document to -out (default stdout)
  import-settings   validate the settings JSON in -in and store it in the save
  export-backup     write a backup bundle to -out
  import-backup     validate -in and replace the save's world and settings
  inspect           print a summary of the saved world
  simulate          run the game headless for -frames frames, then save
  version           print the build id`

type options struct {
	dataDir string
	backend string
	in      string
	out     string
	frames  int
	fps     int
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.dataDir, "data", "data", "Save directory.")
	flag.StringVar(&o.backend, "backend", "file", "Save backend: file, badger or memory.")
	flag.StringVar(&o.in, "in", "", "Input file.")
	flag.StringVar(&o.out, "out", "", "Output file.")
	flag.IntVar(&o.frames, "frames", 600, "Frames to simulate.")
	flag.IntVar(&o.fps, "fps", 60, "Frame rate when simulating.")
	flag.BoolVar(&o.verbose, "v", false, "Log to stderr.")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := zap.NewNop()
	if o.verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fatalf("logger: %v", err)
		}
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, strings.ToLower(flag.Arg(0)), o, os.Stdout, log); err != nil {
		fatalf("%s: %v", flag.Arg(0), err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func run(ctx context.Context, cmd string, o options, stdout io.Writer, log *zap.Logger) error {
	if cmd == "version" {
		_, err := fmt.Fprintln(stdout, buildinfo.String())
		return err
	}

	gw, err := persist.Open(persist.Config{Backend: o.backend, Dir: o.dataDir}, log)
	if err != nil {
		return err
	}
	if cmd == "simulate" {
		// The game owns the gateway from here on and closes it in Stop.
		return simulate(ctx, gw, o, stdout, log)
	}
	defer gw.Close()

	switch cmd {
	case "export-settings":
		return exportSettings(ctx, gw, o.out, stdout)
	case "import-settings":
		return importSettings(ctx, gw, o.in)
	case "export-backup":
		return exportBackup(ctx, gw, o.out)
	case "import-backup":
		return importBackup(ctx, gw, o.in)
	case "inspect":
		return inspect(ctx, gw, stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func loadSettings(ctx context.Context, gw persist.Gateway) (settings.Settings, error) {
	s, err := gw.LoadSettings(ctx)
	if errors.Is(err, persist.ErrNotFound) {
		return settings.Defaults(), nil
	}
	return s, err
}

func exportSettings(ctx context.Context, gw persist.Gateway, out string, stdout io.Writer) error {
	s, err := loadSettings(ctx, gw)
	if err != nil {
		return err
	}
	if out != "" {
		return settings.ExportFile(out, s)
	}
	data, err := settings.Export(s)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func importSettings(ctx context.Context, gw persist.Gateway, in string) error {
	if in == "" {
		return errors.New("-in is required")
	}
	s, err := settings.ImportFile(in)
	if err != nil {
		return err
	}
	return gw.SaveSettings(ctx, s)
}

func exportBackup(ctx context.Context, gw persist.Gateway, out string) error {
	if out == "" {
		return errors.New("-out is required")
	}
	snap, err := gw.LoadWorld(ctx)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	s, err := loadSettings(ctx, gw)
	if err != nil {
		return err
	}
	return persist.ExportBackupFile(out, persist.NewBackup(time.Now(), s, snap))
}

func importBackup(ctx context.Context, gw persist.Gateway, in string) error {
	if in == "" {
		return errors.New("-in is required")
	}
	b, err := persist.ImportBackupFile(in)
	if err != nil {
		return err
	}
	b.World.Achievements = b.Achievements
	b.World.Stats = b.Stats
	if err := gw.SaveWorld(ctx, b.World); err != nil {
		return err
	}
	return gw.SaveSettings(ctx, b.Settings)
}

func inspect(ctx context.Context, gw persist.Gateway, w io.Writer) error {
	snap, err := gw.LoadWorld(ctx)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	p := snap.Player
	fmt.Fprintf(w, "version    %d\n", snap.Header.Version)
	fmt.Fprintf(w, "seed       %d\n", snap.Header.Seed)
	fmt.Fprintf(w, "saved      %s\n", snap.Header.SavedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "time       %.0f (day length %.0f)\n", snap.Time, snap.DayLength)
	fmt.Fprintf(w, "weather    %s, %s\n", snap.Weather, snap.Season)
	fmt.Fprintf(w, "player     %s at (%.1f, %.1f, %.1f) level %d, health %.0f/%.0f\n",
		p.Name, p.Pos.X(), p.Pos.Y(), p.Pos.Z(), p.Level, p.Health, p.MaxHealth)
	fmt.Fprintf(w, "chunks     %d\n", len(snap.Chunks))
	fmt.Fprintf(w, "mobs       %d\n", len(snap.Mobs))
	fmt.Fprintf(w, "structures %d\n", len(snap.Structures))
	_, err = fmt.Fprintf(w, "unlocked   %s\n", strings.Join(snap.Achievements, ", "))
	return err
}

func simulate(ctx context.Context, gw persist.Gateway, o options, w io.Writer, log *zap.Logger) error {
	s, err := loadSettings(ctx, gw)
	if err != nil {
		_ = gw.Close()
		return err
	}
	g, err := game.Open(ctx, game.Options{
		Settings: s,
		Gateway:  gw,
		Log:      log,
		Viewport: projection.Viewport{W: 160, H: 120},
	})
	if err != nil {
		_ = gw.Close()
		return err
	}
	runErr := g.Run(ctx, o.fps, o.frames)
	if err := g.Stop(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	st := g.State()
	_, err = fmt.Fprintf(w, "simulated to t=%.0f, %d chunks, %d mobs\n",
		st.Time, g.World().ChunkCount(), len(g.Entities().Mobs))
	return err
}
