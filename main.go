package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/game"
)

func init() {
	// GL calls must stay on the thread that owns the context.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the CPU reference kernel without a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = particles.seed from config)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Particles.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		MaxFrames:      *maxFrames,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *headless {
		err = runHeadless(ctx, cfg, opts)
	} else {
		err = runWindowed(ctx, cfg, opts)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options) error {
	g, err := game.NewHeadlessGame(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_frames", opts.MaxFrames,
	)
	if err := g.RunHeadless(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runWindowed(ctx context.Context, cfg *config.Config, opts game.Options) error {
	flags := uint32(rl.FlagWindowResizable)
	if cfg.Screen.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.NewGame(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting viewer", "seed", opts.Seed, "max_frames", opts.MaxFrames)
	for !rl.WindowShouldClose() && ctx.Err() == nil && !g.Done() {
		if err := g.Update(); err != nil {
			return err
		}
		g.Draw()
	}
	slog.Info("viewer closed", "frames", g.Frame())
	return nil
}
