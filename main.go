package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", "raylib", "Rendering backend: raylib, terminal or headless")
	logStats := flag.Bool("log-stats", false, "Output window and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N host refreshes (0 = unlimited, headless defaults to one minute)")
	code := flag.String("code", "", "Headless only: code typed into the gate after one second")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Headless logs go to stdout; interactive backends keep the screen clean
	var logOut io.Writer = os.Stderr
	if *backend == "headless" {
		logOut = os.Stdout
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	var err error
	switch *backend {
	case "raylib":
		err = game.RunRaylib(cfg, opts, *maxTicks)
	case "terminal":
		err = game.RunTerminal(cfg, opts, *maxTicks)
	case "headless":
		_, err = game.RunHeadless(cfg, opts, game.HeadlessOptions{MaxTicks: *maxTicks, Code: *code})
	default:
		slog.Error("unknown backend", "backend", *backend)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("backend failed", "backend", *backend, "error", err)
		os.Exit(1)
	}
}
