package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spacecombat/assets"
	"github.com/milk9111/spacecombat/audio"
	"github.com/milk9111/spacecombat/config"
	"github.com/milk9111/spacecombat/game"
	"github.com/milk9111/spacecombat/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config (defaults when empty)")
	debug := flag.Bool("debug", false, "enable debug logging and the contact overlay")
	seed := flag.Uint64("seed", 0, "override the simulation seed")
	watch := flag.Bool("watch", false, "hot reload prefabs from the prefabs/ directory")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Logging.Level = "debug"
		cfg.Debug.DrawContacts = true
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	sounds := audio.NewCollisionSounds(logger.Named("audio"))
	sim, err := game.New(game.Options{
		Config:   cfg,
		Logger:   logger,
		Input:    NewInput(),
		Sounds:   sounds,
		Textures: assets.NewTextures(),
	})
	if err != nil {
		logger.Fatal("build simulation", zap.Error(err))
	}
	if err := sim.Populate(); err != nil {
		logger.Fatal("populate arena", zap.Error(err))
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("prefab watch disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
			logger.Info("watching prefabs", zap.String("dir", prefabs.Dir))
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Sim.TPS)

	logger.Info("starting",
		zap.Uint64("seed", cfg.Sim.Seed),
		zap.Int("tps", cfg.Sim.TPS),
		zap.Bool("watch", watcher != nil))

	g, err := NewGame(cfg, sim, sounds, watcher)
	if err != nil {
		logger.Fatal("build game", zap.Error(err))
	}
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
