// Command headless runs the simulation without a window and logs what died
// and what it dropped.
package main

import (
	"flag"
	"log"

	"github.com/milk9111/spacecombat/config"
	"github.com/milk9111/spacecombat/game"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config (defaults when empty)")
	ticks := flag.Int("ticks", 3600, "ticks to simulate")
	seed := flag.Uint64("seed", 0, "override the simulation seed")
	every := flag.Int("report", 600, "log stats every N ticks (0 disables)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	sim, err := game.New(game.Options{
		Config: cfg,
		Logger: logger,
		Input:  &game.Autopilot{FireEvery: 10, BeamEvery: 45},
	})
	if err != nil {
		logger.Fatal("build simulation", zap.Error(err))
	}
	if err := sim.Populate(); err != nil {
		logger.Fatal("populate arena", zap.Error(err))
	}

	logger.Info("headless run", zap.Int("ticks", *ticks), zap.Uint64("seed", cfg.Sim.Seed))
	for i := 1; i <= *ticks; i++ {
		sim.Step()
		if *every > 0 && i%*every == 0 {
			logStats(logger, sim)
		}
	}
	logStats(logger, sim)
	logger.Info("contacts solved", zap.Int("total", sim.Contacts.Total()))
}

func logStats(logger *zap.Logger, sim *game.Sim) {
	s := sim.Stats()
	logger.Info("stats",
		zap.Uint64("tick", s.Tick),
		zap.Int("entities", s.Entities),
		zap.Int("objects", s.Objects),
		zap.Int("destroyed", s.Destroyed),
		zap.Int("loot", s.Loot),
		zap.Float64("credits", s.Value))
}
