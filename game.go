package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spacecombat/audio"
	"github.com/milk9111/spacecombat/config"
	"github.com/milk9111/spacecombat/game"
	"github.com/milk9111/spacecombat/prefabs"
	"github.com/milk9111/spacecombat/render"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

var background = color.RGBA{R: 6, G: 8, B: 18, A: 255}

type Game struct {
	cfg     *config.Config
	sim     *game.Sim
	sounds  *audio.CollisionSounds
	watcher *prefabs.Watcher
	hud     *render.HUD

	showHUD bool
	muted   bool
}

func NewGame(cfg *config.Config, sim *game.Sim, sounds *audio.CollisionSounds, watcher *prefabs.Watcher) (*Game, error) {
	hud, err := render.NewHUD(14, colornames.Lightgray)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		sim:     sim,
		sounds:  sounds,
		watcher: watcher,
		hud:     hud,
		showHUD: cfg.Debug.HUD,
	}, nil
}

func (g *Game) Update() error {
	if g.watcher != nil {
		g.sim.DrainReloads(g.watcher.Events)
		select {
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.sim.Logger().Warn("prefab watcher", zap.Error(err))
			}
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		g.cfg.Debug.DrawContacts = !g.cfg.Debug.DrawContacts
		g.sim.Contacts.SetRecording(g.cfg.Debug.DrawContacts)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.muted = !g.muted
		g.sounds.SetMuted(g.muted)
	}

	g.sim.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := g.sim.View(w, h)
	drawer := render.NewScreenDrawer(screen, view)
	g.sim.Draw(drawer)
	g.sim.DrawObjects(drawer)

	if g.cfg.Debug.DrawContacts {
		for _, p := range g.sim.Contacts.Points() {
			x, y := view.ToScreen(p)
			vector.DrawFilledCircle(screen, float32(x), float32(y), 3, colornames.Red, true)
		}
	}

	if g.showHUD {
		stats := g.sim.Stats()
		stats.TPS = ebiten.ActualTPS()
		g.hud.Draw(screen, stats)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
