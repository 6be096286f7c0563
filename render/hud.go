package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceOnce   sync.Once
	faceSource *text.GoTextFaceSource
	faceErr    error
)

func fontSource() (*text.GoTextFaceSource, error) {
	faceOnce.Do(func() {
		faceSource, faceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	return faceSource, faceErr
}

// Stats is what the HUD prints.
type Stats struct {
	Tick      uint64
	Entities  int
	Objects   int
	Destroyed int
	Loot      int
	Value     float64
	TPS       float64
}

// Lines formats the stats one per line.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("tick %d  tps %.0f", s.Tick, s.TPS),
		fmt.Sprintf("entities %d  objects %d", s.Entities, s.Objects),
		fmt.Sprintf("destroyed %d", s.Destroyed),
		fmt.Sprintf("loot %d (%.0f credits)", s.Loot, s.Value),
	}
}

// HUD prints simulation stats in the top-left corner.
type HUD struct {
	face  *text.GoTextFace
	color color.Color
}

func NewHUD(size float64, clr color.Color) (*HUD, error) {
	src, err := fontSource()
	if err != nil {
		return nil, fmt.Errorf("render: load hud font: %w", err)
	}
	return &HUD{face: &text.GoTextFace{Source: src, Size: size}, color: clr}, nil
}

func (h *HUD) Draw(screen *ebiten.Image, stats Stats) {
	if h == nil || screen == nil {
		return
	}
	lineHeight := h.face.Size * 1.4
	for i, line := range stats.Lines() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(h.color)
		text.Draw(screen, line, h.face, op)
	}
}
