// Package assets generates the game's textures and sounds at startup. Nothing
// here touches ebiten until a constructor is called.
package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

const textureSize = 64

// Textures maps prefab texture names to generated images.
type Textures struct {
	images map[string]*ebiten.Image
}

// NewTextures builds every known texture.
func NewTextures() *Textures {
	t := &Textures{images: make(map[string]*ebiten.Image)}
	t.images["hull"] = ebiten.NewImageFromImage(hullImage())
	t.images["wing"] = ebiten.NewImageFromImage(rectImage(colornames.White))
	t.images["cargo"] = ebiten.NewImageFromImage(rectImage(colornames.Lightgray))
	t.images["rock"] = ebiten.NewImageFromImage(rockImage())
	t.images["loot"] = ebiten.NewImageFromImage(discImage(0.5))
	t.images["bolt"] = ebiten.NewImageFromImage(discImage(0.35))
	return t
}

// Texture returns the named texture, or nil when unknown.
func (t *Textures) Texture(name string) *ebiten.Image {
	if t == nil {
		return nil
	}
	return t.images[name]
}

func (t *Textures) Names() []string {
	names := make([]string, 0, len(t.images))
	for name := range t.images {
		names = append(names, name)
	}
	return names
}

// Textures are drawn white-on-clear so the renderable tint decides the color.

func rectImage(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureSize, textureSize))
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func discImage(radius float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureSize, textureSize))
	r := radius * textureSize
	c := float64(textureSize) / 2
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			if math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) <= r {
				img.Set(x, y, colornames.White)
			}
		}
	}
	return img
}

// hullImage is a wedge pointing along +X.
func hullImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureSize, textureSize))
	for y := 0; y < textureSize; y++ {
		half := float64(textureSize) / 2
		for x := 0; x < textureSize; x++ {
			// width shrinks toward the nose
			limit := half * (1 - float64(x)/textureSize)
			if math.Abs(float64(y)+0.5-half) <= limit {
				img.Set(x, y, colornames.White)
			}
		}
	}
	return img
}

// rockImage is a lumpy disc with a deterministic outline.
func rockImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, textureSize, textureSize))
	c := float64(textureSize) / 2
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			a := math.Atan2(dy, dx)
			r := c * (0.82 + 0.1*math.Sin(3*a) + 0.06*math.Cos(7*a))
			if math.Hypot(dx, dy) <= r {
				shade := uint8(200 + 40*math.Sin(dx*0.4)*math.Cos(dy*0.3))
				img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
			}
		}
	}
	return img
}

// Tint resolves a CSS color name such as "steelblue".
func Tint(name string) (color.Color, bool) {
	c, ok := colornames.Map[name]
	return c, ok
}
