package assets

import (
	"image/color"
	"testing"
)

func TestImpactPCM(t *testing.T) {
	pcm := ImpactPCM(110, 0.1)
	if want := int(0.1*SampleRate) * 4; len(pcm) != want {
		t.Fatalf("len = %d, want %d", len(pcm), want)
	}
	if ImpactPCM(110, 0) != nil {
		t.Fatalf("zero duration should produce nothing")
	}
	tail := pcm[len(pcm)-4:]
	if tail[0] != tail[2] || tail[1] != tail[3] {
		t.Fatalf("channels should match")
	}
}

func TestGeneratedShapes(t *testing.T) {
	disc := discImage(0.5)
	if _, _, _, a := disc.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("disc corner should be clear")
	}
	if _, _, _, a := disc.At(textureSize/2, textureSize/2).RGBA(); a == 0 {
		t.Fatalf("disc center should be filled")
	}
	hull := hullImage()
	if _, _, _, a := hull.At(textureSize-1, 0).RGBA(); a != 0 {
		t.Fatalf("hull nose corner should be clear")
	}
	if _, _, _, a := rockImage().At(textureSize/2, textureSize/2).RGBA(); a == 0 {
		t.Fatalf("rock center should be filled")
	}
}

func TestTint(t *testing.T) {
	c, ok := Tint("gold")
	if !ok || c != (color.RGBA{R: 255, G: 215, B: 0, A: 255}) {
		t.Fatalf("Tint(gold) = %v, %v", c, ok)
	}
	if _, ok := Tint("not-a-color"); ok {
		t.Fatalf("unknown names should miss")
	}
}
