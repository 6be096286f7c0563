package assets

import (
	"encoding/binary"
	"math"
)

// SampleRate of every generated sound.
const SampleRate = 44100

// ImpactPCM is a short decaying thump in ebiten's native format: 16-bit
// little-endian stereo.
func ImpactPCM(freq float64, duration float64) []byte {
	n := int(duration * SampleRate)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-t * 18)
		// a little noise keeps it from sounding like a pure tone
		noise := math.Sin(float64(i)*12.9898) * 0.15
		v := (math.Sin(2*math.Pi*freq*t) + noise) * env * 0.6
		s := int16(max(-1, min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
