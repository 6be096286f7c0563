// Package audio plays collision thumps for the physics layer.
package audio

import (
	"sync"
	"time"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spacecombat/assets"
	"github.com/milk9111/spacecombat/physics"
	"go.uber.org/zap"
)

const (
	minImpulse  = 0.05
	fullImpulse = 4.0
	minInterval = 60 * time.Millisecond
	maxVoices   = 6
)

// CollisionSounds implements physics.SoundPlayer. The audio context is
// created on the first audible collision so headless runs never open a
// device.
type CollisionSounds struct {
	once    sync.Once
	ctx     *ebaudio.Context
	clips   map[physics.Kind][]byte
	players []*ebaudio.Player

	now  func() time.Time
	last map[physics.Kind]time.Time
	log  *zap.Logger
	mute bool
}

func NewCollisionSounds(log *zap.Logger) *CollisionSounds {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSounds{
		clips: map[physics.Kind][]byte{
			physics.KindEntity:     assets.ImpactPCM(90, 0.18),
			physics.KindProjectile: assets.ImpactPCM(320, 0.08),
			physics.KindOther:      assets.ImpactPCM(160, 0.12),
		},
		now:  time.Now,
		last: make(map[physics.Kind]time.Time),
		log:  log,
	}
}

// SetMuted silences collisions without tearing down the context.
func (s *CollisionSounds) SetMuted(mute bool) { s.mute = mute }

// PlayCollision plays the clip for o's kind, scaled by impulse.
func (s *CollisionSounds) PlayCollision(o physics.Object, impulse float64) {
	if s == nil || s.mute {
		return
	}
	clip, ok := s.clips[o.Kind()]
	if !ok || !s.allow(o.Kind()) {
		return
	}
	vol := Volume(impulse)
	if vol <= 0 {
		return
	}

	ctx := s.context()
	if ctx == nil {
		return
	}
	s.reap()
	if len(s.players) >= maxVoices {
		return
	}
	p := ctx.NewPlayerFromBytes(clip)
	p.SetVolume(vol)
	p.Play()
	s.players = append(s.players, p)
}

// allow throttles repeats of the same kind.
func (s *CollisionSounds) allow(kind physics.Kind) bool {
	now := s.now()
	if last, ok := s.last[kind]; ok && now.Sub(last) < minInterval {
		return false
	}
	s.last[kind] = now
	return true
}

func (s *CollisionSounds) context() *ebaudio.Context {
	s.once.Do(func() {
		s.ctx = ebaudio.CurrentContext()
		if s.ctx == nil {
			s.ctx = ebaudio.NewContext(assets.SampleRate)
		}
		s.log.Debug("audio context ready", zap.Int("sample_rate", s.ctx.SampleRate()))
	})
	return s.ctx
}

func (s *CollisionSounds) reap() {
	live := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	s.players = live
}

// Volume maps an impulse magnitude to [0,1]. Grazing touches are silent.
func Volume(impulse float64) float64 {
	if impulse < minImpulse {
		return 0
	}
	if impulse >= fullImpulse {
		return 1
	}
	return (impulse - minImpulse) / (fullImpulse - minImpulse)
}
