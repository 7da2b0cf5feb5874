package assets

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

func sharedContext() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(sampleRate)
	})
	return audioContext
}

// Mixer owns one player per synthesized effect. Playing a sound that is
// already playing restarts it.
type Mixer struct {
	players map[string]*audio.Player
	muted   bool
	volume  float64
}

// NewMixer synthesizes every effect and prepares its player. The fuse loops.
func NewMixer(muted bool) (*Mixer, error) {
	ctx := sharedContext()
	m := &Mixer{
		players: make(map[string]*audio.Player, len(SoundNames)),
		muted:   muted,
		volume:  0.8,
	}

	for _, name := range SoundNames {
		pcm, err := Synthesize(name, ctx.SampleRate())
		if err != nil {
			return nil, err
		}
		var player *audio.Player
		if name == SoundFuse {
			loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
			player, err = ctx.NewPlayer(loop)
			if err != nil {
				return nil, fmt.Errorf("assets: fuse player: %w", err)
			}
		} else {
			player = ctx.NewPlayerFromBytes(pcm)
		}
		player.SetVolume(m.volume)
		m.players[name] = player
	}
	return m, nil
}

func (m *Mixer) Play(name string) {
	m.start(name)
}

func (m *Mixer) Loop(name string) {
	m.start(name)
}

func (m *Mixer) start(name string) {
	if m == nil || m.muted {
		return
	}
	player, ok := m.players[name]
	if !ok {
		log.Printf("[Mixer] unknown sound %q", name)
		return
	}
	if err := player.Rewind(); err != nil {
		log.Printf("[Mixer] rewind %s: %v", name, err)
	}
	player.Play()
}

func (m *Mixer) Stop(name string) {
	if m == nil {
		return
	}
	if player, ok := m.players[name]; ok && player.IsPlaying() {
		player.Pause()
	}
}

func (m *Mixer) IsPlaying(name string) bool {
	if m == nil {
		return false
	}
	player, ok := m.players[name]
	return ok && player.IsPlaying()
}

// StopAll pauses every effect.
func (m *Mixer) StopAll() {
	if m == nil {
		return
	}
	for name := range m.players {
		m.Stop(name)
	}
}

// SetMuted silences new sounds and stops the ones playing.
func (m *Mixer) SetMuted(muted bool) {
	if m == nil {
		return
	}
	m.muted = muted
	if muted {
		m.StopAll()
	}
}

func (m *Mixer) Muted() bool {
	return m != nil && m.muted
}
