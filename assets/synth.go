package assets

import (
	"fmt"
	"math"
	"math/rand"
)

// Sound names understood by the mixer.
const (
	SoundLaunch    = "launch"
	SoundWhack     = "whack"
	SoundExplosion = "explosion"
	SoundWrong     = "wrong"
	SoundFuse      = "fuse"
	SoundSwoosh1   = "swoosh1"
	SoundSwoosh2   = "swoosh2"
	SoundSwoosh3   = "swoosh3"
)

// SoundNames lists every synthesized effect.
var SoundNames = []string{
	SoundLaunch, SoundWhack, SoundExplosion, SoundWrong, SoundFuse,
	SoundSwoosh1, SoundSwoosh2, SoundSwoosh3,
}

// SwooshSounds are the slice sounds picked from at random.
var SwooshSounds = []string{SoundSwoosh1, SoundSwoosh2, SoundSwoosh3}

// Synthesize renders a named effect as 16-bit little-endian stereo PCM, the
// format audio.Context players read.
func Synthesize(name string, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("assets: sample rate must be > 0, got %d", sampleRate)
	}
	s := synth{rate: float64(sampleRate), rng: rand.New(rand.NewSource(int64(len(name)) * 7919))}

	switch name {
	case SoundLaunch:
		return s.render(0.3, func(t, d float64) float64 {
			f := 220 + 440*t/d
			return 0.6*math.Sin(2*math.Pi*f*t)*decay(t, 6) + 0.1*s.noise()*decay(t, 20)
		}), nil
	case SoundWhack:
		return s.render(0.18, func(t, _ float64) float64 {
			f := 120 - 300*t
			return 0.9*math.Sin(2*math.Pi*f*t)*decay(t, 18) + 0.5*s.noise()*decay(t, 80)
		}), nil
	case SoundExplosion:
		lp := 0.0
		return s.render(1.0, func(t, _ float64) float64 {
			alpha := 0.35 * decay(t, 2)
			lp += alpha * (s.noise() - lp)
			return 2.4 * lp * decay(t, 3)
		}), nil
	case SoundWrong:
		return s.render(0.5, func(t, _ float64) float64 {
			f := 220.0
			if t > 0.2 {
				f = 165
			}
			return 0.35 * square(f*t) * decay(math.Mod(t, 0.2), 4)
		}), nil
	case SoundFuse:
		return s.render(0.5, func(_, _ float64) float64 {
			v := 0.08 * s.noise()
			if s.rng.Float64() < 0.004 {
				v += 0.6 * s.noise()
			}
			return v
		}), nil
	case SoundSwoosh1, SoundSwoosh2, SoundSwoosh3:
		n := float64(name[len(name)-1] - '0')
		dur := 0.2 + 0.05*n
		lp := 0.0
		return s.render(dur, func(t, d float64) float64 {
			env := math.Sin(math.Pi * t / d)
			alpha := 0.05 + 0.25*env/n
			lp += alpha * (s.noise() - lp)
			return 1.8 * lp * env
		}), nil
	}
	return nil, fmt.Errorf("assets: unknown sound %q", name)
}

type synth struct {
	rate float64
	rng  *rand.Rand
}

func (s synth) noise() float64 {
	return s.rng.Float64()*2 - 1
}

// render samples fn(t, dur) for dur seconds.
func (s synth) render(dur float64, fn func(t, dur float64) float64) []byte {
	n := int(dur * s.rate)
	out := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		v := fn(float64(i)/s.rate, dur)
		v = math.Max(-1, math.Min(1, v))
		sample := int16(v * math.MaxInt16)
		lo, hi := byte(sample), byte(uint16(sample)>>8)
		out = append(out, lo, hi, lo, hi)
	}
	return out
}

func decay(t, rate float64) float64 {
	return math.Exp(-rate * t)
}

func square(phase float64) float64 {
	if math.Mod(phase, 1) < 0.5 {
		return 1
	}
	return -1
}
