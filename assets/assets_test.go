package assets

import (
	"bytes"
	"testing"
)

func TestSynthesize(t *testing.T) {
	for _, name := range SoundNames {
		t.Run(name, func(t *testing.T) {
			pcm, err := Synthesize(name, 44100)
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			if len(pcm) == 0 || len(pcm)%4 != 0 {
				t.Fatalf("pcm length %d is not whole stereo frames", len(pcm))
			}
			silent := true
			for _, b := range pcm {
				if b != 0 {
					silent = false
					break
				}
			}
			if silent {
				t.Fatalf("sound is silent")
			}
			again, _ := Synthesize(name, 44100)
			if !bytes.Equal(pcm, again) {
				t.Fatalf("synthesis is not deterministic")
			}
		})
	}
}

func TestSynthesizeRejectsBadInput(t *testing.T) {
	if _, err := Synthesize("trumpet", 44100); err == nil {
		t.Fatalf("unknown sound should fail")
	}
	if _, err := Synthesize(SoundWhack, 0); err == nil {
		t.Fatalf("zero sample rate should fail")
	}
}

func TestSwooshLengthsDiffer(t *testing.T) {
	seen := map[int]bool{}
	for _, name := range SwooshSounds {
		pcm, err := Synthesize(name, 8000)
		if err != nil {
			t.Fatal(err)
		}
		seen[len(pcm)] = true
	}
	if len(seen) != len(SwooshSounds) {
		t.Fatalf("swoosh variants should differ in length")
	}
}

func TestPaint(t *testing.T) {
	p := Paint()
	cases := []struct {
		name string
		size int
		img  interface {
			Opaque() bool
		}
	}{
		{"penguin", EnemySize, p.Penguin},
		{"fast_mover", EnemySize, p.FastMover},
		{"bomb", EnemySize, p.Bomb},
		{"life_full", IconSize, p.LifeFull},
		{"life_gone", IconSize, p.LifeGone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.img.Opaque() {
				t.Fatalf("sprite should have a transparent background")
			}
		})
	}

	if b := p.Penguin.Bounds(); b.Dx() != EnemySize || b.Dy() != EnemySize {
		t.Fatalf("penguin bounds %v", b)
	}
	if _, _, _, a := p.Penguin.At(EnemySize/2, EnemySize/2).RGBA(); a == 0 {
		t.Fatalf("penguin center is empty")
	}
	if _, _, _, a := p.Bomb.At(1, EnemySize-1).RGBA(); a != 0 {
		t.Fatalf("bomb corner should be transparent")
	}
	if !p.Background.Opaque() {
		t.Fatalf("background should be opaque")
	}
	if p.LifeGone.At(6, 6) == p.LifeFull.At(6, 6) && p.LifeGone.At(IconSize/2, IconSize/2) == p.LifeFull.At(IconSize/2, IconSize/2) {
		t.Fatalf("spent life icon looks like a full one")
	}
}
