package round

import "testing"

func TestLoseLife(t *testing.T) {
	s := New(3)

	steps := []struct {
		name     string
		kind     EffectKind
		lives    int
		lifeIcon int
	}{
		{"first", EffectLifeLost, 2, 0},
		{"second", EffectLifeLost, 1, 1},
		{"last", EffectGameOver, 0, 0},
		{"after_over", EffectNone, 0, 0},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			eff := s.LoseLife()
			if eff.Kind != step.kind {
				t.Fatalf("kind = %v, want %v", eff.Kind, step.kind)
			}
			if eff.Lives != step.lives {
				t.Fatalf("lives = %d, want %d", eff.Lives, step.lives)
			}
			if eff.Kind == EffectLifeLost && eff.LifeIcon != step.lifeIcon {
				t.Fatalf("life icon = %d, want %d", eff.LifeIcon, step.lifeIcon)
			}
		})
	}

	if !s.Over() || s.Reason() != ReasonLives {
		t.Fatalf("round should be over by lives, got over=%v reason=%v", s.Over(), s.Reason())
	}
}

func TestScoreAndDetonate(t *testing.T) {
	s := New(3)
	if eff := s.AddScore(1); eff.Kind != EffectScoreChanged || eff.Score != 1 {
		t.Fatalf("unexpected effect %+v", eff)
	}
	if eff := s.AddScore(5); eff.Score != 6 {
		t.Fatalf("score = %d, want 6", eff.Score)
	}
	if s.ScoreLabel() != "Score: 6" {
		t.Fatalf("label = %q", s.ScoreLabel())
	}

	eff := s.Detonate()
	if eff.Kind != EffectGameOver || eff.Reason != ReasonBomb {
		t.Fatalf("unexpected effect %+v", eff)
	}
	if eff.Reason.String() != "Killed by a bomb" {
		t.Fatalf("reason text = %q", eff.Reason.String())
	}
	if eff := s.AddScore(1); eff.Kind != EffectNone || s.Score() != 6 {
		t.Fatalf("score changed after game over: %+v", eff)
	}
	if eff := s.Detonate(); eff.Kind != EffectNone {
		t.Fatalf("second detonation should be ignored")
	}
	if s.FinalScoreLabel() != "Final score: 6" {
		t.Fatalf("final label = %q", s.FinalScoreLabel())
	}
}
