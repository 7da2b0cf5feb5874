// Package round tracks the score and lives of one play session. Every
// mutation returns the Effect the UI should show, so state changes never
// notify anyone implicitly.
package round

import "fmt"

// Reason explains why a round ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBomb
	ReasonLives
)

func (r Reason) String() string {
	switch r {
	case ReasonBomb:
		return "Killed by a bomb"
	case ReasonLives:
		return "Ran out of lives"
	default:
		return ""
	}
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectScoreChanged
	EffectLifeLost
	EffectGameOver
)

// Effect is the UI consequence of a state change.
type Effect struct {
	Kind EffectKind
	// Score after the change.
	Score int
	// Lives after the change.
	Lives int
	// LifeIcon is the HUD icon to mark as gone for EffectLifeLost.
	LifeIcon int
	Reason   Reason
}

type State struct {
	score    int
	lives    int
	maxLives int
	over     bool
	reason   Reason
}

func New(lives int) *State {
	if lives < 1 {
		lives = 1
	}
	return &State{lives: lives, maxLives: lives}
}

// AddScore adds points unless the round is over.
func (s *State) AddScore(points int) Effect {
	if s.over || points == 0 {
		return Effect{Kind: EffectNone, Score: s.score, Lives: s.lives}
	}
	s.score += points
	return Effect{Kind: EffectScoreChanged, Score: s.score, Lives: s.lives}
}

// LoseLife removes one life. Reaching zero ends the round. Calls after the
// round is over have no effect.
func (s *State) LoseLife() Effect {
	if s.over {
		return Effect{Kind: EffectNone, Score: s.score, Lives: s.lives}
	}
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		return s.end(ReasonLives)
	}
	return Effect{
		Kind:     EffectLifeLost,
		Score:    s.score,
		Lives:    s.lives,
		LifeIcon: s.maxLives - 1 - s.lives,
	}
}

// Detonate ends the round because a bomb was sliced.
func (s *State) Detonate() Effect {
	if s.over {
		return Effect{Kind: EffectNone, Score: s.score, Lives: s.lives}
	}
	return s.end(ReasonBomb)
}

func (s *State) end(reason Reason) Effect {
	s.over = true
	s.reason = reason
	return Effect{Kind: EffectGameOver, Score: s.score, Lives: s.lives, Reason: reason}
}

func (s *State) Score() int { return s.score }

func (s *State) Lives() int { return s.lives }

func (s *State) MaxLives() int { return s.maxLives }

func (s *State) Over() bool { return s.over }

func (s *State) Reason() Reason { return s.reason }

// ScoreLabel is the HUD text for the running score.
func (s *State) ScoreLabel() string {
	return fmt.Sprintf("Score: %d", s.score)
}

// FinalScoreLabel is the game-over text for the final score.
func (s *State) FinalScoreLabel() string {
	return fmt.Sprintf("Final score: %d", s.score)
}
