package sequencer

import (
	"errors"
	"fmt"
)

var ErrInvalidTuning = errors.New("sequencer: invalid tuning")

// Tuning holds the starting values and ramp factors of a round.
type Tuning struct {
	InitialDelay     float64 `yaml:"initial_delay"`
	PopupDelay       float64 `yaml:"popup_delay"`
	ChainDelay       float64 `yaml:"chain_delay"`
	WorldSpeed       float64 `yaml:"world_speed"`
	PopupDecay       float64 `yaml:"popup_decay"`
	ChainDecay       float64 `yaml:"chain_decay"`
	SpeedGrowth      float64 `yaml:"speed_growth"`
	TailLength       int     `yaml:"tail_length"`
	WrapIndex        int     `yaml:"wrap_index"`
	ChainDivisor     float64 `yaml:"chain_divisor"`
	FastChainDivisor float64 `yaml:"fast_chain_divisor"`
}

func DefaultTuning() Tuning {
	return Tuning{
		InitialDelay:     2,
		PopupDelay:       0.9,
		ChainDelay:       3.0,
		WorldSpeed:       0.85,
		PopupDecay:       0.991,
		ChainDecay:       0.99,
		SpeedGrowth:      1.02,
		TailLength:       1000,
		WrapIndex:        5,
		ChainDivisor:     5,
		FastChainDivisor: 10,
	}
}

// Validate checks that the tuning describes a ramp that shrinks delays,
// grows speed, and wraps inside the sequence.
func (t Tuning) Validate() error {
	switch {
	case t.InitialDelay < 0:
		return fmt.Errorf("%w: initial_delay must be >= 0, got %v", ErrInvalidTuning, t.InitialDelay)
	case t.PopupDelay <= 0:
		return fmt.Errorf("%w: popup_delay must be > 0, got %v", ErrInvalidTuning, t.PopupDelay)
	case t.ChainDelay <= 0:
		return fmt.Errorf("%w: chain_delay must be > 0, got %v", ErrInvalidTuning, t.ChainDelay)
	case t.WorldSpeed <= 0:
		return fmt.Errorf("%w: world_speed must be > 0, got %v", ErrInvalidTuning, t.WorldSpeed)
	case t.PopupDecay <= 0 || t.PopupDecay >= 1:
		return fmt.Errorf("%w: popup_decay must be in (0, 1), got %v", ErrInvalidTuning, t.PopupDecay)
	case t.ChainDecay <= 0 || t.ChainDecay >= 1:
		return fmt.Errorf("%w: chain_decay must be in (0, 1), got %v", ErrInvalidTuning, t.ChainDecay)
	case t.SpeedGrowth <= 1:
		return fmt.Errorf("%w: speed_growth must be > 1, got %v", ErrInvalidTuning, t.SpeedGrowth)
	case t.TailLength < 0:
		return fmt.Errorf("%w: tail_length must be >= 0, got %d", ErrInvalidTuning, t.TailLength)
	case t.ChainDivisor <= 0 || t.FastChainDivisor <= 0:
		return fmt.Errorf("%w: chain divisors must be > 0", ErrInvalidTuning)
	}
	n := len(Prefix) + t.TailLength
	if t.WrapIndex < 0 || t.WrapIndex >= n {
		return fmt.Errorf("%w: wrap_index must be in [0, %d), got %d", ErrInvalidTuning, n, t.WrapIndex)
	}
	return nil
}
