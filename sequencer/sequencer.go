// Package sequencer decides which spawn pattern fires next and ramps the
// difficulty of a round after every dispatch.
package sequencer

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/slicerman/timer"
)

// Host realizes spawn requests and owns the set of live entities.
type Host interface {
	IsActiveSetEmpty() bool
	Spawn(force ForceBomb)
	SetWorldSpeed(factor float64)
}

// Scheduler runs callbacks after a delay on the game's logical thread.
type Scheduler interface {
	ScheduleAfter(delay float64, fn func()) *timer.Task
}

// Difficulty is the current ramp state.
type Difficulty struct {
	PopupDelay float64
	ChainDelay float64
	WorldSpeed float64
}

type Sequencer struct {
	tuning    Tuning
	host      Host
	scheduler Scheduler

	sequence   []Pattern
	position   int
	difficulty Difficulty
	pending    bool
	dispatches int
	stopped    bool

	tasks []*timer.Task
}

// New builds the round's sequence and pushes the starting world speed to the
// host. Call Start to schedule the first dispatch.
func New(tuning Tuning, host Host, scheduler Scheduler, rng *rand.Rand) (*Sequencer, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if host == nil || scheduler == nil {
		return nil, fmt.Errorf("sequencer: host and scheduler are required")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	s := &Sequencer{
		tuning:    tuning,
		host:      host,
		scheduler: scheduler,
		sequence:  NewSequence(rng, tuning.TailLength),
		difficulty: Difficulty{
			PopupDelay: tuning.PopupDelay,
			ChainDelay: tuning.ChainDelay,
			WorldSpeed: tuning.WorldSpeed,
		},
		// The first dispatch is scheduled by Start rather than by polling.
		pending: true,
	}
	host.SetWorldSpeed(s.difficulty.WorldSpeed)
	return s, nil
}

// Start schedules the first dispatch after the initial delay.
func (s *Sequencer) Start() {
	if s == nil || s.stopped {
		return
	}
	s.schedule(s.tuning.InitialDelay, s.DispatchNext)
}

// DispatchNext ramps difficulty, realizes the pattern at the cursor and
// advances the cursor.
func (s *Sequencer) DispatchNext() {
	if s == nil || s.stopped {
		return
	}

	s.ramp()

	pattern := s.sequence[s.position]
	s.realize(pattern)
	s.dispatches++

	if s.position < len(s.sequence)-1 {
		s.position++
	} else {
		s.position = s.tuning.WrapIndex
	}
	s.pending = false
}

// OnTick polls the host. When the screen is clear and nothing is queued, the
// next dispatch is scheduled after the current popup delay.
func (s *Sequencer) OnTick() {
	if s == nil || s.stopped {
		return
	}
	if !s.host.IsActiveSetEmpty() || s.pending {
		return
	}
	s.schedule(s.difficulty.PopupDelay, s.DispatchNext)
	s.pending = true
}

// Stop cancels every task the sequencer has scheduled and ignores further
// dispatches. It returns the number of callbacks prevented.
func (s *Sequencer) Stop() int {
	if s == nil || s.stopped {
		return 0
	}
	s.stopped = true
	n := 0
	for _, t := range s.tasks {
		if t.Cancel() {
			n++
		}
	}
	s.tasks = nil
	if n > 0 {
		log.Printf("[Sequencer] stopped, cancelled %d pending task(s)", n)
	}
	return n
}

func (s *Sequencer) ramp() {
	s.difficulty.PopupDelay *= s.tuning.PopupDecay
	s.difficulty.ChainDelay *= s.tuning.ChainDecay
	s.difficulty.WorldSpeed *= s.tuning.SpeedGrowth
	s.host.SetWorldSpeed(s.difficulty.WorldSpeed)
}

func (s *Sequencer) realize(p Pattern) {
	switch p {
	case SingleNoBomb:
		s.host.Spawn(BombNever)
	case Single:
		s.spawnMany(1)
	case PairOneBomb:
		s.host.Spawn(BombNever)
		s.host.Spawn(BombAlways)
	case Pair:
		s.spawnMany(2)
	case Triple:
		s.spawnMany(3)
	case Quadruple:
		s.spawnMany(4)
	case Chain:
		s.spawnChain(s.tuning.ChainDivisor)
	case FastChain:
		s.spawnChain(s.tuning.FastChainDivisor)
	}
}

func (s *Sequencer) spawnMany(n int) {
	for i := 0; i < n; i++ {
		s.host.Spawn(BombRandom)
	}
}

func (s *Sequencer) spawnChain(div float64) {
	s.host.Spawn(BombRandom)
	step := s.difficulty.ChainDelay / div
	for k := 1; k <= 4; k++ {
		s.schedule(step*float64(k), func() {
			if !s.stopped {
				s.host.Spawn(BombRandom)
			}
		})
	}
}

func (s *Sequencer) schedule(delay float64, fn func()) {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done() {
			live = append(live, t)
		}
	}
	s.tasks = live

	if t := s.scheduler.ScheduleAfter(delay, fn); t != nil {
		s.tasks = append(s.tasks, t)
	}
}

// Position returns the index of the next pattern to dispatch.
func (s *Sequencer) Position() int { return s.position }

func (s *Sequencer) Difficulty() Difficulty { return s.difficulty }

// Pending reports whether the next dispatch is already scheduled.
func (s *Sequencer) Pending() bool { return s.pending }

func (s *Sequencer) Dispatches() int { return s.dispatches }

func (s *Sequencer) Stopped() bool { return s.stopped }

// Sequence returns a copy of the round's patterns.
func (s *Sequencer) Sequence() []Pattern {
	out := make([]Pattern, len(s.sequence))
	copy(out, s.sequence)
	return out
}

// Current returns the pattern the next dispatch will realize.
func (s *Sequencer) Current() Pattern { return s.sequence[s.position] }
