package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs/component"
	"github.com/milk9111/slicerman/launch"
	"github.com/milk9111/slicerman/prefabs"
	"github.com/milk9111/slicerman/round"
	"github.com/milk9111/slicerman/scene"
	"github.com/milk9111/slicerman/sequencer"
	"github.com/milk9111/slicerman/timer"
)

type Config struct {
	Seed     int64
	Duration float64
	// HitRate is the chance the virtual player slices a penguin or fast
	// mover at the top of its arc. Bombs are always left alone.
	HitRate float64
	Tuning  sequencer.Tuning
	Enemy   *prefabs.EnemySpec
}

type Timeline struct {
	Seed       int64            `yaml:"seed"`
	Dispatches []DispatchRecord `yaml:"dispatches"`
	Spawns     []SpawnRecord    `yaml:"spawns"`
	Result     Summary          `yaml:"result"`
}

type DispatchRecord struct {
	At         float64 `yaml:"at"`
	Index      int     `yaml:"index"`
	Position   int     `yaml:"position"`
	Pattern    string  `yaml:"pattern"`
	PopupDelay float64 `yaml:"popup_delay"`
	ChainDelay float64 `yaml:"chain_delay"`
	WorldSpeed float64 `yaml:"world_speed"`
}

type SpawnRecord struct {
	At       float64 `yaml:"at"`
	Dispatch int     `yaml:"dispatch"`
	Force    string  `yaml:"force"`
	Kind     string  `yaml:"kind"`
	X        float64 `yaml:"x"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Outcome  string  `yaml:"outcome"`
	ClearAt  float64 `yaml:"clear_at"`
}

type Summary struct {
	Elapsed    float64 `yaml:"elapsed"`
	Dispatches int     `yaml:"dispatches"`
	Spawns     int     `yaml:"spawns"`
	Score      int     `yaml:"score"`
	Lives      int     `yaml:"lives"`
	Over       bool    `yaml:"over"`
	Reason     string  `yaml:"reason,omitempty"`
}

// host stands in for the game scene. Every entity follows its ballistic arc
// and leaves the active set when it is sliced or falls past the floor.
type host struct {
	cfg      Config
	queue    *timer.Queue
	seq      *sequencer.Sequencer
	launcher *launch.Launcher
	spawnRng *rand.Rand
	hitRng   *rand.Rand
	round    *round.State

	speed    float64
	active   int
	timeline Timeline
}

func (h *host) IsActiveSetEmpty() bool { return h.active == 0 }

// SetWorldSpeed runs once per dispatch, before the pattern is realized, so it
// doubles as the dispatch log.
func (h *host) SetWorldSpeed(f float64) {
	h.speed = f
	if h.seq == nil {
		return
	}
	d := h.seq.Difficulty()
	h.timeline.Dispatches = append(h.timeline.Dispatches, DispatchRecord{
		At:         h.queue.Now(),
		Index:      h.seq.Dispatches(),
		Position:   h.seq.Position(),
		Pattern:    h.seq.Current().String(),
		PopupDelay: d.PopupDelay,
		ChainDelay: d.ChainDelay,
		WorldSpeed: d.WorldSpeed,
	})
}

func (h *host) Spawn(force sequencer.ForceBomb) {
	if h.round.Over() {
		return
	}
	spawn := h.cfg.Enemy.Spawn
	kind := scene.ChooseKind(force, h.spawnRng, spawn.KindRange)
	x := spawn.MinX + h.spawnRng.Float64()*(spawn.MaxX-spawn.MinX)
	v := h.launcher.Compute(x, kind == component.EnemyFastMover)

	rec := SpawnRecord{
		At:       h.queue.Now(),
		Dispatch: len(h.timeline.Dispatches) - 1,
		Force:    force.String(),
		Kind:     kind.String(),
		X:        x,
		VX:       v.VX,
		VY:       v.VY,
	}

	g := -common.Gravity
	var clear float64
	sliced := kind != component.EnemyBomb && h.hitRng.Float64() < h.cfg.HitRate
	if sliced {
		clear = v.VY / g
		rec.Outcome = "sliced"
	} else {
		drop := spawn.Y - spawn.CullY
		clear = (v.VY + math.Sqrt(v.VY*v.VY+2*g*drop)) / g
		rec.Outcome = "missed"
	}
	// Simulation time runs faster than the clock by the world speed.
	clear /= h.speed
	rec.ClearAt = rec.At + clear

	h.timeline.Spawns = append(h.timeline.Spawns, rec)
	h.active++
	h.queue.ScheduleAfter(clear, func() { h.resolve(kind, sliced) })
}

func (h *host) resolve(kind component.EnemyKind, sliced bool) {
	h.active--
	var eff round.Effect
	switch {
	case sliced:
		eff = h.round.AddScore(kind.Points())
	case kind == component.EnemyPenguin:
		eff = h.round.LoseLife()
	}
	if eff.Kind == round.EffectGameOver {
		h.seq.Stop()
		h.queue.CancelAll()
		h.active = 0
	}
}

// Run plays one round without rendering and returns what happened.
func Run(cfg Config) (Timeline, error) {
	if cfg.Enemy == nil {
		return Timeline{}, fmt.Errorf("simulate: enemy spec is required")
	}
	if cfg.Duration <= 0 {
		return Timeline{}, fmt.Errorf("simulate: duration must be > 0")
	}

	seqRng, spawnRng, fxRng := scene.RNGs(cfg.Seed)
	h := &host{
		cfg:      cfg,
		queue:    timer.NewQueue(),
		spawnRng: spawnRng,
		hitRng:   fxRng,
		round:    round.New(scene.DefaultLives),
		timeline: Timeline{Seed: cfg.Seed},
	}
	h.launcher = launch.New(cfg.Enemy.Launch, spawnRng)

	seq, err := sequencer.New(cfg.Tuning, h, h.queue, seqRng)
	if err != nil {
		return Timeline{}, fmt.Errorf("simulate: %w", err)
	}
	h.seq = seq
	seq.Start()

	for h.queue.Now() < cfg.Duration && !h.round.Over() {
		h.queue.Advance(common.TickSeconds)
		seq.OnTick()
	}

	h.timeline.Result = Summary{
		Elapsed:    h.queue.Now(),
		Dispatches: seq.Dispatches(),
		Spawns:     len(h.timeline.Spawns),
		Score:      h.round.Score(),
		Lives:      h.round.Lives(),
		Over:       h.round.Over(),
		Reason:     h.round.Reason().String(),
	}
	return h.timeline, nil
}
