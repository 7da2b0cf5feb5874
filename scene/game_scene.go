package scene

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slicerman/assets"
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs"
	"github.com/milk9111/slicerman/ecs/component"
	"github.com/milk9111/slicerman/ecs/entity"
	"github.com/milk9111/slicerman/ecs/system"
	"github.com/milk9111/slicerman/launch"
	"github.com/milk9111/slicerman/prefabs"
	"github.com/milk9111/slicerman/round"
	"github.com/milk9111/slicerman/sequencer"
	"github.com/milk9111/slicerman/timer"
)

const DefaultLives = 3

// Result is the outcome of a finished round.
type Result struct {
	Score  int
	Reason round.Reason
}

type Config struct {
	Tuning     sequencer.Tuning
	Enemy      *prefabs.EnemySpec
	Art        entity.Art
	Background *ebiten.Image
	// Mixer may be nil for a silent scene.
	Mixer system.Mixer
	Seed  int64
	Lives int
	// OnGameOver runs once, when the round ends.
	OnGameOver func(Result)
}

// GameScene is one round of play. It implements sequencer.Host.
type GameScene struct {
	cfg Config

	world   *ecs.World
	physics *ecs.PhysicsWorld
	systems *ecs.Scheduler
	queue   *timer.Queue
	seq     *sequencer.Sequencer

	launcher *launch.Launcher
	spawnRng *rand.Rand
	fxRng    *rand.Rand

	round   *round.State
	trail   trail
	hud     bool
	overlay []Label
	spawned int
	elapsed float64
}

var _ sequencer.Host = (*GameScene)(nil)
var _ Handler = (*GameScene)(nil)

// RNGs splits one seed into the independent streams a round uses: the pattern
// sequence, spawn placement and launch, and cosmetic effects.
func RNGs(seed int64) (seq, spawn, fx *rand.Rand) {
	return rand.New(rand.NewSource(seed)),
		rand.New(rand.NewSource(seed + 1)),
		rand.New(rand.NewSource(seed + 2))
}

// ChooseKind picks what a spawn request launches. Random requests draw
// uniformly over kindRange values: 0 is a bomb, the last value a fast mover.
func ChooseKind(force sequencer.ForceBomb, rng *rand.Rand, kindRange int) component.EnemyKind {
	switch force {
	case sequencer.BombNever:
		return component.EnemyPenguin
	case sequencer.BombAlways:
		return component.EnemyBomb
	}
	switch n := rng.Intn(kindRange); n {
	case 0:
		return component.EnemyBomb
	case kindRange - 1:
		return component.EnemyFastMover
	default:
		return component.EnemyPenguin
	}
}

// NewGameScene builds the world, HUD and sequencer. Call Start to begin
// spawning.
func NewGameScene(cfg Config) (*GameScene, error) {
	if cfg.Enemy == nil {
		return nil, fmt.Errorf("scene: enemy spec is required")
	}
	if err := cfg.Enemy.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if cfg.Lives <= 0 {
		cfg.Lives = DefaultLives
	}

	seqRng, spawnRng, fxRng := RNGs(cfg.Seed)
	s := &GameScene{
		cfg:      cfg,
		world:    ecs.NewWorld(),
		physics:  ecs.NewPhysicsWorld(common.Gravity),
		queue:    timer.NewQueue(),
		spawnRng: spawnRng,
		fxRng:    fxRng,
		round:    round.New(cfg.Lives),
		hud:      true,
	}
	s.launcher = launch.New(cfg.Enemy.Launch, spawnRng)

	cullY := cfg.Enemy.Spawn.CullY
	if cullY == 0 {
		cullY = system.DefaultCullY
	}
	s.systems = ecs.NewScheduler(
		system.NewPhysicsSystem(s.physics),
		system.NewCullSystem(cullY),
		system.NewSliceSystem(s.physics),
		system.NewFuseSystem(cfg.Mixer),
		system.NewTweenSystem(),
		system.NewParticleSystem(fxRng),
		system.NewTTLSystem(),
		system.NewAudioSystem(cfg.Mixer),
		system.NewRenderSystem(),
	)

	if _, err := entity.NewLifeIcons(s.world, cfg.Lives, cfg.Art); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	seq, err := sequencer.New(cfg.Tuning, s, s.queue, seqRng)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.seq = seq
	return s, nil
}

// Start schedules the first dispatch.
func (s *GameScene) Start() {
	log.Printf("[Scene] round started (seed %d, script launch %v)", s.cfg.Seed, s.launcher.Scripted())
	s.seq.Start()
}

// ReloadLauncher swaps in a new enemy spec and launch script. Entities already
// in flight keep their velocities.
func (s *GameScene) ReloadLauncher(spec *prefabs.EnemySpec) error {
	if spec == nil {
		return fmt.Errorf("scene: nil enemy spec")
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.cfg.Enemy = spec
	s.launcher = launch.New(spec.Launch, s.spawnRng)
	log.Printf("[Scene] launcher reloaded (script launch %v)", s.launcher.Scripted())
	return nil
}

// IsActiveSetEmpty reports whether no launched entity is still in play.
func (s *GameScene) IsActiveSetEmpty() bool {
	return s.world.Count(component.ActiveTagComponent) == 0
}

// SetWorldSpeed scales the physics simulation rate.
func (s *GameScene) SetWorldSpeed(factor float64) {
	s.physics.SetSpeed(factor)
}

// Spawn launches one entity from below the screen.
func (s *GameScene) Spawn(force sequencer.ForceBomb) {
	if s.round.Over() {
		return
	}

	spawn := s.cfg.Enemy.Spawn
	kind := ChooseKind(force, s.spawnRng, spawn.KindRange)
	x := spawn.MinX + s.spawnRng.Float64()*(spawn.MaxX-spawn.MinX)
	v := s.launcher.Compute(x, kind == component.EnemyFastMover)

	if _, err := entity.NewEnemy(s.world, s.physics, s.cfg.Enemy, s.cfg.Art, kind, x, v); err != nil {
		log.Printf("[Scene] spawn %v: %v", kind, err)
		return
	}
	s.spawned++

	sound := s.kindSpec(kind).Sound
	if sound == "" {
		return
	}
	// A new bomb restarts the fuse loop.
	s.sound(component.SoundRequest{Name: sound, Loop: sound == system.FuseSound})
}

func (s *GameScene) kindSpec(kind component.EnemyKind) prefabs.KindSpec {
	switch kind {
	case component.EnemyBomb:
		return s.cfg.Enemy.Bomb
	case component.EnemyFastMover:
		return s.cfg.Enemy.FastMover
	default:
		return s.cfg.Enemy.Penguin
	}
}

// OnTick advances timers, polls the sequencer, runs the systems and applies
// what they reported.
func (s *GameScene) OnTick(dt float64) {
	s.elapsed += dt
	s.queue.Advance(dt)
	s.seq.OnTick()
	s.systems.Update(s.world)
	s.drainEvents()
	s.trail.update(dt)
}

func (s *GameScene) drainEvents() {
	for _, evt := range s.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.SlicedEvent:
			s.onSliced(data)
		case ecs.MissedEvent:
			if data.Kind == component.EnemyPenguin {
				s.apply(s.round.LoseLife())
			}
		}
	}
}

func (s *GameScene) onSliced(evt ecs.SlicedEvent) {
	if evt.Kind == component.EnemyBomb {
		s.sound(component.SoundRequest{Name: assets.SoundExplosion})
		s.effect(s.cfg.Enemy.BombBurst, evt.X, evt.Y)
		s.apply(s.round.Detonate())
		return
	}
	s.sound(component.SoundRequest{Name: assets.SoundWhack})
	s.effect(s.cfg.Enemy.HitBurst, evt.X, evt.Y)
	s.apply(s.round.AddScore(evt.Kind.Points()))
}

func (s *GameScene) apply(eff round.Effect) {
	switch eff.Kind {
	case round.EffectLifeLost:
		s.sound(component.SoundRequest{Name: assets.SoundWrong})
		entity.MarkLifeLost(s.world, eff.LifeIcon)
	case round.EffectGameOver:
		s.gameOver(eff.Reason)
	}
}

func (s *GameScene) gameOver(reason round.Reason) {
	stopped := s.seq.Stop()
	cancelled := s.queue.CancelAll()
	s.sound(component.SoundRequest{Name: system.FuseSound, Stop: true})

	for _, e := range s.world.Query(component.ActiveTagComponent) {
		s.physics.Remove(e)
		ecs.DestroyEntity(s.world, e)
	}
	for _, e := range s.world.Query(component.LifeIconComponent) {
		ecs.DestroyEntity(s.world, e)
	}
	s.hud = false

	s.overlay = []Label{
		{Text: "GAME OVER", X: common.BaseWidth / 2, Y: common.BaseHeight / 2, Size: 56, Centered: true},
		{Text: reason.String(), X: common.BaseWidth / 2, Y: 100, Size: 48, Centered: true},
		{Text: s.round.FinalScoreLabel(), X: common.BaseWidth / 2, Y: 200, Size: 48, Centered: true},
	}

	log.Printf("[Scene] game over: %v, score %d (%d sequencer and %d queued task(s) cancelled)",
		reason, s.round.Score(), stopped, cancelled)
	if s.cfg.OnGameOver != nil {
		s.cfg.OnGameOver(Result{Score: s.round.Score(), Reason: reason})
	}
}

func (s *GameScene) OnInputStart(p Point) {
	s.trail.start()
	s.trail.add(p)
}

// OnInputMove extends the trail and slices whatever lies under p.
func (s *GameScene) OnInputMove(p Point) {
	if s.round.Over() {
		return
	}
	s.trail.add(p)

	if !s.swooshPlaying() {
		name := assets.SwooshSounds[s.fxRng.Intn(len(assets.SwooshSounds))]
		s.sound(component.SoundRequest{Name: name})
	}
	if _, err := entity.NewSliceProbe(s.world, p.X, p.Y); err != nil {
		log.Printf("[Scene] slice probe: %v", err)
	}
}

func (s *GameScene) OnInputEnd() {
	s.trail.end()
}

// ResumeAudio restarts the fuse loop if a bomb is still in flight, for use
// after the mixer was silenced by a pause.
func (s *GameScene) ResumeAudio() {
	for _, e := range s.world.Query(component.ActiveTagComponent, component.EnemyComponent) {
		if enemy, _ := ecs.Get(s.world, e, component.EnemyComponent.Kind()); enemy.Kind == component.EnemyBomb {
			s.sound(component.SoundRequest{Name: system.FuseSound, Loop: true})
			return
		}
	}
}

func (s *GameScene) swooshPlaying() bool {
	if s.cfg.Mixer == nil {
		return false
	}
	for _, name := range assets.SwooshSounds {
		if s.cfg.Mixer.IsPlaying(name) {
			return true
		}
	}
	return false
}

func (s *GameScene) sound(req component.SoundRequest) {
	if _, err := entity.NewSoundRequest(s.world, req); err != nil {
		log.Printf("[Scene] sound %q: %v", req.Name, err)
	}
}

func (s *GameScene) effect(spec prefabs.EmitterSpec, x, y float64) {
	if _, err := entity.NewHitEffect(s.world, spec, x, y); err != nil {
		log.Printf("[Scene] hit effect: %v", err)
	}
}

func (s *GameScene) World() *ecs.World { return s.world }

func (s *GameScene) Physics() *ecs.PhysicsWorld { return s.physics }

func (s *GameScene) Queue() *timer.Queue { return s.queue }

func (s *GameScene) Sequencer() *sequencer.Sequencer { return s.seq }

func (s *GameScene) Round() *round.State { return s.round }

func (s *GameScene) Over() bool { return s.round.Over() }

// Spawned counts entities launched this round.
func (s *GameScene) Spawned() int { return s.spawned }

// Elapsed is the round's play time in seconds.
func (s *GameScene) Elapsed() float64 { return s.elapsed }

func (s *GameScene) HUDVisible() bool { return s.hud }

// Overlay returns the game-over labels, empty while the round runs.
func (s *GameScene) Overlay() []Label {
	out := make([]Label, len(s.overlay))
	copy(out, s.overlay)
	return out
}

// Trail returns the swipe points and their current opacity.
func (s *GameScene) Trail() ([]Point, float64, bool) {
	out := make([]Point, len(s.trail.points))
	copy(out, s.trail.points)
	return out, s.trail.alpha, s.trail.visible
}
