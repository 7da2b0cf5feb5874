package scene

import (
	"math"
	"math/rand"
	"strings"
	"testing"

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
)

type fakeMixer struct {
	played  []string
	looped  []string
	stopped []string
	playing map[string]bool
}

func newFakeMixer() *fakeMixer {
	return &fakeMixer{playing: map[string]bool{}}
}

func (m *fakeMixer) Play(name string) {
	m.played = append(m.played, name)
	m.playing[name] = true
}

func (m *fakeMixer) Loop(name string) {
	m.looped = append(m.looped, name)
	m.playing[name] = true
}

func (m *fakeMixer) Stop(name string) {
	m.stopped = append(m.stopped, name)
	m.playing[name] = false
}

func (m *fakeMixer) IsPlaying(name string) bool { return m.playing[name] }

func (m *fakeMixer) count(name string) int {
	n := 0
	for _, p := range m.played {
		if p == name {
			n++
		}
	}
	return n
}

type harness struct {
	scene   *GameScene
	mixer   *fakeMixer
	spec    *prefabs.EnemySpec
	results []Result
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	spec, err := prefabs.LoadEnemySpec()
	if err != nil {
		t.Fatalf("LoadEnemySpec: %v", err)
	}
	h := &harness{mixer: newFakeMixer(), spec: spec}
	s, err := NewGameScene(Config{
		Tuning:     sequencer.DefaultTuning(),
		Enemy:      spec,
		Mixer:      h.mixer,
		Seed:       17,
		OnGameOver: func(r Result) { h.results = append(h.results, r) },
	})
	if err != nil {
		t.Fatalf("NewGameScene: %v", err)
	}
	h.scene = s
	return h
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.scene.OnTick(common.TickSeconds)
	}
}

func (h *harness) launch(t *testing.T, kind component.EnemyKind, x float64, v launch.Velocity) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(h.scene.World(), h.scene.Physics(), h.spec, entity.Art{}, kind, x, v)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	return e
}

func (h *harness) position(t *testing.T, e ecs.Entity) Point {
	t.Helper()
	tr, ok := ecs.Get(h.scene.World(), e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return Point{X: tr.X, Y: tr.Y}
}

func (h *harness) swipe(p Point) {
	h.scene.OnInputStart(p)
	h.scene.OnInputMove(p)
}

func TestChooseKind(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := ChooseKind(sequencer.BombNever, rng, 7); got != component.EnemyPenguin {
		t.Fatalf("never = %v, want penguin", got)
	}
	if got := ChooseKind(sequencer.BombAlways, rng, 7); got != component.EnemyBomb {
		t.Fatalf("always = %v, want bomb", got)
	}

	counts := map[component.EnemyKind]int{}
	const draws = 7000
	for i := 0; i < draws; i++ {
		counts[ChooseKind(sequencer.BombRandom, rng, 7)]++
	}
	for kind, want := range map[component.EnemyKind]float64{
		component.EnemyBomb:      1.0 / 7,
		component.EnemyFastMover: 1.0 / 7,
		component.EnemyPenguin:   5.0 / 7,
	} {
		got := float64(counts[kind]) / draws
		if math.Abs(got-want) > 0.03 {
			t.Fatalf("%v share %.3f, want about %.3f", kind, got, want)
		}
	}
}

func TestSpawnRegistersActiveEntity(t *testing.T) {
	cases := []struct {
		name   string
		force  sequencer.ForceBomb
		kind   component.EnemyKind
		played string
		looped string
	}{
		{"never", sequencer.BombNever, component.EnemyPenguin, assets.SoundLaunch, ""},
		{"always", sequencer.BombAlways, component.EnemyBomb, "", system.FuseSound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t)
			if !h.scene.IsActiveSetEmpty() {
				t.Fatalf("new scene should have an empty active set")
			}
			h.scene.Spawn(c.force)
			if h.scene.IsActiveSetEmpty() || h.scene.Spawned() != 1 {
				t.Fatalf("spawn did not register an active entity")
			}

			w := h.scene.World()
			e, ok := w.First(component.EnemyComponent, component.ActiveTagComponent)
			if !ok {
				t.Fatalf("no active enemy")
			}
			enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
			if enemy.Kind != c.kind {
				t.Fatalf("kind %v, want %v", enemy.Kind, c.kind)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X < h.spec.Spawn.MinX || tr.X > h.spec.Spawn.MaxX || tr.Y != h.spec.Spawn.Y {
				t.Fatalf("spawned at (%v, %v)", tr.X, tr.Y)
			}
			if vx, vy, ok := h.scene.Physics().Velocity(e); !ok || vy <= 0 || vx == 0 {
				t.Fatalf("launch velocity (%v, %v)", vx, vy)
			}
			if hasFuse := ecs.Has(w, e, component.EmitterComponent.Kind()); hasFuse != (c.kind == component.EnemyBomb) {
				t.Fatalf("fuse emitter present = %v", hasFuse)
			}

			h.tick(1)
			if c.played != "" && h.mixer.count(c.played) != 1 {
				t.Fatalf("played %v, want %q once", h.mixer.played, c.played)
			}
			if c.looped != "" && (len(h.mixer.looped) != 1 || h.mixer.looped[0] != c.looped) {
				t.Fatalf("looped %v, want %q", h.mixer.looped, c.looped)
			}
		})
	}
}

func TestSlicing(t *testing.T) {
	cases := []struct {
		name  string
		kind  component.EnemyKind
		score int
		sound string
		over  bool
	}{
		{"penguin", component.EnemyPenguin, 1, assets.SoundWhack, false},
		{"fast mover", component.EnemyFastMover, 5, assets.SoundWhack, false},
		{"bomb", component.EnemyBomb, 0, assets.SoundExplosion, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t)
			e := h.launch(t, c.kind, 500, launch.Velocity{VY: 600})
			h.tick(1)

			h.swipe(h.position(t, e))
			h.tick(1)

			w := h.scene.World()
			if h.scene.Round().Score() != c.score {
				t.Fatalf("score %d, want %d", h.scene.Round().Score(), c.score)
			}
			if ecs.Has(w, e, component.ActiveTagComponent.Kind()) || !h.scene.IsActiveSetEmpty() {
				t.Fatalf("sliced entity still active")
			}
			if _, _, _, ok := h.scene.Physics().Pose(e); ok || h.scene.Physics().Len() != 0 {
				t.Fatalf("sliced entity kept its body")
			}
			if h.scene.Over() != c.over {
				t.Fatalf("over = %v, want %v", h.scene.Over(), c.over)
			}

			h.tick(1)
			if h.mixer.count(c.sound) != 1 {
				t.Fatalf("played %v, want %q once", h.mixer.played, c.sound)
			}

			h.tick(20)
			if ecs.IsAlive(w, e) {
				t.Fatalf("sliced entity not removed after its exit tween")
			}
		})
	}
}

func TestBombEndsRound(t *testing.T) {
	h := newHarness(t)
	h.scene.Start()
	bomb := h.launch(t, component.EnemyBomb, 300, launch.Velocity{VY: 600})
	h.launch(t, component.EnemyPenguin, 700, launch.Velocity{VY: 600})
	h.tick(1)

	h.swipe(h.position(t, bomb))
	h.tick(1)

	if !h.scene.Over() || h.scene.Round().Reason() != round.ReasonBomb {
		t.Fatalf("round should end by bomb, over=%v reason=%v", h.scene.Over(), h.scene.Round().Reason())
	}
	if len(h.results) != 1 || h.results[0].Reason != round.ReasonBomb {
		t.Fatalf("OnGameOver results %+v", h.results)
	}
	if !h.scene.Sequencer().Stopped() || h.scene.Queue().Len() != 0 {
		t.Fatalf("game over left the sequencer running or timers queued")
	}
	if !h.scene.IsActiveSetEmpty() {
		t.Fatalf("active enemies should be removed")
	}
	if h.scene.HUDVisible() || h.scene.World().Count(component.LifeIconComponent) != 0 {
		t.Fatalf("HUD should be hidden")
	}

	overlay := h.scene.Overlay()
	want := []string{"GAME OVER", "Killed by a bomb", "Final score: 0"}
	if len(overlay) != len(want) {
		t.Fatalf("overlay %+v", overlay)
	}
	for i, l := range overlay {
		if l.Text != want[i] {
			t.Fatalf("overlay[%d] = %q, want %q", i, l.Text, want[i])
		}
	}

	h.tick(1)
	if len(h.mixer.stopped) == 0 || h.mixer.stopped[len(h.mixer.stopped)-1] != system.FuseSound {
		t.Fatalf("fuse not stopped, stops %v", h.mixer.stopped)
	}

	spawned := h.scene.Spawned()
	h.tick(10 * common.TPS)
	if h.scene.Spawned() != spawned {
		t.Fatalf("spawned %d entities after game over", h.scene.Spawned()-spawned)
	}
	if len(h.results) != 1 {
		t.Fatalf("OnGameOver ran %d times", len(h.results))
	}
}

func TestMissedEntityCost(t *testing.T) {
	cases := []struct {
		name  string
		kind  component.EnemyKind
		lives int
	}{
		{"penguin", component.EnemyPenguin, 2},
		{"fast mover", component.EnemyFastMover, 3},
		{"bomb", component.EnemyBomb, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t)
			e := h.launch(t, c.kind, 400, launch.Velocity{})
			h.tick(common.TPS)

			if ecs.IsAlive(h.scene.World(), e) {
				t.Fatalf("entity below the floor was not culled")
			}
			if got := h.scene.Round().Lives(); got != c.lives {
				t.Fatalf("lives %d, want %d", got, c.lives)
			}

			lost := 0
			ecs.ForEach(h.scene.World(), component.LifeIconComponent.Kind(), func(_ ecs.Entity, icon *component.LifeIcon) {
				if icon.Lost {
					lost++
					if icon.Index != 0 {
						t.Fatalf("icon %d marked, want icon 0", icon.Index)
					}
				}
			})
			if lost != 3-c.lives {
				t.Fatalf("%d icons marked lost, want %d", lost, 3-c.lives)
			}
			if h.mixer.count(assets.SoundWrong) != 3-c.lives {
				t.Fatalf("wrong played %d times", h.mixer.count(assets.SoundWrong))
			}
		})
	}
}

func TestRunningOutOfLives(t *testing.T) {
	h := newHarness(t)
	for _, x := range []float64{200, 500, 800} {
		h.launch(t, component.EnemyPenguin, x, launch.Velocity{})
	}
	h.tick(common.TPS)

	if !h.scene.Over() || h.scene.Round().Reason() != round.ReasonLives {
		t.Fatalf("round should end by lives, over=%v reason=%v", h.scene.Over(), h.scene.Round().Reason())
	}
	if h.scene.Round().Lives() != 0 {
		t.Fatalf("lives %d, want 0", h.scene.Round().Lives())
	}
	if h.mixer.count(assets.SoundWrong) != 2 {
		t.Fatalf("wrong played %d times, want 2", h.mixer.count(assets.SoundWrong))
	}
	if got := h.scene.Overlay()[1].Text; got != "Ran out of lives" {
		t.Fatalf("reason label %q", got)
	}
}

func TestInputMoveIgnoredAfterGameOver(t *testing.T) {
	h := newHarness(t)
	bomb := h.launch(t, component.EnemyBomb, 500, launch.Velocity{VY: 600})
	h.tick(1)
	h.swipe(h.position(t, bomb))
	h.tick(1)
	if !h.scene.Over() {
		t.Fatalf("expected game over")
	}

	h.scene.OnInputStart(Point{X: 10, Y: 10})
	h.scene.OnInputMove(Point{X: 20, Y: 20})
	h.scene.OnInputMove(Point{X: 30, Y: 30})

	points, _, _ := h.scene.Trail()
	if len(points) != 1 {
		t.Fatalf("trail has %d points after game over, want only the start", len(points))
	}
	if n := h.scene.World().Count(component.SliceProbeComponent); n != 0 {
		t.Fatalf("%d slice probes queued after game over", n)
	}
}

func TestTrail(t *testing.T) {
	h := newHarness(t)
	h.scene.OnInputStart(Point{X: 0, Y: 400})
	for i := 1; i <= 20; i++ {
		h.scene.OnInputMove(Point{X: float64(i * 10), Y: 400})
		h.tick(1)
	}

	points, alpha, visible := h.scene.Trail()
	if len(points) != TrailLength {
		t.Fatalf("trail length %d, want %d", len(points), TrailLength)
	}
	if points[0].X != 90 || points[len(points)-1].X != 200 {
		t.Fatalf("trail spans %v..%v, want the most recent points", points[0].X, points[len(points)-1].X)
	}
	if !visible || alpha != 1 {
		t.Fatalf("trail should be fully visible while swiping")
	}

	swooshes := 0
	for _, name := range assets.SwooshSounds {
		swooshes += h.mixer.count(name)
	}
	if swooshes != 1 {
		t.Fatalf("swoosh played %d times while one was playing", swooshes)
	}

	h.scene.OnInputEnd()
	h.tick(5)
	if _, alpha, visible := h.scene.Trail(); !visible || alpha <= 0 || alpha >= 1 {
		t.Fatalf("trail should be fading, alpha=%v visible=%v", alpha, visible)
	}
	h.tick(15)
	if _, _, visible := h.scene.Trail(); visible {
		t.Fatalf("trail still visible after %vs", TrailFadeTime)
	}

	h.scene.OnInputStart(Point{X: 5, Y: 5})
	if points, alpha, visible := h.scene.Trail(); len(points) != 1 || alpha != 1 || !visible {
		t.Fatalf("new swipe should reset the trail")
	}
}

func TestStartDispatchesAfterInitialDelay(t *testing.T) {
	h := newHarness(t)
	tuning := sequencer.DefaultTuning()
	if got := h.scene.Physics().Speed(); got != tuning.WorldSpeed {
		t.Fatalf("initial world speed %v, want %v", got, tuning.WorldSpeed)
	}

	h.scene.Start()
	h.tick(110)
	if h.scene.Spawned() != 0 {
		t.Fatalf("spawned before the initial delay")
	}
	h.tick(20)
	if h.scene.Spawned() != 1 {
		t.Fatalf("spawned %d, want the first single", h.scene.Spawned())
	}
	want := tuning.WorldSpeed * tuning.SpeedGrowth
	if got := h.scene.Physics().Speed(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("world speed %v, want %v", got, want)
	}
}

func TestReloadLauncher(t *testing.T) {
	h := newHarness(t)
	if err := h.scene.ReloadLauncher(nil); err == nil {
		t.Fatalf("nil spec should be rejected")
	}

	bad := *h.spec
	bad.Spawn.Radius = 0
	if err := h.scene.ReloadLauncher(&bad); err == nil || !strings.Contains(err.Error(), "radius") {
		t.Fatalf("invalid spec error = %v", err)
	}

	good := *h.spec
	good.Launch.Script = ""
	if err := h.scene.ReloadLauncher(&good); err != nil {
		t.Fatalf("ReloadLauncher: %v", err)
	}
	h.scene.Spawn(sequencer.BombNever)
	if h.scene.IsActiveSetEmpty() {
		t.Fatalf("spawn after reload failed")
	}
}

func TestNewGameSceneRequiresSpec(t *testing.T) {
	if _, err := NewGameScene(Config{Tuning: sequencer.DefaultTuning()}); err == nil {
		t.Fatalf("expected an error without an enemy spec")
	}
}

func TestResumeAudioRestartsFuse(t *testing.T) {
	h := newHarness(t)
	h.scene.ResumeAudio()
	h.tick(1)
	if len(h.mixer.looped) != 0 {
		t.Fatalf("fuse restarted without a bomb in flight")
	}

	h.launch(t, component.EnemyBomb, 500, launch.Velocity{VY: 600})
	h.scene.ResumeAudio()
	h.tick(1)
	if len(h.mixer.looped) != 1 || h.mixer.looped[0] != system.FuseSound {
		t.Fatalf("looped %v, want the fuse", h.mixer.looped)
	}
}
