package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slicerman/assets"
	"github.com/milk9111/slicerman/common"
	"github.com/milk9111/slicerman/ecs/entity"
	"github.com/milk9111/slicerman/ecs/system"
	"github.com/milk9111/slicerman/highscore"
	"github.com/milk9111/slicerman/input"
	"github.com/milk9111/slicerman/prefabs"
	"github.com/milk9111/slicerman/scene"
	"github.com/milk9111/slicerman/sequencer"
	"golang.design/x/clipboard"
)

const appName = "slicerman"

type Options struct {
	Seed  int64
	Debug bool
	Watch bool
	Mute  bool
}

type Game struct {
	opts Options

	tuning sequencer.Tuning
	enemy  *prefabs.EnemySpec
	images *assets.Images
	mixer  *assets.Mixer
	scores *highscore.Store

	watcher *prefabs.Watcher
	tracker input.Tracker

	scene  *scene.GameScene
	rounds int

	paused    bool
	quit      bool
	clipboard bool
	pauseUI   *ebitenui.UI
	overUI    *ebitenui.UI
	result    *scene.Result
}

func NewGame(opts Options) (*Game, error) {
	for _, name := range []string{"sequencer.yaml", "enemy.yaml"} {
		if mod, ok := prefabs.Override(name); ok {
			log.Printf("[Game] %s from disk (modified %s)", name, mod.Format(time.RFC3339))
		}
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("[Game] %v; using default tuning", err)
	}
	enemy, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, fmt.Errorf("load enemy spec: %w", err)
	}

	g := &Game{
		opts:   opts,
		tuning: tuning,
		enemy:  enemy,
		images: assets.LoadImages(),
		scores: highscore.Open(appName),
	}

	mixer, err := assets.NewMixer(opts.Mute)
	if err != nil {
		log.Printf("[Game] audio disabled: %v", err)
	} else {
		g.mixer = mixer
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("[Game] clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts"))
		if err != nil {
			log.Printf("[Game] prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	if err := g.newRound(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) newRound() error {
	cfg := scene.Config{
		Tuning: g.tuning,
		Enemy:  g.enemy,
		Art: entity.Art{
			Penguin:   g.images.Penguin,
			FastMover: g.images.FastMover,
			Bomb:      g.images.Bomb,
			LifeFull:  g.images.LifeFull,
			LifeGone:  g.images.LifeGone,
		},
		Background: g.images.Background,
		Seed:       g.opts.Seed + int64(g.rounds)*1000,
		OnGameOver: g.onGameOver,
	}
	// A nil *assets.Mixer must not become a non-nil interface.
	if g.mixer != nil {
		cfg.Mixer = g.mixer
	}

	s, err := scene.NewGameScene(cfg)
	if err != nil {
		return fmt.Errorf("new round: %w", err)
	}
	if g.mixer != nil {
		g.mixer.StopAll()
	}

	g.scene = s
	g.rounds++
	g.result = nil
	g.overUI = nil
	g.tracker.Reset()
	s.Start()
	return nil
}

func (g *Game) onGameOver(r scene.Result) {
	g.result = &r
	newBest, err := g.scores.Submit(r.Score)
	if err != nil {
		log.Printf("[Game] save score: %v", err)
	}
	g.overUI = NewGameOverUI(g, r, g.scores.Best(), newBest)
}

// Restart discards the current round and starts a fresh one.
func (g *Game) Restart() {
	if err := g.newRound(); err != nil {
		log.Printf("[Game] restart: %v", err)
	}
}

func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.tracker.Reset()
	if g.mixer == nil {
		return
	}
	if paused {
		g.mixer.StopAll()
		return
	}
	g.scene.ResumeAudio()
}

// CopyScore puts the last result on the system clipboard.
func (g *Game) CopyScore() {
	if !g.clipboard || g.result == nil {
		return
	}
	msg := fmt.Sprintf("I scored %d in slicerman (best %d)", g.result.Score, g.scores.Best())
	clipboard.Write(clipboard.FmtText, []byte(msg))
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	if !g.scene.Over() && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)) {
		g.SetPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.mixer != nil {
		g.mixer.SetMuted(!g.mixer.Muted())
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.scene.Over() {
		if g.overUI != nil {
			g.overUI.Update()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Restart()
			return nil
		}
	}

	// Gestures are delivered before the tick so probes resolve this frame.
	for _, evt := range g.tracker.Step(g.tracker.Poll()) {
		p := scene.Point{X: evt.X, Y: evt.Y}
		switch evt.Phase {
		case input.PhaseStart:
			g.scene.OnInputStart(p)
		case input.PhaseMove:
			g.scene.OnInputMove(p)
		case input.PhaseEnd:
			g.scene.OnInputEnd()
		}
	}
	g.scene.OnTick(common.TickSeconds)
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("[Game] prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(c prefabs.Change) {
	switch {
	case c.Script || c.Name == "enemy.yaml":
		spec, err := prefabs.LoadEnemySpec()
		if err != nil {
			log.Printf("[Game] reload %s: %v", c.Name, err)
			return
		}
		g.enemy = spec
		if err := g.scene.ReloadLauncher(spec); err != nil {
			log.Printf("[Game] reload %s: %v", c.Name, err)
		}
	case c.Name == "sequencer.yaml":
		tuning, err := prefabs.LoadTuning()
		if err != nil {
			log.Printf("[Game] reload %s: %v; keeping current tuning", c.Name, err)
			return
		}
		g.tuning = tuning
		log.Printf("[Game] tuning reloaded, applies next round")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	if g.opts.Debug {
		d := g.scene.Sequencer().Difficulty()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.2f  round %d  dispatches %d  pos %d (%v)\npopup %.3f  chain %.3f  speed %.3f  bodies %d",
			ebiten.ActualFPS(), g.rounds, g.scene.Sequencer().Dispatches(),
			g.scene.Sequencer().Position(), g.scene.Sequencer().Current(),
			d.PopupDelay, d.ChainDelay, d.WorldSpeed, g.scene.Physics().Len(),
		))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	} else if g.overUI != nil {
		g.overUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close releases the prefab watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("[Game] close watcher: %v", err)
		}
	}
	if g.mixer != nil {
		g.mixer.StopAll()
	}
}

var _ system.Mixer = (*assets.Mixer)(nil)
