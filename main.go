package main

import (
	"flag"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slicerman/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (logging and overlay)")
	seed := flag.Int64("seed", 0, "random seed for the first round (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "reload prefabs/ and prefabs/scripts/ when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	mute := flag.Bool("mute", false, "start with sound effects muted")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen")
	flag.Parse()

	if !*debug {
		log.SetOutput(io.Discard)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("slicerman")
	ebiten.SetFullscreen(*fullscreen)
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Seed:  *seed,
		Debug: *debug,
		Watch: *watch,
		Mute:  *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
