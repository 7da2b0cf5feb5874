// Command simulate plays a round headlessly and prints the spawn timeline as
// YAML. Useful for checking a tuning change without opening a window.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/milk9111/slicerman/prefabs"
	"gopkg.in/yaml.v3"
)

func main() {
	seed := flag.Int64("seed", 1, "random seed")
	duration := flag.Float64("duration", 60, "seconds of play to simulate")
	hitRate := flag.Float64("hit", 0.9, "chance the virtual player slices a penguin or fast mover")
	root := flag.String("prefabs", prefabs.DiskRoot, "directory with sequencer.yaml and enemy.yaml overrides")
	out := flag.String("o", "", "write the timeline to this file instead of stdout")
	verbose := flag.Bool("v", false, "log loader messages to stderr")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	prefabs.DiskRoot = *root

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("[Simulate] %v; using default tuning", err)
	}
	enemy, err := prefabs.LoadEnemySpec()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("simulate: %v", err)
	}

	timeline, err := Run(Config{
		Seed:     *seed,
		Duration: *duration,
		HitRate:  *hitRate,
		Tuning:   tuning,
		Enemy:    enemy,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("simulate: %v", err)
		}
		defer f.Close()
		w = f
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(timeline); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("simulate: encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("simulate: encode: %v", err)
	}
}
