// Package launch computes the initial velocity and spin of spawned entities.
// The computation is a tengo script so it can be tuned without a rebuild; the
// built-in Go version is used when the script is missing or broken.
package launch

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/slicerman/prefabs"
)

// Velocity is a launch in world units per second (y-up) and radians per
// second.
type Velocity struct {
	VX   float64
	VY   float64
	Spin float64
}

var outputs = []string{"vx", "vy", "spin"}

type Launcher struct {
	spec     prefabs.LaunchSpec
	rng      *rand.Rand
	compiled *tengo.Compiled
}

// New loads spec.Script from the prefabs. Load or compile failures are logged
// and the launcher falls back to Fallback.
func New(spec prefabs.LaunchSpec, rng *rand.Rand) *Launcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	l := &Launcher{spec: spec, rng: rng}
	if spec.Script == "" {
		return l
	}

	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		log.Printf("[Launch] load %s: %v; using built-in launch", spec.Script, err)
		return l
	}
	compiled, err := l.compile(src)
	if err != nil {
		log.Printf("[Launch] compile %s: %v; using built-in launch", spec.Script, err)
		return l
	}
	l.compiled = compiled
	return l
}

// NewFromSource compiles src as the launch script.
func NewFromSource(src []byte, spec prefabs.LaunchSpec, rng *rand.Rand) (*Launcher, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	l := &Launcher{spec: spec, rng: rng}
	compiled, err := l.compile(src)
	if err != nil {
		return nil, fmt.Errorf("launch: compile: %w", err)
	}
	l.compiled = compiled
	return l, nil
}

// Scripted reports whether launches go through the tengo script.
func (l *Launcher) Scripted() bool {
	return l != nil && l.compiled != nil
}

// Compute returns the launch for an entity spawned at x.
func (l *Launcher) Compute(x float64, fast bool) Velocity {
	if l.compiled != nil {
		v, err := l.run(x, fast)
		if err == nil {
			return v
		}
		log.Printf("[Launch] script run: %v; using built-in launch", err)
		l.compiled = nil
	}
	return Fallback(l.spec, l.rng, x, fast)
}

// Fallback is the built-in launch. It draws from rng in the same order as the
// bundled script.
func Fallback(spec prefabs.LaunchSpec, rng *rand.Rand, x float64, fast bool) Velocity {
	var vx float64
	if n := len(spec.Bands); n > 0 {
		band := spec.Bands[n-1]
		for _, b := range spec.Bands {
			if x < b.Below {
				band = b
				break
			}
		}
		vx = float64(band.Sign * randInt(rng, band.Min, band.Max))
	}
	vy := float64(randInt(rng, spec.YMin, spec.YMax))

	scaleY := spec.VelocityScale
	if fast {
		scaleY = spec.FastScaleY
	}

	return Velocity{
		VX:   vx * spec.VelocityScale,
		VY:   vy * scaleY,
		Spin: randFloat(rng, spec.SpinMin, spec.SpinMax),
	}
}

func (l *Launcher) compile(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("x", 0.0)
	_ = script.Add("fast", false)
	_ = script.Add("spec", specObject(l.spec))
	_ = script.Add("rand_int", &tengo.UserFunction{Name: "rand_int", Value: l.randIntFunc})
	_ = script.Add("rand_float", &tengo.UserFunction{Name: "rand_float", Value: l.randFloatFunc})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

func (l *Launcher) run(x float64, fast bool) (Velocity, error) {
	if err := l.compiled.Set("x", x); err != nil {
		return Velocity{}, err
	}
	if err := l.compiled.Set("fast", fast); err != nil {
		return Velocity{}, err
	}
	if err := l.compiled.Run(); err != nil {
		return Velocity{}, err
	}
	for _, name := range outputs {
		if !l.compiled.IsDefined(name) {
			return Velocity{}, fmt.Errorf("script does not define %q", name)
		}
	}
	return Velocity{
		VX:   l.compiled.Get("vx").Float(),
		VY:   l.compiled.Get("vy").Float(),
		Spin: l.compiled.Get("spin").Float(),
	}, nil
}

func (l *Launcher) randIntFunc(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	lo, ok := tengo.ToInt(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "lo", Expected: "int", Found: args[0].TypeName()}
	}
	hi, ok := tengo.ToInt(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "hi", Expected: "int", Found: args[1].TypeName()}
	}
	return &tengo.Int{Value: int64(randInt(l.rng, lo, hi))}, nil
}

func (l *Launcher) randFloatFunc(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	lo, ok := tengo.ToFloat64(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "lo", Expected: "float", Found: args[0].TypeName()}
	}
	hi, ok := tengo.ToFloat64(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "hi", Expected: "float", Found: args[1].TypeName()}
	}
	return &tengo.Float{Value: randFloat(l.rng, lo, hi)}, nil
}

// randInt draws uniformly from [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func randFloat(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func specObject(spec prefabs.LaunchSpec) map[string]interface{} {
	bands := make([]interface{}, 0, len(spec.Bands))
	for _, b := range spec.Bands {
		bands = append(bands, map[string]interface{}{
			"below": b.Below,
			"min":   b.Min,
			"max":   b.Max,
			"sign":  b.Sign,
		})
	}
	return map[string]interface{}{
		"bands":          bands,
		"y_min":          spec.YMin,
		"y_max":          spec.YMax,
		"velocity_scale": spec.VelocityScale,
		"fast_scale_y":   spec.FastScaleY,
		"spin_min":       spec.SpinMin,
		"spin_max":       spec.SpinMax,
	}
}
