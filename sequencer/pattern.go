package sequencer

import "math/rand"

// Pattern is one named shape of a spawn wave.
type Pattern int

const (
	SingleNoBomb Pattern = iota
	Single
	PairOneBomb
	Pair
	Triple
	Quadruple
	Chain
	FastChain
)

// AllPatterns lists every variant in declaration order.
var AllPatterns = []Pattern{SingleNoBomb, Single, PairOneBomb, Pair, Triple, Quadruple, Chain, FastChain}

var patternNames = [...]string{
	SingleNoBomb: "single-no-bomb",
	Single:       "single",
	PairOneBomb:  "pair-one-bomb",
	Pair:         "pair",
	Triple:       "triple",
	Quadruple:    "quadruple",
	Chain:        "chain",
	FastChain:    "fast-chain",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

// IsChain reports whether the pattern spreads its spawns over time.
func (p Pattern) IsChain() bool {
	return p == Chain || p == FastChain
}

// ForceBomb constrains the host's per-spawn choice of entity kind.
type ForceBomb int

const (
	BombRandom ForceBomb = iota
	BombNever
	BombAlways
)

func (f ForceBomb) String() string {
	switch f {
	case BombNever:
		return "never"
	case BombAlways:
		return "always"
	default:
		return "random"
	}
}

// Prefix is the hand-authored opening of every sequence.
var Prefix = []Pattern{SingleNoBomb, SingleNoBomb, PairOneBomb, PairOneBomb, Triple, Single, Chain}

// NewSequence returns Prefix followed by tail uniformly random patterns.
func NewSequence(rng *rand.Rand, tail int) []Pattern {
	if tail < 0 {
		tail = 0
	}
	seq := make([]Pattern, 0, len(Prefix)+tail)
	seq = append(seq, Prefix...)
	for i := 0; i < tail; i++ {
		seq = append(seq, AllPatterns[rng.Intn(len(AllPatterns))])
	}
	return seq
}
