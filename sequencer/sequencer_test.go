package sequencer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/slicerman/timer"
)

type spawnCall struct {
	force ForceBomb
	at    float64
}

type fakeHost struct {
	clock  *timer.Queue
	active int
	spawns []spawnCall
	speeds []float64
}

func (h *fakeHost) IsActiveSetEmpty() bool { return h.active == 0 }

func (h *fakeHost) Spawn(force ForceBomb) {
	h.spawns = append(h.spawns, spawnCall{force: force, at: h.clock.Now()})
}

func (h *fakeHost) SetWorldSpeed(f float64) { h.speeds = append(h.speeds, f) }

func newTestSequencer(t *testing.T, tuning Tuning, seed int64) (*Sequencer, *fakeHost, *timer.Queue) {
	t.Helper()
	q := timer.NewQueue()
	h := &fakeHost{clock: q}
	s, err := New(tuning, h, q, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, h, q
}

func TestPrefixIndependentOfSeed(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 1 << 40} {
		s, _, _ := newTestSequencer(t, DefaultTuning(), seed)
		seq := s.Sequence()
		if len(seq) != len(Prefix)+1000 {
			t.Fatalf("seed %d: length %d, want %d", seed, len(seq), len(Prefix)+1000)
		}
		want := []Pattern{SingleNoBomb, SingleNoBomb, PairOneBomb, PairOneBomb, Triple, Single, Chain}
		for i, p := range want {
			if seq[i] != p {
				t.Fatalf("seed %d: position %d = %v, want %v", seed, i, seq[i], p)
			}
		}
	}
}

func TestTailUsesEveryVariant(t *testing.T) {
	seq := NewSequence(rand.New(rand.NewSource(7)), 1000)
	seen := map[Pattern]int{}
	for _, p := range seq[len(Prefix):] {
		seen[p]++
	}
	for _, p := range AllPatterns {
		if seen[p] == 0 {
			t.Fatalf("pattern %v never drawn in 1000 samples", p)
		}
	}
}

func TestRampIsMonotonic(t *testing.T) {
	s, h, _ := newTestSequencer(t, DefaultTuning(), 3)
	prev := s.Difficulty()
	for i := 0; i < 500; i++ {
		s.DispatchNext()
		cur := s.Difficulty()
		if !(cur.PopupDelay < prev.PopupDelay) {
			t.Fatalf("dispatch %d: popup delay %v did not shrink from %v", i, cur.PopupDelay, prev.PopupDelay)
		}
		if !(cur.ChainDelay < prev.ChainDelay) {
			t.Fatalf("dispatch %d: chain delay %v did not shrink from %v", i, cur.ChainDelay, prev.ChainDelay)
		}
		if !(cur.WorldSpeed > prev.WorldSpeed) {
			t.Fatalf("dispatch %d: world speed %v did not grow from %v", i, cur.WorldSpeed, prev.WorldSpeed)
		}
		prev = cur
	}
	if got := h.speeds[len(h.speeds)-1]; got != prev.WorldSpeed {
		t.Fatalf("host world speed %v, want %v", got, prev.WorldSpeed)
	}
}

func TestPopupDelayAfterHundredDispatches(t *testing.T) {
	s, _, _ := newTestSequencer(t, DefaultTuning(), 1)
	for i := 0; i < 100; i++ {
		s.DispatchNext()
	}
	got := s.Difficulty().PopupDelay
	want := 0.9 * math.Pow(0.991, 100)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("popup delay %v, want %v", got, want)
	}
	if math.Abs(got-0.366) > 0.005 {
		t.Fatalf("popup delay %v not near 0.366", got)
	}
}

func TestPositionWrapsToIndexFive(t *testing.T) {
	tuning := DefaultTuning()
	tuning.TailLength = 3
	s, _, _ := newTestSequencer(t, tuning, 9)
	last := len(s.Sequence()) - 1

	for i := 0; i < 40; i++ {
		before := s.Position()
		s.DispatchNext()
		after := s.Position()
		if after > last {
			t.Fatalf("position %d exceeds last index %d", after, last)
		}
		if before == last && after != 5 {
			t.Fatalf("wrapped to %d, want 5", after)
		}
		if before != last && after != before+1 {
			t.Fatalf("advanced from %d to %d", before, after)
		}
	}
}

func TestPatternSpawns(t *testing.T) {
	cases := []struct {
		pattern Pattern
		never   int
		always  int
		random  int
	}{
		{SingleNoBomb, 1, 0, 0},
		{Single, 0, 0, 1},
		{PairOneBomb, 1, 1, 0},
		{Pair, 0, 0, 2},
		{Triple, 0, 0, 3},
		{Quadruple, 0, 0, 4},
		{Chain, 0, 0, 5},
		{FastChain, 0, 0, 5},
	}

	for _, c := range cases {
		t.Run(c.pattern.String(), func(t *testing.T) {
			s, h, q := newTestSequencer(t, DefaultTuning(), 5)
			s.sequence[0] = c.pattern
			s.DispatchNext()
			q.Advance(10)

			counts := map[ForceBomb]int{}
			for _, call := range h.spawns {
				counts[call.force]++
			}
			if counts[BombNever] != c.never || counts[BombAlways] != c.always || counts[BombRandom] != c.random {
				t.Fatalf("counts never=%d always=%d random=%d, want %d/%d/%d",
					counts[BombNever], counts[BombAlways], counts[BombRandom], c.never, c.always, c.random)
			}
		})
	}
}

func TestChainTiming(t *testing.T) {
	cases := []struct {
		pattern Pattern
		div     float64
	}{
		{Chain, 5},
		{FastChain, 10},
	}

	for _, c := range cases {
		t.Run(c.pattern.String(), func(t *testing.T) {
			s, h, q := newTestSequencer(t, DefaultTuning(), 11)
			q.Advance(1.5)
			s.sequence[0] = c.pattern
			start := q.Now()
			s.DispatchNext()
			d := s.Difficulty().ChainDelay
			q.Advance(10)

			if len(h.spawns) != 5 {
				t.Fatalf("spawns = %d, want 5", len(h.spawns))
			}
			for k, call := range h.spawns {
				want := start + float64(k)*d/c.div
				if math.Abs(call.at-want) > 1e-9 {
					t.Fatalf("spawn %d at %v, want %v", k, call.at, want)
				}
			}
		})
	}
}

func TestOnTickSchedulesOnce(t *testing.T) {
	s, h, q := newTestSequencer(t, DefaultTuning(), 2)
	s.sequence[0] = Single
	s.DispatchNext()
	if s.Pending() {
		t.Fatalf("dispatch should clear the pending flag")
	}

	before := q.Len()
	s.OnTick()
	if !s.Pending() {
		t.Fatalf("empty active set should queue a dispatch")
	}
	if q.Len() != before+1 {
		t.Fatalf("queue grew by %d, want 1", q.Len()-before)
	}
	s.OnTick()
	if q.Len() != before+1 {
		t.Fatalf("second poll scheduled another dispatch")
	}

	popup := s.Difficulty().PopupDelay
	spawned := len(h.spawns)
	q.Advance(popup - 1e-6)
	if len(h.spawns) != spawned {
		t.Fatalf("dispatch fired before the popup delay")
	}
	q.Advance(2e-6)
	if len(h.spawns) == spawned {
		t.Fatalf("dispatch did not fire after the popup delay")
	}
}

func TestOnTickWaitsForClearScreen(t *testing.T) {
	s, h, q := newTestSequencer(t, DefaultTuning(), 2)
	s.DispatchNext()
	h.active = 2
	before := q.Len()
	s.OnTick()
	if s.Pending() || q.Len() != before {
		t.Fatalf("poll with live enemies should not schedule")
	}
}

func TestStartSchedulesInitialDispatch(t *testing.T) {
	s, h, q := newTestSequencer(t, DefaultTuning(), 4)
	s.Start()
	s.OnTick()
	if q.Len() != 1 {
		t.Fatalf("poll before the first dispatch should not schedule, queue=%d", q.Len())
	}
	q.Advance(1.99)
	if len(h.spawns) != 0 {
		t.Fatalf("first dispatch fired early")
	}
	q.Advance(0.02)
	if len(h.spawns) != 1 || h.spawns[0].force != BombNever {
		t.Fatalf("first dispatch should spawn one bomb-free enemy, got %+v", h.spawns)
	}
	if s.Dispatches() != 1 || s.Position() != 1 {
		t.Fatalf("dispatches=%d position=%d, want 1/1", s.Dispatches(), s.Position())
	}
}

func TestStopCancelsChainSpawns(t *testing.T) {
	s, h, q := newTestSequencer(t, DefaultTuning(), 8)
	s.sequence[0] = Chain
	s.DispatchNext()
	s.OnTick()

	if n := s.Stop(); n != 5 {
		t.Fatalf("Stop cancelled %d tasks, want 4 chain spawns + 1 dispatch", n)
	}
	q.Advance(10)
	if len(h.spawns) != 1 {
		t.Fatalf("spawns after stop = %d, want only the immediate one", len(h.spawns))
	}
	s.DispatchNext()
	s.OnTick()
	if len(h.spawns) != 1 || s.Dispatches() != 1 {
		t.Fatalf("stopped sequencer kept dispatching")
	}
}

func TestNewRejectsBadTuning(t *testing.T) {
	bad := DefaultTuning()
	bad.PopupDecay = 1.2
	if _, err := New(bad, &fakeHost{clock: timer.NewQueue()}, timer.NewQueue(), nil); err == nil {
		t.Fatalf("expected an error for growing popup delay")
	}
}
