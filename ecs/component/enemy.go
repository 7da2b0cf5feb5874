package component

// EnemyKind is what was launched.
type EnemyKind int

const (
	EnemyPenguin EnemyKind = iota
	EnemyFastMover
	EnemyBomb
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyPenguin:
		return "penguin"
	case EnemyFastMover:
		return "fast-mover"
	case EnemyBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Points is the score awarded for slicing the kind.
func (k EnemyKind) Points() int {
	switch k {
	case EnemyPenguin:
		return 1
	case EnemyFastMover:
		return 5
	default:
		return 0
	}
}

type Enemy struct {
	Kind EnemyKind
}

var EnemyComponent = NewComponent[Enemy]()
