// Package timer provides a virtual-clock callback queue driven by the game
// tick. All callbacks run on the caller's goroutine inside Advance.
package timer

import "container/heap"

// Task is a handle to a scheduled callback.
type Task struct {
	at        float64
	seq       uint64
	fn        func()
	index     int
	fired     bool
	cancelled bool
}

// At returns the clock time the task is due.
func (t *Task) At() float64 {
	if t == nil {
		return 0
	}
	return t.at
}

// Cancel prevents the callback from running. It reports whether the call
// stopped a pending task.
func (t *Task) Cancel() bool {
	if t == nil || t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Done reports whether the task has fired or been cancelled.
func (t *Task) Done() bool {
	if t == nil {
		return true
	}
	return t.fired || t.cancelled
}

// Queue orders tasks by due time, FIFO among equal due times.
type Queue struct {
	now   float64
	seq   uint64
	tasks taskHeap
}

func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the current clock time in seconds. While a callback runs this
// is the callback's due time.
func (q *Queue) Now() float64 {
	if q == nil {
		return 0
	}
	return q.now
}

// ScheduleAfter runs fn once delay seconds from Now. Negative delays are
// treated as zero.
func (q *Queue) ScheduleAfter(delay float64, fn func()) *Task {
	if q == nil || fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	q.seq++
	t := &Task{at: q.now + delay, seq: q.seq, fn: fn}
	heap.Push(&q.tasks, t)
	return t
}

// Advance moves the clock forward by dt and fires every task due on the way,
// including tasks scheduled by callbacks that fall inside the window. It
// returns the number of callbacks run.
func (q *Queue) Advance(dt float64) int {
	if q == nil {
		return 0
	}
	if dt < 0 {
		dt = 0
	}
	target := q.now + dt
	fired := 0
	for q.tasks.Len() > 0 {
		next := q.tasks[0]
		if next.at > target {
			break
		}
		heap.Pop(&q.tasks)
		if next.cancelled {
			continue
		}
		if next.at > q.now {
			q.now = next.at
		}
		next.fired = true
		next.fn()
		fired++
	}
	q.now = target
	return fired
}

// CancelAll cancels every pending task and returns how many were cancelled.
func (q *Queue) CancelAll() int {
	if q == nil {
		return 0
	}
	n := 0
	for _, t := range q.tasks {
		if t.Cancel() {
			n++
		}
	}
	q.tasks = q.tasks[:0]
	return n
}

// Len returns the number of pending, uncancelled tasks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	n := 0
	for _, t := range q.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
