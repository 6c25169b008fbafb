package core

import (
	"container/heap"
	"time"
)

// Scheduler is a logical-clock task queue.
// Tasks run in (due time, insertion order) order, so two tasks due at the same
// instant always run in the order they were scheduled. Time only moves when the
// owner advances it; nothing here reads the wall clock.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks taskHeap
}

type task struct {
	due time.Duration
	seq uint64
	fn  func()
}

type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// NewScheduler creates a scheduler at logical time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run d after the current logical time.
// Negative delays are treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.tasks, task{due: s.now + d, seq: s.seq, fn: fn})
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return s.tasks.Len()
}

// Step runs the next due task, moving the clock forward to its due time.
// Returns false when the queue is empty.
func (s *Scheduler) Step() bool {
	if s.tasks.Len() == 0 {
		return false
	}
	t := heap.Pop(&s.tasks).(task)
	if t.due > s.now {
		s.now = t.due
	}
	t.fn()
	return true
}

// Advance runs every task due within d of now (including tasks scheduled by
// those tasks) and leaves the clock at now+d. Returns the number of tasks run.
func (s *Scheduler) Advance(d time.Duration) int {
	deadline := s.now + d
	ran := 0
	for s.tasks.Len() > 0 && s.tasks[0].due <= deadline {
		s.Step()
		ran++
	}
	if s.now < deadline {
		s.now = deadline
	}
	return ran
}

// RunUntil steps the queue until done reports true or the queue drains.
// Returns whether done was satisfied.
func (s *Scheduler) RunUntil(done func() bool) bool {
	for !done() {
		if !s.Step() {
			return done()
		}
	}
	return true
}
