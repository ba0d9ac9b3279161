package main

import (
	"container/heap"
	"time"
)

// timer is one pending callback on the world clock
type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x interface{}) { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler runs callbacks on the simulation clock. It is driven by the tick
// loop and never starts goroutines, so callbacks run on the tick's thread.
type Scheduler struct {
	now     time.Duration
	nextSeq uint64
	pending timerHeap
}

// Now returns the simulation time elapsed since the scheduler was created
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by delay
func (s *Scheduler) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.nextSeq++
	heap.Push(&s.pending, &timer{due: s.now + delay, seq: s.nextSeq, fn: fn})
}

// Advance moves the clock forward and runs every callback that is due, in due
// order. Callbacks scheduled while running are honored if they are also due.
func (s *Scheduler) Advance(dt time.Duration) int {
	s.now += dt
	fired := 0
	for len(s.pending) > 0 && s.pending[0].due <= s.now {
		t := heap.Pop(&s.pending).(*timer)
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of callbacks not yet run
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
