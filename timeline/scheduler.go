// Package timeline implements the discrete-tick scheduler: a min-priority
// queue ordered by (ready_tick, seq) that hands activation to one unit at
// a time (spec.md §3.4, §4.1).
package timeline

import (
	"container/heap"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

// Entry is one scheduled activation on the timeline.
type Entry struct {
	UnitID    unit.ID
	ReadyTick geom.Tick
	seq       uint64
	index     int // heap bookkeeping
	cancelled bool
}

// entryHeap implements container/heap.Interface, ordering by
// (ReadyTick, seq) ascending — lower tick first, ties broken by
// insertion order so scheduling stays deterministic.
type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].ReadyTick != h[j].ReadyTick {
		return h[i].ReadyTick < h[j].ReadyTick
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*Entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// AliveChecker reports whether a unit is still eligible to be scheduled
// (alive, not removed from the battle). The Scheduler uses this to lazily
// drop tombstoned entries instead of scanning to remove them eagerly.
type AliveChecker func(id unit.ID) bool

// Scheduler is the min-heap timeline. It is not safe for concurrent use;
// the simulation is single-threaded by design (spec.md §2).
type Scheduler struct {
	heap    entryHeap
	nextSeq uint64
	alive   AliveChecker
	byUnit  map[unit.ID]*Entry
}

// NewScheduler builds an empty Scheduler. alive is consulted on Pop/Peek
// to silently discard entries for units that died or left the battle
// since they were scheduled.
func NewScheduler(alive AliveChecker) *Scheduler {
	return &Scheduler{
		heap:   entryHeap{},
		alive:  alive,
		byUnit: make(map[unit.ID]*Entry),
	}
}

// Schedule inserts a new activation for id at readyTick. If the unit
// already has a pending entry, that entry is cancelled first — a unit
// may only ever hold one live slot on the timeline.
func (s *Scheduler) Schedule(id unit.ID, readyTick geom.Tick) {
	if existing, ok := s.byUnit[id]; ok {
		existing.cancelled = true
	}
	e := &Entry{UnitID: id, ReadyTick: readyTick, seq: s.nextSeq}
	s.nextSeq++
	s.byUnit[id] = e
	heap.Push(&s.heap, e)
}

// Cancel tombstones the pending entry for id, if any. The entry is not
// removed from the heap immediately; it is skipped lazily on the next
// Pop/Peek (spec.md §4.1's lazy-deletion note).
func (s *Scheduler) Cancel(id unit.ID) {
	if e, ok := s.byUnit[id]; ok {
		e.cancelled = true
		delete(s.byUnit, id)
	}
}

// Reschedule cancels any pending entry for id and schedules a new one at
// readyTick.
func (s *Scheduler) Reschedule(id unit.ID, readyTick geom.Tick) {
	s.Schedule(id, readyTick)
}

// dropDead discards cancelled or no-longer-alive entries from the top of
// the heap until a valid one surfaces or the heap empties.
func (s *Scheduler) dropDead() {
	for s.heap.Len() > 0 {
		top := s.heap[0]
		if top.cancelled || (s.alive != nil && !s.alive(top.UnitID)) {
			heap.Pop(&s.heap)
			continue
		}
		return
	}
}

// Empty reports whether the timeline has no live entries.
func (s *Scheduler) Empty() bool {
	s.dropDead()
	return s.heap.Len() == 0
}

// Peek returns the next entry to activate without removing it, or an
// error if the timeline is empty.
func (s *Scheduler) Peek() (*Entry, error) {
	s.dropDead()
	if s.heap.Len() == 0 {
		return nil, errs.New(errs.CodeEmptyTimeline, "timeline has no scheduled units")
	}
	return s.heap[0], nil
}

// Pop removes and returns the next entry to activate, or an error if the
// timeline is empty or the surfaced unit is dead (CodeDeadUnitOnTimeline,
// which should be unreachable given dropDead — kept as a defensive
// invariant check).
func (s *Scheduler) Pop() (*Entry, error) {
	s.dropDead()
	if s.heap.Len() == 0 {
		return nil, errs.New(errs.CodeEmptyTimeline, "timeline has no scheduled units")
	}
	e := heap.Pop(&s.heap).(*Entry)
	if s.alive != nil && !s.alive(e.UnitID) {
		return nil, errs.Newf(errs.CodeDeadUnitOnTimeline, "popped dead unit %s", e.UnitID)
	}
	delete(s.byUnit, e.UnitID)
	return e, nil
}

// Preview returns up to n upcoming entries in activation order without
// mutating the scheduler. Cancelled/dead entries are skipped. This backs
// the render package's timeline preview (spec.md §6.2).
func (s *Scheduler) Preview(n int) []Entry {
	cp := make(entryHeap, len(s.heap))
	copy(cp, s.heap)
	for i := range cp {
		dup := *cp[i]
		cp[i] = &dup
	}
	scratch := &Scheduler{heap: cp, alive: s.alive, byUnit: nil, nextSeq: s.nextSeq}

	out := make([]Entry, 0, n)
	for len(out) < n {
		scratch.dropDead()
		if scratch.heap.Len() == 0 {
			break
		}
		e := heap.Pop(&scratch.heap).(*Entry)
		out = append(out, *e)
	}
	return out
}

// Len reports how many entries, live or tombstoned, remain in the heap.
func (s *Scheduler) Len() int { return s.heap.Len() }
