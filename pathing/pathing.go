// Package pathing implements grid reachability and range queries: a
// movement-budget-bounded Dijkstra search and Manhattan-distance attack
// range (spec.md §3.2, with the range metric Open Question resolved to
// Manhattan per spec.md's own note).
package pathing

import (
	"container/heap"

	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/unit"
)

var neighborOffsets = [4]geom.Vector2{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// node is one entry in the Dijkstra frontier.
type node struct {
	pos   geom.Vector2
	cost  int
	index int
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	// Deterministic tie-break: lower y, then lower x (spec.md §3.2).
	if h[i].pos.Y != h[j].pos.Y {
		return h[i].pos.Y < h[j].pos.Y
	}
	return h[i].pos.X < h[j].pos.X
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// Reachable runs a Dijkstra search from origin bounded by budget movement
// points, treating tiles occupied by a living unit (other than the
// mover) as impassable. It returns the minimum movement cost to reach
// every tile within budget, keyed by position; origin itself is always
// included at cost 0.
func Reachable(m *grid.Map, roster *unit.Roster, origin geom.Vector2, budget int, moverID unit.ID) map[geom.Vector2]int {
	costs := make(map[geom.Vector2]int)
	costs[origin] = 0

	frontier := &nodeHeap{{pos: origin, cost: 0}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(*node)
		if best, ok := costs[cur.pos]; ok && cur.cost > best {
			continue
		}

		for _, off := range neighborOffsets {
			next := cur.pos.Add(off)
			if !m.InBounds(next) {
				continue
			}
			tile, err := m.Tile(next)
			if err != nil || tile.Impassable() {
				continue
			}
			if occupant, ok := roster.At(next); ok && occupant.IsAlive() && occupant.ID() != moverID {
				continue
			}

			newCost := cur.cost + tile.MovementCost
			if newCost > budget {
				continue
			}
			if best, ok := costs[next]; ok && best <= newCost {
				continue
			}
			costs[next] = newCost
			heap.Push(frontier, &node{pos: next, cost: newCost})
		}
	}

	return costs
}

// InRange reports whether target is within [rangeMin, rangeMax] Manhattan
// tiles of origin, inclusive on both ends.
func InRange(origin, target geom.Vector2, rangeMin, rangeMax int) bool {
	d := origin.ManhattanDistance(target)
	return d >= rangeMin && d <= rangeMax
}

// TargetsInRange returns every living unit on the opposing roster subset
// within [rangeMin, rangeMax] Manhattan tiles of origin, sorted by
// ascending distance then by (y, x) for determinism.
func TargetsInRange(origin geom.Vector2, candidates []*unit.Unit, rangeMin, rangeMax int) []*unit.Unit {
	type scored struct {
		u    *unit.Unit
		dist int
	}
	var scoredList []scored
	for _, u := range candidates {
		if !u.IsAlive() {
			continue
		}
		d := origin.ManhattanDistance(u.Position())
		if d >= rangeMin && d <= rangeMax {
			scoredList = append(scoredList, scored{u: u, dist: d})
		}
	}

	for i := 1; i < len(scoredList); i++ {
		for j := i; j > 0; j-- {
			a, b := scoredList[j-1], scoredList[j]
			swap := a.dist > b.dist
			if a.dist == b.dist {
				pa, pb := a.u.Position(), b.u.Position()
				if pa.Y != pb.Y {
					swap = pa.Y > pb.Y
				} else {
					swap = pa.X > pb.X
				}
			}
			if !swap {
				break
			}
			scoredList[j-1], scoredList[j] = scoredList[j], scoredList[j-1]
		}
	}

	out := make([]*unit.Unit, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.u
	}
	return out
}
