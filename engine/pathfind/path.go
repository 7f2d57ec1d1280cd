// Package pathfind implements the colony's tile-walk and conveyor-walk
// pathfinding, grounded on the teacher engine's container/heap-based A*
// (engine/pathfind/astar.go) but reworked to 4-directional, uniform-cost
// Dijkstra search over the domain's CPos/Direction model instead of the
// teacher's 8-directional diagonal-aware grid.
package pathfind

import (
	"container/heap"

	"github.com/1siamBot/colonysim/engine/core"
)

// Passable reports whether pos may be entered while walking (crew feet,
// mobile building treads — not conveyor belts, which use the level-aware
// search in multipath.go).
type Passable func(pos core.Pos) bool

type walkNode struct {
	pos  core.Pos
	cost int
}

type walkHeap []walkNode

func (h walkHeap) Len() int            { return len(h) }
func (h walkHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h walkHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *walkHeap) Push(x interface{}) { *h = append(*h, x.(walkNode)) }
func (h *walkHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// FindPath searches for a 4-directional walking path from start to goal,
// where passable(pos) gates whether pos may be entered. The goal itself is
// never passed to passable and is always enterable, as the original does
// by special-casing `pos == goal`.
//
// The returned path excludes start, runs [goal, ..., step-after-start], and
// is meant to be consumed by repeatedly popping its last element to obtain
// the next step to move into.
func FindPath(start, goal core.Pos, passable Passable) ([]core.Pos, bool) {
	if start == goal {
		return nil, true
	}
	cameFrom := map[core.Pos]core.Pos{}
	visited := map[core.Pos]int{start: 0}
	h := &walkHeap{{pos: start, cost: 0}}
	for h.Len() > 0 {
		cur := heap.Pop(h).(walkNode)
		if best, ok := visited[cur.pos]; ok && cur.cost > best {
			continue
		}
		if cur.pos == goal {
			return reconstruct(cameFrom, start, goal), true
		}
		for _, d := range core.AllDirections() {
			next := cur.pos.Add(d.ToVec())
			if next != goal && !passable(next) {
				continue
			}
			nextCost := cur.cost + 1
			if best, ok := visited[next]; ok && best <= nextCost {
				continue
			}
			visited[next] = nextCost
			cameFrom[next] = cur.pos
			heap.Push(h, walkNode{pos: next, cost: nextCost})
		}
	}
	return nil, false
}

// reconstruct walks the came-from chain from goal back to (but excluding)
// start, yielding [goal, ..., step-after-start].
func reconstruct(cameFrom map[core.Pos]core.Pos, start, goal core.Pos) []core.Pos {
	path := []core.Pos{}
	for p := goal; p != start; p = cameFrom[p] {
		path = append(path, p)
	}
	return path
}
