package pathfind

import (
	"container/heap"

	"github.com/1siamBot/colonysim/engine/core"
)

// LevelTarget tells the multipath search how many of a tile's conveyor
// levels a given entering direction may use when expanding the frontier:
// None (the move is not possible at all), One (only the tile's single
// level), or Two (the search should fork and also try the tile's second
// level) — this is what lets a path legally cross the same stacked
// conveyor tile twice, once per level, without treating it as revisiting
// the same search state.
type LevelTarget uint8

const (
	LevelNone LevelTarget = iota
	LevelOne
	LevelTwo
)

// CPassable reports whether a conveyor-level move into `at`, having come
// from the `from` direction, is legal.
type CPassable func(from core.Direction, at core.CPos) bool

// ShouldExpand decides, for a candidate move in direction `to` out of
// `at` (having arrived from `from`), which of the tile's levels the
// search may use next.
type ShouldExpand func(to core.Direction, at core.CPos, from core.Direction) LevelTarget

type cNode struct {
	at   core.CPos
	cost int
}

type cHeap []cNode

func (h cHeap) Len() int            { return len(h) }
func (h cHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h cHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cHeap) Push(x interface{}) { *h = append(*h, x.(cNode)) }
func (h *cHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

type cameEntry struct {
	from core.CPos
	dir  core.Direction
}

// FindMultipathShouldExpand is the conveyor-aware pathfinder transports
// use: a Dijkstra search over CPos (tile + conveyor level) gated by
// passable and should_expand, so a path may legally use a stacked
// conveyor's two levels to cross itself once each.
//
// The returned path excludes start, runs [goal, ..., step-after-start],
// consumed the same way as FindPath.
func FindMultipathShouldExpand(start, goal core.Pos, passable CPassable, shouldExpand ShouldExpand) ([]core.Pos, bool) {
	startC := core.CPos{Pos: start, Level: 0}
	visited := map[core.CPos]int{startC: 0}
	came := map[core.CPos]cameEntry{}
	h := &cHeap{{at: startC, cost: 0}}
	var goalC core.CPos
	found := false
	if start == goal {
		return nil, true
	}
	for h.Len() > 0 {
		cur := heap.Pop(h).(cNode)
		if best, ok := visited[cur.at]; ok && cur.cost > best {
			continue
		}
		if cur.at.Pos == goal {
			goalC = cur.at
			found = true
			break
		}
		fromDir, haveFrom := reverseDirOf(came, cur.at)
		for _, d := range core.AllDirections() {
			nextPos := cur.at.Pos.Add(d.ToVec())
			target := shouldExpand(d, cur.at, orElse(haveFrom, fromDir))
			if target == LevelNone {
				continue
			}
			levels := []uint8{0}
			if target == LevelTwo {
				levels = []uint8{0, 1}
			}
			for _, lvl := range levels {
				next := core.CPos{Pos: nextPos, Level: lvl}
				if nextPos != goal && !passable(d, next) {
					continue
				}
				nextCost := cur.cost + 1
				if best, ok := visited[next]; ok && best <= nextCost {
					continue
				}
				visited[next] = nextCost
				came[next] = cameEntry{from: cur.at, dir: d}
				heap.Push(h, cNode{at: next, cost: nextCost})
			}
		}
	}
	if !found {
		return nil, false
	}
	path := []core.Pos{}
	for c := goalC; c != startC; {
		path = append(path, c.Pos)
		ce, ok := came[c]
		if !ok {
			break
		}
		c = ce.from
	}
	return path, true
}

func reverseDirOf(came map[core.CPos]cameEntry, at core.CPos) (core.Direction, bool) {
	ce, ok := came[at]
	if !ok {
		return 0, false
	}
	return ce.dir.Reverse(), true
}

func orElse(ok bool, d core.Direction) core.Direction {
	if ok {
		return d
	}
	return core.Left
}
