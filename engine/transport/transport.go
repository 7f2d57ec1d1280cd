// Package transport implements the in-flight item carriers that ride the
// conveyor network between buildings and constructions, and their
// per-tick movement/delivery state machine (grounded on
// original_source/game-logic/src/transport.rs's process_transports).
package transport

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
)

// ID identifies a Transport in its EntityStore.
type ID core.EntityID

// Transport is one reserved shipment of a single item type riding the
// conveyor belts from Src to Dest.
type Transport struct {
	Src, Dest core.Pos
	Item      itemtype.ItemType
	Amount    int
	// Path is the remaining route, ordered [dest, ..., step-after-current],
	// consumed by popping its last element each time the transport
	// advances one tile — the same convention pathfind.FindPath produces.
	Path []core.Pos
}

// New constructs a Transport that will ride path (as produced by the
// pathfind package) from src to dest.
func New(src, dest core.Pos, item itemtype.ItemType, amount int, path []core.Pos) Transport {
	return Transport{Src: src, Dest: dest, Item: item, Amount: amount, Path: append([]core.Pos(nil), path...)}
}

// Pos returns the transport's current tile: the next hop still in Path,
// or Dest once the path has been fully consumed.
func (t *Transport) Pos() core.Pos {
	if len(t.Path) == 0 {
		return t.Dest
	}
	return t.Path[len(t.Path)-1]
}

// Advance pops the next hop off the path, returning true once the
// transport has arrived (path exhausted) — mirrors the original's
// per-tick path.pop() step.
func (t *Transport) Advance() (arrived bool) {
	if len(t.Path) == 0 {
		return true
	}
	t.Path = t.Path[:len(t.Path)-1]
	return len(t.Path) == 0
}
