// Package pushpull implements the conveyor-network item routing that
// drives Buildings and Constructions: pulling missing recipe ingredients
// from whatever building can supply them, and pushing finished outputs out
// to whatever storage has room. It is deliberately decoupled from the
// building and construction packages (it knows only the generic Holder
// interface below) so both of those packages can call into it without
// creating an import cycle.
package pushpull

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pathfind"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Holder is anything with a footprint and an item inventory that can act
// as a source or sink for pushed/pulled items: Building and Construction
// both satisfy this structurally, without importing this package.
type Holder interface {
	InvPos() core.Pos
	InvSize() [2]int
	Inv() itemtype.Inventory
	// Capacity returns the maximum total countable items this holder can
	// hold, or a negative number for "unlimited" (construction ingredient
	// buffers have no cap of their own beyond the recipe requirement).
	Capacity() int
	// ExpectedIDs returns the holder's own set of outstanding in-flight
	// transport ids, so a transport reserved against it is reflected in
	// its own admission accounting before it actually lands.
	ExpectedIDs() map[transport.ID]struct{}
}

// MoveItemTime is a per-tile item travel duration. No transport reads it:
// a transport advances one tile per tick.
const MoveItemTime = 2.0

// neighborsOfRect returns every tile adjacent to the size x size rect
// rooted at pos, the set a path may freely depart onto regardless of
// conveyor orientation (an item leaving a building isn't itself riding a
// belt yet, so there's no "from" direction to match against).
func neighborsOfRect(pos core.Pos, size [2]int) map[core.Pos]struct{} {
	set := map[core.Pos]struct{}{}
	for dy := 0; dy < size[1]; dy++ {
		for dx := 0; dx < size[0]; dx++ {
			tile := pos.Add(core.Pos{int32(dx), int32(dy)})
			for _, d := range core.AllDirections() {
				set[tile.Add(d.ToVec())] = struct{}{}
			}
		}
	}
	return set
}

// prevTileConnectsTo reports whether the tile behind at (the one the item
// is traveling from, in direction from) actually routes toward at, so a
// path can't hop onto a conveyor segment disconnected from the one before
// it.
func prevTileConnectsTo(tiles *tileworld.Tiles, from core.Direction, at core.Pos) bool {
	prev := tiles.Get(at.Sub(from.ToVec()))
	return prev.Conveyor.HasTo(from)
}

// conveyorPassable reports whether an item may step into `at` having
// traveled in direction `from`, based on the conveyor installed there. A
// tile adjacent to the path's own starting footprint is passable
// unconditionally (as long as it has some conveyor at all), so an item can
// depart a building onto the first belt tile without that belt itself
// needing to face back toward the building.
func conveyorPassable(tiles *tileworld.Tiles, from core.Direction, at core.CPos, startNeighbors map[core.Pos]struct{}) bool {
	cell := tiles.Get(at.Pos)
	if cell.Conveyor.IsSome() {
		if _, ok := startNeighbors[at.Pos]; ok {
			return true
		}
	}
	if !prevTileConnectsTo(tiles, from, at.Pos) {
		return false
	}
	return cell.Conveyor.HasFrom(from.Reverse())
}

// touchesVertical reports whether conv connects to Up or Down at all,
// either as an entry or exit side.
func touchesVertical(conv tileworld.Conveyor) bool {
	return conv.HasFrom(core.Up) || conv.HasFrom(core.Down) || conv.HasTo(core.Up) || conv.HasTo(core.Down)
}

// conveyorShouldExpand decides which conveyor level(s) may be used to
// step out of `at` in direction `to`, having arrived from `from`. A move
// forks onto both levels only when stepping onto a stacked conveyor tile
// that actually crosses the current one vertically; stepping out of an
// already-stacked tile on anything but a straight leg is rejected, since a
// Two only supports crossing through, not turning on, either of its
// levels.
func conveyorShouldExpand(tiles *tileworld.Tiles, to core.Direction, at core.CPos, from core.Direction) pathfind.LevelTarget {
	cell := tiles.Get(at.Pos)
	next := tiles.Get(at.Pos.Add(to.ToVec()))
	if next.Conveyor.HasTwo() && (cell.Conveyor.HasTo(core.Up) || cell.Conveyor.HasTo(core.Down)) && touchesVertical(next.Conveyor) {
		return pathfind.LevelTwo
	}
	if cell.Conveyor.HasTwo() {
		if to == from {
			return pathfind.LevelOne
		}
		return pathfind.LevelNone
	}
	return pathfind.LevelOne
}

// FindConveyorPath finds an item-routable path over installed conveyors
// from a size x size holder rooted at src to dest.
func FindConveyorPath(tiles *tileworld.Tiles, src core.Pos, srcSize [2]int, dest core.Pos) ([]core.Pos, bool) {
	startNeighbors := neighborsOfRect(src, srcSize)
	return pathfind.FindMultipathShouldExpand(src, dest,
		func(from core.Direction, at core.CPos) bool { return conveyorPassable(tiles, from, at, startNeighbors) },
		func(to core.Direction, at core.CPos, from core.Direction) pathfind.LevelTarget {
			return conveyorShouldExpand(tiles, to, at, from)
		})
}

// rectContains reports whether pos falls within the size x size footprint
// rooted at origin.
func rectContains(origin core.Pos, size [2]int, pos core.Pos) bool {
	return origin[0] <= pos[0] && pos[0] < origin[0]+int32(size[0]) &&
		origin[1] <= pos[1] && pos[1] < origin[1]+int32(size[1])
}

// ExpectedDeliveries sums the item amounts carried by the transports in
// ids that are still in flight (tracked via the caller's expected-ids
// set), so a recipient doesn't double-pull while a delivery is already on
// its way.
func ExpectedDeliveries(transports *core.EntityStore[transport.Transport], ids map[transport.ID]struct{}) itemtype.Inventory {
	out := itemtype.NewInventory()
	for id := range ids {
		t := transports.Get(core.EntityID(id))
		if t == nil {
			continue
		}
		out.Add(t.Item, t.Amount)
	}
	return out
}

// PullInputs looks for missing recipe ingredients (need, compared against
// have) among holders reachable from destPos by conveyor, and for each one
// found, reserves a Transport carrying one unit, decrementing the source
// holder's inventory immediately and recording the transport id into
// expected so the caller won't double-count it.
func PullInputs(
	tiles *tileworld.Tiles,
	transports *core.EntityStore[transport.Transport],
	expected map[transport.ID]struct{},
	need itemtype.Inventory,
	destPos core.Pos,
	destSize [2]int,
	have itemtype.Inventory,
	holders []Holder,
) {
	inFlight := ExpectedDeliveries(transports, expected)
	for _, ty := range need.Keys() {
		required := need.Get(ty)
		already := have.Get(ty) + inFlight.Get(ty)
		if already >= required {
			continue
		}
		for _, holder := range holders {
			if rectContains(holder.InvPos(), holder.InvSize(), destPos) {
				continue
			}
			if holder.Inv().Get(ty) <= 0 {
				continue
			}
			path, ok := FindConveyorPath(tiles, holder.InvPos(), holder.InvSize(), destPos)
			if !ok {
				continue
			}
			holder.Inv().Add(ty, -1)
			id := transports.Insert(transport.New(holder.InvPos(), destPos, ty, 1, path))
			expected[transport.ID(id)] = struct{}{}
			break
		}
	}
}

// PushOutputs pushes one unit of each item in source's inventory that
// filter accepts to any holder with remaining capacity reachable by
// conveyor, decrementing source and reserving a Transport per item pushed.
func PushOutputs(
	tiles *tileworld.Tiles,
	transports *core.EntityStore[transport.Transport],
	source Holder,
	holders []Holder,
	filter func(itemtype.ItemType) bool,
) {
	for _, ty := range source.Inv().Keys() {
		if !filter(ty) {
			continue
		}
		if source.Inv().Get(ty) <= 0 {
			continue
		}
		for _, holder := range holders {
			if rectContains(holder.InvPos(), holder.InvSize(), source.InvPos()) {
				continue
			}
			if cap := holder.Capacity(); cap >= 0 {
				inFlight := ExpectedDeliveries(transports, holder.ExpectedIDs())
				if holder.Inv().CountableSize()+inFlight.CountableSize() >= cap {
					continue
				}
			}
			path, ok := FindConveyorPath(tiles, source.InvPos(), source.InvSize(), holder.InvPos())
			if !ok {
				continue
			}
			source.Inv().Add(ty, -1)
			id := transports.Insert(transport.New(source.InvPos(), holder.InvPos(), ty, 1, path))
			holder.ExpectedIDs()[transport.ID(id)] = struct{}{}
			break
		}
	}
}

// SendItem explicitly routes amount units of item from src to dest,
// failing with a typed error rather than silently skipping, for use by
// command handlers (unlike the per-tick PullInputs/PushOutputs, which skip
// and retry next tick per §7).
func SendItem(
	tiles *tileworld.Tiles,
	transports *core.EntityStore[transport.Transport],
	src, dest core.Pos,
	item itemtype.ItemType,
	amount int,
	have itemtype.Inventory,
) (transport.ID, error) {
	if have.Get(item) < amount {
		return 0, ErrInsufficientItems
	}
	path, ok := FindConveyorPath(tiles, src, [2]int{1, 1}, dest)
	if !ok {
		return 0, ErrNoPath
	}
	have.Add(item, -amount)
	id := transports.Insert(transport.New(src, dest, item, amount, path))
	return transport.ID(id), nil
}
