package building

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/pathfind"
	"github.com/1siamBot/colonysim/engine/tileworld"
)

// walkPath finds a walking route for a mobile Excavator building: tiles
// must be excavated and powered, and not occupied by another building's
// footprint, except the destination itself which is always allowed.
func walkPath(ctx TickContext, from, to core.Pos) ([]core.Pos, bool) {
	passable := func(pos core.Pos) bool {
		if ctx.Occupied != nil && ctx.Occupied(pos) {
			return false
		}
		cell := ctx.Tiles.Get(pos)
		return cell.State == tileworld.Empty && cell.PowerGrid
	}
	return pathfind.FindPath(from, to, passable)
}
