package game

import (
	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// IterCell visits every tile in the world, one sample per uniform chunk
// and one per materialized cell otherwise.
func (g *Game) IterCell(fn func(tileworld.TileEntry)) { g.Tiles.Iter(fn) }

// TileAt returns the cell at pos.
func (g *Game) TileAt(pos core.Pos) tileworld.Cell { return g.Tiles.Get(pos) }

// IterBuilding visits every live building.
func (g *Game) IterBuilding(fn func(core.EntityID, *building.Building)) { g.Buildings.Items(fn) }

// IterConstruction visits every live construction.
func (g *Game) IterConstruction(fn func(core.EntityID, *construction.Construction)) {
	g.Constructions.Items(fn)
}

// IterCrew visits every live crew member.
func (g *Game) IterCrew(fn func(core.EntityID, *crew.Crew)) { g.Crews.Items(fn) }

// IterTransport visits every in-flight transport.
func (g *Game) IterTransport(fn func(core.EntityID, *transport.Transport)) {
	g.Transports.Items(fn)
}

// IterGlobalTask visits every colony-wide background task.
func (g *Game) IterGlobalTask(fn func(core.EntityID, *globaltask.GlobalTask)) {
	g.GlobalTasks.Items(fn)
}

// IterConveyorPlan visits every staged (not-yet-committed) conveyor tile —
// here, every conveyor-kind Construction, since this port commits staged
// conveyors straight to Constructions rather than keeping a separate
// preview map.
func (g *Game) IterConveyorPlan(fn func(core.Pos, tileworld.Conveyor)) {
	g.Constructions.Iter(func(c *construction.Construction) {
		if c.Type.Kind == construction.KindConveyor {
			fn(c.Pos, c.Type.Conveyor)
		}
	})
}

// GetGlobalTime returns the current tick count.
func (g *Game) GetGlobalTime() uint64 { return g.GlobalTime }

// NumTransports returns the number of in-flight transports.
func (g *Game) NumTransports() int { return g.Transports.Len() }
