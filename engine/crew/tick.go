package crew

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pathfind"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// ConstructionTarget is a game-assembled snapshot of one construction site
// a crew might work on, used for idle dispatch and to validate a crew
// already mid-Build/Pickup/Deliver still has somewhere to go. Kept as a
// plain struct (rather than crew importing the construction package
// directly) so crew and construction stay mutually independent; the game
// package is the only one that needs to know about both.
type ConstructionTarget struct {
	Pos             core.Pos
	Satisfied       bool
	MissingItem     itemtype.ItemType
	HasMissing      bool
	AlreadyTargeted bool
}

// TickContext bundles the cross-package callbacks a Crew needs to act on
// buildings/constructions without this package importing either.
type TickContext struct {
	Tiles       *tileworld.Tiles
	Transports  *core.EntityStore[transport.Transport]
	GlobalTasks *core.EntityStore[globaltask.GlobalTask]
	Targets     []ConstructionTarget
	// TakeItem removes one unit of item from the building/construction
	// holder at pos, returning whether it succeeded.
	TakeItem func(pos core.Pos, item itemtype.ItemType) bool
	// GiveItem deposits one unit of item into the holder at pos.
	GiveItem func(pos core.Pos, item itemtype.ItemType) bool
	// AddBuildProgress adds delta construction progress at pos.
	AddBuildProgress func(pos core.Pos, delta float64)
	// FindItemSource returns a building/construction position holding
	// item, if any.
	FindItemSource func(item itemtype.ItemType) (core.Pos, bool)
	// HomePos resolves a crew's home cabin handle to its current position.
	HomePos func(home core.EntityID) (core.Pos, bool)
}

func walkPassable(ctx TickContext) pathfind.Passable {
	return func(pos core.Pos) bool {
		return ctx.Tiles.Get(pos).State == tileworld.Empty
	}
}

// Tick advances one crew member's task by one step.
func (c *Crew) Tick(ctx TickContext) {
	if len(c.Path) > 0 {
		c.Pos = c.Path[len(c.Path)-1]
		c.Path = c.Path[:len(c.Path)-1]
		if len(c.Path) > 0 {
			return
		}
		// Arrived — fall through to act on the task this tick.
	}
	switch c.Task.Kind {
	case TaskExcavate:
		c.processExcavate(ctx)
	case TaskBuild:
		c.processBuild(ctx)
	case TaskPickup:
		c.processPickup(ctx)
	case TaskDeliver:
		c.processDeliver(ctx)
	case TaskReturn:
		c.processReturn(ctx)
	case TaskIdle:
		c.processIdle(ctx)
	case TaskNone:
		c.Task = IdleTask(0)
	}
}

func (c *Crew) processExcavate(ctx TickContext) {
	gt := ctx.GlobalTasks.Get(core.EntityID(c.Task.GlobalID))
	if gt == nil {
		c.Task = IdleTask(0)
		return
	}
	gt.T -= ExcavateLaborRate
	if gt.T <= 0 {
		c.Task = IdleTask(0)
	}
}

func (c *Crew) processBuild(ctx TickContext) {
	target, ok := findTarget(ctx, c.Task.Pos)
	if !ok {
		c.Task = IdleTask(0)
		return
	}
	if !target.Satisfied {
		c.Task = IdleTask(0)
		return
	}
	ctx.AddBuildProgress(c.Task.Pos, BuildProgressRate)
	c.Task = IdleTask(0)
}

func (c *Crew) processPickup(ctx TickContext) {
	src, dest, item := c.Task.Pos, c.Task.Dest, c.Task.Item
	if ctx.TakeItem(src, item) {
		c.Carrying = item
		c.Amount = 1
		c.startWalk(ctx, dest)
		c.Task = DeliverTask(dest, item)
		return
	}
	// Fall back to intercepting an in-flight transport already headed to
	// src, taking one unit from it directly.
	found := false
	ctx.Transports.Iter(func(t *transport.Transport) {
		if found || len(t.Path) == 0 || t.Path[0] != src || t.Item != item || t.Amount <= 0 {
			return
		}
		t.Amount--
		found = true
	})
	if !found {
		c.Task = IdleTask(5)
		return
	}
	c.Carrying = item
	c.Amount = 1
	c.startWalk(ctx, dest)
	c.Task = DeliverTask(dest, item)
}

func (c *Crew) processDeliver(ctx TickContext) {
	if ctx.GiveItem(c.Task.Dest, c.Task.Item) {
		c.Amount = 0
	}
	c.Task = IdleTask(0)
}

func (c *Crew) processReturn(ctx TickContext) {
	c.Task = IdleTask(10)
}

// processIdle implements the three-way fallback: work a satisfied,
// untargeted construction if one exists; else walk home; else wait.
func (c *Crew) processIdle(ctx TickContext) {
	if c.Task.IdleTicks > 0 {
		c.Task.IdleTicks--
		return
	}
	for _, t := range ctx.Targets {
		if t.AlreadyTargeted {
			continue
		}
		if t.Satisfied {
			if c.startWalk(ctx, t.Pos) {
				c.Task = BuildTask(t.Pos)
				return
			}
			continue
		}
		if t.HasMissing {
			if src, ok := ctx.FindItemSource(t.MissingItem); ok {
				if c.startWalk(ctx, src) {
					c.Task = PickupTask(src, t.Pos, t.MissingItem)
					return
				}
			}
		}
	}
	if home, ok := ctx.HomePos(c.Home); ok && home != c.Pos {
		if c.startWalk(ctx, home) {
			c.Task = ReturnTask()
			return
		}
	}
	c.Task = IdleTask(10)
}

// startWalk computes a walking path to dest and, if found, installs it,
// returning whether a path exists (the path itself is consumed one hop
// per tick by Tick's leading block).
func (c *Crew) startWalk(ctx TickContext, dest core.Pos) bool {
	if dest == c.Pos {
		return true
	}
	path, ok := pathfind.FindPath(c.Pos, dest, walkPassable(ctx))
	if !ok {
		return false
	}
	c.Path = path
	return true
}

func findTarget(ctx TickContext, pos core.Pos) (ConstructionTarget, bool) {
	for _, t := range ctx.Targets {
		if t.Pos == pos {
			return t, true
		}
	}
	return ConstructionTarget{}, false
}
