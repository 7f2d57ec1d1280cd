package building

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/prng"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// RawOreSmeltTime is how long a Furnace takes to smelt one unit of RawOre.
const RawOreSmeltTime = 30.0

// ExcavateOreAmount is how much RawOre an Excavator gains when an
// excavation completes.
const ExcavateOreAmount = 5

// TickContext bundles everything a Building needs to advance one tick,
// beyond its own fields. PowerRatio is the colony-wide
// min(1, supply/demand) arbitration factor computed once per tick by the
// game package before any building ticks.
type TickContext struct {
	Tiles       *tileworld.Tiles
	Transports  *core.EntityStore[transport.Transport]
	GlobalTasks *core.EntityStore[globaltask.GlobalTask]
	PowerRatio  float64
	Holders     []pushpull.Holder
	RNG         *prng.Xor128
	// Occupied reports whether another building's footprint already
	// covers pos, used by the Excavator's self-dispatch pathing so it
	// doesn't walk (or dig) through a neighboring building.
	Occupied func(pos core.Pos) bool
}

// Tick advances the building's current task, and for buildings with
// always-on behavior (Excavator's continuous ore output and
// self-dispatch, Furnace's smelting, Assembler's recipe pull/push)
// applies that behavior first.
func (b *Building) Tick(ctx TickContext) {
	switch b.Type {
	case Excavator:
		b.tickExcavator(ctx)
	case Furnace:
		b.tickFurnace(ctx)
	case Assembler:
		b.tickAssembler(ctx)
	}
	b.advanceTask(ctx)
}

func (b *Building) tickExcavator(ctx TickContext) {
	pushpull.PushOutputs(ctx.Tiles, ctx.Transports, b, ctx.Holders, func(itemtype.ItemType) bool { return true })
	if b.Task.Kind != TaskNone {
		return
	}
	ctx.GlobalTasks.Items(func(id core.EntityID, gt *globaltask.GlobalTask) {
		if b.Task.Kind != TaskNone || gt.Kind != globaltask.Excavate {
			return
		}
		b.dispatchExcavate(ctx, globaltask.ID(id), gt.Pos)
	})
}

// dispatchExcavate sends an idle Excavator building to claim a pending
// Excavate global task: directly, if already adjacent, or via a Move leg
// first.
func (b *Building) dispatchExcavate(ctx TickContext, gtID globaltask.ID, target core.Pos) {
	path, ok := walkPath(ctx, b.Pos, target)
	if !ok {
		return
	}
	if len(path) <= 1 {
		if d, ok := directionBetween(b.Pos, target); ok {
			b.Direction = &d
			b.Task = NewExcavateTask(d, gtID)
		}
		return
	}
	// path is [target, ..., step-after-b.Pos]; strip the target tile
	// itself (the building only walks up to the tile before it, then digs).
	walk := path[1:]
	if len(walk) == 0 {
		return
	}
	last := path[0]
	nextToLast := walk[0]
	if d, ok := directionBetween(nextToLast, last); ok {
		b.Task = NewMoveToExcavateTask(walk, d, gtID)
	}
}

func (b *Building) tickFurnace(ctx TickContext) {
	pushpull.PushOutputs(ctx.Tiles, ctx.Transports, b, ctx.Holders, func(ty itemtype.ItemType) bool {
		return ty != itemtype.RawOre
	})
	need := itemtype.Inventory{itemtype.RawOre: 1}
	pushpull.PullInputs(ctx.Tiles, ctx.Transports, b.Expected, need, b.Pos, b.InvSize(), b.Inventory, ctx.Holders)
	if b.Task.Kind != TaskNone || b.Inventory.Get(itemtype.RawOre) < 1 {
		return
	}
	b.Inventory.Add(itemtype.RawOre, -1)
	b.Task = NewAssembleTask(RawOreSmeltTime, smeltRoll(ctx.RNG))
}

// smeltRoll picks the furnace's smelting yield: 4/7 Cilicate, 2/7
// IronIngot, 1/7 CopperIngot, matching the original's dice distribution.
func smeltRoll(rng *prng.Xor128) itemtype.Inventory {
	roll := rng.NextRange(7)
	switch {
	case roll < 4:
		return itemtype.Inventory{itemtype.Cilicate: 1}
	case roll < 6:
		return itemtype.Inventory{itemtype.IronIngot: 1}
	default:
		return itemtype.Inventory{itemtype.CopperIngot: 1}
	}
}

func (b *Building) tickAssembler(ctx TickContext) {
	pushpull.PushOutputs(ctx.Tiles, ctx.Transports, b, ctx.Holders, func(itemtype.ItemType) bool { return true })
	if b.Recipe < 0 {
		return
	}
	recipes := itemtype.AssemblerRecipes()
	if b.Recipe >= len(recipes) {
		return
	}
	recipe := recipes[b.Recipe]
	pushpull.PullInputs(ctx.Tiles, ctx.Transports, b.Expected, recipe.Inputs, b.Pos, b.InvSize(), b.Inventory, ctx.Holders)
	if b.Task.Kind != TaskNone {
		return
	}
	for ty, need := range recipe.Inputs {
		if b.Inventory.Get(ty) < need {
			return
		}
	}
	for ty, need := range recipe.Inputs {
		b.Inventory.Add(ty, -need)
	}
	b.Task = NewAssembleTask(recipe.Time, recipe.Outputs.Clone())
}

func (b *Building) advanceTask(ctx TickContext) {
	switch b.Task.Kind {
	case TaskExcavate:
		gt := ctx.GlobalTasks.Get(core.EntityID(b.Task.GlobalID))
		if gt == nil {
			b.Task = NoneTask()
			return
		}
		gt.T -= ExcavateSpeed * ctx.PowerRatio
		if gt.T <= 0 {
			b.Inventory.Add(itemtype.RawOre, ExcavateOreAmount)
			b.Task = NoneTask()
		}
	case TaskMove:
		if processMove(&b.Task.T, &b.Task.Path, ctx.PowerRatio, &b.Pos, &b.Direction) {
			b.Task = NoneTask()
		}
	case TaskMoveToExcavate:
		if processMove(&b.Task.T, &b.Task.Path, ctx.PowerRatio, &b.Pos, &b.Direction) {
			dir := b.Task.TargetDir
			target := b.Task.TargetID
			b.Direction = &dir
			b.Task = NewExcavateTask(dir, target)
		}
	case TaskAssemble:
		if b.Task.T <= 0 {
			count := b.Task.Outputs.CountableSize() + b.Inventory.CountableSize()
			if count <= b.Type.Capacity() {
				b.Inventory.Merge(b.Task.Outputs)
				b.Task = NoneTask()
			}
		} else {
			b.Task.T -= ctx.PowerRatio
			if b.Task.T < 0 {
				b.Task.T = 0
			}
		}
	}
}

// processMove advances a Move/MoveToExcavate leg by one step when its
// timer elapses, matching the original's process_move.
func processMove(t *float64, path *[]core.Pos, powerRatio float64, pos *core.Pos, dir **core.Direction) bool {
	nextT := *t - powerRatio
	if nextT <= 0 {
		if len(*path) == 0 {
			return true
		}
		next := (*path)[len(*path)-1]
		*path = (*path)[:len(*path)-1]
		*pos = next
		if len(*path) > 0 {
			nextNext := (*path)[len(*path)-1]
			if d, ok := directionBetween(*pos, nextNext); ok {
				*dir = &d
			}
		}
		*t = nextT + MoveTime
		return false
	}
	if len(*path) > 0 {
		if d, ok := directionBetween(*pos, (*path)[len(*path)-1]); ok {
			*dir = &d
		}
	}
	*t = nextT
	return false
}

func directionBetween(from, to core.Pos) (core.Direction, bool) {
	return core.DirectionFromVec(to.Sub(from))
}
