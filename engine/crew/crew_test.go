package crew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

func baseCtx() crew.TickContext {
	tiles := tileworld.NewTiles()
	return crew.TickContext{
		Tiles:       tiles,
		Transports:  core.NewEntityStore[transport.Transport](),
		GlobalTasks: core.NewEntityStore[globaltask.GlobalTask](),
		TakeItem:    func(core.Pos, itemtype.ItemType) bool { return false },
		GiveItem:    func(core.Pos, itemtype.ItemType) bool { return false },
		HomePos:     func(core.EntityID) (core.Pos, bool) { return core.Pos{}, false },
	}
}

func TestCrew_ProcessExcavate_DrainsLaborAndGoesIdleWhenDone(t *testing.T) {
	ctx := baseCtx()
	gt := globaltask.NewExcavate(core.Pos{1, 1})
	gt.T = crew.ExcavateLaborRate
	id := ctx.GlobalTasks.Insert(gt)

	c := crew.New(core.Pos{1, 1}, core.EntityID{})
	c.Task = crew.Task{Kind: crew.TaskExcavate, GlobalID: globaltask.ID(id)}

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
}

func TestCrew_ProcessExcavate_MissingTaskGoesIdleImmediately(t *testing.T) {
	ctx := baseCtx()
	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Task = crew.Task{Kind: crew.TaskExcavate, GlobalID: globaltask.ID(core.EntityID{Index: 99})}

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
}

func TestCrew_ProcessPickup_TakesDirectlyFromBuilding(t *testing.T) {
	ctx := baseCtx()
	ctx.TakeItem = func(pos core.Pos, item itemtype.ItemType) bool {
		return pos == core.Pos{1, 0} && item == itemtype.RawOre
	}

	c := crew.New(core.Pos{1, 0}, core.EntityID{})
	c.Task = crew.PickupTask(core.Pos{1, 0}, core.Pos{3, 0}, itemtype.RawOre)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskDeliver, c.Task.Kind)
	assert.Equal(t, itemtype.RawOre, c.Carrying)
	assert.Equal(t, 1, c.Amount)
}

func TestCrew_ProcessPickup_InterceptsInFlightTransport(t *testing.T) {
	ctx := baseCtx()
	tr := transport.New(core.Pos{1, 0}, core.Pos{5, 0}, itemtype.RawOre, 3, []core.Pos{{1, 0}})
	ctx.Transports.Insert(tr)

	c := crew.New(core.Pos{1, 0}, core.EntityID{})
	c.Task = crew.PickupTask(core.Pos{1, 0}, core.Pos{3, 0}, itemtype.RawOre)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskDeliver, c.Task.Kind)

	remaining := 0
	ctx.Transports.Iter(func(t *transport.Transport) { remaining = t.Amount })
	assert.Equal(t, 2, remaining, "intercepting takes exactly one unit off the transport")
}

func TestCrew_ProcessPickup_FailsAndGoesIdleWhenNothingAvailable(t *testing.T) {
	ctx := baseCtx()
	c := crew.New(core.Pos{1, 0}, core.EntityID{})
	c.Task = crew.PickupTask(core.Pos{1, 0}, core.Pos{3, 0}, itemtype.RawOre)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
	assert.Greater(t, c.Task.IdleTicks, 0)
}

func TestCrew_ProcessDeliver_DropsOffAndGoesIdle(t *testing.T) {
	ctx := baseCtx()
	gave := false
	ctx.GiveItem = func(pos core.Pos, item itemtype.ItemType) bool {
		gave = pos == core.Pos{3, 0} && item == itemtype.RawOre
		return gave
	}

	c := crew.New(core.Pos{3, 0}, core.EntityID{})
	c.Carrying = itemtype.RawOre
	c.Amount = 1
	c.Task = crew.DeliverTask(core.Pos{3, 0}, itemtype.RawOre)

	c.Tick(ctx)
	assert.True(t, gave)
	assert.Equal(t, 0, c.Amount)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
}

func TestCrew_ProcessIdle_DispatchesToSatisfiedConstruction(t *testing.T) {
	ctx := baseCtx()
	ctx.Targets = []crew.ConstructionTarget{
		{Pos: core.Pos{0, 0}, Satisfied: true},
	}

	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Task = crew.IdleTask(0)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskBuild, c.Task.Kind)
	assert.Equal(t, core.Pos{0, 0}, c.Task.Pos)
}

func TestCrew_ProcessIdle_SkipsAlreadyTargetedSites(t *testing.T) {
	ctx := baseCtx()
	ctx.Targets = []crew.ConstructionTarget{
		{Pos: core.Pos{0, 0}, Satisfied: true, AlreadyTargeted: true},
	}

	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Task = crew.IdleTask(0)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind, "an already-targeted site must not be double-assigned")
}

func TestCrew_ProcessIdle_WalksHomeWhenNothingToDo(t *testing.T) {
	ctx := baseCtx()
	// The destination tile is always treated as enterable by FindPath
	// regardless of its own passability, so an adjacent home is reachable
	// even though every other tile defaults to Solid (impassable).
	ctx.HomePos = func(core.EntityID) (core.Pos, bool) { return core.Pos{1, 0}, true }

	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Task = crew.IdleTask(0)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskReturn, c.Task.Kind)
	require.NotEmpty(t, c.Path)
}

func TestCrew_ProcessIdle_CountsDownIdleTicksBeforeRetrying(t *testing.T) {
	ctx := baseCtx()
	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Task = crew.IdleTask(3)

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
	assert.Equal(t, 2, c.Task.IdleTicks)
}

func TestCrew_ProcessReturn_GoesIdle(t *testing.T) {
	ctx := baseCtx()
	c := crew.New(core.Pos{2, 0}, core.EntityID{})
	c.Task = crew.ReturnTask()

	c.Tick(ctx)
	assert.Equal(t, crew.TaskIdle, c.Task.Kind)
	assert.Equal(t, 10, c.Task.IdleTicks)
}

func TestCrew_Tick_ConsumesPathOneHopAtATime(t *testing.T) {
	ctx := baseCtx()
	c := crew.New(core.Pos{0, 0}, core.EntityID{})
	c.Path = []core.Pos{{2, 0}, {1, 0}}
	c.Task = crew.IdleTask(5)

	c.Tick(ctx)
	assert.Equal(t, core.Pos{1, 0}, c.Pos)
	assert.Equal(t, []core.Pos{{2, 0}}, c.Path, "mid-path ticks only move, they don't act on the task yet")
}
