package building_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/prng"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

func baseTickContext() building.TickContext {
	return building.TickContext{
		Tiles:       tileworld.NewTiles(),
		Transports:  core.NewEntityStore[transport.Transport](),
		GlobalTasks: core.NewEntityStore[globaltask.GlobalTask](),
		PowerRatio:  1.0,
		Holders:     nil,
		RNG:         prng.NewXor128(1),
		Occupied:    func(core.Pos) bool { return false },
	}
}

func TestBuilding_Excavate_CompletesAndYieldsOre(t *testing.T) {
	ctx := baseTickContext()
	id := ctx.GlobalTasks.Insert(globaltask.GlobalTask{Kind: globaltask.Excavate, Pos: core.Pos{1, 0}, T: building.ExcavateSpeed})

	b := building.New(core.Pos{0, 0}, building.Excavator)
	b.Task = building.NewExcavateTask(core.Right, globaltask.ID(id))

	b.Tick(ctx)
	assert.Equal(t, building.TaskNone, b.Task.Kind)
	assert.Equal(t, building.ExcavateOreAmount, b.Inventory.Get(itemtype.RawOre))
}

func TestBuilding_Excavate_MissingGlobalTaskGoesIdle(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Excavator)
	b.Task = building.NewExcavateTask(core.Right, globaltask.ID(core.EntityID{Index: 42}))

	ctx := baseTickContext()
	b.Tick(ctx)
	assert.Equal(t, building.TaskNone, b.Task.Kind)
}

func TestBuilding_Furnace_StartsSmeltingWhenStocked(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Furnace)
	b.Inventory.Add(itemtype.RawOre, 1)

	ctx := baseTickContext()
	b.Tick(ctx)

	assert.Equal(t, building.TaskAssemble, b.Task.Kind)
	assert.Equal(t, 0, b.Inventory.Get(itemtype.RawOre), "the smelted unit is consumed up front")
}

func TestBuilding_Furnace_StaysIdleWithoutOre(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Furnace)
	ctx := baseTickContext()
	b.Tick(ctx)
	assert.Equal(t, building.TaskNone, b.Task.Kind)
}

func TestBuilding_Assemble_CompletesAndMergesOutputsWhenRoomAllows(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Assembler)
	b.Task = building.NewAssembleTask(0, itemtype.Inventory{itemtype.Gear: 2})

	ctx := baseTickContext()
	ctx.Holders = []pushpull.Holder{&b}
	b.Tick(ctx)

	assert.Equal(t, building.TaskNone, b.Task.Kind)
	assert.Equal(t, 2, b.Inventory.Get(itemtype.Gear))
}

func TestBuilding_Assemble_WithholdsOutputsWhenOverCapacity(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Assembler)
	b.Inventory.Set(itemtype.Gear, building.Assembler.Capacity())
	b.Task = building.NewAssembleTask(0, itemtype.Inventory{itemtype.Gear: 1})

	ctx := baseTickContext()
	b.Tick(ctx)

	require.Equal(t, building.TaskAssemble, b.Task.Kind, "outputs stay queued until there's room")
}

func TestBuilding_Assemble_CountsDownWithPowerRatio(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Assembler)
	b.Task = building.NewAssembleTask(10, itemtype.Inventory{itemtype.Gear: 1})

	ctx := baseTickContext()
	ctx.PowerRatio = 0.5
	b.Tick(ctx)

	assert.InDelta(t, 9.5, b.Task.T, 1e-9)
}

func TestBuilding_PowerDemand_IncludesTaskSurcharge(t *testing.T) {
	b := building.New(core.Pos{0, 0}, building.Furnace)
	b.Task = building.NewAssembleTask(5, itemtype.NewInventory())
	assert.Equal(t, building.Furnace.PowerDemand()+300, b.PowerDemand())
}
