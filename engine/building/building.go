// Package building implements the colony's stationary (and, for the
// mobile Excavator, self-relocating) production buildings: their
// inventories, recipes, and per-tick task state machine. Grounded on
// original_source/game-logic/src/building.rs and task.rs.
package building

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Building is one placed structure in the colony.
type Building struct {
	Pos       core.Pos
	Type      Type
	Direction *core.Direction
	Task      Task
	Inventory itemtype.Inventory
	// Recipe is the Assembler recipe index currently selected, or -1 if
	// none (only meaningful for Type == Assembler).
	Recipe int
	// BatteryCharge is the stored power for a Battery building.
	BatteryCharge int
	// Expected tracks transports already reserved to deliver here, so
	// PullInputs doesn't double-count a delivery already in flight.
	Expected map[transport.ID]struct{} `json:"-"`
}

// New constructs a freshly completed building with an empty inventory and
// no task.
func New(pos core.Pos, ty Type) Building {
	return Building{
		Pos:       pos,
		Type:      ty,
		Task:      NoneTask(),
		Inventory: itemtype.NewInventory(),
		Recipe:    -1,
		Expected:  map[transport.ID]struct{}{},
	}
}

// InvPos, InvSize, Inv, Capacity and ExpectedIDs implement pushpull.Holder
// structurally.
func (b *Building) InvPos() core.Pos                       { return b.Pos }
func (b *Building) InvSize() [2]int                         { return b.Type.Size() }
func (b *Building) Inv() itemtype.Inventory                 { return b.Inventory }
func (b *Building) Capacity() int                           { return b.Type.Capacity() }
func (b *Building) ExpectedIDs() map[transport.ID]struct{}  { return b.Expected }

// Intersects reports whether pos falls within the building's footprint.
func (b *Building) Intersects(pos core.Pos) bool {
	size := b.Type.Size()
	return b.Pos[0] <= pos[0] && pos[0] < b.Pos[0]+int32(size[0]) &&
		b.Pos[1] <= pos[1] && pos[1] < b.Pos[1]+int32(size[1])
}

// Busy reports whether the building is mid-task and cannot be relocated
// or reconfigured.
func (b *Building) Busy() bool { return b.Task.Kind != TaskNone }

// PowerDemand returns the building's current power draw: its base
// upkeep plus the task surcharge (200 while Excavating, 300 while
// Assembling) a building pays on top of idle draw to actually run a task.
func (b *Building) PowerDemand() int {
	demand := b.Type.PowerDemand()
	switch b.Task.Kind {
	case TaskExcavate:
		demand += 200
	case TaskAssemble:
		demand += 300
	}
	return demand
}
