package tileworld

// CellState is the excavation state of a tile.
type CellState uint8

const (
	// Solid tiles are unexcavated asteroid body; nothing can be built or
	// walked on them until a GlobalTask::Excavate clears them.
	Solid CellState = iota
	// Empty tiles are excavated and walkable/buildable.
	Empty
	// Space tiles are outside the asteroid body entirely; buildings
	// cannot be placed there without a power grid ever reaching them.
	Space
)

// Cell is the per-tile simulation state. Render-only derived fields
// (corner image indices in the original) have no equivalent here — this
// package carries no rendering concerns.
type Cell struct {
	State     CellState
	PowerGrid bool
	Conveyor  Conveyor
}

// NewCell returns the default cell: solid, no power, no conveyor.
func NewCell() Cell { return Cell{State: Solid} }

// NewSpaceCell returns a cell outside the asteroid body.
func NewSpaceCell() Cell { return Cell{State: Space} }

// NewBuildingCell returns the cell a building footprint tile gets: always
// excavated and always powered, matching the original's `Cell::building`.
func NewBuildingCell() Cell { return Cell{State: Empty, PowerGrid: true} }

// Equal compares simulation-relevant fields only.
func (c Cell) Equal(o Cell) bool {
	return c.State == o.State && c.PowerGrid == o.PowerGrid && c.Conveyor == o.Conveyor
}
