package building

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
)

// TaskKind distinguishes the shapes a Building's current task can take.
type TaskKind uint8

const (
	TaskNone TaskKind = iota
	TaskExcavate
	TaskMove
	TaskMoveToExcavate
	TaskAssemble
)

// MoveTime is the per-tile travel duration for a mobile building's Move
// and MoveToExcavate tasks.
const MoveTime = 2.0

// ExcavateSpeed is how fast a mobile Excavator building's own dig task
// proceeds per tick at full power, in the same units GlobalTask.T is
// denominated in.
const ExcavateSpeed = globaltask.LaborExcavateTime / ExcavateTicks

// ExcavateTicks is how long a building-driven excavation takes at full
// power when dispatched directly (as opposed to pooled crew labor).
const ExcavateTicks = 10.0

// Task is the current activity of a Building. Only one field set is
// meaningful at a time, selected by Kind — modeled as a tagged struct
// rather than an interface so it serializes directly to JSON.
type Task struct {
	Kind TaskKind

	// TaskExcavate
	Dir      core.Direction
	GlobalID globaltask.ID

	// TaskMove / TaskMoveToExcavate
	T    float64
	Path []core.Pos

	// TaskMoveToExcavate only
	TargetDir core.Direction
	TargetID  globaltask.ID

	// TaskAssemble
	MaxT    float64
	Outputs itemtype.Inventory
}

// NoneTask is the idle task.
func NoneTask() Task { return Task{Kind: TaskNone} }

// NewExcavateTask starts digging toward a global excavate task directly
// (the building is already adjacent).
func NewExcavateTask(dir core.Direction, target globaltask.ID) Task {
	return Task{Kind: TaskExcavate, Dir: dir, GlobalID: target}
}

// NewMoveTask starts a relocation along path.
func NewMoveTask(path []core.Pos) Task {
	return Task{Kind: TaskMove, T: MoveTime, Path: append([]core.Pos(nil), path...)}
}

// NewMoveToExcavateTask starts walking toward an excavation target not
// yet adjacent, dir being the final facing once arrived.
func NewMoveToExcavateTask(path []core.Pos, dir core.Direction, target globaltask.ID) Task {
	return Task{Kind: TaskMoveToExcavate, T: MoveTime, Path: append([]core.Pos(nil), path...), TargetDir: dir, TargetID: target}
}

// NewAssembleTask starts an Assembler recipe run that will yield outputs
// after maxT ticks.
func NewAssembleTask(maxT float64, outputs itemtype.Inventory) Task {
	return Task{Kind: TaskAssemble, T: maxT, MaxT: maxT, Outputs: outputs}
}

func (k TaskKind) String() string {
	switch k {
	case TaskNone:
		return "None"
	case TaskExcavate:
		return "Excavate"
	case TaskMove:
		return "Move"
	case TaskMoveToExcavate:
		return "MoveToExcavate"
	case TaskAssemble:
		return "BuildItem"
	default:
		return "Unknown"
	}
}
