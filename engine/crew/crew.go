// Package crew implements the colonists that walk the excavated tiles
// (as opposed to the conveyor-bound Transports) to perform pooled-labor
// excavation, ferry items a conveyor can't reach, and build at
// construction sites. Grounded on
// original_source/game-logic/src/crew.rs.
package crew

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
)

// TaskKind distinguishes the shapes a Crew's current task can take.
type TaskKind uint8

const (
	TaskNone TaskKind = iota
	TaskIdle
	TaskReturn
	TaskExcavate
	TaskBuild
	TaskPickup
	TaskDeliver
)

func (k TaskKind) String() string {
	switch k {
	case TaskNone:
		return "None"
	case TaskIdle:
		return "Idle"
	case TaskReturn:
		return "Return"
	case TaskExcavate:
		return "Excavate"
	case TaskBuild:
		return "Build"
	case TaskPickup:
		return "Pickup"
	case TaskDeliver:
		return "Deliver"
	default:
		return "Unknown"
	}
}

// BuildProgressRate is how much construction progress one crew contributes
// per tick while on a Build task — fixed regardless of the colony's power
// ratio, unlike building tasks (§ design note: crew labor is never power-
// scaled).
const BuildProgressRate = 1.0

// ExcavateLaborRate is how much GlobalTask excavation time one crew
// contributes per tick, likewise fixed.
const ExcavateLaborRate = 1.0

// Task is the crew's current activity.
type Task struct {
	Kind TaskKind

	// TaskIdle: ticks remaining before trying again.
	IdleTicks int

	// TaskExcavate
	GlobalID globaltask.ID

	// TaskBuild, TaskPickup (src/dest), TaskDeliver (dest)
	Pos  core.Pos
	Dest core.Pos
	Item itemtype.ItemType
}

func NoneTask() Task         { return Task{Kind: TaskNone} }
func IdleTask(ticks int) Task { return Task{Kind: TaskIdle, IdleTicks: ticks} }
func ReturnTask() Task       { return Task{Kind: TaskReturn} }
func ExcavateTask(id globaltask.ID) Task { return Task{Kind: TaskExcavate, GlobalID: id} }
func BuildTask(pos core.Pos) Task { return Task{Kind: TaskBuild, Pos: pos} }
func PickupTask(src, dest core.Pos, item itemtype.ItemType) Task {
	return Task{Kind: TaskPickup, Pos: src, Dest: dest, Item: item}
}
func DeliverTask(dest core.Pos, item itemtype.ItemType) Task {
	return Task{Kind: TaskDeliver, Dest: dest, Item: item}
}

// Crew is one colonist dispatched from a CrewCabin.
type Crew struct {
	Pos  core.Pos
	Path []core.Pos
	// Home is the CrewCabin building handle this crew returns to when idle.
	Home core.EntityID
	Task Task
	// Carrying is at most one item type/amount the crew holds mid-errand.
	Carrying itemtype.ItemType
	Amount   int
}

// New creates a freshly dispatched, idle crew member at a cabin's
// position.
func New(pos core.Pos, home core.EntityID) Crew {
	return Crew{Pos: pos, Home: home, Task: NoneTask()}
}
