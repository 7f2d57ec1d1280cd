// Package globaltask implements the colony-wide tasks that aren't owned
// by any single building or crew member: excavating a tile by pooled
// human labor, and waiting for in-flight transports to clear out of a
// position before it can be repurposed.
package globaltask

import (
	"github.com/1siamBot/colonysim/engine/core"
)

// ID identifies a GlobalTask in its EntityStore.
type ID core.EntityID

// Kind distinguishes the two global task shapes.
type Kind uint8

const (
	Excavate Kind = iota
	Cleanup
)

// LaborExcavateTime is how many ticks of pooled crew labor a plain
// (non-mobile-Excavator) excavation takes to finish.
const LaborExcavateTime = 100.0

// GlobalTask is one colony-wide background task.
type GlobalTask struct {
	Kind Kind
	Pos  core.Pos
	// T is the remaining labor time for an Excavate task; unused for
	// Cleanup.
	T float64
}

// NewExcavate creates a pooled-labor excavation task targeting pos.
func NewExcavate(pos core.Pos) GlobalTask {
	return GlobalTask{Kind: Excavate, Pos: pos, T: LaborExcavateTime}
}

// NewCleanup creates a task that blocks reuse of pos until no transport
// still routes there.
func NewCleanup(pos core.Pos) GlobalTask {
	return GlobalTask{Kind: Cleanup, Pos: pos}
}

// Process applies any excavations whose labor has completed (flipping the
// target tile to Empty) and then drops finished tasks: a completed
// Excavate, or a Cleanup whose target no longer has any transport routing
// to it.
func Process(
	tasks *core.EntityStore[GlobalTask],
	setEmpty func(core.Pos),
	transportTargets func(core.Pos) bool,
) {
	tasks.Iter(func(t *GlobalTask) {
		if t.Kind == Excavate && t.T <= 0 {
			setEmpty(t.Pos)
		}
	})
	tasks.Retain(func(t *GlobalTask) bool {
		switch t.Kind {
		case Excavate:
			return t.T > 0
		case Cleanup:
			return transportTargets(t.Pos)
		default:
			return false
		}
	})
}
