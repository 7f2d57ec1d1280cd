package construction

import (
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Completed describes a construction that just finished, for the caller
// (the game package) to materialize into the real tile/building.
type Completed struct {
	Type Type
	Pos  core.Pos
}

// Process advances every construction one tick: canceling constructions
// release ingredients and vanish once empty; active ones pull their
// remaining recipe ingredients over the conveyor network and, once
// Progress (driven entirely by crew labor, see the crew package) has
// reached the recipe's time, are reported via onComplete and removed.
func Process(
	store *core.EntityStore[Construction],
	tiles *tileworld.Tiles,
	transports *core.EntityStore[transport.Transport],
	holders []pushpull.Holder,
	onComplete func(Completed),
) {
	store.Retain(func(c *Construction) bool {
		if c.Canceling {
			if c.Ingredients.IsEmpty() {
				return false
			}
			if c.Progress <= 0 {
				pushpull.PushOutputs(tiles, transports, c, holders, func(itemtype.ItemType) bool { return true })
			}
			return true
		}
		pushpull.PullInputs(tiles, transports, expectedSet(c), c.Recipe.Ingredients, c.Pos, c.Size(), c.Ingredients, holders)
		if c.Progress < c.Recipe.Time {
			return true
		}
		onComplete(Completed{Type: c.Type, Pos: c.Pos})
		return false
	})
}

func expectedSet(c *Construction) map[transport.ID]struct{} { return c.Expected }
