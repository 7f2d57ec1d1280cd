package construction

import (
	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Construction is a planned site gathering ingredients toward a recipe.
type Construction struct {
	Type        Type
	Pos         core.Pos
	Ingredients itemtype.Inventory
	Recipe      BuildMenuItem
	Canceling   bool
	Progress    float64
	// Expected tracks transports already reserved to deliver here, so
	// RequiredIngredients doesn't double-count a delivery already in
	// flight.
	Expected map[transport.ID]struct{} `json:"-"`
}

func newConstruction(ty Type, recipe BuildMenuItem, pos core.Pos, canceling bool) Construction {
	c := Construction{
		Type:      ty,
		Pos:       pos,
		Recipe:    recipe,
		Canceling: canceling,
		Expected:  map[transport.ID]struct{}{},
	}
	if canceling {
		c.Ingredients = recipe.Ingredients.Clone()
		c.Progress = recipe.Time
	} else {
		c.Ingredients = itemtype.NewInventory()
	}
	return c
}

// NewBuilding plans a building construction, failing if ty has no build
// menu recipe (Power, CrewCabin).
func NewBuilding(ty building.Type, pos core.Pos) (Construction, bool) {
	recipe, ok := recipeForBuilding(ty)
	if !ok {
		return Construction{}, false
	}
	return newConstruction(recipe.Type, recipe, pos, false), true
}

// NewPowerGrid plans (or, if canceling, deconstructs) a power grid tile.
func NewPowerGrid(pos core.Pos, canceling bool) Construction {
	return newConstruction(powerGridRecipe.Type, powerGridRecipe, pos, canceling)
}

// NewConveyor plans (or deconstructs) a conveyor segment.
func NewConveyor(pos core.Pos, conv tileworld.Conveyor, canceling bool) Construction {
	recipe := conveyorRecipe(conv)
	return newConstruction(recipe.Type, recipe, pos, canceling)
}

// NewDeconstruct plans the removal of an existing building, seeding the
// construction's ingredients with its recipe's full cost plus whatever the
// building's own inventory still held — additive, per the S4 worked
// example, rather than the overwrite original_source's new_deconstruct
// used.
func NewDeconstruct(ty building.Type, pos core.Pos, inventory itemtype.Inventory) (Construction, bool) {
	recipe, ok := recipeForBuilding(ty)
	if !ok {
		return Construction{}, false
	}
	ingredients := recipe.Ingredients.Clone()
	ingredients.Merge(inventory)
	return Construction{
		Type:        recipe.Type,
		Pos:         pos,
		Ingredients: ingredients,
		Recipe:      recipe,
		Canceling:   true,
		Progress:    recipe.Time,
		Expected:    map[transport.ID]struct{}{},
	}, true
}

// Size returns the construction's footprint.
func (c *Construction) Size() [2]int {
	if c.Type.Kind == KindBuilding {
		s := c.Type.BuildingType.Size()
		return [2]int{s[0], s[1]}
	}
	return [2]int{1, 1}
}

// Intersects reports whether pos falls within the construction's footprint.
func (c *Construction) Intersects(pos core.Pos) bool {
	size := c.Size()
	return c.Pos[0] <= pos[0] && pos[0] < c.Pos[0]+int32(size[0]) &&
		c.Pos[1] <= pos[1] && pos[1] < c.Pos[1]+int32(size[1])
}

// IntersectsRect reports whether the construction's footprint overlaps a
// rect of otherSize rooted at pos.
func (c *Construction) IntersectsRect(pos core.Pos, otherSize [2]int) bool {
	size := c.Size()
	return c.Pos[0] < pos[0]+int32(otherSize[0]) && pos[0] < c.Pos[0]+int32(size[0]) &&
		c.Pos[1] < pos[1]+int32(otherSize[1]) && pos[1] < c.Pos[1]+int32(size[1])
}

// ToggleCancel flips the construction between building and deconstructing.
func (c *Construction) ToggleCancel() { c.Canceling = !c.Canceling }

// IngredientsSatisfied reports whether every recipe ingredient is already
// on site.
func (c *Construction) IngredientsSatisfied() bool {
	for ty, need := range c.Recipe.Ingredients {
		if c.Ingredients.Get(ty) < need {
			return false
		}
	}
	return true
}

// RequiredIngredients returns, for each recipe ingredient not yet
// satisfied by on-site stock plus in-flight transports and crew
// deliveries, how many more units are still outstanding.
func (c *Construction) RequiredIngredients(crewExpected itemtype.Inventory, transports *core.EntityStore[transport.Transport]) itemtype.Inventory {
	out := itemtype.NewInventory()
	if c.Canceling {
		return out
	}
	inFlight := expectedDeliveries(transports, c.Expected)
	for ty, need := range c.Recipe.Ingredients {
		have := c.Ingredients.Get(ty) + inFlight.Get(ty) + crewExpected.Get(ty)
		if have < need {
			out.Set(ty, need-have)
		}
	}
	return out
}

// ExtraIngredients returns the ingredients a canceling, not-yet-progressed
// construction should release back to storage: everything it still
// holds once canceling has zeroed progress, recipe cost included.
func (c *Construction) ExtraIngredients() itemtype.Inventory {
	if !c.Canceling || c.Progress > 0 {
		return itemtype.NewInventory()
	}
	return c.Ingredients.Clone()
}

func (c *Construction) InsertExpected(id transport.ID)  { c.Expected[id] = struct{}{} }
func (c *Construction) ClearExpected(id transport.ID)    { delete(c.Expected, id) }
func (c *Construction) ClearExpectedAll()                { c.Expected = map[transport.ID]struct{}{} }

// InvPos, InvSize, Inv, Capacity and ExpectedIDs implement pushpull.Holder
// structurally.
func (c *Construction) InvPos() core.Pos                      { return c.Pos }
func (c *Construction) InvSize() [2]int                        { return c.Size() }
func (c *Construction) Inv() itemtype.Inventory                { return c.Ingredients }
func (c *Construction) Capacity() int                          { return -1 }
func (c *Construction) ExpectedIDs() map[transport.ID]struct{}  { return c.Expected }

func expectedDeliveries(transports *core.EntityStore[transport.Transport], ids map[transport.ID]struct{}) itemtype.Inventory {
	out := itemtype.NewInventory()
	for id := range ids {
		t := transports.Get(core.EntityID(id))
		if t == nil {
			continue
		}
		out.Add(t.Item, t.Amount)
	}
	return out
}
