// Package construction implements planned-but-not-yet-built sites: power
// grid tiles, conveyor segments, and buildings. A Construction gathers its
// recipe's ingredients on site (pulled over the conveyor network or
// carried by crew) and, once its progress (driven entirely by crew labor)
// reaches the recipe's time, materializes into the real thing. Grounded on
// original_source/game-logic/src/construction.rs.
package construction

import (
	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/tileworld"
)

// Kind distinguishes what a Construction becomes once finished.
type Kind uint8

const (
	KindPowerGrid Kind = iota
	KindConveyor
	KindBuilding
)

// Type identifies the concrete thing a Construction will produce.
type Type struct {
	Kind         Kind
	BuildingType building.Type
	Conveyor     tileworld.Conveyor
}

// BuildMenuItem is one catalog entry: what it costs and how long it takes.
type BuildMenuItem struct {
	Type        Type
	Ingredients itemtype.Inventory
	Time        float64
}

const (
	buildPowerGridTime = 60.0
	buildConveyorTime  = 90.0
)

var powerGridRecipe = BuildMenuItem{
	Type:        Type{Kind: KindPowerGrid},
	Ingredients: itemtype.Inventory{itemtype.PowerGridComponent: 1},
	Time:        buildPowerGridTime,
}

func conveyorRecipe(conv tileworld.Conveyor) BuildMenuItem {
	if conv.Kind == tileworld.ConveyorSplitter || conv.Kind == tileworld.ConveyorMerger {
		return BuildMenuItem{
			Type:        Type{Kind: KindConveyor, Conveyor: conv},
			Ingredients: itemtype.Inventory{itemtype.ConveyorComponent: 1, itemtype.Circuit: 1, itemtype.Gear: 1},
			Time:        buildConveyorTime,
		}
	}
	return BuildMenuItem{
		Type:        Type{Kind: KindConveyor, Conveyor: conv},
		Ingredients: itemtype.Inventory{itemtype.ConveyorComponent: 1},
		Time:        buildConveyorTime,
	}
}

// buildMenu lists every buildable building type's recipe. Power and
// CrewCabin are intentionally absent: neither is player-buildable or
// deconstructible, matching the original's get_build_menu (its absence
// there is a real recipe gap, not a distillation omission).
var buildMenu = []BuildMenuItem{
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.Battery},
		Ingredients: itemtype.Inventory{itemtype.Battery: 2, itemtype.IronIngot: 1},
		Time:        120,
	},
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.Storage},
		Ingredients: itemtype.Inventory{itemtype.IronIngot: 1, itemtype.Cilicate: 5},
		Time:        100,
	},
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.Excavator},
		Ingredients: itemtype.Inventory{itemtype.IronIngot: 3, itemtype.Gear: 2, itemtype.Circuit: 2},
		Time:        200,
	},
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.MediumStorage},
		Ingredients: itemtype.Inventory{itemtype.IronIngot: 2, itemtype.Gear: 2, itemtype.Cilicate: 10},
		Time:        200,
	},
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.Furnace},
		Ingredients: itemtype.Inventory{itemtype.IronIngot: 2, itemtype.Wire: 1, itemtype.Cilicate: 6},
		Time:        300,
	},
	{
		Type:        Type{Kind: KindBuilding, BuildingType: building.Assembler},
		Ingredients: itemtype.Inventory{itemtype.AssemblerComponent: 4},
		Time:        300,
	},
}

// BuildMenu returns the catalog of player-buildable building recipes.
func BuildMenu() []BuildMenuItem {
	out := make([]BuildMenuItem, len(buildMenu))
	copy(out, buildMenu)
	return out
}

func recipeForBuilding(ty building.Type) (BuildMenuItem, bool) {
	for _, item := range buildMenu {
		if item.Type.Kind == KindBuilding && item.Type.BuildingType == ty {
			return item, true
		}
	}
	return BuildMenuItem{}, false
}
