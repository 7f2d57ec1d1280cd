package itemtype

// Recipe converts a set of input items into a set of output items over a
// fixed number of ticks. Assemblers choose one of these per task.
type Recipe struct {
	Inputs  Inventory
	Outputs Inventory
	Time    float64
}

var assemblerRecipes = []Recipe{
	{
		Inputs:  Inventory{Wire: 1, IronIngot: 1},
		Outputs: Inventory{PowerGridComponent: 1},
		Time:    100,
	},
	{
		Inputs:  Inventory{IronIngot: 1},
		Outputs: Inventory{ConveyorComponent: 1},
		Time:    120,
	},
	{
		Inputs:  Inventory{IronIngot: 1},
		Outputs: Inventory{Gear: 2},
		Time:    70,
	},
	{
		Inputs:  Inventory{CopperIngot: 1},
		Outputs: Inventory{Wire: 2},
		Time:    50,
	},
	{
		Inputs:  Inventory{Wire: 1, IronIngot: 1},
		Outputs: Inventory{Circuit: 1},
		Time:    120,
	},
	{
		Inputs:  Inventory{Gear: 2, Circuit: 2},
		Outputs: Inventory{AssemblerComponent: 1},
		Time:    200,
	},
}

// AssemblerRecipes returns the fixed list of recipes an Assembler building
// may be set to run.
func AssemblerRecipes() []Recipe {
	out := make([]Recipe, len(assemblerRecipes))
	copy(out, assemblerRecipes)
	return out
}
