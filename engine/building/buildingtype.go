package building

// Type enumerates the kinds of building that can exist in the colony.
type Type int

const (
	Power Type = iota
	Battery
	Excavator
	Storage
	MediumStorage
	CrewCabin
	Assembler
	Furnace
)

var typeNames = [...]string{
	"Power", "Battery", "Excavator", "Storage", "MediumStorage",
	"CrewCabin", "Assembler", "Furnace",
}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// Size returns the building's footprint in tiles.
func (t Type) Size() [2]int {
	switch t {
	case MediumStorage, CrewCabin, Assembler, Furnace:
		return [2]int{2, 2}
	default:
		return [2]int{1, 1}
	}
}

// Capacity returns the maximum countable items the building's inventory
// can hold.
func (t Type) Capacity() int {
	switch t {
	case Power:
		return 5
	case Excavator:
		return 10
	case Storage:
		return 20
	case MediumStorage:
		return 100
	case CrewCabin:
		return 20
	case Assembler:
		return 40
	case Furnace:
		return 30
	default:
		return 0
	}
}

// MaxCrews returns how many crew members a building can house and
// dispatch from. Only CrewCabin currently houses crews.
func (t Type) MaxCrews() int {
	if t == CrewCabin {
		return 4
	}
	return 0
}

// basePower is the amount of power a building of this type generates
// (positive) or draws (negative) while idle.
func (t Type) basePower() int {
	switch t {
	case Power:
		return 500
	case CrewCabin:
		return -100
	case Excavator:
		return -10
	case Assembler:
		return -20
	case Furnace:
		return -10
	default:
		return 0
	}
}

// PowerSupply is how much power the building contributes to the grid per
// tick when operating, before arbitration.
func (t Type) PowerSupply() int {
	if p := t.basePower(); p > 0 {
		return p
	}
	return 0
}

// PowerDemand is how much power the building's base upkeep draws per
// tick, not counting the task surcharge applied in the building
// package's per-tick power accounting (200 while Excavating, 300 while
// Assembling).
func (t Type) PowerDemand() int {
	if p := t.basePower(); p < 0 {
		return -p
	}
	return 0
}

// IsStorage reports whether the building is primarily a bulk item
// container (and thus a PushOutputs/PullInputs destination regardless of
// any recipe).
func (t Type) IsStorage() bool {
	return t == Storage || t == MediumStorage
}

// IsMobile reports whether the building can relocate itself — currently
// only the Excavator, which walks to reach excavation targets out of its
// own conveyor reach.
func (t Type) IsMobile() bool {
	return t == Excavator
}

// BatteryCapacity is how much power a Battery building can store.
const BatteryCapacity = 1000

// BatteryChargeRate is the most power a single Battery can charge or
// discharge in one tick. The original leaves the exact charge/discharge
// priority underspecified (see spec's Battery scheduling note); this
// port charges from any per-tick surplus before arbitration and
// discharges into any per-tick deficit before arbitration sees a
// shortfall, each bounded by this rate.
const BatteryChargeRate = 100
