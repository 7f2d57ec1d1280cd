package tileworld

import "github.com/1siamBot/colonysim/engine/core"

// ConveyorKind distinguishes the shapes a conveyor can take on a tile.
type ConveyorKind uint8

const (
	ConveyorNone ConveyorKind = iota
	ConveyorOne
	ConveyorTwo
	ConveyorSplitter
	ConveyorMerger
)

// Conveyor describes the item-routing hardware, if any, installed on a
// tile. One and Two both carry one or two (from, to) direction pairs; Two
// lets a path cross the tile on two independent levels without the levels
// interacting. Splitter/Merger carry a single direction: the one input (or
// output) side, with the other three sides open.
type Conveyor struct {
	Kind  ConveyorKind
	From1 core.Direction
	To1   core.Direction
	From2 core.Direction
	To2   core.Direction
}

// NoConveyor is the empty conveyor value.
var NoConveyor = Conveyor{Kind: ConveyorNone}

func NewOne(from, to core.Direction) Conveyor {
	return Conveyor{Kind: ConveyorOne, From1: from, To1: to}
}

func NewTwo(from1, to1, from2, to2 core.Direction) Conveyor {
	return Conveyor{Kind: ConveyorTwo, From1: from1, To1: to1, From2: from2, To2: to2}
}

func NewSplitter(from core.Direction) Conveyor {
	return Conveyor{Kind: ConveyorSplitter, From1: from}
}

func NewMerger(to core.Direction) Conveyor {
	return Conveyor{Kind: ConveyorMerger, To1: to}
}

func (c Conveyor) IsNone() bool { return c.Kind == ConveyorNone }
func (c Conveyor) IsSome() bool { return c.Kind != ConveyorNone }

// HasTwo reports whether the conveyor occupies both levels of the tile.
func (c Conveyor) HasTwo() bool { return c.Kind == ConveyorTwo }

// HasFrom reports whether an item can enter the tile moving out of `from`.
func (c Conveyor) HasFrom(from core.Direction) bool {
	switch c.Kind {
	case ConveyorOne:
		return c.From1 == from
	case ConveyorTwo:
		return c.From1 == from || c.From2 == from
	case ConveyorSplitter:
		return c.From1 == from
	case ConveyorMerger:
		return c.To1 != from
	default:
		return false
	}
}

// HasTo reports whether an item can leave the tile moving toward `to`.
func (c Conveyor) HasTo(to core.Direction) bool {
	switch c.Kind {
	case ConveyorOne:
		return c.To1 == to
	case ConveyorTwo:
		return c.To1 == to || c.To2 == to
	case ConveyorSplitter:
		return c.From1 != to
	case ConveyorMerger:
		return c.To1 == to
	default:
		return false
	}
}

// Has reports whether the conveyor supports this exact from->to leg, and
// on which level (0 or 1) if it is a Two.
func (c Conveyor) Has(from, to core.Direction) (level uint8, ok bool) {
	switch c.Kind {
	case ConveyorOne:
		return 0, c.From1 == from && c.To1 == to
	case ConveyorTwo:
		if c.From1 == from && c.To1 == to {
			return 0, true
		}
		if c.From2 == from && c.To2 == to {
			return 1, true
		}
		return 0, false
	case ConveyorSplitter:
		return 0, c.From1 == from && c.From1 != to
	case ConveyorMerger:
		return 0, c.To1 == to && c.To1 != from
	default:
		return 0, false
	}
}

// HashBytes renders a host-stable byte encoding of the conveyor for use in
// chunk digests and any cross-host comparison (§8 invariant 8), rather
// than relying on Go's unspecified default hashing of a struct value.
func (c Conveyor) HashBytes() []byte {
	b := make([]byte, 0, 5)
	b = append(b, byte(c.Kind))
	switch c.Kind {
	case ConveyorOne:
		b = append(b, byte(c.From1), byte(c.To1))
	case ConveyorTwo:
		b = append(b, byte(c.From1), byte(c.To1), byte(c.From2), byte(c.To2))
	case ConveyorSplitter:
		b = append(b, byte(c.From1))
	case ConveyorMerger:
		b = append(b, byte(c.To1))
	}
	return b
}
