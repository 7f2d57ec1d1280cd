package core

import (
	"encoding/json"
	"fmt"
)

// Pos is a tile coordinate in the asteroid grid.
type Pos [2]int32

func (p Pos) X() int32 { return p[0] }
func (p Pos) Y() int32 { return p[1] }

func (p Pos) Add(o Pos) Pos { return Pos{p[0] + o[0], p[1] + o[1]} }
func (p Pos) Sub(o Pos) Pos { return Pos{p[0] - o[0], p[1] - o[1]} }

// String renders the position as "x,y", matching the stable save-file
// representation used for map keys.
func (p Pos) String() string { return fmt.Sprintf("%d,%d", p[0], p[1]) }

// MarshalJSON serializes the position as an "x,y" string so save files
// stay host-independent and diffable, per the save format's position
// convention.
func (p Pos) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON parses the "x,y" string form back into a Pos.
func (p *Pos) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var x, y int32
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return fmt.Errorf("invalid position %q: %w", s, err)
	}
	*p = Pos{x, y}
	return nil
}

// Direction is one of the four cardinal directions a conveyor, crew or
// mobile building can face.
type Direction uint8

const (
	Left Direction = iota
	Up
	Right
	Down
)

var allDirections = [4]Direction{Left, Up, Right, Down}

// AllDirections returns the four cardinal directions in a fixed order,
// used wherever iteration order must be deterministic (neighbor scans,
// conveyor-hash byte layout).
func AllDirections() [4]Direction { return allDirections }

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	default:
		return "Invalid"
	}
}

// ToVec returns the unit displacement for this direction.
func (d Direction) ToVec() Pos {
	switch d {
	case Left:
		return Pos{-1, 0}
	case Up:
		return Pos{0, -1}
	case Right:
		return Pos{1, 0}
	case Down:
		return Pos{0, 1}
	default:
		return Pos{0, 0}
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// DirectionFromVec maps a displacement to a cardinal direction, preferring
// the x-axis when both components are non-zero (matches the original
// signum-based selection).
func DirectionFromVec(v Pos) (Direction, bool) {
	sx := sign(v[0])
	sy := sign(v[1])
	if sx != 0 {
		if sx < 0 {
			return Left, true
		}
		return Right, true
	}
	if sy != 0 {
		if sy < 0 {
			return Up, true
		}
		return Down, true
	}
	return 0, false
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// CPos is a position on one of the two conveyor levels. Stacked ("Two")
// conveyors let a path cross the same tile twice, once per level.
type CPos struct {
	Pos   Pos
	Level uint8
}

func (c CPos) Add(d Direction) CPos {
	return CPos{Pos: c.Pos.Add(d.ToVec()), Level: c.Level}
}
