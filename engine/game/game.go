// Package game wires every simulation package together: tile world,
// entity stores, the five-phase tick pipeline, the command/query surface
// external collaborators use, and persistence. Grounded on
// original_source/game-logic/src/game.rs, with the real-time driver and
// logging conventions adapted from the teacher engine's
// engine/core/gameloop.go accumulator loop.
package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/prng"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Game is the complete simulation state for one colony.
type Game struct {
	ID uuid.UUID

	Tiles        *tileworld.Tiles
	Buildings    *core.EntityStore[building.Building]
	Constructions *core.EntityStore[construction.Construction]
	Crews        *core.EntityStore[crew.Crew]
	Transports   *core.EntityStore[transport.Transport]
	GlobalTasks  *core.EntityStore[globaltask.GlobalTask]

	RNG        *prng.Xor128
	GlobalTime uint64

	log zerolog.Logger
}

// New returns an empty game with fresh (empty) stores, ready for either
// NewColony's starting layout or a save-file load.
func New(log zerolog.Logger) *Game {
	return &Game{
		ID:            uuid.New(),
		Tiles:         tileworld.NewTiles(),
		Buildings:     core.NewEntityStore[building.Building](),
		Constructions: core.NewEntityStore[construction.Construction](),
		Crews:         core.NewEntityStore[crew.Crew](),
		Transports:    core.NewEntityStore[transport.Transport](),
		GlobalTasks:   core.NewEntityStore[globaltask.GlobalTask](),
		RNG:           prng.NewXor128(0),
		log:           log,
	}
}

// NewColony returns a freshly laid-out starting colony: a carved-out
// asteroid interior with a starter building set and two crews at the
// crew cabin, a simplified analog of game.rs's hardcoded new() layout.
// No conveyors are laid between the buildings.
func NewColony(log zerolog.Logger) *Game {
	g := New(log)
	g.layoutStartingColony()
	return g
}

func (g *Game) layoutStartingColony() {
	const roomW, roomH = 12, 9
	for y := int32(0); y < roomH; y++ {
		for x := int32(0); x < roomW; x++ {
			g.Tiles.Set(core.Pos{x, y}, tileworld.Cell{State: tileworld.Empty, PowerGrid: true})
		}
	}
	place := func(pos core.Pos, ty building.Type) core.EntityID {
		size := ty.Size()
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				g.Tiles.Set(pos.Add(core.Pos{int32(x), int32(y)}), tileworld.NewBuildingCell())
			}
		}
		return g.Buildings.Insert(building.New(pos, ty))
	}
	cabinID := place(core.Pos{1, 1}, building.CrewCabin)
	place(core.Pos{3, 1}, building.Power)
	place(core.Pos{5, 1}, building.Excavator)
	place(core.Pos{1, 3}, building.Storage)
	medium := g.Buildings.Get(place(core.Pos{3, 3}, building.MediumStorage))
	if medium != nil {
		medium.Inventory.Add(itemtype.Cilicate, 5)
	}
	place(core.Pos{6, 3}, building.Assembler)
	place(core.Pos{9, 3}, building.Furnace)

	cabin := g.Buildings.Get(cabinID)
	if cabin != nil {
		for i := 0; i < 2; i++ {
			pos := cabin.Pos
			g.Crews.Insert(crew.New(pos, cabinID))
		}
	}
}
