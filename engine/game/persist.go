package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/prng"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// saveDoc is the full-state JSON save format: every entity store, tiles
// and PRNG state, and global time. Render-only fields and runtime-only
// Expected reservations are not part of it (Expected is a cache over
// live transports, cheaply rebuilt by the next few ticks).
type saveDoc struct {
	ID          uuid.UUID                          `json:"id"`
	GlobalTime  uint64                              `json:"global_time"`
	RNGState    [4]uint32                           `json:"rng_state"`
	Tiles       []tileworld.TileEntry               `json:"tiles"`
	Buildings   []entityDoc[building.Building]      `json:"buildings"`
	Constructions []entityDoc[construction.Construction] `json:"constructions"`
	Crews       []entityDoc[crew.Crew]              `json:"crews"`
	Transports  []entityDoc[transport.Transport]    `json:"transports"`
	GlobalTasks []entityDoc[globaltask.GlobalTask]  `json:"global_tasks"`
}

type entityDoc[T any] struct {
	ID    core.EntityID `json:"id"`
	Value T             `json:"value"`
}

func dumpStore[T any](s *core.EntityStore[T]) []entityDoc[T] {
	var out []entityDoc[T]
	s.Items(func(id core.EntityID, v *T) {
		out = append(out, entityDoc[T]{ID: id, Value: *v})
	})
	return out
}

// Save serializes the complete game state to JSON, matching the original's
// full-state save (as opposed to the chunk-digest delta variant in
// ChunkDigests).
func (g *Game) Save() ([]byte, error) {
	doc := saveDoc{
		ID:            g.ID,
		GlobalTime:    g.GlobalTime,
		RNGState:      [4]uint32{g.RNG.X, g.RNG.Y, g.RNG.Z, g.RNG.W},
		Buildings:     dumpStore(g.Buildings),
		Constructions: dumpStore(g.Constructions),
		Crews:         dumpStore(g.Crews),
		Transports:    dumpStore(g.Transports),
		GlobalTasks:   dumpStore(g.GlobalTasks),
	}
	g.Tiles.Iter(func(e tileworld.TileEntry) { doc.Tiles = append(doc.Tiles, e) })
	return json.Marshal(doc)
}

// Load replaces the game's state with a previously Saved document. Entity
// handles are restored into fresh stores at their original index/gen so
// cross-references recorded elsewhere in the document (e.g. a crew's Home
// building id) keep resolving correctly after load.
func (g *Game) Load(data []byte, log func(string)) error {
	var doc saveDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed save data: %w", err)
	}

	g.ID = doc.ID
	g.GlobalTime = doc.GlobalTime
	g.RNG = &prng.Xor128{X: doc.RNGState[0], Y: doc.RNGState[1], Z: doc.RNGState[2], W: doc.RNGState[3]}

	g.Tiles = tileworld.NewTiles()
	for _, e := range doc.Tiles {
		g.Tiles.Set(e.Pos, e.Cell)
	}

	g.Buildings = loadStore(doc.Buildings)
	g.Constructions = loadStore(doc.Constructions)
	g.Crews = loadStore(doc.Crews)
	g.Transports = loadStore(doc.Transports)
	g.GlobalTasks = loadStore(doc.GlobalTasks)

	g.Buildings.Iter(func(b *building.Building) {
		if b.Expected == nil {
			b.Expected = map[transport.ID]struct{}{}
		}
	})
	g.Constructions.Iter(func(c *construction.Construction) {
		if c.Expected == nil {
			c.Expected = map[transport.ID]struct{}{}
		}
	})
	return nil
}

// loadStore rebuilds an EntityStore by replaying each saved entry at its
// original slot, so handles recorded elsewhere in the save (building ids
// held by crews, global task ids held by buildings) still resolve.
func loadStore[T any](entries []entityDoc[T]) *core.EntityStore[T] {
	s := core.NewEntityStore[T]()
	maxIndex := uint32(0)
	for _, e := range entries {
		if e.ID.Index+1 > maxIndex {
			maxIndex = e.ID.Index + 1
		}
	}
	for i := uint32(0); i < maxIndex; i++ {
		s.Insert(*new(T))
	}
	placed := map[uint32]bool{}
	for _, e := range entries {
		id := core.EntityID{Index: e.ID.Index, Gen: 0}
		for id.Gen < e.ID.Gen {
			s.Remove(id)
			id = s.Insert(*new(T))
		}
		*s.Get(id) = e.Value
		placed[e.ID.Index] = true
	}
	for i := uint32(0); i < maxIndex; i++ {
		if !placed[i] {
			s.Remove(core.EntityID{Index: i, Gen: 0})
		}
	}
	return s
}

// ChunkDigests returns one FNV-like hash per tile chunk, for the binary
// snapshot delta protocol: a client sends back its known digests and the
// server only resends chunks whose hash differs.
func (g *Game) ChunkDigests() []tileworld.ChunkDigest {
	return g.Tiles.Digests()
}
