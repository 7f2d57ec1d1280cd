package tileworld

import (
	"sort"

	"github.com/1siamBot/colonysim/engine/core"
)

// chunkPos identifies a chunk by its chunk-grid coordinate (not tile
// coordinate).
type chunkPos struct{ x, y int32 }

// Tiles is the chunked, sparse tile grid for the whole asteroid. Chunks
// that were never touched, or that uniformified back to the default
// all-Solid cell, are simply absent from the map; reads of missing chunks
// return the default cell (Solid), matching the original's static SPACE
// fallback generalized to "whatever the configured default cell is".
type Tiles struct {
	chunks  map[chunkPos]*Chunk
	missing Cell
}

// NewTiles returns an empty tile grid. Missing chunks read as solid
// asteroid body, the default a freshly-carved world starts with.
func NewTiles() *Tiles {
	return &Tiles{chunks: make(map[chunkPos]*Chunk), missing: NewCell()}
}

func chunkAndLocal(p core.Pos) (chunkPos, int, int) {
	cx := divEuclid(p[0], ChunkSize)
	cy := divEuclid(p[1], ChunkSize)
	lx := int(modEuclid(p[0], ChunkSize))
	ly := int(modEuclid(p[1], ChunkSize))
	return chunkPos{cx, cy}, lx, ly
}

func divEuclid(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func modEuclid(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Get returns the cell at p, or the default cell if its chunk was never
// materialized.
func (t *Tiles) Get(p core.Pos) Cell {
	cp, lx, ly := chunkAndLocal(p)
	ch, ok := t.chunks[cp]
	if !ok {
		return t.missing
	}
	return ch.At(lx, ly)
}

// TryGetMut applies fn to the cell at p if its chunk exists, returning
// false without materializing anything when the chunk is absent — used by
// call sites that only want to mutate tiles a building or construction
// has already touched (e.g. marking a power grid tile).
func (t *Tiles) TryGetMut(p core.Pos, fn func(*Cell)) bool {
	cp, lx, ly := chunkAndLocal(p)
	ch, ok := t.chunks[cp]
	if !ok {
		return false
	}
	cell := ch.At(lx, ly)
	fn(&cell)
	ch.Set(lx, ly, cell)
	return true
}

// Set writes the cell at p, materializing (and, if absent, allocating)
// its chunk as needed.
func (t *Tiles) Set(p core.Pos, cell Cell) {
	cp, lx, ly := chunkAndLocal(p)
	ch, ok := t.chunks[cp]
	if !ok {
		ch = NewUniformChunk(t.missing)
		t.chunks[cp] = ch
	}
	ch.Set(lx, ly, cell)
	if ch.Uniformify() {
		delete(t.chunks, cp)
	}
}

// Mutate reads, transforms via fn, and writes back the cell at p in one
// step — the common "Index then IndexMut" idiom.
func (t *Tiles) Mutate(p core.Pos, fn func(*Cell)) {
	cell := t.Get(p)
	fn(&cell)
	t.Set(p, cell)
}

// TileEntry is one (position, cell) pair yielded by Iter.
type TileEntry struct {
	Pos  core.Pos
	Cell Cell
}

// Iter walks every materialized chunk, yielding one entry per dense cell
// or a single representative entry for a uniform chunk (its origin tile),
// matching the original TilesIter's contract that uniform chunks surface
// as one sample rather than ChunkSize*ChunkSize repeats.
func (t *Tiles) Iter(fn func(TileEntry)) {
	for cp, ch := range t.chunks {
		originX := cp.x * ChunkSize
		originY := cp.y * ChunkSize
		if ch.isUniform() {
			fn(TileEntry{Pos: core.Pos{originX, originY}, Cell: ch.Uniform})
			continue
		}
		for ly := 0; ly < ChunkSize; ly++ {
			for lx := 0; lx < ChunkSize; lx++ {
				fn(TileEntry{
					Pos:  core.Pos{originX + int32(lx), originY + int32(ly)},
					Cell: ch.Dense[ly*ChunkSize+lx],
				})
			}
		}
	}
}

// ChunkDigest is a content hash for one chunk, used by the binary
// snapshot delta protocol (§6.3) to let a client skip re-sending chunks
// whose content hasn't changed since the last sync.
type ChunkDigest struct {
	X, Y uint32
	Hash uint64
}

// Digests returns a stable-order digest for every materialized (i.e.
// non-default) chunk.
func (t *Tiles) Digests() []ChunkDigest {
	out := make([]ChunkDigest, 0, len(t.chunks))
	for cp, ch := range t.chunks {
		out = append(out, ChunkDigest{X: uint32(cp.x), Y: uint32(cp.y), Hash: hashChunk(ch)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
