package tileworld

// ChunkSize is the width and height, in tiles, of one chunk.
const ChunkSize = 16

// Chunk holds one ChunkSize x ChunkSize square of cells. Most chunks never
// diverge from a single repeated cell (freshly-generated asteroid body, or
// open space), so a chunk starts - and collapses back to, via Uniformify -
// a single Cell rather than paying for ChunkSize*ChunkSize storage.
type Chunk struct {
	// Dense holds ChunkSize*ChunkSize cells in row-major order when the
	// chunk has been materialized; nil when the chunk is uniform.
	Dense []Cell
	// Uniform is the single repeated cell when Dense is nil.
	Uniform Cell
}

// NewUniformChunk returns a chunk that is entirely one cell.
func NewUniformChunk(c Cell) *Chunk {
	return &Chunk{Uniform: c}
}

// NewDenseChunk returns a chunk pre-filled with c in every position,
// already materialized.
func NewDenseChunk(c Cell) *Chunk {
	dense := make([]Cell, ChunkSize*ChunkSize)
	for i := range dense {
		dense[i] = c
	}
	return &Chunk{Dense: dense}
}

func (c *Chunk) isUniform() bool { return c.Dense == nil }

// At returns the cell at the local (0..ChunkSize) offset.
func (c *Chunk) At(lx, ly int) Cell {
	if c.isUniform() {
		return c.Uniform
	}
	return c.Dense[ly*ChunkSize+lx]
}

// materialize converts a uniform chunk into a dense one in place, a no-op
// if already dense. Called lazily on first write, mirroring the
// original's IndexMut materialization.
func (c *Chunk) materialize() {
	if !c.isUniform() {
		return
	}
	c.Dense = make([]Cell, ChunkSize*ChunkSize)
	for i := range c.Dense {
		c.Dense[i] = c.Uniform
	}
}

// Set writes the cell at the local offset, materializing first if needed.
func (c *Chunk) Set(lx, ly int, cell Cell) {
	if c.isUniform() && c.Uniform.Equal(cell) {
		return
	}
	c.materialize()
	c.Dense[ly*ChunkSize+lx] = cell
}

// Uniformify collapses a dense chunk back to Uniform if every cell is
// identical, and reports whether the chunk is now (or already was)
// entirely the zero-value default cell — callers use that to drop the
// chunk from the map altogether rather than storing a default-everywhere
// entry.
func (c *Chunk) Uniformify() (isDefault bool) {
	if c.isUniform() {
		return c.Uniform.Equal(NewCell())
	}
	first := c.Dense[0]
	for _, cell := range c.Dense[1:] {
		if !cell.Equal(first) {
			return false
		}
	}
	c.Dense = nil
	c.Uniform = first
	return first.Equal(NewCell())
}
