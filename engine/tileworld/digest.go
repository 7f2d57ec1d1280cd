package tileworld

import (
	"hash/fnv"
	"io"
)

// hashChunk computes an FNV-1a 64-bit digest of a chunk's simulation
// content, used for delta-sync snapshots (§6.3 names "FNV-like 64-bit").
func hashChunk(c *Chunk) uint64 {
	h := fnv.New64a()
	if c.isUniform() {
		writeCell(h, c.Uniform)
		return h.Sum64()
	}
	for _, cell := range c.Dense {
		writeCell(h, cell)
	}
	return h.Sum64()
}

func writeCell(h io.Writer, c Cell) {
	b := []byte{byte(c.State), 0}
	if c.PowerGrid {
		b[1] = 1
	}
	h.Write(b)
	h.Write(c.Conveyor.HashBytes())
}
