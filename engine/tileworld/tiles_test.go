package tileworld_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/tileworld"
)

func TestTiles_GetDefaultsToSolid(t *testing.T) {
	tiles := tileworld.NewTiles()
	cell := tiles.Get(core.Pos{100, -100})
	assert.Equal(t, tileworld.Solid, cell.State)
}

func TestTiles_SetAndGetRoundTrip(t *testing.T) {
	tiles := tileworld.NewTiles()
	tiles.Set(core.Pos{3, 4}, tileworld.NewBuildingCell())

	got := tiles.Get(core.Pos{3, 4})
	assert.Equal(t, tileworld.Empty, got.State)
	assert.True(t, got.PowerGrid)

	// Neighboring tiles in the same chunk remain untouched.
	assert.Equal(t, tileworld.Solid, tiles.Get(core.Pos{4, 4}).State)
}

func TestTiles_UniformChunkCollapsesBackToDefault(t *testing.T) {
	tiles := tileworld.NewTiles()
	pos := core.Pos{5, 5}

	tiles.Set(pos, tileworld.NewBuildingCell())
	tiles.Set(pos, tileworld.NewCell())

	var entries []tileworld.TileEntry
	tiles.Iter(func(e tileworld.TileEntry) { entries = append(entries, e) })
	assert.Empty(t, entries, "a chunk that collapses back to the default cell should not surface in Iter")
}

func TestTiles_IterSamplesUniformChunkOnce(t *testing.T) {
	tiles := tileworld.NewTiles()
	for y := int32(0); y < tileworld.ChunkSize; y++ {
		for x := int32(0); x < tileworld.ChunkSize; x++ {
			tiles.Set(core.Pos{x, y}, tileworld.NewSpaceCell())
		}
	}

	count := 0
	tiles.Iter(func(tileworld.TileEntry) { count++ })
	assert.Equal(t, 1, count, "a uniform chunk should yield exactly one representative entry")
}

func TestTiles_NegativeCoordinatesWrapCorrectly(t *testing.T) {
	tiles := tileworld.NewTiles()
	tiles.Set(core.Pos{-1, -1}, tileworld.NewBuildingCell())

	got := tiles.Get(core.Pos{-1, -1})
	assert.Equal(t, tileworld.Empty, got.State)
}

func TestTiles_DigestsOnlyCoverMaterializedChunks(t *testing.T) {
	tiles := tileworld.NewTiles()
	assert.Empty(t, tiles.Digests())

	tiles.Set(core.Pos{0, 0}, tileworld.NewBuildingCell())
	digests := tiles.Digests()
	require.Len(t, digests, 1)
	assert.Equal(t, uint32(0), digests[0].X)
	assert.Equal(t, uint32(0), digests[0].Y)
}

func TestConveyor_SplitterRoutesAnyOutputFromOneInput(t *testing.T) {
	conv := tileworld.NewSplitter(core.Left)
	assert.True(t, conv.HasFrom(core.Left))
	assert.False(t, conv.HasFrom(core.Up))
	assert.True(t, conv.HasTo(core.Up))
	assert.True(t, conv.HasTo(core.Down))
}

func TestConveyor_MergerAcceptsAnyInputToOneOutput(t *testing.T) {
	conv := tileworld.NewMerger(core.Right)
	assert.True(t, conv.HasFrom(core.Left))
	assert.True(t, conv.HasFrom(core.Up))
	assert.True(t, conv.HasTo(core.Right))
	assert.False(t, conv.HasTo(core.Down))
}

func TestConveyor_TwoLevelsAreIndependent(t *testing.T) {
	conv := tileworld.NewTwo(core.Left, core.Right, core.Up, core.Down)

	level, ok := conv.Has(core.Left, core.Right)
	require.True(t, ok)
	assert.Equal(t, uint8(0), level)

	level, ok = conv.Has(core.Up, core.Down)
	require.True(t, ok)
	assert.Equal(t, uint8(1), level)

	_, ok = conv.Has(core.Left, core.Down)
	assert.False(t, ok)
}
