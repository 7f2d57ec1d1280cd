package globaltask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
)

func TestProcess_CompletedExcavateSetsTileEmptyAndIsDropped(t *testing.T) {
	tasks := core.NewEntityStore[globaltask.GlobalTask]()
	pos := core.Pos{1, 1}
	gt := globaltask.NewExcavate(pos)
	gt.T = 0
	id := tasks.Insert(gt)

	var emptied []core.Pos
	globaltask.Process(tasks, func(p core.Pos) { emptied = append(emptied, p) }, func(core.Pos) bool { return false })

	require.Equal(t, []core.Pos{pos}, emptied)
	assert.Equal(t, 0, tasks.Len())
	assert.Nil(t, tasks.Get(id))
}

func TestProcess_UnfinishedExcavateSurvives(t *testing.T) {
	tasks := core.NewEntityStore[globaltask.GlobalTask]()
	pos := core.Pos{2, 2}
	id := tasks.Insert(globaltask.NewExcavate(pos))

	var emptied []core.Pos
	globaltask.Process(tasks, func(p core.Pos) { emptied = append(emptied, p) }, func(core.Pos) bool { return false })

	assert.Empty(t, emptied)
	assert.Equal(t, 1, tasks.Len())
	assert.NotNil(t, tasks.Get(id))
}

func TestProcess_CleanupSurvivesWhileTransportsStillRouteThere(t *testing.T) {
	tasks := core.NewEntityStore[globaltask.GlobalTask]()
	pos := core.Pos{3, 3}
	id := tasks.Insert(globaltask.NewCleanup(pos))

	globaltask.Process(tasks, func(core.Pos) {}, func(p core.Pos) bool { return p == pos })
	assert.NotNil(t, tasks.Get(id))

	globaltask.Process(tasks, func(core.Pos) {}, func(core.Pos) bool { return false })
	assert.Nil(t, tasks.Get(id))
}
