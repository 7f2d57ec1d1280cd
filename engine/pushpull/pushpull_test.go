package pushpull_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// testHolder is a minimal pushpull.Holder for exercising the routing logic
// without pulling in the building or construction packages.
type testHolder struct {
	pos      core.Pos
	size     [2]int
	inv      itemtype.Inventory
	capacity int
	expected map[transport.ID]struct{}
}

func (h *testHolder) InvPos() core.Pos        { return h.pos }
func (h *testHolder) InvSize() [2]int         { return h.size }
func (h *testHolder) Inv() itemtype.Inventory { return h.inv }
func (h *testHolder) Capacity() int           { return h.capacity }
func (h *testHolder) ExpectedIDs() map[transport.ID]struct{} {
	if h.expected == nil {
		h.expected = map[transport.ID]struct{}{}
	}
	return h.expected
}

// straightConveyorRoute wires a single-tile-wide belt from (0,0) through
// (1,0) so the tile in between is the only one whose conveyor hardware the
// multipath search must actually check; src and dest themselves are never
// passable-checked (dest is exempt as the goal, src is only exit-checked).
// The belt faces the way a real one would: it receives from the Left and
// feeds out to the Right.
func straightConveyorRoute() *tileworld.Tiles {
	tiles := tileworld.NewTiles()
	tiles.Set(core.Pos{1, 0}, tileworld.Cell{State: tileworld.Empty, Conveyor: tileworld.NewOne(core.Left, core.Right)})
	return tiles
}

func TestPullInputs_ReservesATransportAndDecrementsSource(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()
	expected := map[transport.ID]struct{}{}

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.RawOre: 5}, capacity: -1}
	need := itemtype.Inventory{itemtype.RawOre: 1}
	have := itemtype.NewInventory()

	pushpull.PullInputs(tiles, transports, expected, need, core.Pos{2, 0}, [2]int{1, 1}, have, []pushpull.Holder{source})

	assert.Equal(t, 4, source.inv.Get(itemtype.RawOre), "one unit reserved off the source immediately")
	assert.Equal(t, 1, transports.Len())
	assert.Len(t, expected, 1)
}

func TestPullInputs_SkipsWhenAlreadySatisfiedByHaveOrInFlight(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()
	expected := map[transport.ID]struct{}{}

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.RawOre: 5}, capacity: -1}
	need := itemtype.Inventory{itemtype.RawOre: 1}
	have := itemtype.Inventory{itemtype.RawOre: 1}

	pushpull.PullInputs(tiles, transports, expected, need, core.Pos{2, 0}, [2]int{1, 1}, have, []pushpull.Holder{source})

	assert.Equal(t, 5, source.inv.Get(itemtype.RawOre), "already-satisfied need must not trigger a pull")
	assert.Equal(t, 0, transports.Len())
}

func TestPullInputs_SkipsHolderOverlappingDestination(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()
	expected := map[transport.ID]struct{}{}

	// A holder whose footprint contains the destination itself (e.g. the
	// destination's own position) must never be treated as its own source.
	source := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.RawOre: 5}, capacity: -1}
	need := itemtype.Inventory{itemtype.RawOre: 1}
	have := itemtype.NewInventory()

	pushpull.PullInputs(tiles, transports, expected, need, core.Pos{2, 0}, [2]int{1, 1}, have, []pushpull.Holder{source})

	assert.Equal(t, 0, transports.Len())
}

func TestPushOutputs_RoutesMatchingItemsToHolderWithRoom(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 2}, capacity: -1}
	dest := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.NewInventory(), capacity: 10}

	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{dest}, func(itemtype.ItemType) bool { return true })

	assert.Equal(t, 1, source.inv.Get(itemtype.Gear), "one unit pushed out")
	assert.Equal(t, 1, transports.Len())
}

func TestPushOutputs_SkipsHolderAtCapacity(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 2}, capacity: -1}
	full := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 10}, capacity: 10}

	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{full}, func(itemtype.ItemType) bool { return true })

	assert.Equal(t, 2, source.inv.Get(itemtype.Gear), "a full holder must not receive a push")
	assert.Equal(t, 0, transports.Len())
}

func TestPushOutputs_RegistersDestinationExpectedID(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 1}, capacity: -1}
	dest := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.NewInventory(), capacity: 10}

	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{dest}, func(itemtype.ItemType) bool { return true })

	require.Len(t, dest.ExpectedIDs(), 1, "the new transport must be tracked against its destination")
}

func TestPushOutputs_InFlightReservationsCountAgainstCapacity(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 2}, capacity: -1}
	dest := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 9}, capacity: 10}

	// First push fills the last unit of declared capacity via an in-flight
	// reservation, not actual inventory; a second push in the same tick must
	// see that reservation and refuse to over-commit past capacity.
	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{dest}, func(itemtype.ItemType) bool { return true })
	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{dest}, func(itemtype.ItemType) bool { return true })

	assert.Equal(t, 1, transports.Len(), "capacity plus in-flight reservations must not be exceeded")
	assert.Equal(t, 1, source.inv.Get(itemtype.Gear))
}

func TestPushOutputs_FilterExcludesItemTypes(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()

	source := &testHolder{pos: core.Pos{0, 0}, size: [2]int{1, 1}, inv: itemtype.Inventory{itemtype.Gear: 2, itemtype.Wire: 1}, capacity: -1}
	dest := &testHolder{pos: core.Pos{2, 0}, size: [2]int{1, 1}, inv: itemtype.NewInventory(), capacity: -1}

	pushpull.PushOutputs(tiles, transports, source, []pushpull.Holder{dest}, func(ty itemtype.ItemType) bool { return ty == itemtype.Wire })

	assert.Equal(t, 2, source.inv.Get(itemtype.Gear), "filtered-out item types are left untouched")
	assert.Equal(t, 0, source.inv.Get(itemtype.Wire))
	assert.Equal(t, 1, transports.Len())
}

func TestSendItem_ReservesTransportAndDeducts(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()
	have := itemtype.Inventory{itemtype.RawOre: 5}

	id, err := pushpull.SendItem(tiles, transports, core.Pos{0, 0}, core.Pos{2, 0}, itemtype.RawOre, 2, have)
	require.NoError(t, err)
	assert.Equal(t, 3, have.Get(itemtype.RawOre))
	assert.NotNil(t, transports.Get(core.EntityID(id)))
}

func TestSendItem_InsufficientItems(t *testing.T) {
	tiles := straightConveyorRoute()
	transports := core.NewEntityStore[transport.Transport]()
	have := itemtype.Inventory{itemtype.RawOre: 1}

	_, err := pushpull.SendItem(tiles, transports, core.Pos{0, 0}, core.Pos{2, 0}, itemtype.RawOre, 2, have)
	assert.ErrorIs(t, err, pushpull.ErrInsufficientItems)
}

func TestSendItem_NoPath(t *testing.T) {
	tiles := tileworld.NewTiles() // no conveyors installed anywhere
	transports := core.NewEntityStore[transport.Transport]()
	have := itemtype.Inventory{itemtype.RawOre: 5}

	_, err := pushpull.SendItem(tiles, transports, core.Pos{0, 0}, core.Pos{2, 0}, itemtype.RawOre, 1, have)
	assert.ErrorIs(t, err, pushpull.ErrNoPath)
}
