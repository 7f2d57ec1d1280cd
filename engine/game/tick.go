package game

import (
	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
	"github.com/1siamBot/colonysim/engine/transport"
)

// Tick advances the whole colony by one simulation step, in the fixed
// phase order global tasks, transports, constructions, buildings, crews —
// matching game.rs's tick().
func (g *Game) Tick() {
	g.processGlobalTasks()
	g.processTransports()
	g.processConstructions()
	g.processBuildings()
	g.processCrews()
	g.GlobalTime++
}

func (g *Game) processGlobalTasks() {
	globaltask.Process(g.GlobalTasks,
		func(pos core.Pos) { g.Tiles.Mutate(pos, func(c *tileworld.Cell) { c.State = tileworld.Empty }) },
		func(pos core.Pos) bool {
			found := false
			g.Transports.Iter(func(t *transport.Transport) {
				if !found && t.Dest == pos {
					found = true
				}
			})
			return found
		},
	)
}

func (g *Game) processTransports() {
	transport.Tick(g.Transports,
		func(t *transport.Transport) bool { return g.deliverTransport(t) },
		func(t *transport.Transport) ([]core.Pos, bool) { return g.rerouteTransport(t) },
	)
}

func (g *Game) deliverTransport(t *transport.Transport) bool {
	delivered := false
	g.Buildings.Iter(func(b *building.Building) {
		if delivered || !b.Intersects(t.Dest) {
			return
		}
		if b.Type.Capacity() >= 0 && b.Inventory.CountableSize()+t.Amount > b.Type.Capacity() {
			return
		}
		b.Inventory.Add(t.Item, t.Amount)
		delivered = true
	})
	if delivered {
		return true
	}
	g.Constructions.Iter(func(c *construction.Construction) {
		if delivered || !c.Intersects(t.Dest) {
			return
		}
		demand := c.Recipe.Ingredients.Get(t.Item)
		arrived := c.Ingredients.Get(t.Item)
		if arrived+t.Amount > demand {
			return
		}
		c.Ingredients.Add(t.Item, t.Amount)
		delivered = true
	})
	return delivered
}

// rerouteTransport searches for a conveyor path back from a transport's
// destination to its source, used when delivery fails because the
// destination is gone or has no room — the shipment rides back the way it
// came rather than sitting stranded forever.
func (g *Game) rerouteTransport(t *transport.Transport) ([]core.Pos, bool) {
	return pushpull.FindConveyorPath(g.Tiles, t.Dest, [2]int{1, 1}, t.Src)
}

func (g *Game) holders() []pushpull.Holder {
	holders := make([]pushpull.Holder, 0, g.Buildings.Len()+g.Constructions.Len())
	g.Buildings.Iter(func(b *building.Building) { holders = append(holders, b) })
	g.Constructions.Iter(func(c *construction.Construction) { holders = append(holders, c) })
	return holders
}

func (g *Game) processConstructions() {
	construction.Process(g.Constructions, g.Tiles, g.Transports, g.holders(), func(done construction.Completed) {
		switch done.Type.Kind {
		case construction.KindBuilding:
			g.Buildings.Insert(building.New(done.Pos, done.Type.BuildingType))
		case construction.KindPowerGrid:
			g.Tiles.Mutate(done.Pos, func(c *tileworld.Cell) { c.PowerGrid = true })
		case construction.KindConveyor:
			conv := done.Type.Conveyor
			g.Tiles.Mutate(done.Pos, func(c *tileworld.Cell) { c.Conveyor = conv })
		}
	})
}

func (g *Game) processBuildings() {
	rawSupply, demand := 0, 0
	g.Buildings.Iter(func(b *building.Building) {
		rawSupply += b.Type.PowerSupply()
		demand += b.PowerDemand()
	})

	supply := rawSupply
	switch {
	case rawSupply > demand:
		// Surplus: charge batteries before arbitration, instead of letting
		// the excess go to waste.
		surplus := rawSupply - demand
		g.Buildings.Iter(func(b *building.Building) {
			if surplus <= 0 || b.Type != building.Battery {
				return
			}
			room := building.BatteryCapacity - b.BatteryCharge
			charge := min(surplus, room, building.BatteryChargeRate)
			if charge > 0 {
				b.BatteryCharge += charge
				surplus -= charge
			}
		})
	case demand > rawSupply:
		// Deficit: batteries discharge to cover the shortfall before
		// arbitration has to ration the remainder.
		deficit := demand - rawSupply
		g.Buildings.Iter(func(b *building.Building) {
			if deficit <= 0 || b.Type != building.Battery {
				return
			}
			discharge := min(deficit, b.BatteryCharge, building.BatteryChargeRate)
			if discharge > 0 {
				b.BatteryCharge -= discharge
				supply += discharge
				deficit -= discharge
			}
		})
	}

	powerRatio := 1.0
	if demand > supply {
		powerRatio = float64(supply) / float64(demand)
	}

	holders := g.holders()
	occupiedBy := func(pos core.Pos) bool {
		blocked := false
		g.Buildings.Iter(func(b *building.Building) {
			if blocked {
				return
			}
			size := b.Type.Size()
			if b.Pos[0] <= pos[0] && pos[0] < b.Pos[0]+int32(size[0]) &&
				b.Pos[1] <= pos[1] && pos[1] < b.Pos[1]+int32(size[1]) {
				blocked = true
			}
		})
		return blocked
	}

	g.Buildings.Iter(func(b *building.Building) {
		if b.Expected == nil {
			b.Expected = map[transport.ID]struct{}{}
		}
		b.Tick(building.TickContext{
			Tiles:       g.Tiles,
			Transports:  g.Transports,
			GlobalTasks: g.GlobalTasks,
			PowerRatio:  powerRatio,
			Holders:     holders,
			RNG:         g.RNG,
			Occupied:    occupiedBy,
		})
	})
}

func (g *Game) processCrews() {
	targets := make([]crew.ConstructionTarget, 0, g.Constructions.Len())
	targetedPositions := map[core.Pos]bool{}
	g.Crews.Iter(func(c *crew.Crew) {
		if c.Task.Kind == crew.TaskBuild || c.Task.Kind == crew.TaskPickup {
			targetedPositions[c.Task.Pos] = true
		}
	})
	g.Constructions.Iter(func(c *construction.Construction) {
		if c.Canceling {
			return
		}
		need := c.RequiredIngredients(itemtype.NewInventory(), g.Transports)
		t := crew.ConstructionTarget{
			Pos:             c.Pos,
			Satisfied:       c.IngredientsSatisfied(),
			AlreadyTargeted: targetedPositions[c.Pos],
		}
		for _, ty := range need.Keys() {
			t.MissingItem = ty
			t.HasMissing = true
			break
		}
		targets = append(targets, t)
	})

	ctx := crew.TickContext{
		Tiles:       g.Tiles,
		Transports:  g.Transports,
		GlobalTasks: g.GlobalTasks,
		Targets:     targets,
		TakeItem:    g.takeItemAt,
		GiveItem:    g.giveItemAt,
		AddBuildProgress: func(pos core.Pos, delta float64) {
			g.Constructions.Iter(func(c *construction.Construction) {
				if c.Pos == pos {
					c.Progress += delta
				}
			})
		},
		FindItemSource: func(item itemtype.ItemType) (core.Pos, bool) {
			found := core.Pos{}
			ok := false
			g.Buildings.Iter(func(b *building.Building) {
				if !ok && b.Inventory.Get(item) > 0 {
					found, ok = b.Pos, true
				}
			})
			return found, ok
		},
		HomePos: func(home core.EntityID) (core.Pos, bool) {
			b := g.Buildings.Get(home)
			if b == nil {
				return core.Pos{}, false
			}
			return b.Pos, true
		},
	}

	g.Crews.Retain(func(c *crew.Crew) bool {
		if g.Buildings.Get(c.Home) == nil {
			return false
		}
		c.Tick(ctx)
		return true
	})
}

func (g *Game) takeItemAt(pos core.Pos, item itemtype.ItemType) bool {
	taken := false
	g.Buildings.Iter(func(b *building.Building) {
		if taken || b.Pos != pos || b.Inventory.Get(item) <= 0 {
			return
		}
		b.Inventory.Add(item, -1)
		taken = true
	})
	if taken {
		return true
	}
	g.Constructions.Iter(func(c *construction.Construction) {
		if taken || c.Pos != pos || c.Ingredients.Get(item) <= 0 {
			return
		}
		c.Ingredients.Add(item, -1)
		taken = true
	})
	return taken
}

func (g *Game) giveItemAt(pos core.Pos, item itemtype.ItemType) bool {
	given := false
	g.Buildings.Iter(func(b *building.Building) {
		if given || b.Pos != pos {
			return
		}
		if b.Type.Capacity() >= 0 && b.Inventory.CountableSize()+1 > b.Type.Capacity() {
			return
		}
		b.Inventory.Add(item, 1)
		given = true
	})
	if given {
		return true
	}
	g.Constructions.Iter(func(c *construction.Construction) {
		if given || c.Pos != pos {
			return
		}
		c.Ingredients.Add(item, 1)
		given = true
	})
	return given
}
