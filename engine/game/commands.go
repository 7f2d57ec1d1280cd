package game

import (
	"errors"

	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/globaltask"
	"github.com/1siamBot/colonysim/engine/itemtype"
	"github.com/1siamBot/colonysim/engine/pathfind"
	"github.com/1siamBot/colonysim/engine/pushpull"
	"github.com/1siamBot/colonysim/engine/tileworld"
)

// Command errors, worded to match the original's command handlers.
var (
	ErrBuildingNotFound       = errors.New("Building does not exist at that position")
	ErrNotMobile              = errors.New("Building at that position is not mobile")
	ErrBuildingBusy           = errors.New("The building is busy; wait for the building to finish the current task")
	ErrNoPathFound            = errors.New("Failed to find the path")
	ErrPointOutsideCell       = errors.New("Point outside cell")
	ErrNeedsExcavation        = errors.New("Needs excavation before building")
	ErrCannotBuildInSpace     = errors.New("You cannot build in space!")
	ErrPowerGridRequired      = errors.New("Power grid is required to build")
	ErrOccupiedByBuilding     = errors.New("The destination is already occupied by a building")
	ErrOccupiedByConstruction = errors.New("The destination is already occupied by a construction plan")
	ErrNoBuildingAtTarget     = errors.New("The building does not exist at the target")
	ErrNotAssembler           = errors.New("The building is not an assembler")
	ErrAlreadyExcavated       = errors.New("Already excavated")
	ErrNoCrewCabinReachable   = errors.New("No crew cabin that can reach the position found")
	ErrNeedsExcavationPower   = errors.New("Needs excavation before building power grid")
	ErrCannotBuildPowerSpace  = errors.New("You cannot build power grid in space!")
	ErrPowerGridAlready       = errors.New("Power grid is already installed in this tile")
	ErrNoBuildingToDeconstruct = errors.New("Building not found at given position")
	ErrNoDeconstructRecipe    = errors.New("No build recipe was found to deconstruct")
)

// Excavate creates a pooled-labor excavation global task at pos, provided
// the tile isn't already excavated and at least one CrewCabin can path to
// it.
func (g *Game) Excavate(pos core.Pos) error {
	if g.Tiles.Get(pos).State != tileworld.Solid {
		return ErrAlreadyExcavated
	}
	reachable := false
	g.Buildings.Iter(func(b *building.Building) {
		if reachable || b.Type != building.CrewCabin {
			return
		}
		if _, ok := pathfind.FindPath(b.Pos, pos, func(p core.Pos) bool {
			return g.Tiles.Get(p).State == tileworld.Empty || p == pos
		}); ok {
			reachable = true
		}
	})
	if !reachable {
		return ErrNoCrewCabinReachable
	}
	g.GlobalTasks.Insert(globaltask.NewExcavate(pos))
	return nil
}

// BuildPowerGrid plans a power grid installation at pos.
func (g *Game) BuildPowerGrid(pos core.Pos) error {
	cell := g.Tiles.Get(pos)
	if cell.State == tileworld.Solid {
		return ErrNeedsExcavationPower
	}
	if cell.State == tileworld.Space {
		return ErrCannotBuildPowerSpace
	}
	if cell.PowerGrid {
		return ErrPowerGridAlready
	}
	g.Constructions.Insert(construction.NewPowerGrid(pos, false))
	return nil
}

// Build plans a building construction of ty rooted at pos.
func (g *Game) Build(pos core.Pos, ty building.Type) error {
	size := ty.Size()
	for jy := 0; jy < size[1]; jy++ {
		for jx := 0; jx < size[0]; jx++ {
			cell := g.Tiles.Get(pos.Add(core.Pos{int32(jx), int32(jy)}))
			if cell.State == tileworld.Solid {
				return ErrNeedsExcavation
			}
			if cell.State == tileworld.Space {
				return ErrCannotBuildInSpace
			}
		}
	}
	if !g.Tiles.Get(pos).PowerGrid {
		return ErrPowerGridRequired
	}
	if g.buildingIntersects(pos, size) {
		return ErrOccupiedByBuilding
	}
	if g.constructionIntersects(pos, size) {
		return ErrOccupiedByConstruction
	}
	c, ok := construction.NewBuilding(ty, pos)
	if !ok {
		return ErrNoDeconstructRecipe
	}
	g.Constructions.Insert(c)
	return nil
}

func (g *Game) buildingIntersects(pos core.Pos, size [2]int) bool {
	hit := false
	g.Buildings.Iter(func(b *building.Building) {
		if hit {
			return
		}
		bs := b.Type.Size()
		if b.Pos[0] < pos[0]+int32(size[0]) && pos[0] < b.Pos[0]+int32(bs[0]) &&
			b.Pos[1] < pos[1]+int32(size[1]) && pos[1] < b.Pos[1]+int32(bs[1]) {
			hit = true
		}
	})
	return hit
}

func (g *Game) constructionIntersects(pos core.Pos, size [2]int) bool {
	hit := false
	g.Constructions.Iter(func(c *construction.Construction) {
		if !hit && c.IntersectsRect(pos, size) {
			hit = true
		}
	})
	return hit
}

// BuildPlan appends pre-built Construction entries directly, bypassing
// the overlap checks Build performs (for scripted scenarios and save
// migration).
func (g *Game) BuildPlan(plan []construction.Construction) {
	for _, c := range plan {
		g.Constructions.Insert(c)
	}
}

// CancelBuild toggles canceling on the construction at pos, if any.
func (g *Game) CancelBuild(pos core.Pos) {
	g.Constructions.Iter(func(c *construction.Construction) {
		if c.Pos == pos {
			c.ToggleCancel()
		}
	})
}

// Deconstruct converts the building at pos into a canceling Construction
// that releases the recipe's ingredients plus whatever the building's
// inventory still held.
func (g *Game) Deconstruct(pos core.Pos) error {
	var found *building.Building
	var foundID core.EntityID
	g.Buildings.Items(func(id core.EntityID, b *building.Building) {
		if found == nil && b.Pos == pos {
			found = b
			foundID = id
		}
	})
	if found == nil {
		return ErrNoBuildingToDeconstruct
	}
	decon, ok := construction.NewDeconstruct(found.Type, pos, found.Inventory)
	if !ok {
		return ErrNoDeconstructRecipe
	}
	g.Constructions.Insert(decon)
	g.Buildings.Remove(foundID)
	return nil
}

// MoveBuilding plans a Move task relocating the mobile building at from to
// to, over Empty, power-gridded tiles not already covered by another
// building.
func (g *Game) MoveBuilding(from, to core.Pos) error {
	var found *building.Building
	g.Buildings.Iter(func(b *building.Building) {
		if found == nil && b.Pos == from {
			found = b
		}
	})
	if found == nil {
		return ErrBuildingNotFound
	}
	if !found.Type.IsMobile() {
		return ErrNotMobile
	}
	if found.Busy() {
		return ErrBuildingBusy
	}
	passable := func(p core.Pos) bool {
		if g.buildingIntersects(p, [2]int{1, 1}) {
			return false
		}
		cell := g.Tiles.Get(p)
		return cell.State == tileworld.Empty && cell.PowerGrid
	}
	path, ok := pathfind.FindPath(from, to, passable)
	if !ok || !passable(to) {
		return ErrNoPathFound
	}
	found.Task = building.NewMoveTask(path)
	return nil
}

func (g *Game) findAssembler(pos core.Pos) (*building.Building, error) {
	var found *building.Building
	g.Buildings.Iter(func(b *building.Building) {
		if found != nil {
			return
		}
		size := b.Type.Size()
		if b.Pos[0] <= pos[0] && pos[0] < b.Pos[0]+int32(size[0]) &&
			b.Pos[1] <= pos[1] && pos[1] < b.Pos[1]+int32(size[1]) {
			found = b
		}
	})
	if found == nil {
		return nil, ErrNoBuildingAtTarget
	}
	if found.Type != building.Assembler {
		return nil, ErrNotAssembler
	}
	return found, nil
}

// GetRecipes returns the fixed recipe catalog, provided pos names an
// Assembler building.
func (g *Game) GetRecipes(pos core.Pos) ([]itemtype.Recipe, error) {
	if _, err := g.findAssembler(pos); err != nil {
		return nil, err
	}
	return itemtype.AssemblerRecipes(), nil
}

// SetRecipe assigns the recipe whose first output item matches name to
// the Assembler at pos, or clears its recipe if name doesn't match any.
func (g *Game) SetRecipe(pos core.Pos, name string) error {
	b, err := g.findAssembler(pos)
	if err != nil {
		return err
	}
	b.Recipe = -1
	for i, recipe := range itemtype.AssemblerRecipes() {
		keys := recipe.Outputs.Keys()
		if len(keys) == 0 {
			continue
		}
		if keys[0].String() == name {
			b.Recipe = i
			break
		}
	}
	return nil
}

// SendItem explicitly routes amount units of item from src to dest over
// the conveyor network, used by scripted scenarios and manual dispatch
// rather than the per-tick PullInputs/PushOutputs.
func (g *Game) SendItem(src, dest core.Pos, item itemtype.ItemType, amount int) error {
	var srcInv itemtype.Inventory
	g.Buildings.Iter(func(b *building.Building) {
		if srcInv == nil && b.Pos == src {
			srcInv = b.Inventory
		}
	})
	if srcInv == nil {
		return ErrBuildingNotFound
	}
	_, err := pushpull.SendItem(g.Tiles, g.Transports, src, dest, item, amount, srcInv)
	return err
}

// PreviewBuildConveyor computes the staged L-shape conveyor plan between
// two points for visualization, without committing it as Constructions.
func (g *Game) PreviewBuildConveyor(from, to core.Pos) []ConveyorStage {
	return planConveyorLShape(from, to)
}

// CommitBuildConveyor converts the staged L-shape plan between from and
// to into real Conveyor Constructions, one per staged tile. Every stage
// is a single-level One conveyor: no tile is promoted to a Two, and no
// Splitter or Merger is derived from conveyors already on the map.
func (g *Game) CommitBuildConveyor(from, to core.Pos) {
	stages := planConveyorLShape(from, to)
	for _, s := range stages {
		g.Constructions.Insert(construction.NewConveyor(s.Pos, s.Conveyor, false))
	}
}

// BuildSplitter stages a Splitter-variant conveyor construction at pos:
// items enter only from `from`, and may leave toward any of the other
// three sides.
func (g *Game) BuildSplitter(pos core.Pos, from core.Direction) {
	conv := tileworld.NewSplitter(from)
	g.Constructions.Insert(construction.NewConveyor(pos, conv, false))
}

// BuildMerger stages a Merger-variant conveyor construction at pos: items
// may enter from any side and leave only toward `to`.
func (g *Game) BuildMerger(pos core.Pos, to core.Direction) {
	conv := tileworld.NewMerger(to)
	g.Constructions.Insert(construction.NewConveyor(pos, conv, false))
}

// CancelBuildConveyor toggles canceling on the conveyor construction at
// pos (an alias of CancelBuild, kept separate to mirror the distinct
// command name in the external interface).
func (g *Game) CancelBuildConveyor(pos core.Pos) { g.CancelBuild(pos) }

// CleanupItem creates a Cleanup global task at pos, which blocks reuse of
// that tile until no transport still routes there.
func (g *Game) CleanupItem(pos core.Pos) {
	g.GlobalTasks.Insert(globaltask.NewCleanup(pos))
}

// ConveyorStage is one tile of a staged conveyor build plan.
type ConveyorStage struct {
	Pos      core.Pos
	Conveyor tileworld.Conveyor
}

// planConveyorLShape derives a simple L-shaped staged conveyor route
// between from and to: horizontal run first, then vertical, each tile
// wired One(from-dir, to-dir), matching the direction the path actually
// crosses it. The elbow where the two legs meet is a turning One.
func planConveyorLShape(from, to core.Pos) []ConveyorStage {
	var path []core.Pos
	cur := from
	for cur[0] != to[0] {
		step := int32(1)
		if to[0] < cur[0] {
			step = -1
		}
		cur = core.Pos{cur[0] + step, cur[1]}
		path = append(path, cur)
	}
	for cur[1] != to[1] {
		step := int32(1)
		if to[1] < cur[1] {
			step = -1
		}
		cur = core.Pos{cur[0], cur[1] + step}
		path = append(path, cur)
	}
	if len(path) == 0 {
		return nil
	}
	full := append([]core.Pos{from}, path...)
	stages := make([]ConveyorStage, 0, len(path))
	for i := 1; i < len(full); i++ {
		prev, at := full[i-1], full[i]
		var next core.Pos
		if i+1 < len(full) {
			next = full[i+1]
		} else {
			next = at
		}
		fromDir, ok1 := core.DirectionFromVec(prev.Sub(at))
		toDir, ok2 := core.DirectionFromVec(next.Sub(at))
		if !ok1 {
			fromDir = toDir.Reverse()
		}
		if !ok2 {
			toDir = fromDir.Reverse()
		}
		stages = append(stages, ConveyorStage{Pos: at, Conveyor: tileworld.NewOne(fromDir, toDir)})
	}
	return stages
}
