package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1siamBot/colonysim/engine/building"
	"github.com/1siamBot/colonysim/engine/construction"
	"github.com/1siamBot/colonysim/engine/core"
	"github.com/1siamBot/colonysim/engine/crew"
	"github.com/1siamBot/colonysim/engine/game"
)

func newInspectCommand() *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of a save file's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if savePath == "" {
				return fmt.Errorf("--save is required")
			}

			data, err := os.ReadFile(savePath)
			if err != nil {
				return fmt.Errorf("read save file: %w", err)
			}

			g := game.New(newLogger())
			if err := g.Load(data, func(msg string) { fmt.Fprintln(os.Stderr, "warning:", msg) }); err != nil {
				return fmt.Errorf("load save: %w", err)
			}

			printSummary(g)
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "path to the save file to inspect")
	return cmd
}

func printSummary(g *game.Game) {
	fmt.Printf("colony %s at tick %d\n", g.ID, g.GetGlobalTime())

	fmt.Printf("\nbuildings (%d):\n", countBuildings(g))
	g.IterBuilding(func(id core.EntityID, b *building.Building) {
		fmt.Printf("  %-5v %-12s pos=%-10s task=%-12s demand=%d", id, b.Type, b.Pos, b.Task.Kind, b.PowerDemand())
		if b.Type == building.Battery {
			fmt.Printf(" charge=%d/%d", b.BatteryCharge, building.BatteryCapacity)
		}
		fmt.Println()
	})

	fmt.Printf("\nconstructions (%d):\n", countConstructions(g))
	g.IterConstruction(func(id core.EntityID, c *construction.Construction) {
		fmt.Printf("  %-5v pos=%-10s progress=%.1f/%.1f canceling=%v\n",
			id, c.Pos, c.Progress, c.Recipe.Time, c.Canceling)
	})

	fmt.Printf("\ncrews (%d):\n", countCrews(g))
	g.IterCrew(func(id core.EntityID, c *crew.Crew) {
		fmt.Printf("  %-5v pos=%-10s task=%-12v\n", id, c.Pos, c.Task.Kind)
	})

	fmt.Printf("\nin-flight transports: %d\n", g.NumTransports())
}

func countBuildings(g *game.Game) int {
	n := 0
	g.IterBuilding(func(core.EntityID, *building.Building) { n++ })
	return n
}

func countConstructions(g *game.Game) int {
	n := 0
	g.IterConstruction(func(core.EntityID, *construction.Construction) { n++ })
	return n
}

func countCrews(g *game.Game) int {
	n := 0
	g.IterCrew(func(core.EntityID, *crew.Crew) { n++ })
	return n
}
