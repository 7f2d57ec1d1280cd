// Command colonysim is the headless CLI surface for the asteroid-colony
// simulation: starting a new colony save, running the real-time driver
// against one, and inspecting a save's state. It deliberately has no
// rendering, network or dispatcher surface; the game package's command
// and query methods are the only thing it calls.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "colonysim",
		Short: "Asteroid-colony simulation engine",
		Long: `colonysim drives a tick-based asteroid colony simulation.

Examples:
  colonysim new-game --save colony.json
  colonysim run --save colony.json
  colonysim inspect --save colony.json`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (defaults to ./config.yaml)")

	root.AddCommand(newNewGameCommand(&configPath))
	root.AddCommand(newRunCommand(&configPath))
	root.AddCommand(newInspectCommand())

	return root
}
