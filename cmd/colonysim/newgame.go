package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/1siamBot/colonysim/engine/game"
)

func newNewGameCommand(configPath *string) *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "new-game",
		Short: "Lay out a fresh starting colony and write it to a save file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := game.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			g := game.NewColony(log)
			data, err := g.Save()
			if err != nil {
				return fmt.Errorf("save new colony: %w", err)
			}

			path := savePath
			if path == "" {
				path = cfg.SaveDir + "/colony.json"
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create save directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write save file: %w", err)
			}

			log.Info().Str("path", path).Str("colony_id", g.ID.String()).Msg("new colony created")
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "path to write the new save file (default <save_dir>/colony.json)")
	return cmd
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
