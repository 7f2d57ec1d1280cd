package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1siamBot/colonysim/engine/game"
)

func newRunCommand(configPath *string) *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a save and drive it in real time until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := game.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if savePath == "" {
				savePath = cfg.SaveDir + "/colony.json"
			}

			data, err := os.ReadFile(savePath)
			if err != nil {
				return fmt.Errorf("read save file: %w", err)
			}

			g := game.New(log)
			if err := g.Load(data, func(msg string) { log.Warn().Msg(msg) }); err != nil {
				return fmt.Errorf("load save: %w", err)
			}
			log.Info().Str("path", savePath).Uint64("tick", g.GetGlobalTime()).Msg("colony loaded")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info().Msg("shutdown requested")
				cancel()
			}()

			driver := game.NewDriver(g, cfg)
			hooks := game.Hooks{
				Autosave: func(g *game.Game) {
					if err := saveTo(g, savePath); err != nil {
						log.Error().Err(err).Msg("autosave failed")
						return
					}
					log.Debug().Uint64("tick", g.GetGlobalTime()).Msg("autosaved")
				},
				Push: func(g *game.Game) {
					log.Debug().Uint64("tick", g.GetGlobalTime()).Int("transports", g.NumTransports()).Msg("push tick")
				},
				Cleanup: func(g *game.Game) {
					log.Debug().Msg("cleanup tick")
				},
			}

			driver.Run(ctx, hooks)

			if err := saveTo(g, savePath); err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			log.Info().Str("path", savePath).Msg("colony saved on shutdown")
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "path to the save file to drive (default <save_dir>/colony.json)")
	return cmd
}

func saveTo(g *game.Game, path string) error {
	data, err := g.Save()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
