package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jask/airwatch/internal/atlas"
	"github.com/jask/airwatch/internal/fakeapi"
	"github.com/jask/airwatch/internal/httpserver"
)

func newFakeAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fake-api",
		Short: "Serve synthetic air-quality data for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			seed, err := cmd.Flags().GetUint64("seed")
			if err != nil {
				return err
			}
			atlasPath, err := cmd.Flags().GetString("atlas")
			if err != nil {
				return err
			}
			places, err := atlas.Load(atlasPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.Default()
			store := fakeapi.NewStore(places, seed)
			logger.Info("fake air-quality API listening", "addr", addr, "sectors", places.Len(), "seed", seed)
			return httpserver.Run(ctx, httpserver.New(addr, fakeapi.Router(store, logger)), logger)
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:5000", "Address to listen on")
	cmd.Flags().Uint64("seed", 1, "Seed for the synthetic readings")
	cmd.Flags().String("atlas", "", "Sector atlas TOML file (built-in when empty)")
	return cmd
}
