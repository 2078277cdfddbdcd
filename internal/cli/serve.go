package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hackevents/internal/server"
	"hackevents/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, rate string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /api/events and /api/events/{id} as a JSON proxy over the upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			// The proxy always talks to the upstream; --api would point it at itself.
			upstream := *app
			upstream.API = ""
			cfg.API = ""

			h, err := server.NewHandler(resolveSource(&upstream, cfg), rate)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := server.ListenAndServe(ctx, addr, h.Router()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("HACKEVENTS_ADDR", "127.0.0.1:3000"), "Listen address")
	cmd.Flags().StringVar(&rate, "rate", envOr("HACKEVENTS_RATE", server.DefaultRate), "Per-client rate limit (e.g. 120-M, 10-S)")
	return cmd
}
