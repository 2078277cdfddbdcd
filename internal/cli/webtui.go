package cli

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hackevents/internal/server"
	"hackevents/internal/webtui"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the TUI in your browser (PTY + WebSocket, experimental)",
		Long: strings.TrimSpace(`
Serve the interactive TUI to a browser through a server-side PTY and a browser terminal emulator.

Each browser tab starts its own TUI subprocess sharing this state dir. There is no auth: bind
to localhost.
`),
		Example: strings.TrimSpace(`
hackevents webtui --addr 127.0.0.1:3334
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:     addr,
				Dir:      dir,
				Endpoint: app.Endpoint,
				API:      app.API,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := srv.Addr()
			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"dir":       dir,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{"open http://" + listenAddr},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "hackevents webtui running at http://%s\n", listenAddr)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := server.ListenAndServe(ctx, listenAddr, srv.Handler()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("HACKEVENTS_WEBTUI_ADDR", "127.0.0.1:3334"), "Listen address")
	return cmd
}
