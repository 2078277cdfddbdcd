package cli

import (
	"github.com/spf13/cobra"

	"hackevents/internal/store"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write ~/.hackevents/config.json",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the global config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, _ := store.ConfigPath()
			return writeOut(cmd, app, map[string]any{
				"data": cfg,
				"meta": map[string]any{"path": path, "keys": store.ConfigKeys},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (empty value clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SetConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	})
	return cmd
}
