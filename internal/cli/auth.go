package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to see private events",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.browser.Login(username, password); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"authed": true}})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", envOr("HACKEVENTS_PASSWORD", ""), "Password (or HACKEVENTS_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out (private events are hidden again)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.browser.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"authed": false}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var require bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Report whether this state dir is signed in",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			authed := e.browser.Authed()
			if err := writeOut(cmd, app, map[string]any{"data": map[string]any{"authed": authed}}); err != nil {
				return err
			}
			if require && !authed {
				return errors.New("not signed in")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&require, "require", false, "Exit non-zero when signed out")
	return cmd
}
