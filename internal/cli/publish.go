package cli

import (
	"github.com/spf13/cobra"

	"hackevents/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to        string
		title     string
		overwrite bool
		f         viewFlags
	)

	cmd := &cobra.Command{
		Use:   "publish --to <dir>",
		Short: "Write the events view as markdown (index.md + one page per event)",
		RunE: func(cmd *cobra.Command, args []string) error {
			vf, err := f.filter()
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			b := e.browser
			b.SetSearch(vf.SearchText)
			b.SetType(vf.SelectedType)
			b.SetSort(vf.SortMode)

			res, err := publish.WriteSchedule(b.View().Visible, b.Events(), to, publish.WriteOptions{
				Title:         title,
				Overwrite:     overwrite,
				RenderOptions: publish.RenderOptions{Authed: b.Authed()},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"count": len(res.Written), "authed": b.Authed()},
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().StringVar(&title, "title", "Hack the North events", "Index page title")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
