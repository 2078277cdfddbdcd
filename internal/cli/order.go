package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hackevents/internal/model"
)

type viewFlags struct {
	search string
	typ    string
	sort   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Search text the indices refer to")
	cmd.Flags().StringVar(&f.typ, "type", "all", "Type filter the indices refer to")
	cmd.Flags().StringVar(&f.sort, "sort", "start_time", "Sort mode the indices refer to")
}

func (f *viewFlags) filter() (model.ViewFilter, error) {
	t, err := model.ParseTypeFilter(f.typ)
	if err != nil {
		return model.ViewFilter{}, err
	}
	sm, err := model.ParseSortMode(f.sort)
	if err != nil {
		return model.ViewFilter{}, err
	}
	return model.ViewFilter{SearchText: f.search, SelectedType: t, SortMode: sm}, nil
}

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and edit the custom event order",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored custom order (event ids)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			ids := e.browser.Order()
			return writeOut(cmd, app, map[string]any{
				"data": ids,
				"meta": map[string]any{"count": len(ids)},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the custom order (events fall back to the selected sort)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.browser.ClearOrder(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e.browser.Order()})
		},
	})

	var swapView viewFlags
	swapCmd := &cobra.Command{
		Use:   "swap <index-a> <index-b>",
		Short: "Swap two cards by their position in the listed view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, errA := strconv.Atoi(args[0])
			b, errB := strconv.Atoi(args[1])
			if errA != nil || errB != nil {
				return writeErr(cmd, fmt.Errorf("indices must be integers: %s %s", args[0], args[1]))
			}
			return runReorder(cmd, app, swapView, func(e *env) (bool, error) {
				return e.browser.Swap(a, b)
			})
		},
	}
	swapView.register(swapCmd)
	cmd.AddCommand(swapCmd)

	var moveView viewFlags
	var to int
	moveCmd := &cobra.Command{
		Use:   "move <event-id> --to <index>",
		Short: "Move an event to a position in the listed view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("event", args[0]))
			}
			return runReorder(cmd, app, moveView, func(e *env) (bool, error) {
				for _, v := range e.browser.VisibleIDs() {
					if v == id {
						return e.browser.MoveTo(id, to)
					}
				}
				return false, errNotFound("event", args[0])
			})
		},
	}
	moveView.register(moveCmd)
	moveCmd.Flags().IntVar(&to, "to", 0, "Target index in the listed view")
	cmd.AddCommand(moveCmd)

	return cmd
}

func runReorder(cmd *cobra.Command, app *App, vf viewFlags, apply func(*env) (bool, error)) error {
	f, err := vf.filter()
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

	e.browser.SetSearch(f.SearchText)
	e.browser.SetType(f.SelectedType)
	e.browser.SetSort(f.SortMode)

	changed, err := apply(e)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{
		"data": e.browser.Order(),
		"meta": map[string]any{
			"changed": changed,
			"visible": e.browser.VisibleIDs(),
		},
	})
}
