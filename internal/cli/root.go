package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hackevents/internal/api"
	"hackevents/internal/format"
	"hackevents/internal/log"
	"hackevents/internal/session"
	"hackevents/internal/store"
	"hackevents/internal/tui"
)

type App struct {
	Dir        string
	Endpoint   string
	API        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	loadDotEnv()
	app := &App{}

	cmd := &cobra.Command{
		Use:          "hackevents",
		Short:        "Browse hackathon events (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  hackevents

  # Scriptable commands
  hackevents list --type workshop --sort duration
  hackevents order move 12 --to 0

  # Direct event lookup (shortcut for: hackevents show <id>)
  hackevents 12
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		f, err := format.Normalize(app.Format)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Format = f
		if cmd == cmd.Root() {
			// The TUI owns the terminal; only a log file may receive log lines.
			log.Configure(io.Discard)
		} else {
			log.Configure(cmd.ErrOrStderr())
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("HACKEVENTS_DIR", ""), "Path to the state dir (default: ~/.hackevents/state)")
	cmd.PersistentFlags().StringVar(&app.Endpoint, "endpoint", envOr("GRAPHQL_ENDPOINT", ""), "Upstream GraphQL endpoint")
	cmd.PersistentFlags().StringVar(&app.API, "api", envOr("HACKEVENTS_API", ""), "Read events through a running `hackevents serve` proxy at this base URL")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("HACKEVENTS_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newOrderCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebTUICmd(app))

	return cmd
}

// loadDotEnv reads .env.local then .env from the working directory. Variables already set in
// the environment win; missing files are fine.
func loadDotEnv() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", f, err)
		}
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	s := store.Store{Dir: dir}
	kv, err := s.OpenKV(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	cfg, err := store.LoadConfig()
	if err != nil {
		log.Error("load config", err)
		cfg = &store.GlobalConfig{}
	}
	return tui.Run(tui.Options{
		Store:  s,
		KV:     kv,
		Source: resolveSource(app, cfg),
		Config: cfg,
	})
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// resolveSource picks the event source: --api (proxy) wins over --endpoint, then the
// config file, then the public endpoint.
func resolveSource(app *App, cfg *store.GlobalConfig) api.Source {
	if cfg == nil {
		cfg = &store.GlobalConfig{}
	}
	if base := firstNonEmpty(app.API, cfg.API); base != "" {
		return api.NewHTTPSource(base, nil)
	}
	return api.NewGraphQLSource(firstNonEmpty(app.Endpoint, cfg.Endpoint), nil)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// env bundles what most commands need: the persisted state and a browser over it.
type env struct {
	kv      *store.SQLiteKV
	browser *session.Browser
	source  api.Source
}

func (e *env) Close() {
	if e != nil && e.kv != nil {
		_ = e.kv.Close()
	}
}

func openEnv(ctx context.Context, app *App) (*env, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	kv, err := store.Store{Dir: dir}.OpenKV(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		log.Error("load config", err)
		cfg = &store.GlobalConfig{}
	}
	return &env{
		kv:      kv,
		browser: session.New(kv),
		source:  resolveSource(app, cfg),
	}, nil
}

// load fetches the catalogue into the browser.
func (e *env) load(ctx context.Context) error {
	seq := e.browser.BeginFetch()
	events, err := e.source.FetchAllEvents(ctx)
	e.browser.CompleteFetch(seq, events, err)
	if err != nil {
		return err
	}
	log.Debug("fetched events", "count", len(events))
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
