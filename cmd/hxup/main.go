package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/pthm/hxup"
	"github.com/pthm/hxup/lib/dom"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the flags shared by every command.
type app struct {
	configPath string
	logLevel   string
	watch      bool
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "hxup",
		Short:         "hxup - attribute-driven behavior compiler for HTML fragments",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	compile := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile an HTML file and print the result",
		Long: `Compile runs the built-in macros and compilers over an HTML document or
fragment and prints the compiled HTML: up-dash, up-expand, data-method and
data-confirm shortcuts are expanded and up-keep elements are marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], a.compile)
		},
	}

	inspect := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List followable elements and the variant that owns each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], a.inspect)
		},
	}

	for _, cmd := range []*cobra.Command{compile, inspect} {
		cmd.Flags().BoolVar(&a.watch, "watch", false, "recompile whenever the file changes")
		root.AddCommand(cmd)
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hxup version %s\n", version)
		},
	})

	return root
}

// session is one configured engine plus the names of its variants.
type session struct {
	engine *hxup.Engine
	names  map[*hxup.FollowVariant]string
	logger zerolog.Logger
}

func (a *app) newSession() (*session, error) {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		if cfg.LogLevel, err = parseLevel(a.logLevel); err != nil {
			return nil, err
		}
	}

	logger := newLogger(a.errOut, cfg.LogLevel)
	e := hxup.New(
		hxup.WithConfig(cfg.Engine),
		hxup.WithLogger(zerologSLogger{logger: logger}),
	)
	if err := e.Boot(); err != nil {
		return nil, err
	}

	s := &session{
		engine: e,
		names:  map[*hxup.FollowVariant]string{e.DefaultVariant(): "default"},
		logger: logger,
	}
	for _, v := range cfg.Variants {
		handle := e.AddFollowVariant(v.Selector, reportOnly, reportOnly)
		s.names[handle] = v.Name
	}
	return s, nil
}

// reportOnly stands in for features the CLI cannot run, such as modals.
func reportOnly(context.Context, *html.Node, hxup.FollowOptions) hxup.Result {
	return hxup.Skip()
}

func (a *app) run(ctx context.Context, path string, fn func(*session, string) error) error {
	s, err := a.newSession()
	if err != nil {
		return err
	}
	if !a.watch {
		return fn(s, path)
	}
	return watchFile(ctx, path, s.logger, func() error {
		// A fresh engine per run: compiled state belongs to the old document.
		fresh, err := a.newSession()
		if err != nil {
			return err
		}
		return fn(fresh, path)
	})
}

// load parses path as a full document if it has an <html> tag and as a
// body fragment otherwise.
func load(path string) (*html.Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.Contains(strings.ToLower(string(src)), "<html") {
		return dom.Parse(string(src))
	}
	return dom.ParseFragment(string(src))
}

func (a *app) compile(s *session, path string) error {
	root, err := load(path)
	if err != nil {
		return err
	}
	errs := s.engine.Compile(root, hxup.CompileOptions{})
	fmt.Fprintln(a.out, dom.Render(root))
	if len(errs) > 0 {
		s.logger.Warn().Int("errors", len(errs)).Str("file", path).Msg("compiled with errors")
	}
	return nil
}
