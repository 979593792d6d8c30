package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loomui/loom"
	"github.com/loomui/loom/pkg/server"
	"github.com/loomui/loom/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the built-in demo application",
		Long: `Run the built-in counter demo on the session server.

Each browser connection gets its own application instance. Open the
printed address, click the buttons, and watch state round-trip over
the websocket.

Examples:
  loom serve
  loom serve --addr=:9000 --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logLevel)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runServe(addr, logLevel string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	config := server.DefaultConfig()
	config.Addr = addr
	config.Logger = logger

	srv := server.New(config, counterApp(logger))

	printBanner()
	success("Serving the counter demo")
	info("http://localhost%s", addr)
	info("Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return srv.ListenAndServe(ctx)
}

// counterApp returns a factory for the demo counter application.
func counterApp(logger *slog.Logger) server.AppFactory {
	return func() *loom.App {
		return loom.New(loom.Config{
			State:  0,
			Logger: logger,
			View: func(state any, emit loom.EmitFunc) *vdom.VNode {
				count := state.(int)
				return vdom.Div(
					vdom.Class("counter"),
					vdom.H1(vdom.Text("Loom counter")),
					vdom.P(vdom.Textf("Count: %d", count)),
					vdom.Button(
						vdom.Text("−"),
						vdom.OnClick(func(vdom.Event) { emit("decrement", nil) }),
					),
					vdom.Button(
						vdom.Text("+"),
						vdom.OnClick(func(vdom.Event) { emit("increment", nil) }),
					),
					vdom.Button(
						vdom.Text("Reset"),
						vdom.OnClick(func(vdom.Event) { emit("reset", nil) }),
					),
				)
			},
			Reducers: map[string]loom.Reducer{
				"increment": func(state, _ any) any { return state.(int) + 1 },
				"decrement": func(state, _ any) any { return state.(int) - 1 },
				"reset":     func(_, _ any) any { return 0 },
			},
		})
	}
}
