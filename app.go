package loom

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/internal/errors"
	"github.com/loomui/loom/pkg/dispatch"
	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/metrics"
	"github.com/loomui/loom/pkg/mount"
	"github.com/loomui/loom/pkg/vdom"
)

// App ties state, view, and reducers together over a mount engine.
// All methods are single-goroutine: one App belongs to one session.
type App struct {
	state  any
	view   ViewFunc
	logger *slog.Logger
	tracer trace.Tracer

	dispatcher *dispatch.Dispatcher
	engine     *mount.Engine
	target     *dom.Node
	root       *vdom.VNode
	unsubs     []func()

	rendering bool
	pending   bool
}

// New builds an App from cfg. Each reducer is subscribed under its
// command name; a render pass is subscribed on the after-each channel
// so every dispatch, handled or not, refreshes the tree.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		state:      cfg.State,
		view:       cfg.View,
		logger:     logger,
		tracer:     cfg.Tracer,
		dispatcher: dispatch.New(logger),
		engine:     mount.NewEngine(),
	}

	for command, reducer := range cfg.Reducers {
		app.unsubs = append(app.unsubs, app.dispatcher.Subscribe(command, app.applyReducer(command, reducer)))
	}
	app.unsubs = append(app.unsubs, app.dispatcher.AfterEach(func(any) {
		if err := app.Render(); err != nil {
			app.logger.Error("render failed after dispatch", "error", err)
		}
	}))

	return app
}

func (a *App) applyReducer(command string, reducer Reducer) dispatch.Handler {
	return func(payload any) {
		a.state = reducer(a.state, payload)
		a.logger.Debug("reducer applied", "command", command)
	}
}

// State returns the current application state.
func (a *App) State() any { return a.state }

// Mounted reports whether the app currently has a live tree.
func (a *App) Mounted() bool { return a.root != nil }

// Emit dispatches a command. Event handlers built by the view close
// over this method.
func (a *App) Emit(command string, payload any) {
	if a.tracer != nil {
		_, span := a.tracer.Start(context.Background(), "loom.dispatch",
			trace.WithAttributes(attribute.String("loom.command", command)))
		defer span.End()
	}
	a.dispatcher.Dispatch(command, payload)
}

// Mount attaches the app to a live node and performs the initial
// render. Returns E110 when target is nil.
func (a *App) Mount(target *dom.Node) error {
	if target == nil {
		return errors.New(errors.CodeMountTargetMissing)
	}
	a.target = target
	return a.Render()
}

// Unmount destroys the live tree and drops every subscription. The
// app cannot be remounted afterwards; build a new one.
func (a *App) Unmount() error {
	var err error
	if a.root != nil {
		err = a.engine.Destroy(a.root)
		a.root = nil
	}
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
	a.target = nil
	return err
}

// Render tears down the previous tree and mounts a fresh one derived
// from current state. Nested synchronous renders (a reducer calling
// Emit) are coalesced into one follow-up pass.
func (a *App) Render() error {
	if a.target == nil {
		return errors.New(errors.CodeMountTargetMissing).
			WithDetail("render before mount")
	}
	if a.rendering {
		a.pending = true
		a.logger.Debug("nested render coalesced")
		return nil
	}

	a.rendering = true
	defer func() { a.rendering = false }()

	for {
		if err := a.renderOnce(); err != nil {
			a.pending = false
			return err
		}
		if !a.pending {
			return nil
		}
		a.pending = false
	}
}

func (a *App) renderOnce() error {
	var span trace.Span
	if a.tracer != nil {
		_, span = a.tracer.Start(context.Background(), "loom.render")
		defer span.End()
	}

	start := time.Now()

	if a.root != nil {
		if err := a.engine.Destroy(a.root); err != nil {
			return err
		}
		a.root = nil
	}

	root := a.view(a.state, a.Emit)
	if err := a.engine.Mount(a.target, root); err != nil {
		return err
	}
	a.root = root

	duration := time.Since(start)
	metrics.RecordRender(duration, a.engine.Size(), a.engine.ListenerCount())
	a.logger.Debug("rendered",
		"nodes", a.engine.Size(),
		"listeners", a.engine.ListenerCount(),
		"duration", duration)
	if span != nil {
		span.SetAttributes(
			attribute.Int("loom.nodes", a.engine.Size()),
			attribute.Int("loom.listeners", a.engine.ListenerCount()),
		)
	}
	return nil
}
