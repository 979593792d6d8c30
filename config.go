package loom

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/vdom"
)

// EmitFunc dispatches a command with a payload. The view receives one
// so event handlers can close over it.
type EmitFunc func(command string, payload any)

// Reducer folds a command payload into application state and returns
// the next state. Reducers must not retain or mutate the payload after
// returning.
type Reducer func(state, payload any) any

// ViewFunc derives a virtual tree from application state. It must be
// pure: same state, same tree. Side effects belong in reducers.
type ViewFunc func(state any, emit EmitFunc) *vdom.VNode

// Config configures an App.
type Config struct {
	// State is the initial application state.
	State any

	// View derives the virtual tree from state. Required.
	View ViewFunc

	// Reducers maps command names to state transitions. Commands
	// without a reducer still trigger a re-render.
	Reducers map[string]Reducer

	// Logger for structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Tracer, when set, wraps each dispatch and each render pass in a
	// span.
	Tracer trace.Tracer
}
