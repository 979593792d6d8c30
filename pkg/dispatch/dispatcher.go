// Package dispatch implements Loom's command dispatcher: a named-command
// publish/subscribe hub with a secondary after-every-command channel.
//
// Commands are how user interaction becomes state change. Event
// listeners call Dispatch with a command name and payload; reducers
// subscribed under that name run in registration order, then every
// after-each handler runs. Dispatching a command nobody subscribed to
// is a diagnostic, never an error: the render loop must not be
// abortable from the dispatch path.
package dispatch

import (
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/loomui/loom/internal/errors"
	"github.com/loomui/loom/pkg/metrics"
)

// Handler receives a dispatched command's payload.
type Handler func(payload any)

// subscription is one registration. The key identifies the handler's
// function value for duplicate detection.
type subscription struct {
	handler Handler
	key     uintptr
	removed bool
}

// Dispatcher routes dispatched commands to subscribed handlers and
// notifies after-each observers. The zero value is not usable; create
// one with New.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[string][]*subscription
	after    []*subscription
	logger   *slog.Logger
}

// New creates a dispatcher. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string][]*subscription),
		logger:   logger,
	}
}

// Subscribe registers handler under command and returns a function that
// removes exactly that registration. Registering the same handler
// instance twice under one command is absorbed: the duplicate is not
// invoked and the returned unsubscribe does nothing.
//
// Handler identity is the function value's code pointer. Named
// functions and method values dedupe as expected; distinct closures
// built from the same literal share a code pointer and therefore also
// dedupe. Wrap such closures in separately named functions if both
// registrations are wanted.
func (d *Dispatcher) Subscribe(command string, handler Handler) func() {
	if handler == nil {
		return func() {}
	}
	key := reflect.ValueOf(handler).Pointer()

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sub := range d.handlers[command] {
		if sub.key == key {
			d.logger.Debug("duplicate subscription absorbed",
				"code", errors.CodeDuplicateSubscription,
				"command", command)
			return func() {}
		}
	}

	sub := &subscription{handler: handler, key: key}
	d.handlers[command] = append(d.handlers[command], sub)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		d.handlers[command] = remove(d.handlers[command], sub)
	}
}

// AfterEach registers a handler invoked after every dispatch,
// regardless of command name, with the same duplicate and removal
// contract as Subscribe. The payload passed is the dispatched one.
func (d *Dispatcher) AfterEach(handler Handler) func() {
	if handler == nil {
		return func() {}
	}
	key := reflect.ValueOf(handler).Pointer()

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sub := range d.after {
		if sub.key == key {
			d.logger.Debug("duplicate after-each subscription absorbed",
				"code", errors.CodeDuplicateSubscription)
			return func() {}
		}
	}

	sub := &subscription{handler: handler, key: key}
	d.after = append(d.after, sub)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		d.after = remove(d.after, sub)
	}
}

// Dispatch invokes every handler registered for command in registration
// order, each with payload, then every after-each handler in
// registration order. A command with zero subscribers surfaces a
// diagnostic and still reaches the after-each handlers.
func (d *Dispatcher) Dispatch(command string, payload any) {
	start := time.Now()

	d.mu.Lock()
	subs := snapshot(d.handlers[command])
	after := snapshot(d.after)
	d.mu.Unlock()

	status := "handled"
	if len(subs) == 0 {
		status = "missing"
		d.logger.Warn("no handler registered for command",
			"code", errors.CodeMissingCommandHandler,
			"command", command)
		metrics.RecordMissingHandler(command)
	}

	for _, sub := range subs {
		sub.handler(payload)
	}
	for _, sub := range after {
		sub.handler(payload)
	}

	metrics.RecordCommand(command, status, time.Since(start))
}

// HandlerCount returns the number of handlers registered for command.
func (d *Dispatcher) HandlerCount(command string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[command])
}

// snapshot copies live handlers so a handler may unsubscribe itself or
// others mid-dispatch without affecting the current pass.
func snapshot(subs []*subscription) []*subscription {
	out := make([]*subscription, 0, len(subs))
	for _, sub := range subs {
		if !sub.removed {
			out = append(out, sub)
		}
	}
	return out
}

func remove(subs []*subscription, target *subscription) []*subscription {
	for i, sub := range subs {
		if sub == target {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
