// Package errors provides structured, actionable error values for Loom.
//
// Every error carries a code (e.g. "E101"), a category, a short message,
// and optionally a detailed explanation and a fix suggestion. Codes are
// registered in registry.go so that diagnostics stay consistent across
// the kernel, the wire protocol, and the session server.
//
// # Error Categories
//
//   - runtime: kernel contract violations (unsupported node kind,
//     missing mount target)
//   - dispatch: command dispatch diagnostics (missing handler,
//     duplicate subscription)
//   - protocol: wire protocol errors (frame decode, unknown opcode)
//   - server: session server errors (session limit, upgrade failure)
//   - cli: command-line errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("mount reached a node with kind 7").
//	    WithSuggestion("Build nodes only with the vdom constructors")
//
//	fmt.Println(err.Format())
package errors
