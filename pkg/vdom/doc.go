// Package vdom provides Loom's virtual node model.
//
// A virtual node describes a piece of presentation without holding any
// live resource. Three kinds exist: text, element, and fragment. The
// mount engine (package mount) materializes a tree of virtual nodes
// into live nodes (package dom) and tears it down again.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// Nil arguments are dropped and raw strings become text nodes, so
// conditional attributes and children compose without special casing:
//
//	Div(
//	    If(loggedIn, Span("Welcome back")),
//	    ClassIf(active, "active"),
//	)
//
// # Class semantics
//
// Class(name) replaces the live element's entire class attribute.
// ClassList{...} adds classes without clearing existing ones. The two
// forms are deliberately not equivalent.
package vdom
