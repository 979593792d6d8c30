// Package dom implements Loom's live presentation layer: an in-memory
// document tree owned by the server.
//
// The document is the authority for what the user sees. A Node supports
// the primitives the mount engine needs: creating text and element
// nodes, appending children, setting attributes and styles, replacing
// or adding classes, and adding/removing named event listeners.
// Appending a fragment node splices its children into the target, the
// way a DocumentFragment behaves.
//
// Every mutation is reported to an optional observer as an Op. A
// session server subscribes an observer and mirrors the ops to a thin
// browser client over a websocket; tests subscribe observers to assert
// on the exact mutation stream. Without an observer the document is a
// self-contained headless DOM.
//
// Documents are not safe for concurrent use. All mutation is expected
// to happen on a single goroutine, the same discipline a browser DOM
// imposes.
package dom
