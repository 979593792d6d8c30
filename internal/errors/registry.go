package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Well-known error codes.
const (
	CodeUnsupportedNodeType   = "E101"
	CodeDuplicateSubscription = "E102"
	CodeMissingCommandHandler = "E103"
	CodeMountTargetMissing    = "E110"
	CodeDestroyWithoutMount   = "E111"
	CodeMountFailed           = "E112"
	CodeFrameDecode           = "E130"
	CodeUnknownOpcode         = "E131"
	CodeFrameTooLarge         = "E132"
	CodeSessionLimit          = "E140"
	CodeUnknownTarget         = "E141"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E101-E129)
	// ============================================

	CodeUnsupportedNodeType: {
		Category: CategoryRuntime,
		Message:  "Unsupported virtual node kind",
		Detail:   "Mount or destroy reached a virtual node whose kind is not Text, Element, or Fragment. This indicates a node built outside the vdom constructors.",
		DocURL:   "https://loomui.dev/docs/errors/E101",
	},
	CodeDuplicateSubscription: {
		Category: CategoryDispatch,
		Message:  "Handler already subscribed for this command",
		Detail:   "The same handler instance was registered twice under one command name. The second registration is ignored.",
		DocURL:   "https://loomui.dev/docs/errors/E102",
	},
	CodeMissingCommandHandler: {
		Category: CategoryDispatch,
		Message:  "No handler registered for command",
		Detail:   "A command was dispatched with zero subscribers. The dispatch completes normally and after-each handlers still run.",
		DocURL:   "https://loomui.dev/docs/errors/E103",
	},
	CodeMountTargetMissing: {
		Category: CategoryRuntime,
		Message:  "Mount target is nil",
		Detail:   "App.Mount was called with a nil target node, or Render ran before Mount.",
		DocURL:   "https://loomui.dev/docs/errors/E110",
	},
	CodeDestroyWithoutMount: {
		Category: CategoryRuntime,
		Message:  "Destroy called for a tree that was never mounted",
		Detail:   "Destroying an unmounted tree is a no-op, reported for diagnostics only.",
		DocURL:   "https://loomui.dev/docs/errors/E111",
	},
	CodeMountFailed: {
		Category: CategoryRuntime,
		Message:  "Mounting the application tree failed",
		Detail:   "The initial render could not be mounted into the session document. The wrapped error carries the specific cause.",
		DocURL:   "https://loomui.dev/docs/errors/E112",
	},

	// ============================================
	// Protocol Errors (E130-E139)
	// ============================================

	CodeFrameDecode: {
		Category: CategoryProtocol,
		Message:  "Malformed protocol frame",
		Detail:   "A frame could not be decoded. The payload is truncated or the header is corrupt.",
		DocURL:   "https://loomui.dev/docs/errors/E130",
	},
	CodeUnknownOpcode: {
		Category: CategoryProtocol,
		Message:  "Unknown tree operation opcode",
		Detail:   "An op stream contained an opcode this version does not understand.",
		DocURL:   "https://loomui.dev/docs/errors/E131",
	},
	CodeFrameTooLarge: {
		Category: CategoryProtocol,
		Message:  "Frame payload exceeds the size limit",
		DocURL:   "https://loomui.dev/docs/errors/E132",
	},

	// ============================================
	// Server Errors (E140-E149)
	// ============================================

	CodeSessionLimit: {
		Category: CategoryServer,
		Message:  "Session limit reached",
		Detail:   "The server refused a new websocket session because MaxSessions are already connected.",
		DocURL:   "https://loomui.dev/docs/errors/E140",
	},
	CodeUnknownTarget: {
		Category: CategoryServer,
		Message:  "Event targets an unknown live node",
		Detail:   "The client referenced a node ID that no longer exists. The tree was likely rebuilt between the event being fired and received.",
		DocURL:   "https://loomui.dev/docs/errors/E141",
	},
}

// Register adds a template to the registry. It is intended for tests and
// for applications layering their own codes on top of the kernel's.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
