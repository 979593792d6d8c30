package vdom

// On creates a handler for an arbitrary event name.
func On(name string, handler HandlerFunc) EventHandler {
	return EventHandler{Event: name, Handler: handler}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler HandlerFunc) EventHandler { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler HandlerFunc) EventHandler { return On("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler HandlerFunc) EventHandler { return On("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler HandlerFunc) EventHandler { return On("mouseup", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler HandlerFunc) EventHandler { return On("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler HandlerFunc) EventHandler { return On("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler HandlerFunc) EventHandler { return On("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler HandlerFunc) EventHandler { return On("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler HandlerFunc) EventHandler { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler HandlerFunc) EventHandler { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler HandlerFunc) EventHandler { return On("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler HandlerFunc) EventHandler { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler HandlerFunc) EventHandler { return On("blur", handler) }

// Scroll events

// OnScroll handles scroll events.
func OnScroll(handler HandlerFunc) EventHandler { return On("scroll", handler) }
