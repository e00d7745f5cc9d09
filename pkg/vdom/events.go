package vdom

// EventHandler binds a listener to an event name in Data.On.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler Listener
}

// On binds a listener for an arbitrary event.
func On(event string, handler Listener) EventHandler {
	return EventHandler{Event: event, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler Listener) EventHandler { return On("click", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler Listener) EventHandler { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler Listener) EventHandler { return On("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler Listener) EventHandler { return On("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler Listener) EventHandler { return On("keydown", handler) }
