package scene

// Modifier is a bitmask of keyboard modifiers held during a mouse event.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModShift
)

// Has reports whether mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// MouseEvent is a pointer event in N-D world coordinates, as delivered by
// the host viewer. Position and ViewDirection are full N-D vectors;
// DimsDisplayed lists the (typically three) axes currently rendered, in
// display order.
type MouseEvent struct {
	Position      []float64
	ViewDirection []float64
	DimsDisplayed []int
	Modifiers     Modifier
}

// MouseHandler wraps a mouse callback so registrations have a stable
// identity. Callers keep the handler and pass the same pointer to Add and
// Remove.
type MouseHandler struct {
	Fn func(MouseEvent)
}

// CallbackList is an ordered list of mouse callbacks, dispatched in
// registration order. Add and Remove are idempotent, keyed on handler
// identity, so enable/disable cycles never double-register.
type CallbackList struct {
	handlers []*MouseHandler
}

// Add appends h unless it is already registered.
func (l *CallbackList) Add(h *MouseHandler) {
	if l.Contains(h) {
		return
	}
	l.handlers = append(l.handlers, h)
}

// Remove unregisters h. Removing an unregistered handler is a no-op.
func (l *CallbackList) Remove(h *MouseHandler) {
	for i, reg := range l.handlers {
		if reg == h {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

// Contains reports whether h is registered.
func (l *CallbackList) Contains(h *MouseHandler) bool {
	for _, reg := range l.handlers {
		if reg == h {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (l *CallbackList) Len() int {
	return len(l.handlers)
}

// Dispatch delivers ev to every handler in order. Each handler runs to
// completion before the next; the host guarantees no interleaving with
// other input events.
func (l *CallbackList) Dispatch(ev MouseEvent) {
	snapshot := make([]*MouseHandler, len(l.handlers))
	copy(snapshot, l.handlers)
	for _, h := range snapshot {
		if h.Fn != nil {
			h.Fn(ev)
		}
	}
}

// KeyBindings is the host's key-binding registry. Bind overwrites any
// existing binding for the key; Unbind removes it.
type KeyBindings struct {
	bindings map[string]func()
}

// Bind registers fn under key, replacing any previous binding.
func (k *KeyBindings) Bind(key string, fn func()) {
	if k.bindings == nil {
		k.bindings = make(map[string]func())
	}
	k.bindings[key] = fn
}

// Unbind removes the binding for key, if any.
func (k *KeyBindings) Unbind(key string) {
	delete(k.bindings, key)
}

// Bound reports whether key has a binding.
func (k *KeyBindings) Bound(key string) bool {
	_, ok := k.bindings[key]
	return ok
}

// Press invokes the binding for key, if any.
func (k *KeyBindings) Press(key string) {
	if fn, ok := k.bindings[key]; ok {
		fn()
	}
}
