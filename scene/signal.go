package scene

// Signal is a synchronous change notification with nestable suppression.
// The zero value is ready to use.
//
// Connect registers a handler and returns its disconnect function; Emit
// invokes the registered handlers in registration order unless the signal
// is blocked. Block/Unblock nest, so a suppressed section can call other
// suppressed sections safely. During a synchronized write the outgoing
// side's signal is blocked before the write and unblocked after, on every
// exit path.
type Signal struct {
	nextID   int
	blocked  int
	handlers []signalHandler
}

type signalHandler struct {
	id int
	fn func()
}

// Connect registers fn and returns a function that disconnects exactly
// this registration. Disconnecting twice is a no-op.
func (s *Signal) Connect(fn func()) (disconnect func()) {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, signalHandler{id: id, fn: fn})

	return func() {
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Block suppresses Emit until a matching Unblock.
func (s *Signal) Block() {
	s.blocked++
}

// Unblock reverses one Block. Unblocking an unblocked signal is a no-op.
func (s *Signal) Unblock() {
	if s.blocked > 0 {
		s.blocked--
	}
}

// Blocked reports whether Emit is currently suppressed.
func (s *Signal) Blocked() bool {
	return s.blocked > 0
}

// Emit invokes the connected handlers in registration order. Handlers may
// disconnect themselves or others during emission; the emission iterates
// over a snapshot, so a handler disconnected mid-emit may still receive
// this one event but never a later one.
func (s *Signal) Emit() {
	if s.blocked > 0 {
		return
	}
	snapshot := make([]signalHandler, len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn()
	}
}
