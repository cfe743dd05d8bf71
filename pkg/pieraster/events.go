package pieraster

import "sync"

// PointerEvent is a pointer position in host client coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

// EventSource delivers pointer events for the tooltip overlay. Each
// registration returns a function that removes it.
type EventSource interface {
	OnPointerMove(func(PointerEvent)) (cancel func())
	OnPointerLeave(func()) (cancel func())
}

// Dispatcher is an in-process EventSource. Hosts feed it events; it calls
// the registered handlers in registration order on the calling goroutine.
type Dispatcher struct {
	mu    sync.Mutex
	next  int
	move  []moveHandler
	leave []leaveHandler
}

type moveHandler struct {
	id int
	fn func(PointerEvent)
}

type leaveHandler struct {
	id int
	fn func()
}

var _ EventSource = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnPointerMove registers fn for pointer-move events.
func (d *Dispatcher) OnPointerMove(fn func(PointerEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	d.move = append(d.move, moveHandler{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, h := range d.move {
			if h.id == id {
				d.move = append(d.move[:i:i], d.move[i+1:]...)
				return
			}
		}
	}
}

// OnPointerLeave registers fn for pointer-leave events.
func (d *Dispatcher) OnPointerLeave(fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	d.leave = append(d.leave, leaveHandler{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, h := range d.leave {
			if h.id == id {
				d.leave = append(d.leave[:i:i], d.leave[i+1:]...)
				return
			}
		}
	}
}

// PointerMove delivers a pointer-move event.
func (d *Dispatcher) PointerMove(ev PointerEvent) {
	d.mu.Lock()
	handlers := append([]moveHandler(nil), d.move...)
	d.mu.Unlock()
	for _, h := range handlers {
		h.fn(ev)
	}
}

// PointerLeave delivers a pointer-leave event.
func (d *Dispatcher) PointerLeave() {
	d.mu.Lock()
	handlers := append([]leaveHandler(nil), d.leave...)
	d.mu.Unlock()
	for _, h := range handlers {
		h.fn()
	}
}

// Handlers returns the number of registered move and leave handlers.
func (d *Dispatcher) Handlers() (move, leave int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.move), len(d.leave)
}
