package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered in tick N+1, in emission order, when EventSystem calls
// SwapBuffers followed by DispatchAll. Game loop goroutine only.
type Bus struct {
	front    []envelope
	back     []envelope
	handlers map[reflect.Type][]func(any)
}

type envelope struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]envelope, 0, 64),
		back:     make([]envelope, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer (readable next tick).
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, envelope{t: typeKey[T](), ev: event})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeKey[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers front-buffer events to their handlers. Handlers may
// Emit; those events land in the back buffer for the next tick.
func (b *Bus) DispatchAll() {
	for i := range b.front {
		env := b.front[i]
		for _, h := range b.handlers[env.t] {
			h(env.ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}

// Queued reports how many events wait for the next swap.
func (b *Bus) Queued() int { return len(b.back) }
