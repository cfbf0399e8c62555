// Package pool recycles instances of a template so the spawn path does not
// allocate once pools are warm.
//
// A Pool owns every instance it ever created. Instances move between the
// available FIFO and the in-use set; they are destroyed only by Clear(true).
// Accessed only from the game loop goroutine; no locks.
package pool

import (
	"fmt"

	"github.com/gammazero/deque"
	"go.uber.org/zap"
)

// Instance is implemented by every pooled object. Hooks run on the game loop.
type Instance interface {
	comparable
	// SetActive toggles whether the instance takes part in simulation.
	SetActive(active bool)
	// OnCreatedInPool runs once, right after the factory built the instance.
	OnCreatedInPool()
	// OnAcquired runs on every Get. Reused instances keep their previous
	// state until this hook resets it.
	OnAcquired()
	// OnReleased runs on every successful Return, before deactivation.
	OnReleased()
	// OnDestroyed releases underlying resources during Clear(true).
	OnDestroyed()
}

// Factory builds a fresh instance of one template.
type Factory[T Instance] func() T

// Pool supplies and reclaims instances of a single template.
type Pool[T Instance] struct {
	name      string
	factory   Factory[T]
	available *deque.Deque[T]
	inUse     map[T]struct{}
	grown     int
	log       *zap.Logger
}

// New creates a pool and synchronously pre-warms it with initialCount
// deactivated instances.
func New[T Instance](name string, factory Factory[T], initialCount int, log *zap.Logger) (*Pool[T], error) {
	if initialCount < 0 {
		return nil, fmt.Errorf("pool %s: %w (%d)", name, ErrInvalidCount, initialCount)
	}
	if factory == nil {
		return nil, fmt.Errorf("pool %s: %w", name, errNilFactory)
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool[T]{
		name:      name,
		factory:   factory,
		available: deque.New[T](initialCount),
		inUse:     make(map[T]struct{}, initialCount),
		log:       log,
	}
	for i := 0; i < initialCount; i++ {
		p.create()
	}
	return p, nil
}

func (p *Pool[T]) create() {
	obj := p.factory()
	obj.SetActive(false)
	obj.OnCreatedInPool()
	p.available.PushBack(obj)
}

// Get hands out the oldest available instance. When none is available the
// pool first grows by half its current size, rounded up, minimum one.
func (p *Pool[T]) Get() T {
	if p.available.Len() == 0 {
		p.grow()
	}
	obj := p.available.PopFront()
	p.inUse[obj] = struct{}{}
	obj.SetActive(true)
	obj.OnAcquired()
	return obj
}

func (p *Pool[T]) grow() {
	// (n+1)/2 == ceil(n*0.5) for non-negative n.
	n := max(1, (p.Size()+1)/2)
	for i := 0; i < n; i++ {
		p.create()
	}
	p.grown++
	p.log.Debug("pool grown",
		zap.String("pool", p.name),
		zap.Int("added", n),
		zap.Int("size", p.Size()),
	)
}

// Return puts an in-use instance back. Foreign or already-returned instances
// are left untouched and reported.
func (p *Pool[T]) Return(obj T) error {
	if _, ok := p.inUse[obj]; !ok {
		p.log.Warn("return of instance not in use",
			zap.String("pool", p.name),
			instanceField(obj),
		)
		return fmt.Errorf("pool %s: %w", p.name, ErrNotInUse)
	}
	delete(p.inUse, obj)
	obj.OnReleased()
	obj.SetActive(false)
	p.available.PushBack(obj)
	return nil
}

// Clear forgets every instance. With destroy set, each instance also gets
// OnDestroyed so it can release what it holds.
func (p *Pool[T]) Clear(destroy bool) {
	if destroy {
		for i := 0; i < p.available.Len(); i++ {
			p.available.At(i).OnDestroyed()
		}
		for obj := range p.inUse {
			obj.OnDestroyed()
		}
	}
	p.available.Clear()
	clear(p.inUse)
}

// Contains reports whether obj is currently handed out by this pool.
func (p *Pool[T]) Contains(obj T) bool {
	_, ok := p.inUse[obj]
	return ok
}

func (p *Pool[T]) Name() string   { return p.name }
func (p *Pool[T]) Available() int { return p.available.Len() }
func (p *Pool[T]) InUse() int     { return len(p.inUse) }
func (p *Pool[T]) Size() int      { return p.available.Len() + len(p.inUse) }

// Grown counts growth events since creation.
func (p *Pool[T]) Grown() int { return p.grown }

// instanceField names obj in logs without encoding its whole state: its
// String form when it has one, else just its type.
func instanceField[T Instance](obj T) zap.Field {
	if s, ok := any(obj).(fmt.Stringer); ok {
		return zap.Stringer("instance", s)
	}
	return zap.String("instance", fmt.Sprintf("%T", obj))
}
