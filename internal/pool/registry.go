package pool

import (
	"fmt"

	"go.uber.org/zap"
)

// Registry maps template identities to their pools and remembers which
// template every handed-out instance came from, so call sites can release an
// instance without carrying its pool.
type Registry[K comparable, T Instance] struct {
	pools  map[K]*Pool[T]
	owners map[T]K
	order  []K
	log    *zap.Logger
}

func NewRegistry[K comparable, T Instance](log *zap.Logger) *Registry[K, T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry[K, T]{
		pools:  make(map[K]*Pool[T], 16),
		owners: make(map[T]K, 256),
		log:    log,
	}
}

// RegisterPool creates the pool for id. A second registration for the same id
// is reported and ignored; the existing pool stays in place.
func (r *Registry[K, T]) RegisterPool(id K, factory Factory[T], initialCount int) error {
	if _, ok := r.pools[id]; ok {
		r.log.Warn("duplicate pool registration skipped", zap.Any("template", id))
		return fmt.Errorf("register %v: %w", id, ErrDuplicateTemplate)
	}
	p, err := New(fmt.Sprint(id), factory, initialCount, r.log)
	if err != nil {
		return fmt.Errorf("register %v: %w", id, err)
	}
	r.pools[id] = p
	r.order = append(r.order, id)
	return nil
}

// Acquire takes an instance from the pool registered for id.
func (r *Registry[K, T]) Acquire(id K) (T, error) {
	p, ok := r.pools[id]
	if !ok {
		r.log.Error("acquire from unknown template", zap.Any("template", id))
		var zero T
		return zero, fmt.Errorf("acquire %v: %w", id, ErrUnknownTemplate)
	}
	obj := p.Get()
	r.owners[obj] = id
	return obj, nil
}

// Release returns obj to the pool it was acquired from. The ownership record
// is dropped only after the pool accepted the instance.
func (r *Registry[K, T]) Release(obj T) error {
	id, ok := r.owners[obj]
	if !ok {
		r.log.Warn("release of instance not obtained from registry", instanceField(obj))
		return fmt.Errorf("release: %w", ErrNotAcquired)
	}
	p, ok := r.pools[id]
	if !ok {
		r.log.Warn("release to missing pool", zap.Any("template", id))
		return fmt.Errorf("release %v: %w", id, ErrUnknownTemplate)
	}
	if err := p.Return(obj); err != nil {
		return fmt.Errorf("release %v: %w", id, err)
	}
	delete(r.owners, obj)
	return nil
}

// TemplateOf reports which template obj was acquired from.
func (r *Registry[K, T]) TemplateOf(obj T) (K, bool) {
	id, ok := r.owners[obj]
	return id, ok
}

// Pool returns the pool for id, or nil.
func (r *Registry[K, T]) Pool(id K) *Pool[T] {
	return r.pools[id]
}

// Templates lists registered ids in registration order.
func (r *Registry[K, T]) Templates() []K {
	out := make([]K, len(r.order))
	copy(out, r.order)
	return out
}

// Outstanding counts instances acquired and not yet released.
func (r *Registry[K, T]) Outstanding() int {
	return len(r.owners)
}

// Teardown clears every pool, then forgets the pools and all ownership
// records. Later acquires fail as unknown templates.
func (r *Registry[K, T]) Teardown(destroy bool) {
	for _, id := range r.order {
		r.pools[id].Clear(destroy)
	}
	clear(r.pools)
	clear(r.owners)
	r.order = r.order[:0]
}
