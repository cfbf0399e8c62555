package ecs

// World owns entity IDs, the component registry and a deferred despawn queue
// flushed by CleanupSystem at tick end. Despawning removes components only;
// the ID stays valid because pooled actors come back with it.
type World struct {
	pool         *EntityPool
	registry     *Registry
	despawnQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		despawnQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity drops components and retires the ID immediately.
func (w *World) DestroyEntity(id EntityID) {
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDespawn queues an entity's components for end-of-tick removal.
func (w *World) MarkForDespawn(id EntityID) {
	w.despawnQueue = append(w.despawnQueue, id)
}

// CancelDespawn drops id from the queue. Used when a pooled actor is
// released and reacquired within the same tick.
func (w *World) CancelDespawn(id EntityID) {
	q := w.despawnQueue[:0]
	for _, queued := range w.despawnQueue {
		if queued != id {
			q = append(q, queued)
		}
	}
	w.despawnQueue = q
}

// Pending reports how many despawns are queued.
func (w *World) Pending() int { return len(w.despawnQueue) }

// FlushDespawnQueue removes queued entities from every store.
func (w *World) FlushDespawnQueue() {
	for _, id := range w.despawnQueue {
		w.registry.RemoveAll(id)
	}
	w.despawnQueue = w.despawnQueue[:0]
}
