package world

import (
	"time"

	"github.com/hordeloop/engine/internal/core/timer"
)

// LifeState is where a pooled actor is in its death sequence.
type LifeState uint8

const (
	Alive LifeState = iota
	Dying
	Dead
)

func (s LifeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// HealthSink receives damage and reports depletion.
type HealthSink interface {
	ApplyDamage(amount float64)
	Heal(amount float64)
	Reset()
	OnDepleted(fn func())
}

// Toggle switches a behaviour (movement/AI, one collider) on or off.
type Toggle interface {
	SetEnabled(enabled bool)
}

// DeathPresenter plays the death effect. The lifecycle never waits on it.
type DeathPresenter interface {
	PlayDeathEffect()
}

// Placement moves an actor.
type Placement interface {
	SetPosition(p Vec2)
}

// LifecycleParts are the collaborators a Lifecycle drives.
type LifecycleParts struct {
	Health     HealthSink
	Motion     Toggle
	Colliders  []Toggle
	Presenter  DeathPresenter
	DeathDelay time.Duration
}

type ObserverID uint32

type deathObserver[T any] struct {
	id ObserverID
	fn func(T)
}

// Lifecycle is the Alive → Dying → Dead state machine of one pooled actor.
// The Dying → Dead delay is a countdown advanced by the lifecycle system.
type Lifecycle[T any] struct {
	owner T
	state LifeState
	parts LifecycleParts

	countdown timer.Countdown

	observers []deathObserver[T]
	scratch   []deathObserver[T]
	nextID    ObserverID

	deaths int
}

// NewLifecycle wires the state machine to its collaborators and subscribes
// to health depletion. The actor starts Alive.
func NewLifecycle[T any](owner T, parts LifecycleParts) *Lifecycle[T] {
	l := &Lifecycle[T]{owner: owner, parts: parts}
	if parts.Health != nil {
		parts.Health.OnDepleted(l.onDepleted)
	}
	return l
}

func (l *Lifecycle[T]) onDepleted() {
	if l.state == Alive {
		l.beginDying()
	}
}

// TakeDamage forwards to the health sink while Alive. Damage during the
// death sequence is dropped.
func (l *Lifecycle[T]) TakeDamage(amount float64) {
	if l.state != Alive || l.parts.Health == nil {
		return
	}
	l.parts.Health.ApplyDamage(amount)
}

// Die forces the death sequence. Repeated calls are no-ops.
func (l *Lifecycle[T]) Die() {
	if l.state != Alive {
		return
	}
	l.beginDying()
}

func (l *Lifecycle[T]) beginDying() {
	l.state = Dying
	l.deaths++
	l.setBehaviour(false)
	if l.parts.Presenter != nil {
		l.parts.Presenter.PlayDeathEffect()
	}
	l.countdown.Start(l.parts.DeathDelay)
}

// Advance runs the death delay with actor-local time. It reports true on the
// call that moved the actor to Dead, after observers were notified.
func (l *Lifecycle[T]) Advance(dt time.Duration) bool {
	if l.state != Dying || !l.countdown.Advance(dt) {
		return false
	}
	l.state = Dead
	l.notify()
	return true
}

func (l *Lifecycle[T]) notify() {
	// Observers commonly unsubscribe themselves and release the owner, so
	// iterate a snapshot.
	l.scratch = append(l.scratch[:0], l.observers...)
	for _, o := range l.scratch {
		o.fn(l.owner)
	}
	clear(l.scratch)
}

// Reset returns the actor to Alive from any state: the pending delay is
// cancelled, behaviour re-enabled and health refilled.
func (l *Lifecycle[T]) Reset() {
	l.countdown.Cancel()
	l.state = Alive
	l.setBehaviour(true)
	if l.parts.Health != nil {
		l.parts.Health.Reset()
	}
}

func (l *Lifecycle[T]) setBehaviour(enabled bool) {
	if l.parts.Motion != nil {
		l.parts.Motion.SetEnabled(enabled)
	}
	for _, c := range l.parts.Colliders {
		c.SetEnabled(enabled)
	}
}

// OnDeathComplete subscribes fn to the Dying → Dead transition.
func (l *Lifecycle[T]) OnDeathComplete(fn func(T)) ObserverID {
	l.nextID++
	l.observers = append(l.observers, deathObserver[T]{id: l.nextID, fn: fn})
	return l.nextID
}

// RemoveObserver unsubscribes id. Unknown ids are ignored.
func (l *Lifecycle[T]) RemoveObserver(id ObserverID) {
	for i, o := range l.observers {
		if o.id == id {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// ClearObservers drops every subscription.
func (l *Lifecycle[T]) ClearObservers() {
	clear(l.observers)
	l.observers = l.observers[:0]
}

func (l *Lifecycle[T]) State() LifeState { return l.state }
func (l *Lifecycle[T]) IsDead() bool     { return l.state != Alive }
func (l *Lifecycle[T]) Observers() int   { return len(l.observers) }

// Deaths counts Alive → Dying transitions since construction.
func (l *Lifecycle[T]) Deaths() int { return l.deaths }
