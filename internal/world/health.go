package world

// Health is the default HealthSink. Once depleted it ignores damage and
// healing until Reset or SetMax.
type Health struct {
	current   float64
	max       float64
	depleted  bool
	onDeplete []func()
	onChanged func(current, max float64)
}

func NewHealth(max float64) *Health {
	h := &Health{}
	h.SetMax(max)
	return h
}

func (h *Health) ApplyDamage(amount float64) {
	if h.depleted || amount <= 0 {
		return
	}
	h.current = max(h.current-amount, 0)
	h.changed()
	if h.current <= 0 {
		h.depleted = true
		for _, fn := range h.onDeplete {
			fn()
		}
	}
}

func (h *Health) Heal(amount float64) {
	if h.depleted || amount <= 0 {
		return
	}
	h.current = min(h.current+amount, h.max)
	h.changed()
}

// Reset refills to the configured maximum.
func (h *Health) Reset() {
	h.current = h.max
	h.depleted = false
	h.changed()
}

// SetMax changes the maximum (floored at 1) and refills.
func (h *Health) SetMax(m float64) {
	h.max = max(1, m)
	h.Reset()
}

func (h *Health) OnDepleted(fn func()) {
	h.onDeplete = append(h.onDeplete, fn)
}

func (h *Health) OnChanged(fn func(current, max float64)) {
	h.onChanged = fn
}

func (h *Health) changed() {
	if h.onChanged != nil {
		h.onChanged(h.current, h.max)
	}
}

func (h *Health) Current() float64 { return h.current }
func (h *Health) Max() float64     { return h.max }
func (h *Health) Depleted() bool   { return h.depleted }

func (h *Health) Fraction() float64 {
	return h.current / h.max
}

// Flag is the default Toggle for movement/AI and collider participation.
type Flag struct {
	enabled bool
}

func (f *Flag) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *Flag) Enabled() bool           { return f.enabled }

// PresenterFunc adapts a function to DeathPresenter.
type PresenterFunc func()

func (fn PresenterFunc) PlayDeathEffect() { fn() }
