package pool

import (
	"testing"

	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegistry(t *testing.T) {
	t.Run("Register And Acquire", func(t *testing.T) {
		r := NewRegistry[string, *widget](zaptest.NewLogger(t))
		f, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f, 2))

		w, err := r.Acquire("A")
		require.NoError(t, err)
		require.NotNil(t, w)
		id, ok := r.TemplateOf(w)
		require.True(t, ok)
		require.Equal(t, "A", id)
		require.Equal(t, 1, r.Outstanding())
	})

	t.Run("Duplicate Registration Keeps First Pool", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		r := NewRegistry[string, *widget](zap.New(core))
		f1, _ := widgetFactory()
		f2, built2 := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f1, 2))

		err := r.RegisterPool("A", f2, 5)
		require.ErrorIs(t, err, ErrDuplicateTemplate)
		require.ErrorIs(t, err, errs.ErrConfig)
		require.Equal(t, 0, *built2)
		require.Equal(t, 2, r.Pool("A").Size())
		require.Equal(t, 1, logs.Len())
	})

	t.Run("Negative Initial Count", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		f, _ := widgetFactory()
		require.ErrorIs(t, r.RegisterPool("A", f, -3), errs.ErrConfig)
		require.Nil(t, r.Pool("A"))
	})

	t.Run("Unknown Template", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		w, err := r.Acquire("missing")
		require.Nil(t, w)
		require.ErrorIs(t, err, ErrUnknownTemplate)
		require.ErrorIs(t, err, errs.ErrLookup)
	})

	t.Run("Release Unknown Instance", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		err := r.Release(&widget{})
		require.ErrorIs(t, err, ErrNotAcquired)
		require.ErrorIs(t, err, errs.ErrLookup)
	})

	t.Run("Double Release", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		f, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f, 1))
		w, _ := r.Acquire("A")
		require.NoError(t, r.Release(w))
		require.ErrorIs(t, r.Release(w), ErrNotAcquired)
		require.Equal(t, 1, w.released)
		require.Equal(t, 1, r.Pool("A").Available())
	})

	t.Run("Round Trip", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		f, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f, 1))
		for i := 0; i < 50; i++ {
			w, err := r.Acquire("A")
			require.NoError(t, err)
			require.NoError(t, r.Release(w))
		}
		require.Equal(t, 1, r.Pool("A").Size())
		require.Equal(t, 0, r.Outstanding())
	})

	t.Run("Reacquire May Return Same Handle", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		f, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f, 1))
		w, _ := r.Acquire("A")
		require.NoError(t, r.Release(w))
		again, err := r.Acquire("A")
		require.NoError(t, err)
		require.Same(t, w, again)
		require.NoError(t, r.Release(again))
	})

	t.Run("Separate Templates", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		fa, _ := widgetFactory()
		fb, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", fa, 1))
		require.NoError(t, r.RegisterPool("B", fb, 1))
		a, _ := r.Acquire("A")
		b, _ := r.Acquire("B")
		require.NoError(t, r.Release(b))
		require.NoError(t, r.Release(a))
		require.Equal(t, 1, r.Pool("A").Available())
		require.Equal(t, 1, r.Pool("B").Available())
		require.Equal(t, []string{"A", "B"}, r.Templates())
	})

	t.Run("Teardown", func(t *testing.T) {
		r := NewRegistry[string, *widget](nil)
		f, _ := widgetFactory()
		require.NoError(t, r.RegisterPool("A", f, 2))
		w, _ := r.Acquire("A")
		r.Teardown(true)
		require.Equal(t, 1, w.destroyed)
		require.Equal(t, 0, r.Outstanding())
		require.Nil(t, r.Pool("A"))
		require.Empty(t, r.Templates())

		_, err := r.Acquire("A")
		require.ErrorIs(t, err, ErrUnknownTemplate)
		require.ErrorIs(t, r.Release(w), ErrNotAcquired)
	})
}

func TestRegistryGrowthScenario(t *testing.T) {
	r := NewRegistry[string, *widget](nil)
	f, built := widgetFactory()
	require.NoError(t, r.RegisterPool("A", f, 4))

	for i := 0; i < 4; i++ {
		_, err := r.Acquire("A")
		require.NoError(t, err)
	}
	p := r.Pool("A")
	require.Equal(t, 4, *built)
	require.Equal(t, 0, p.Grown())

	_, err := r.Acquire("A")
	require.NoError(t, err)
	require.Equal(t, 6, p.Size())
	require.Equal(t, 5, p.InUse())
	require.Equal(t, 1, p.Available())
}
