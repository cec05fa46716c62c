package cohort

import (
	"testing"

	"agebounds/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_HappyPath(t *testing.T) {
	var l Lifecycle
	assert.Equal(t, Uninitialized, l.State())
	assert.ErrorIs(t, l.RequireConfigured(), core.ErrInvalidTransition)

	require.NoError(t, l.MarkConfigured())
	assert.Equal(t, Configured, l.State())
	assert.NoError(t, l.RequireConfigured())

	require.NoError(t, l.MarkConsumed())
	assert.Equal(t, Consumed, l.State())
}

func TestLifecycle_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *Lifecycle)
		step  func(l *Lifecycle) error
	}{
		{
			name:  "consume before configure",
			setup: func(l *Lifecycle) {},
			step:  (*Lifecycle).MarkConsumed,
		},
		{
			name:  "configure twice",
			setup: func(l *Lifecycle) { _ = l.MarkConfigured() },
			step:  (*Lifecycle).MarkConfigured,
		},
		{
			name: "reconfigure consumed",
			setup: func(l *Lifecycle) {
				_ = l.MarkConfigured()
				_ = l.MarkConsumed()
			},
			step: (*Lifecycle).MarkConfigured,
		},
		{
			name: "run consumed",
			setup: func(l *Lifecycle) {
				_ = l.MarkConfigured()
				_ = l.MarkConsumed()
			},
			step: (*Lifecycle).RequireConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Lifecycle
			tt.setup(&l)
			err := tt.step(&l)
			assert.ErrorIs(t, err, core.ErrInvalidTransition)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "configured", Configured.String())
	assert.Equal(t, "consumed", Consumed.String())
	assert.Equal(t, "unknown", State(42).String())
}
