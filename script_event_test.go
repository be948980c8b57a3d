package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countingScript = `
math := import("math")

update := func(elapsed) {
	if is_undefined(state.ticks) {
		state.ticks = 0
	}
	state.ticks += 1
	p := math.abs(elapsed / limit)
	if p > 1.0 {
		p = 1.0
	}
	progress = ease("linear", p)
	return elapsed >= limit
}
`

func TestScriptEvent_Runs(t *testing.T) {
	ev, err := NewScriptEvent([]byte(countingScript), map[string]any{
		"limit":    1.0,
		"progress": 0.0,
	})
	require.NoError(t, err)

	q := NewEventQueue()
	q.Add(ev)

	q.Update(0.5)
	assert.False(t, ev.Finished())
	assert.InDelta(t, 0.5, ev.Get("progress"), 1e-6)

	q.Update(0.5)
	assert.True(t, ev.Finished())
	require.NoError(t, ev.Err)
	assert.InDelta(t, 1.0, ev.Get("progress"), 1e-6)
	assert.Equal(t, map[string]any{"ticks": int64(2)}, ev.Get("state"))
	assert.Equal(t, 0, q.Len())
}

func TestScriptEvent_GetUndefined(t *testing.T) {
	ev, err := NewScriptEvent([]byte(`update := func(e) { return true }`), nil)
	require.NoError(t, err)
	assert.Nil(t, ev.Get("missing"))
}

func TestScriptEvent_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `update := func(`},
		{"no update", `x := 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScriptEvent([]byte(tt.src), nil)
			assert.ErrorContains(t, err, "script event")
		})
	}
}

func TestScriptEvent_RuntimeErrorFinishes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"division by zero", `update := func(e) { zero := 0; return 1 / zero }`},
		{"unknown curve", `update := func(e) { return ease("wobble", e) > 0 }`},
		{"bad ease args", `update := func(e) { return ease("linear") > 0 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewScriptEvent([]byte(tt.src), nil)
			require.NoError(t, err)
			ev.Update(0.1)
			assert.True(t, ev.Finished())
			assert.Error(t, ev.Err)
		})
	}
}
