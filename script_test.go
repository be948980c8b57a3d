package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "record"},
			{"action": "press", "button": "Jump"},
			{"action": "wait", "frames": 3},
			{"action": "axis", "axis": "Move", "x": 0.5, "y": -1},
			{"action": "stop"}
		]
	}`)

	runner, err := LoadInputScript(data)
	require.NoError(t, err)
	require.Len(t, runner.steps, 5)
	assert.Equal(t, scriptStep{Action: "press", Button: "Jump"}, runner.steps[1])
	assert.Equal(t, 3, runner.steps[2].Frames)
	assert.Equal(t, scriptStep{Action: "axis", Axis: "Move", X: 0.5, Y: -1}, runner.steps[3])
}

func TestLoadInputScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"press without button", `{"steps": [{"action": "press"}]}`},
		{"axis without axis", `{"steps": [{"action": "axis", "x": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInputScript([]byte(tt.data))
			assert.ErrorContains(t, err, "parse input script")
		})
	}
}

func TestScriptRunner_ProducesRecording(t *testing.T) {
	c := newTestController(newFakeInput())
	runner, err := LoadInputScript([]byte(`{"steps": [
		{"action": "record"},
		{"action": "press", "button": "Jump"},
		{"action": "wait", "frames": 3},
		{"action": "release", "button": "Jump"},
		{"action": "stop"}
	]}`))
	require.NoError(t, err)
	c.SetScriptRunner(runner)

	for range 7 {
		require.False(t, runner.Done())
		c.Update()
	}
	assert.True(t, runner.Done())
	assert.False(t, c.Recording())
	assert.Equal(t, map[int]map[string]int{
		1: {"Jump": 1},
		5: {"Jump": 0},
	}, c.Log().Buttons)
	assert.Equal(t, 6, c.Log().Length)

	// A finished runner is inert.
	c.Update()
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestScriptRunner_TapWaitsForQueue(t *testing.T) {
	c := newTestController(newFakeInput())
	runner, err := LoadInputScript([]byte(`{"steps": [
		{"action": "tap", "button": "Fire"},
		{"action": "axis", "axis": "Move", "x": 1, "y": 0}
	]}`))
	require.NoError(t, err)
	c.SetScriptRunner(runner)

	c.Update()
	assert.True(t, c.Button("Fire").Pressed())
	c.Update()
	assert.True(t, c.Button("Fire").Released())
	assert.True(t, c.Axis("Move").Value().IsZero(), "axis step waits for the tap to drain")

	c.Update()
	assert.Equal(t, Vec2{1, 0}, c.Axis("Move").Value())
	assert.False(t, runner.Done(), "done once the last injection is consumed")

	c.Update()
	assert.True(t, runner.Done())
	assert.Equal(t, Vec2{1, 0}, c.Axis("Move").Value())
}

func TestScriptRunner_Detach(t *testing.T) {
	c := newTestController(newFakeInput())
	runner, err := LoadInputScript([]byte(`{"steps": [{"action": "press", "button": "Jump"}]}`))
	require.NoError(t, err)
	c.SetScriptRunner(runner)
	c.SetScriptRunner(nil)
	c.Update()
	assert.True(t, c.Button("Jump").Up())
}
