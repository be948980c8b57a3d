package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectTap(t *testing.T) {
	c := newTestController(newFakeInput())
	c.InjectTap("Jump")
	require.Equal(t, 2, c.PendingInjections())

	// Frame 1: press
	c.Update()
	assert.Equal(t, 1, c.PendingInjections())
	assert.True(t, c.Button("Jump").Pressed())

	// Frame 2: release
	c.Update()
	assert.Equal(t, 0, c.PendingInjections())
	assert.True(t, c.Button("Jump").Released())

	// Frame 3: back to devices
	c.Update()
	assert.True(t, c.Button("Jump").Up())
	assert.False(t, c.Button("Jump").Released())
}

func TestInjectPress_HoldsUntilRelease(t *testing.T) {
	c := newTestController(newFakeInput())
	c.InjectPress("Fire")
	for range 4 {
		c.Update()
		assert.True(t, c.Button("Fire").Down())
	}
	c.InjectRelease("Fire")
	c.Update()
	assert.True(t, c.Button("Fire").Released())
}

func TestInjectAxis(t *testing.T) {
	c := newTestController(newFakeInput())
	c.InjectAxis("Move", -1, 0.5)
	c.Update()
	c.Update()
	assert.Equal(t, Vec2{-1, 0.5}, c.Axis("Move").Value(), "axis holds the injected value")

	c.InjectAxis("Move", 0, 0)
	c.Update()
	assert.True(t, c.Axis("Move").Value().IsZero())
	assert.False(t, c.Axis("Move").injected)
}

func TestInject_IsRecorded(t *testing.T) {
	c := newTestController(newFakeInput())
	c.Record()
	c.InjectTap("Jump")
	c.InjectAxis("Move", 1, 0)
	for range 4 {
		c.Update()
	}
	c.Stop()

	assert.Equal(t, map[int]map[string]int{
		0: {"Jump": 1},
		1: {"Jump": 0},
	}, c.Log().Buttons)
	assert.Equal(t, map[int]Vec2{2: {1, 0}}, c.Log().Axes[0])
}

func TestInject_ForcedStateWins(t *testing.T) {
	c := newTestController(newFakeInput())
	c.Button("Jump").ForceState(false)
	c.InjectPress("Jump")
	c.Update()
	assert.True(t, c.Button("Jump").Up())
}

func TestInject_UnknownNamePanics(t *testing.T) {
	c := newTestController(newFakeInput())
	assert.Panics(t, func() { c.InjectPress("Dash") })
	assert.Panics(t, func() { c.InjectAxis("Aim", 1, 1) })
	assert.Equal(t, 0, c.PendingInjections())
}

func TestInject_ClearedByRecord(t *testing.T) {
	c := newTestController(newFakeInput())
	c.InjectTap("Jump")
	c.Record()
	assert.Equal(t, 0, c.PendingInjections())
}
