package reel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
gamepad: 1
buttons:
  jump: {keys: [Space, Z], gamepad: [0]}
  fire: {keys: [X], mouse: [0]}
axes:
  move:
    up: [ArrowUp]
    down: [ArrowDown]
    left: [ArrowLeft]
    right: [ArrowRight]
    gamepad_x: 0
    gamepad_y: 1
    deadzone: 0.15
  aim: {disabled: true}
  look: {}
axis_order: [move]
`

func TestParseControllerConfig(t *testing.T) {
	cfg, err := ParseControllerConfig([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Gamepad)
	assert.Equal(t, []ebiten.Key{ebiten.KeySpace, ebiten.KeyZ}, cfg.Buttons["jump"].Keys)
	assert.Equal(t, []ebiten.GamepadButton{ebiten.GamepadButton0}, cfg.Buttons["jump"].Gamepad)
	assert.Equal(t, []ebiten.MouseButton{ebiten.MouseButtonLeft}, cfg.Buttons["fire"].Mouse)

	move := cfg.Axes["move"]
	assert.Equal(t, []ebiten.Key{ebiten.KeyArrowLeft}, move.Left)
	require.NotNil(t, move.GamepadY)
	assert.Equal(t, 1, *move.GamepadY)
	assert.Equal(t, 0.15, move.DeadZone)
	assert.True(t, cfg.Axes["aim"].Disabled)

	assert.Equal(t, []string{"move", "aim", "look"}, cfg.AxisOrder())
}

func TestParseControllerConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "buttons: [unclosed"},
		{"unknown key", "buttons:\n  jump: {keys: [NotAKey]}"},
		{"reserved button name", "buttons:\n  'a|b': {keys: [A]}"},
		{"reserved axis name", "axes:\n  'a^b': {}"},
		{"unknown axis in order", "axes:\n  move: {}\naxis_order: [aim]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseControllerConfig([]byte(tt.yaml))
			assert.ErrorContains(t, err, "parse controller config")
		})
	}
}

func TestNewControllerFromConfig(t *testing.T) {
	cfg, err := ParseControllerConfig([]byte(testConfig))
	require.NoError(t, err)
	src := newFakeInput()
	c := NewControllerFromConfig(cfg, src)

	assert.Equal(t, ebiten.GamepadID(1), c.Gamepad)
	require.Len(t, c.Buttons(), 2)
	assert.Equal(t, "fire", c.Buttons()[0].Name, "buttons are registered in name order")
	require.Len(t, c.Axes(), 3)
	assert.Equal(t, "move", c.Axes()[0].Name)
	assert.False(t, c.Axis("aim").Enabled)
	assert.Equal(t, -1, c.Axis("look").GamepadX, "unset gamepad axes stay unbound")

	src.keys[ebiten.KeyZ] = true
	src.padAxes[0] = 0.1
	src.padAxes[1] = 0.9
	c.Update()
	assert.True(t, c.Button("jump").Pressed())
	assert.Equal(t, Vec2{0, 0.9}, c.Axis("move").Value())
}

func TestLoadControllerConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	cfg, err := LoadControllerConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Buttons, 2)

	_, err = LoadControllerConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "missing.yaml")
}
