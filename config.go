package reel

import (
	"fmt"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// ControllerConfig describes a controller's bindings. Keys are written by
// name ("Space", "ArrowLeft", "A") and decoded by ebiten.Key.UnmarshalText.
type ControllerConfig struct {
	Gamepad int                     `yaml:"gamepad"`
	Buttons map[string]ButtonConfig `yaml:"buttons"`
	Axes    map[string]AxisConfig   `yaml:"axes"`
	// Order lists axis names in slot order. Axes missing from Order follow
	// in name order. Recordings index axes by slot, so keep it stable.
	Order []string `yaml:"axis_order"`
}

// ButtonConfig binds one button.
type ButtonConfig struct {
	Keys    []ebiten.Key           `yaml:"keys"`
	Gamepad []ebiten.GamepadButton `yaml:"gamepad"`
	Mouse   []ebiten.MouseButton   `yaml:"mouse"`
}

// AxisConfig binds one axis. GamepadX and GamepadY default to unbound.
type AxisConfig struct {
	Up       []ebiten.Key `yaml:"up"`
	Down     []ebiten.Key `yaml:"down"`
	Left     []ebiten.Key `yaml:"left"`
	Right    []ebiten.Key `yaml:"right"`
	GamepadX *int         `yaml:"gamepad_x"`
	GamepadY *int         `yaml:"gamepad_y"`
	DeadZone float64      `yaml:"deadzone"`
	Disabled bool         `yaml:"disabled"`
}

// ParseControllerConfig decodes YAML controller bindings.
func ParseControllerConfig(data []byte) (*ControllerConfig, error) {
	var cfg ControllerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse controller config: %w", err)
	}
	for name := range cfg.Buttons {
		if !validInputName(name) {
			return nil, fmt.Errorf("parse controller config: invalid button name %q", name)
		}
	}
	for name := range cfg.Axes {
		if !validInputName(name) {
			return nil, fmt.Errorf("parse controller config: invalid axis name %q", name)
		}
	}
	for _, name := range cfg.Order {
		if _, ok := cfg.Axes[name]; !ok {
			return nil, fmt.Errorf("parse controller config: axis_order names unknown axis %q", name)
		}
	}
	return &cfg, nil
}

// LoadControllerConfig reads and decodes a YAML bindings file.
func LoadControllerConfig(path string) (*ControllerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load controller config %s: %w", path, err)
	}
	cfg, err := ParseControllerConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load controller config %s: %w", path, err)
	}
	return cfg, nil
}

// NewControllerFromConfig builds a controller polling src with the
// configured bindings. Buttons are registered in name order and axes in
// slot order.
func NewControllerFromConfig(cfg *ControllerConfig, src InputSource) *Controller {
	c := NewControllerWithSource(src)
	c.Gamepad = ebiten.GamepadID(cfg.Gamepad)

	buttonNames := make([]string, 0, len(cfg.Buttons))
	for name := range cfg.Buttons {
		buttonNames = append(buttonNames, name)
	}
	sort.Strings(buttonNames)
	for _, name := range buttonNames {
		bc := cfg.Buttons[name]
		c.AddButton(name).
			AddKeys(bc.Keys...).
			AddGamepadButtons(bc.Gamepad...).
			AddMouseButtons(bc.Mouse...)
	}

	for _, name := range cfg.AxisOrder() {
		ac := cfg.Axes[name]
		a := c.AddAxis(name)
		a.Up = append(a.Up, ac.Up...)
		a.Down = append(a.Down, ac.Down...)
		a.Left = append(a.Left, ac.Left...)
		a.Right = append(a.Right, ac.Right...)
		if ac.GamepadX != nil {
			a.GamepadX = *ac.GamepadX
		}
		if ac.GamepadY != nil {
			a.GamepadY = *ac.GamepadY
		}
		a.DeadZone = ac.DeadZone
		a.Enabled = !ac.Disabled
	}
	return c
}

// AxisOrder returns every configured axis name in slot order.
func (cfg *ControllerConfig) AxisOrder() []string {
	seen := make(map[string]bool, len(cfg.Axes))
	order := make([]string, 0, len(cfg.Axes))
	for _, name := range cfg.Order {
		if seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}
	var rest []string
	for name := range cfg.Axes {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
