package reel

import "github.com/hajimehoshi/ebiten/v2"

// InputSource reports raw device state. Controllers poll it once per tick.
// EbitenInput is the default; headless tools and tests supply their own.
type InputSource interface {
	KeyPressed(key ebiten.Key) bool
	GamepadButtonPressed(id ebiten.GamepadID, button ebiten.GamepadButton) bool
	MouseButtonPressed(button ebiten.MouseButton) bool
	GamepadAxis(id ebiten.GamepadID, axis int) float64
}

// EbitenInput polls Ebitengine's global input state.
type EbitenInput struct{}

// KeyPressed reports whether key is held.
func (EbitenInput) KeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// GamepadButtonPressed reports whether a gamepad button is held.
func (EbitenInput) GamepadButtonPressed(id ebiten.GamepadID, button ebiten.GamepadButton) bool {
	return ebiten.IsGamepadButtonPressed(id, button)
}

// MouseButtonPressed reports whether a mouse button is held.
func (EbitenInput) MouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

// GamepadAxis returns the raw value of a gamepad axis in [-1, 1].
func (EbitenInput) GamepadAxis(id ebiten.GamepadID, axis int) float64 {
	return ebiten.GamepadAxisValue(id, axis)
}

// NoInput is an InputSource where nothing is ever pressed. Playback-only
// tools use it so that only recorded state reaches the controller.
type NoInput struct{}

func (NoInput) KeyPressed(ebiten.Key) bool                                      { return false }
func (NoInput) GamepadButtonPressed(ebiten.GamepadID, ebiten.GamepadButton) bool { return false }
func (NoInput) MouseButtonPressed(ebiten.MouseButton) bool                      { return false }
func (NoInput) GamepadAxis(ebiten.GamepadID, int) float64                       { return 0 }

// --- Button ---

// Button is a named digital input bound to any number of keys, gamepad
// buttons and mouse buttons. It is held when any binding is held, unless a
// forced or injected state overrides the devices.
type Button struct {
	Name string

	Keys           []ebiten.Key
	GamepadButtons []ebiten.GamepadButton
	MouseButtons   []ebiten.MouseButton

	down bool
	prev bool

	forced     bool
	forcedDown bool

	injected     bool
	injectedDown bool
}

// AddKeys binds keyboard keys to the button.
func (b *Button) AddKeys(keys ...ebiten.Key) *Button {
	b.Keys = append(b.Keys, keys...)
	return b
}

// AddGamepadButtons binds gamepad buttons to the button.
func (b *Button) AddGamepadButtons(buttons ...ebiten.GamepadButton) *Button {
	b.GamepadButtons = append(b.GamepadButtons, buttons...)
	return b
}

// AddMouseButtons binds mouse buttons to the button.
func (b *Button) AddMouseButtons(buttons ...ebiten.MouseButton) *Button {
	b.MouseButtons = append(b.MouseButtons, buttons...)
	return b
}

// Down reports whether the button is held this tick.
func (b *Button) Down() bool { return b.down }

// Up reports whether the button is not held this tick.
func (b *Button) Up() bool { return !b.down }

// Pressed reports whether the button went down this tick.
func (b *Button) Pressed() bool { return b.down && !b.prev }

// Released reports whether the button went up this tick.
func (b *Button) Released() bool { return !b.down && b.prev }

// ForceState overrides the devices: from the next update on, the button is
// held when down is true and released otherwise, until ReleaseForce.
func (b *Button) ForceState(down bool) {
	b.forced = true
	b.forcedDown = down
}

// ReleaseForce hands the button back to its device bindings.
func (b *Button) ReleaseForce() {
	b.forced = false
	b.forcedDown = false
}

// Forced reports whether a forced state is in effect.
func (b *Button) Forced() bool { return b.forced }

func (b *Button) update(src InputSource, pad ebiten.GamepadID) {
	b.prev = b.down
	switch {
	case b.forced:
		b.down = b.forcedDown
	case b.injected:
		b.down = b.injectedDown
		if !b.injectedDown {
			b.injected = false
		}
	default:
		b.down = b.poll(src, pad)
	}
}

func (b *Button) poll(src InputSource, pad ebiten.GamepadID) bool {
	if src == nil {
		return false
	}
	for _, k := range b.Keys {
		if src.KeyPressed(k) {
			return true
		}
	}
	for _, gb := range b.GamepadButtons {
		if src.GamepadButtonPressed(pad, gb) {
			return true
		}
	}
	for _, mb := range b.MouseButtons {
		if src.MouseButtonPressed(mb) {
			return true
		}
	}
	return false
}

// reset releases the button without producing a Released edge and drops
// any forced or injected state.
func (b *Button) reset() {
	b.down = false
	b.prev = false
	b.ReleaseForce()
	b.injected = false
	b.injectedDown = false
}

// --- Axis ---

// Axis is a named 2D analog input. Keys contribute -1/+1 per direction and a
// bound gamepad stick contributes its raw value outside the dead zone. Y
// grows downward, matching screen space.
type Axis struct {
	Name string

	// Enabled axes are polled and recorded. A disabled axis reads as zero.
	Enabled bool

	Up, Down, Left, Right []ebiten.Key

	// GamepadX and GamepadY are gamepad axis indexes, or -1 when unbound.
	GamepadX, GamepadY int
	DeadZone           float64

	value Vec2
	prev  Vec2

	forced      bool
	forcedValue Vec2

	injected      bool
	injectedValue Vec2
}

func newAxis(name string) *Axis {
	return &Axis{
		Name:     name,
		Enabled:  true,
		GamepadX: -1,
		GamepadY: -1,
	}
}

// AddKeys binds direction keys to the axis.
func (a *Axis) AddKeys(up, down, left, right ebiten.Key) *Axis {
	a.Up = append(a.Up, up)
	a.Down = append(a.Down, down)
	a.Left = append(a.Left, left)
	a.Right = append(a.Right, right)
	return a
}

// BindGamepad binds a pair of gamepad axis indexes to the axis.
func (a *Axis) BindGamepad(x, y int, deadZone float64) *Axis {
	a.GamepadX = x
	a.GamepadY = y
	a.DeadZone = deadZone
	return a
}

// Value returns the axis value for this tick.
func (a *Axis) Value() Vec2 { return a.value }

// X returns the horizontal component.
func (a *Axis) X() float64 { return a.value.X }

// Y returns the vertical component.
func (a *Axis) Y() float64 { return a.value.Y }

// Changed reports whether the value differs from the previous tick.
func (a *Axis) Changed() bool { return a.value != a.prev }

// ForceState pins the axis to (x, y) from the next update on, until
// ReleaseForce.
func (a *Axis) ForceState(x, y float64) {
	a.forced = true
	a.forcedValue = Vec2{x, y}
}

// ReleaseForce hands the axis back to its device bindings.
func (a *Axis) ReleaseForce() {
	a.forced = false
	a.forcedValue = Vec2{}
}

// Forced reports whether a forced state is in effect.
func (a *Axis) Forced() bool { return a.forced }

func (a *Axis) update(src InputSource, pad ebiten.GamepadID) {
	a.prev = a.value
	switch {
	case !a.Enabled:
		a.value = Vec2{}
	case a.forced:
		a.value = a.forcedValue
	case a.injected:
		a.value = a.injectedValue
		if a.injectedValue.IsZero() {
			a.injected = false
		}
	default:
		a.value = a.poll(src, pad)
	}
}

func (a *Axis) poll(src InputSource, pad ebiten.GamepadID) Vec2 {
	if src == nil {
		return Vec2{}
	}
	var v Vec2
	if anyKey(src, a.Left) {
		v.X--
	}
	if anyKey(src, a.Right) {
		v.X++
	}
	if anyKey(src, a.Up) {
		v.Y--
	}
	if anyKey(src, a.Down) {
		v.Y++
	}
	// Keys win over the stick on each component.
	if v.X == 0 && a.GamepadX >= 0 {
		v.X = a.deadZoned(src.GamepadAxis(pad, a.GamepadX))
	}
	if v.Y == 0 && a.GamepadY >= 0 {
		v.Y = a.deadZoned(src.GamepadAxis(pad, a.GamepadY))
	}
	return v
}

func (a *Axis) deadZoned(v float64) float64 {
	if v > -a.DeadZone && v < a.DeadZone {
		return 0
	}
	return v
}

func (a *Axis) reset() {
	a.value = Vec2{}
	a.prev = Vec2{}
	a.ReleaseForce()
	a.injected = false
	a.injectedValue = Vec2{}
}

func anyKey(src InputSource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.KeyPressed(k) {
			return true
		}
	}
	return false
}
