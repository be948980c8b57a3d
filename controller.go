package reel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ControllerMode is what a Controller does with its ticks.
type ControllerMode uint8

const (
	ModeIdle      ControllerMode = iota // inputs follow the devices
	ModeRecording                       // inputs follow the devices and are logged
	ModePlaying                         // inputs follow a recording
)

func (m ControllerMode) String() string {
	switch m {
	case ModeRecording:
		return "recording"
	case ModePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// EventSink receives button edges from a Controller. See the ecs package for
// a Donburi adapter.
type EventSink interface {
	EmitButtonEvent(event ButtonEvent)
}

// ButtonEvent describes one button edge.
type ButtonEvent struct {
	Name    string
	Pressed bool // false for a release
	Tick    int  // recording or playback tick; 0 while idle
	Mode    ControllerMode
}

// Controller groups named buttons and axes, and records and replays them
// tick by tick. Call Update exactly once per simulation tick.
//
// Buttons and axes are looked up by name. Names are fixed at setup time, so
// Button and Axis panic on unknown names rather than returning errors.
type Controller struct {
	// Enabled controllers poll, record and play back. A disabled controller
	// freezes: Update does nothing at all.
	Enabled bool

	// Gamepad is the gamepad whose buttons and sticks are polled.
	Gamepad ebiten.GamepadID

	source InputSource
	sink   EventSink

	buttons     []*Button
	buttonIndex map[string]int
	axes        []*Axis
	axisIndex   map[string]int

	mode ControllerMode
	tick int

	record  *Recording
	encoded string

	playback   *Recording
	playLength int

	injectQueue []syntheticInput
	runner      *ScriptRunner
}

// NewController creates an enabled controller polling Ebitengine.
func NewController() *Controller {
	return NewControllerWithSource(EbitenInput{})
}

// NewControllerWithSource creates an enabled controller polling src.
func NewControllerWithSource(src InputSource) *Controller {
	return &Controller{
		Enabled:     true,
		source:      src,
		buttonIndex: make(map[string]int),
		axisIndex:   make(map[string]int),
	}
}

// SetSource replaces the input source.
func (c *Controller) SetSource(src InputSource) {
	c.source = src
}

// SetEventSink sets the optional receiver of button edges.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// AddButton registers a new button. It panics if name is empty, contains a
// recording delimiter, or is already registered.
func (c *Controller) AddButton(name string) *Button {
	if !validInputName(name) {
		panic(fmt.Sprintf("reel: invalid button name %q", name))
	}
	if _, ok := c.buttonIndex[name]; ok {
		panic(fmt.Sprintf("reel: duplicate button %q", name))
	}
	b := &Button{Name: name}
	c.buttonIndex[name] = len(c.buttons)
	c.buttons = append(c.buttons, b)
	return b
}

// AddAxis registers a new enabled axis. Axis registration order is the slot
// order in recordings. It panics on invalid or duplicate names.
func (c *Controller) AddAxis(name string) *Axis {
	if !validInputName(name) {
		panic(fmt.Sprintf("reel: invalid axis name %q", name))
	}
	if _, ok := c.axisIndex[name]; ok {
		panic(fmt.Sprintf("reel: duplicate axis %q", name))
	}
	a := newAxis(name)
	c.axisIndex[name] = len(c.axes)
	c.axes = append(c.axes, a)
	return a
}

// Button returns the named button. It panics if no such button exists.
func (c *Controller) Button(name string) *Button {
	i, ok := c.buttonIndex[name]
	if !ok {
		panic(fmt.Sprintf("reel: unknown button %q", name))
	}
	return c.buttons[i]
}

// Axis returns the named axis. It panics if no such axis exists.
func (c *Controller) Axis(name string) *Axis {
	i, ok := c.axisIndex[name]
	if !ok {
		panic(fmt.Sprintf("reel: unknown axis %q", name))
	}
	return c.axes[i]
}

// Buttons returns the buttons in registration order. The returned slice MUST NOT be mutated.
func (c *Controller) Buttons() []*Button {
	return c.buttons
}

// Axes returns the axes in registration order. The returned slice MUST NOT be mutated.
func (c *Controller) Axes() []*Axis {
	return c.axes
}

// Mode returns the current mode.
func (c *Controller) Mode() ControllerMode { return c.mode }

// Recording reports whether the controller is recording.
func (c *Controller) Recording() bool { return c.mode == ModeRecording }

// Playing reports whether the controller is playing a recording back.
func (c *Controller) Playing() bool { return c.mode == ModePlaying }

// Tick returns the index of the next tick to be recorded or played.
func (c *Controller) Tick() int { return c.tick }

// PlaybackLength returns the length in ticks of the recording being played.
func (c *Controller) PlaybackLength() int { return c.playLength }

// Record discards any previous recording and starts a new one at tick 0.
// All inputs are released so that keys held before the call show up as
// presses on the first recorded tick.
func (c *Controller) Record() {
	c.playback = nil
	c.playLength = 0
	c.record = NewRecording(len(c.axes))
	c.encoded = ""
	c.resetInputs()
	c.mode = ModeRecording
	c.tick = 0
	debugLog("controller: record (%d buttons, %d axes)", len(c.buttons), len(c.axes))
}

// Stop ends recording or playback and releases every button and zeroes
// every axis. It does nothing while idle.
func (c *Controller) Stop() {
	switch c.mode {
	case ModeRecording:
		c.record.Length = c.tick
		debugLog("controller: stop recording at tick %d", c.tick)
	case ModePlaying:
		c.playback = nil
		debugLog("controller: stop playback at tick %d", c.tick)
	default:
		return
	}
	c.mode = ModeIdle
	c.resetInputs()
}

// Log returns the current or most recent recording, or nil if Record was
// never called. While recording it grows every tick.
func (c *Controller) Log() *Recording {
	return c.record
}

// RecordedString returns the current recording encoded and compressed. The
// result is cached once recording has stopped; Record clears the cache.
func (c *Controller) RecordedString() (string, error) {
	if c.record == nil {
		return "", nil
	}
	if c.mode == ModeRecording {
		rec := *c.record
		rec.Length = c.tick
		return MarshalRecording(&rec)
	}
	if c.encoded != "" {
		return c.encoded, nil
	}
	s, err := MarshalRecording(c.record)
	if err != nil {
		return "", err
	}
	c.encoded = s
	return s, nil
}

// Playback decodes a string from RecordedString and starts replaying it at
// tick 0. Any recording in progress is stopped first. Every button is held
// released and every axis at zero until the recording says otherwise, so
// live devices cannot leak into the replay.
func (c *Controller) Playback(encoded string) error {
	rec, err := UnmarshalRecording(encoded)
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return c.PlaybackRecording(rec)
}

// PlaybackRecording replays an already decoded recording. Recordings that
// name buttons this controller does not have are rejected.
func (c *Controller) PlaybackRecording(rec *Recording) error {
	for _, states := range rec.Buttons {
		for name := range states {
			if _, ok := c.buttonIndex[name]; !ok {
				return fmt.Errorf("playback: %w: unknown button %q", ErrMalformedRecording, name)
			}
		}
	}
	c.Stop()
	c.resetInputs()
	for _, b := range c.buttons {
		b.ForceState(false)
	}
	for _, a := range c.axes {
		a.ForceState(0, 0)
	}
	c.playback = rec
	c.playLength = rec.Length
	c.mode = ModePlaying
	c.tick = 0
	debugLog("controller: playback %d ticks", c.playLength)
	return nil
}

// Update advances the controller by one tick: it applies playback or
// injected state, polls every button and axis, and logs changes while
// recording.
func (c *Controller) Update() {
	if !c.Enabled {
		return
	}

	if c.runner != nil {
		c.runner.step(c)
	}

	if c.mode == ModePlaying {
		if c.tick > c.playLength {
			c.Stop()
		} else {
			c.applyPlayback()
		}
	}

	c.processInjectedInput()

	for _, b := range c.buttons {
		b.update(c.source, c.Gamepad)
		if b.Pressed() || b.Released() {
			c.emitButtonEvent(b)
		}
	}
	for _, a := range c.axes {
		a.update(c.source, c.Gamepad)
	}

	switch c.mode {
	case ModeRecording:
		c.capture()
		c.tick++
	case ModePlaying:
		c.tick++
	}
}

// capture logs this tick's button edges and axis changes.
func (c *Controller) capture() {
	for _, b := range c.buttons {
		if b.Pressed() {
			c.record.SetButton(c.tick, b.Name, true)
		} else if b.Released() {
			c.record.SetButton(c.tick, b.Name, false)
		}
	}
	for i, a := range c.axes {
		if i >= len(c.record.Axes) {
			break // axis added after Record; it has no slot
		}
		if a.Enabled && a.Changed() {
			c.record.SetAxis(i, c.tick, a.Value())
		}
	}
}

// applyPlayback forces this tick's logged states.
func (c *Controller) applyPlayback() {
	if states, ok := c.playback.Buttons[c.tick]; ok {
		for name, v := range states {
			c.Button(name).ForceState(v == 1)
		}
	}
	for i, slot := range c.playback.Axes {
		if i >= len(c.axes) {
			break
		}
		if v, ok := slot[c.tick]; ok {
			c.axes[i].ForceState(v.X, v.Y)
		}
	}
}

func (c *Controller) emitButtonEvent(b *Button) {
	if c.sink == nil {
		return
	}
	tick := 0
	if c.mode != ModeIdle {
		tick = c.tick
	}
	c.sink.EmitButtonEvent(ButtonEvent{
		Name:    b.Name,
		Pressed: b.Pressed(),
		Tick:    tick,
		Mode:    c.mode,
	})
}

func (c *Controller) resetInputs() {
	for _, b := range c.buttons {
		b.reset()
	}
	for _, a := range c.axes {
		a.reset()
	}
	c.injectQueue = c.injectQueue[:0]
}
