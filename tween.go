package reel

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var (
	// ErrValueTarget is returned when a tween target is not a pointer.
	// Tweening a copy would silently have no visible effect.
	ErrValueTarget = errors.New("tween target must be a non-nil pointer")
	// ErrNoLerper is returned when a property's type has no registered
	// lerper.
	ErrNoLerper = errors.New("no lerper registered")
	// ErrPropType is returned for a property with an empty or duplicate
	// name, or whose pointer does not match its goal value's type.
	ErrPropType = errors.New("invalid tween property")
)

// Prop names one property of a tween target and the value to tween it to.
// Ptr must point at a value of the same type as To. Use Field to get the
// pairing checked at compile time.
type Prop struct {
	Name string
	Ptr  any
	To   any
}

// Props is an ordered list of tweened properties.
type Props []Prop

// Field builds a Prop from a typed pointer and goal value.
func Field[T any](name string, ptr *T, to T) Prop {
	return Prop{Name: name, Ptr: ptr, To: to}
}

// TweenState is the lifecycle position of a Tween.
type TweenState uint8

const (
	TweenPending  TweenState = iota // created, not yet promoted by the tweener
	TweenDelayed                    // waiting out its delay
	TweenActive                     // interpolating
	TweenFinished                   // completed or cancelled, awaiting removal
	TweenRemoved                    // no longer owned by the tweener
)

func (s TweenState) String() string {
	switch s {
	case TweenPending:
		return "pending"
	case TweenDelayed:
		return "delayed"
	case TweenActive:
		return "active"
	case TweenFinished:
		return "finished"
	default:
		return "removed"
	}
}

// lerp is one tweened property.
type lerp struct {
	name   string
	ptr    any
	from   any
	to     any
	lerper Lerper
}

// Tween interpolates a set of properties of one target over time. Create
// tweens with Tweener.CreateTween or Tweener.CreateTimer; configuration
// methods return the tween so calls can be chained.
type Tween struct {
	target  any
	tweener *Tweener
	lerps   []*lerp

	clock       *gween.Tween
	duration    float32
	delay       float32
	elapsed     float64 // seconds into the current cycle
	repeatDelay float32
	repeatCount int // remaining repeats, -1 forever
	repeated    int
	reflect     bool
	reflecting  bool

	easeFn   ease.TweenFunc
	behavior LerpBehavior

	state  TweenState
	paused bool
	begun  bool

	onBegin    func()
	onUpdate   func()
	onComplete func()
}

// clockEpsilon absorbs float32 tick deltas that sum to just under a cycle.
const clockEpsilon = 1e-6

func newTween(tweener *Tweener, target any, duration, delay float32) *Tween {
	tw := &Tween{
		target:   target,
		tweener:  tweener,
		duration: duration,
		delay:    delay,
		easeFn:   ease.Linear,
	}
	tw.resetClock()
	return tw
}

// addProps resolves a lerper for every property and captures start values.
func (tw *Tween) addProps(props Props) error {
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if p.Name == "" || seen[p.Name] {
			return fmt.Errorf("%w: name %q", ErrPropType, p.Name)
		}
		seen[p.Name] = true
		if p.To == nil {
			return fmt.Errorf("%w: %q has no goal value", ErrPropType, p.Name)
		}
		typ := reflect.TypeOf(p.To)
		pv := reflect.ValueOf(p.Ptr)
		if !pv.IsValid() || pv.Kind() != reflect.Pointer || pv.IsNil() || pv.Type().Elem() != typ {
			return fmt.Errorf("%w: %q needs a non-nil *%v, got %T", ErrPropType, p.Name, typ, p.Ptr)
		}
		lerper, err := lookupLerper(typ)
		if err != nil {
			return fmt.Errorf("tween property %q: %w", p.Name, err)
		}
		l := &lerp{
			name:   p.Name,
			ptr:    p.Ptr,
			from:   pv.Elem().Interface(),
			to:     p.To,
			lerper: lerper,
		}
		l.lerper.Initialize(l.ptr, l.from, l.to, tw.behavior)
		tw.lerps = append(tw.lerps, l)
	}
	return nil
}

// Target returns the tweened object, or nil for timers.
func (tw *Tween) Target() any { return tw.target }

// Duration returns the length of one cycle in seconds.
func (tw *Tween) Duration() float32 { return tw.duration }

// State returns the lifecycle state.
func (tw *Tween) State() TweenState { return tw.state }

// Paused reports whether the tween is paused.
func (tw *Tween) Paused() bool { return tw.paused }

// Finished reports whether the tween has completed or been cancelled.
func (tw *Tween) Finished() bool { return tw.state >= TweenFinished }

// Progress returns the fraction of the current cycle that has elapsed.
func (tw *Tween) Progress() float32 {
	if tw.duration <= 0 {
		if tw.Finished() {
			return 1
		}
		return 0
	}
	return float32(min(tw.elapsed/float64(tw.duration), 1))
}

// Properties returns the names of the properties still being tweened.
func (tw *Tween) Properties() []string {
	names := make([]string, len(tw.lerps))
	for i, l := range tw.lerps {
		names[i] = l.name
	}
	return names
}

// Ease sets the easing curve. The default is ease.Linear.
func (tw *Tween) Ease(fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	tw.easeFn = fn
	tw.resetClock()
	return tw
}

// OnBegin sets a callback fired once, on the first update after the delay.
func (tw *Tween) OnBegin(fn func()) *Tween {
	tw.onBegin = fn
	return tw
}

// OnUpdate sets a callback fired after every update that moved the tween.
func (tw *Tween) OnUpdate(fn func()) *Tween {
	tw.onUpdate = fn
	return tw
}

// OnComplete sets a callback fired once when the tween finishes naturally
// or through CancelAndComplete.
func (tw *Tween) OnComplete(fn func()) *Tween {
	tw.onComplete = fn
	return tw
}

// Reflect makes every repeat run backwards relative to the previous one.
func (tw *Tween) Reflect() *Tween {
	tw.reflect = true
	return tw
}

// Repeat runs the tween times more after the first cycle; -1 repeats
// forever.
func (tw *Tween) Repeat(times int) *Tween {
	tw.repeatCount = times
	return tw
}

// RepeatDelay waits seconds between repeats.
func (tw *Tween) RepeatDelay(seconds float32) *Tween {
	tw.repeatDelay = seconds
	return tw
}

// Rotation treats every property as an angle in unit and interpolates along
// the shorter arc.
func (tw *Tween) Rotation(unit RotationUnit) *Tween {
	tw.behavior |= LerpRotation
	if unit == Radians {
		tw.behavior |= LerpRadians
	} else {
		tw.behavior &^= LerpRadians
	}
	tw.reinitialize()
	return tw
}

// Round rounds every property to the nearest integer value.
func (tw *Tween) Round() *Tween {
	tw.behavior |= LerpRound
	tw.reinitialize()
	return tw
}

// From sets start values: each named property is written immediately and
// the tween runs from it. It panics if a name is not tweened by tw or the
// value has the wrong type.
func (tw *Tween) From(props Props) *Tween {
	for _, p := range props {
		l := tw.lerpNamed(p.Name)
		if l == nil {
			panic(fmt.Sprintf("reel: From: tween has no property %q", p.Name))
		}
		if reflect.TypeOf(p.To) != reflect.TypeOf(l.to) {
			panic(fmt.Sprintf("reel: From: %q wants %T, got %T", p.Name, l.to, p.To))
		}
		l.from = p.To
		l.lerper.Initialize(l.ptr, l.from, l.to, tw.behavior)
		l.lerper.Interpolate(0)
	}
	return tw
}

// Pause freezes the tween, including its delay countdown.
func (tw *Tween) Pause() { tw.paused = true }

// Resume unfreezes the tween.
func (tw *Tween) Resume() { tw.paused = false }

// PauseToggle flips the paused state.
func (tw *Tween) PauseToggle() { tw.paused = !tw.paused }

// Cancel stops the tween without completing it. With names, only those
// properties stop; the tween is cancelled once no properties remain.
// OnComplete is not called.
func (tw *Tween) Cancel(names ...string) {
	if tw.Finished() {
		return
	}
	if len(names) == 0 {
		tw.finish(false)
		return
	}
	had := len(tw.lerps)
	kept := tw.lerps[:0]
	for _, l := range tw.lerps {
		if !containsString(names, l.name) {
			kept = append(kept, l)
		}
	}
	clear(tw.lerps[len(kept):])
	tw.lerps = kept
	if had > 0 && len(tw.lerps) == 0 {
		tw.finish(false)
	}
}

// CancelAndComplete snaps every property to the end of the current cycle,
// then finishes the tween and fires OnComplete.
func (tw *Tween) CancelAndComplete() {
	if tw.Finished() {
		return
	}
	tw.elapsed = float64(tw.duration)
	v, _ := tw.sample()
	tw.apply(v)
	tw.finish(true)
}

// update advances the tween clock by dt seconds.
func (tw *Tween) update(dt float32) {
	if tw.paused || tw.Finished() {
		return
	}
	if tw.delay > 0 {
		tw.delay -= dt
		if tw.delay > 0 {
			tw.state = TweenDelayed
			return
		}
		// Carry the part of dt that outlasted the delay.
		dt = -tw.delay
		tw.delay = 0
	}
	tw.state = TweenActive

	if !tw.begun {
		tw.begun = true
		if tw.onBegin != nil {
			tw.onBegin()
		}
		if tw.Finished() {
			return
		}
	}

	tw.elapsed += float64(dt)
	done := false
	for {
		v, finished := tw.sample()
		tw.apply(v)
		if !finished {
			break
		}
		if tw.repeatCount == 0 {
			done = true
			break
		}
		if !tw.nextCycle() {
			break
		}
	}

	if tw.onUpdate != nil {
		tw.onUpdate()
	}
	if done {
		tw.finish(true)
	}
}

// nextCycle starts the next repeat, carrying the time that ran past the end
// of the cycle into the repeat delay and then the new cycle. It reports
// whether carried time is left to apply to the new cycle.
func (tw *Tween) nextCycle() bool {
	overflow := max(tw.elapsed-float64(tw.duration), 0)
	if tw.repeatCount > 0 {
		tw.repeatCount--
	}
	tw.repeated++
	if tw.reflect {
		tw.reflecting = !tw.reflecting
	}
	tw.resetClock()
	tw.reinitialize()

	tw.elapsed = 0
	if tw.repeatDelay > 0 {
		rest := float64(tw.repeatDelay) - overflow
		if rest > 0 {
			tw.delay = float32(rest)
			return false
		}
		overflow = -rest
	}
	tw.elapsed = overflow
	// An empty cycle would otherwise repeat forever on one update.
	return overflow > 0 && tw.duration > 0
}

// resetClock builds the gween clock for the current cycle. The clock runs
// the eased progress from 0 to 1, or back from 1 to 0 on a reflected cycle.
func (tw *Tween) resetClock() {
	if !tw.reflecting {
		tw.clock = gween.New(0, 1, tw.duration, tw.easeFn)
		return
	}
	fn := tw.easeFn
	tw.clock = gween.New(1, 0, tw.duration, func(t, b, c, d float32) float32 {
		return fn(d-t, b+c, -c, d)
	})
}

// sample returns the eased progress of the current cycle and whether the
// cycle has ended.
func (tw *Tween) sample() (float32, bool) {
	if tw.elapsed < float64(tw.duration)-clockEpsilon {
		return tw.clock.Set(float32(tw.elapsed))
	}
	if tw.duration <= 0 {
		// gween reports the start value for an empty tween.
		if tw.reflecting {
			return 0, true
		}
		return 1, true
	}
	return tw.clock.Set(tw.duration)
}

// apply writes every property at eased progress v.
func (tw *Tween) apply(v float32) {
	for _, l := range tw.lerps {
		l.lerper.Interpolate(float64(v))
	}
}

func (tw *Tween) reinitialize() {
	for _, l := range tw.lerps {
		l.lerper.Initialize(l.ptr, l.from, l.to, tw.behavior)
	}
}

func (tw *Tween) finish(complete bool) {
	if tw.Finished() {
		return
	}
	tw.state = TweenFinished
	if complete && tw.onComplete != nil {
		tw.onComplete()
	}
	if tw.tweener != nil {
		tw.tweener.remove(tw)
	}
}

func (tw *Tween) lerpNamed(name string) *lerp {
	for _, l := range tw.lerps {
		if l.name == name {
			return l
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
