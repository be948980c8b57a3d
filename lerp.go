package reel

import (
	"fmt"
	"math"
	"reflect"
)

// LerpBehavior is a set of flags that modify how a lerper interpolates.
type LerpBehavior uint8

const (
	// LerpRotation takes the shortest path around the circle and keeps the
	// result in [0, 360) (or [0, 2π) with LerpRadians).
	LerpRotation LerpBehavior = 1 << iota
	// LerpRadians makes LerpRotation work in radians instead of degrees.
	LerpRadians
	// LerpRound rounds the result to the nearest integer.
	LerpRound
)

// RotationUnit selects degrees or radians for Tween.Rotation.
type RotationUnit uint8

const (
	Degrees RotationUnit = iota
	Radians
)

// Lerper interpolates one property of one tween. A fresh Lerper is created
// for every property of every tween.
type Lerper interface {
	// Initialize binds the lerper to ptr (a pointer to the property) and
	// captures the start and goal values. from and to have the property's
	// type. Initialize may be called again when the behavior changes.
	Initialize(ptr, from, to any, behavior LerpBehavior)
	// Interpolate writes the value at progress t into the property. t is 0
	// at the start and 1 at the end; eased curves may overshoot.
	Interpolate(t float64)
}

// LerperFactory creates a Lerper.
type LerperFactory func() Lerper

var lerpers = map[reflect.Type]LerperFactory{}

func init() {
	RegisterLerper(reflect.TypeFor[float64](), NewNumericLerper[float64])
	RegisterLerper(reflect.TypeFor[float32](), NewNumericLerper[float32])
	RegisterLerper(reflect.TypeFor[int](), NewNumericLerper[int])
	RegisterLerper(reflect.TypeFor[int32](), NewNumericLerper[int32])
	RegisterLerper(reflect.TypeFor[int64](), NewNumericLerper[int64])
	RegisterLerper(reflect.TypeFor[uint8](), NewNumericLerper[uint8])
	RegisterLerper(reflect.TypeFor[Vec2](), func() Lerper { return &vec2Lerper{} })
	RegisterLerper(reflect.TypeFor[Color](), func() Lerper { return &colorLerper{} })
}

// RegisterLerper makes factory the interpolation strategy for values of
// type t, replacing any previous registration. Register custom types at
// init time; the registry is not safe for concurrent use.
func RegisterLerper(t reflect.Type, factory LerperFactory) {
	lerpers[t] = factory
}

// lookupLerper returns a new lerper for t or ErrNoLerper.
func lookupLerper(t reflect.Type) (Lerper, error) {
	factory, ok := lerpers[t]
	if !ok {
		debugLog("no lerper for %v", t)
		return nil, fmt.Errorf("%w for type %v", ErrNoLerper, t)
	}
	return factory(), nil
}

// --- Numeric ---

// Number is the set of types NewNumericLerper can drive.
type Number interface {
	~float64 | ~float32 | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type numericLerper[T Number] struct {
	ptr      *T
	from     float64
	delta    float64
	behavior LerpBehavior
	integral bool
}

// NewNumericLerper returns the linear lerper for T. Register it for named
// numeric types, e.g.
//
//	reel.RegisterLerper(reflect.TypeFor[Degrees](), reel.NewNumericLerper[Degrees])
//
// Integer types are always rounded to the nearest value.
func NewNumericLerper[T Number]() Lerper {
	half := 0.5
	return &numericLerper[T]{integral: T(half) == 0}
}

func (l *numericLerper[T]) Initialize(ptr, from, to any, behavior LerpBehavior) {
	l.ptr = ptr.(*T)
	l.behavior = behavior
	l.from = float64(from.(T))
	l.delta = float64(to.(T)) - l.from
	if behavior&LerpRotation != 0 {
		l.delta = shortestAngle(l.delta, fullTurn(behavior))
	}
}

func (l *numericLerper[T]) Interpolate(t float64) {
	v := l.from + l.delta*t
	if l.behavior&LerpRotation != 0 {
		v = wrapAngle(v, fullTurn(l.behavior))
	}
	if l.integral || l.behavior&LerpRound != 0 {
		v = math.Round(v)
	}
	*l.ptr = T(v)
}

func fullTurn(behavior LerpBehavior) float64 {
	if behavior&LerpRadians != 0 {
		return 2 * math.Pi
	}
	return 360
}

// shortestAngle maps an angular delta into [-turn/2, turn/2].
func shortestAngle(delta, turn float64) float64 {
	return math.Remainder(delta, turn)
}

// wrapAngle maps an angle into [0, turn).
func wrapAngle(v, turn float64) float64 {
	v = math.Mod(v, turn)
	if v < 0 {
		v += turn
	}
	return v
}

// --- Vec2 ---

type vec2Lerper struct {
	ptr      *Vec2
	from     Vec2
	delta    Vec2
	behavior LerpBehavior
}

func (l *vec2Lerper) Initialize(ptr, from, to any, behavior LerpBehavior) {
	l.ptr = ptr.(*Vec2)
	l.behavior = behavior
	l.from = from.(Vec2)
	l.delta = to.(Vec2).Sub(l.from)
}

func (l *vec2Lerper) Interpolate(t float64) {
	v := l.from.Add(l.delta.Scale(t))
	if l.behavior&LerpRound != 0 {
		v = Vec2{math.Round(v.X), math.Round(v.Y)}
	}
	*l.ptr = v
}

// --- Color ---

type colorLerper struct {
	ptr  *Color
	from Color
	to   Color
}

func (l *colorLerper) Initialize(ptr, from, to any, _ LerpBehavior) {
	l.ptr = ptr.(*Color)
	l.from = from.(Color)
	l.to = to.(Color)
}

func (l *colorLerper) Interpolate(t float64) {
	*l.ptr = Color{
		R: l.from.R + (l.to.R-l.from.R)*t,
		G: l.from.G + (l.to.G-l.from.G)*t,
		B: l.from.B + (l.to.B-l.from.B)*t,
		A: l.from.A + (l.to.A-l.from.A)*t,
	}
}
