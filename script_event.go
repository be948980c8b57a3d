package reel

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptEventDispatch is appended to every event script. The script must
// define update(elapsed), returning true when the event is done.
const scriptEventDispatch = `
__done = update(__elapsed)
`

// ScriptEvent runs a tengo script as an Event. The script defines
//
//	update := func(elapsed) { ... return elapsed >= 2 }
//
// and is run once per tick with the seconds spent in the event so far. The
// whole script runs every tick, so top-level declarations are reset; keep
// values that must survive in the state map or in vars. The tengo standard
// library is importable, and ease(name, t) evaluates one of the curves known
// to EasingByName.
type ScriptEvent struct {
	BaseEvent
	compiled *tengo.Compiled
	// Err holds the error that stopped the script, if any.
	Err error
}

// NewScriptEvent compiles src. vars are added as script globals before
// compilation and may be read and written by the script.
func NewScriptEvent(src []byte, vars map[string]any) (*ScriptEvent, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptEventDispatch...))
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("script event: add %q: %w", name, err)
		}
	}
	_ = script.Add("__elapsed", 0.0)
	_ = script.Add("__done", false)
	_ = script.Add("state", map[string]any{})
	_ = script.Add("ease", &tengo.UserFunction{Name: "ease", Value: scriptEase})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script event: %w", err)
	}
	return &ScriptEvent{compiled: compiled}, nil
}

func (e *ScriptEvent) Update(dt float32) {
	e.BaseEvent.Update(dt)
	if err := e.compiled.Set("__elapsed", float64(e.Elapsed)); err != nil {
		e.fail(err)
		return
	}
	if err := e.compiled.Run(); err != nil {
		e.fail(err)
		return
	}
	if e.compiled.Get("__done").Bool() {
		e.Finish()
	}
}

// Get returns the current value of a script global, or nil if it is not
// defined.
func (e *ScriptEvent) Get(name string) any {
	if !e.compiled.IsDefined(name) {
		return nil
	}
	return e.compiled.Get(name).Value()
}

func (e *ScriptEvent) fail(err error) {
	debugLog("script event: %v", err)
	e.Err = err
	e.Finish()
}

// scriptEase implements ease(name, t) for scripts.
func scriptEase(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	name, ok := tengo.ToString(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
	}
	t, ok := tengo.ToFloat64(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "t", Expected: "float", Found: args[1].TypeName()}
	}
	fn, ok := EasingByName(name)
	if !ok {
		return nil, fmt.Errorf("ease: unknown curve %q", name)
	}
	return &tengo.Float{Value: easeAt(fn, t)}, nil
}
