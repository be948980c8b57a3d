package reel

import (
	"reflect"
)

// Tweener owns a set of tweens and advances them once per tick.
//
// Tweens created or finished while Update is running are buffered and
// applied after every tween has been advanced, so callbacks may freely
// create and cancel tweens. Outside Update, changes apply immediately.
type Tweener struct {
	tweens   []*Tween
	toAdd    []*Tween
	toRemove []*Tween
	targets  map[any][]*Tween
	updating bool
}

// NewTweener creates an empty tweener.
func NewTweener() *Tweener {
	return &Tweener{targets: make(map[any][]*Tween)}
}

// CreateTween tweens each property in props from its current value to its
// goal over duration seconds, after waiting delay seconds. target must be a
// non-nil pointer; it identifies the tween for the Target* methods. With
// overwrite set, other tweens on target stop driving any property named in
// props.
func (t *Tweener) CreateTween(target any, props Props, duration, delay float32, overwrite bool) (*Tween, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, ErrValueTarget
	}

	tw := newTween(t, target, max(duration, 0), max(delay, 0))
	if err := tw.addProps(props); err != nil {
		return nil, err
	}

	if overwrite {
		names := tw.Properties()
		for _, other := range t.tweensFor(target) {
			other.Cancel(names...)
		}
	}

	t.add(tw)
	return tw, nil
}

// CreateTimer schedules a tween with no target and no properties. Use its
// OnComplete callback to run code after duration seconds.
func (t *Tweener) CreateTimer(duration, delay float32) *Tween {
	tw := newTween(t, nil, max(duration, 0), max(delay, 0))
	t.add(tw)
	return tw
}

// Update advances every tween by dt seconds, then applies the tweens
// created and finished during the pass. Calls made from a tween callback
// while a pass is running are ignored.
func (t *Tweener) Update(dt float32) {
	if t.updating {
		debugLog("tweener: nested Update ignored")
		return
	}
	t.updating = true
	for _, tw := range t.tweens {
		tw.update(dt)
	}
	t.updating = false

	if len(t.toRemove) > 0 || len(t.toAdd) > 0 {
		debugLog("tweener flush: -%d +%d", len(t.toRemove), len(t.toAdd))
	}
	t.flushRemoves()
	t.flushAdds()
	debugCheckTweenCount(len(t.tweens))
}

// Count returns the number of tweens owned by the tweener, including ones
// waiting to be added.
func (t *Tweener) Count() int {
	n := 0
	for _, tw := range t.tweens {
		if !tw.Finished() {
			n++
		}
	}
	for _, tw := range t.toAdd {
		if !tw.Finished() {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of unpaused tweens past their delay.
func (t *Tweener) ActiveCount() int {
	n := 0
	for _, tw := range t.tweens {
		if tw.state == TweenActive && !tw.paused {
			n++
		}
	}
	return n
}

// Tweens returns the tweens driving target, in creation order.
func (t *Tweener) Tweens(target any) []*Tween {
	return t.tweensFor(target)
}

// Cancel stops every tween without completing it.
func (t *Tweener) Cancel() {
	for _, tw := range t.all() {
		tw.Cancel()
	}
}

// CancelAndComplete snaps every tween to its goal and fires its completion
// callback.
func (t *Tweener) CancelAndComplete() {
	for _, tw := range t.all() {
		tw.CancelAndComplete()
	}
}

// Pause freezes every tween.
func (t *Tweener) Pause() {
	for _, tw := range t.all() {
		tw.Pause()
	}
}

// Resume unfreezes every tween.
func (t *Tweener) Resume() {
	for _, tw := range t.all() {
		tw.Resume()
	}
}

// PauseToggle flips the paused state of every tween.
func (t *Tweener) PauseToggle() {
	for _, tw := range t.all() {
		tw.PauseToggle()
	}
}

// TargetCancel cancels the tweens on target. With names, only those
// properties are cancelled.
func (t *Tweener) TargetCancel(target any, names ...string) {
	for _, tw := range t.tweensFor(target) {
		tw.Cancel(names...)
	}
}

// TargetCancelAndComplete completes every tween on target.
func (t *Tweener) TargetCancelAndComplete(target any) {
	for _, tw := range t.tweensFor(target) {
		tw.CancelAndComplete()
	}
}

// TargetPause pauses every tween on target.
func (t *Tweener) TargetPause(target any) {
	for _, tw := range t.tweensFor(target) {
		tw.Pause()
	}
}

// TargetResume resumes every tween on target.
func (t *Tweener) TargetResume(target any) {
	for _, tw := range t.tweensFor(target) {
		tw.Resume()
	}
}

// TargetPauseToggle flips the paused state of every tween on target.
func (t *Tweener) TargetPauseToggle(target any) {
	for _, tw := range t.tweensFor(target) {
		tw.PauseToggle()
	}
}

func (t *Tweener) add(tw *Tween) {
	t.toAdd = append(t.toAdd, tw)
	if !t.updating {
		t.flushAdds()
	}
}

// remove is called by a tween when it finishes.
func (t *Tweener) remove(tw *Tween) {
	t.toRemove = append(t.toRemove, tw)
	if !t.updating {
		t.flushRemoves()
	}
}

func (t *Tweener) flushAdds() {
	for _, tw := range t.toAdd {
		if tw.Finished() {
			continue
		}
		if tw.delay > 0 {
			tw.state = TweenDelayed
		} else {
			tw.state = TweenActive
		}
		t.tweens = append(t.tweens, tw)
		if tw.target != nil {
			t.targets[tw.target] = append(t.targets[tw.target], tw)
		}
	}
	clear(t.toAdd)
	t.toAdd = t.toAdd[:0]
}

func (t *Tweener) flushRemoves() {
	for _, tw := range t.toRemove {
		t.tweens = removeTween(t.tweens, tw)
		t.toAdd = removeTween(t.toAdd, tw)
		if tw.target != nil {
			list := removeTween(t.targets[tw.target], tw)
			if len(list) == 0 {
				delete(t.targets, tw.target)
			} else {
				t.targets[tw.target] = list
			}
		}
		tw.state = TweenRemoved
	}
	clear(t.toRemove)
	t.toRemove = t.toRemove[:0]
}

// all returns a snapshot of every live tween, pending ones included.
func (t *Tweener) all() []*Tween {
	out := make([]*Tween, 0, len(t.tweens)+len(t.toAdd))
	for _, tw := range t.tweens {
		if !tw.Finished() {
			out = append(out, tw)
		}
	}
	for _, tw := range t.toAdd {
		if !tw.Finished() {
			out = append(out, tw)
		}
	}
	return out
}

// tweensFor returns a snapshot of the live tweens on target, pending ones
// included.
func (t *Tweener) tweensFor(target any) []*Tween {
	if target == nil {
		return nil
	}
	var out []*Tween
	for _, tw := range t.targets[target] {
		if !tw.Finished() {
			out = append(out, tw)
		}
	}
	for _, tw := range t.toAdd {
		if tw.target == target && !tw.Finished() {
			out = append(out, tw)
		}
	}
	return out
}

func removeTween(list []*Tween, tw *Tween) []*Tween {
	for i, v := range list {
		if v == tw {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}
