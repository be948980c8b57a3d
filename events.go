package reel

// Event is a unit of work run by an EventQueue or EventStack. Begin is called
// once when the event reaches the front, Update every tick until Finished
// reports true, then End once.
type Event interface {
	Begin()
	Update(dt float32)
	End()
	Finished() bool
}

// BaseEvent implements Event with no-op hooks. Embed it and call Finish when
// the work is done. Types that override Update should call
// BaseEvent.Update to keep Elapsed current.
type BaseEvent struct {
	// Elapsed is the time in seconds spent in Update.
	Elapsed float32
	done    bool
}

func (e *BaseEvent) Begin() {}

func (e *BaseEvent) Update(dt float32) { e.Elapsed += dt }

func (e *BaseEvent) End() {}

// Finished reports whether Finish has been called.
func (e *BaseEvent) Finished() bool { return e.done }

// Finish marks the event done.
func (e *BaseEvent) Finish() { e.done = true }

// FuncEvent runs a function when it begins and finishes immediately.
type FuncEvent struct {
	BaseEvent
	fn func()
}

// NewFuncEvent returns an event that calls fn once.
func NewFuncEvent(fn func()) *FuncEvent {
	return &FuncEvent{fn: fn}
}

func (e *FuncEvent) Begin() {
	if e.fn != nil {
		e.fn()
	}
	e.Finish()
}

// WaitEvent finishes after Duration seconds of updates.
type WaitEvent struct {
	BaseEvent
	Duration float32
}

// NewWaitEvent returns an event that waits seconds.
func NewWaitEvent(seconds float32) *WaitEvent {
	return &WaitEvent{Duration: seconds}
}

func (e *WaitEvent) Begin() {
	if e.Duration <= 0 {
		e.Finish()
	}
}

func (e *WaitEvent) Update(dt float32) {
	e.BaseEvent.Update(dt)
	if e.Elapsed >= e.Duration {
		e.Finish()
	}
}

// TweenEvent holds a tween paused until the event begins, then finishes
// when the tween does.
type TweenEvent struct {
	BaseEvent
	Tween *Tween
}

// NewTweenEvent pauses tw and wraps it in an event.
func NewTweenEvent(tw *Tween) *TweenEvent {
	tw.Pause()
	return &TweenEvent{Tween: tw}
}

func (e *TweenEvent) Begin() {
	e.Tween.Resume()
}

func (e *TweenEvent) Update(dt float32) {
	e.BaseEvent.Update(dt)
	if e.Tween.Finished() {
		e.Finish()
	}
}

func (e *TweenEvent) Finished() bool {
	return e.BaseEvent.Finished() || e.Tween.Finished()
}

// eventEntry tracks whether an event has begun, so an event suspended by a
// push is not begun twice.
type eventEntry struct {
	ev      Event
	started bool
}

// eventRunner runs the event at the head of a list. lifo selects the last
// element as the head.
type eventRunner struct {
	entries []*eventEntry
	paused  bool
	lifo    bool
}

func (r *eventRunner) head() *eventEntry {
	if len(r.entries) == 0 {
		return nil
	}
	if r.lifo {
		return r.entries[len(r.entries)-1]
	}
	return r.entries[0]
}

// update begins the head event, updates it once, and on completion moves on
// to the next. A following event is begun in the same call but not updated
// until the next one; events that finish during Begin are ended at once.
func (r *eventRunner) update(dt float32) {
	if r.paused {
		return
	}
	updated := false
	for {
		e := r.head()
		if e == nil {
			return
		}
		if !e.started {
			e.started = true
			e.ev.Begin()
		}
		if !e.ev.Finished() {
			if updated {
				return
			}
			e.ev.Update(dt)
			updated = true
			if !e.ev.Finished() {
				return
			}
		}
		r.remove(e)
		e.ev.End()
	}
}

func (r *eventRunner) remove(e *eventEntry) {
	for i, v := range r.entries {
		if v == e {
			copy(r.entries[i:], r.entries[i+1:])
			r.entries[len(r.entries)-1] = nil
			r.entries = r.entries[:len(r.entries)-1]
			return
		}
	}
}

func (r *eventRunner) current() Event {
	if e := r.head(); e != nil {
		return e.ev
	}
	return nil
}

// clear drops every event. Events that have begun are ended.
func (r *eventRunner) clear() {
	entries := r.entries
	r.entries = nil
	for _, e := range entries {
		if e.started {
			e.ev.End()
		}
	}
}

// EventQueue runs events one at a time in first-in first-out order.
type EventQueue struct {
	r eventRunner
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Add appends events to the back of the queue.
func (q *EventQueue) Add(events ...Event) {
	for _, ev := range events {
		q.r.entries = append(q.r.entries, &eventEntry{ev: ev})
	}
}

// Push inserts an event at the front of the queue. It runs before the
// current event, which resumes without a second Begin once it finishes.
func (q *EventQueue) Push(ev Event) {
	q.r.entries = append([]*eventEntry{{ev: ev}}, q.r.entries...)
}

// Update advances the front event by dt seconds.
func (q *EventQueue) Update(dt float32) { q.r.update(dt) }

// Clear removes every event, ending the ones that have begun.
func (q *EventQueue) Clear() { q.r.clear() }

// Pause stops the queue from advancing.
func (q *EventQueue) Pause() { q.r.paused = true }

// Resume lets the queue advance again.
func (q *EventQueue) Resume() { q.r.paused = false }

// Paused reports whether the queue is paused.
func (q *EventQueue) Paused() bool { return q.r.paused }

// Current returns the front event, or nil when the queue is empty.
func (q *EventQueue) Current() Event { return q.r.current() }

// Len returns the number of queued events, the current one included.
func (q *EventQueue) Len() int { return len(q.r.entries) }

// EventStack runs the most recently pushed event first. Pushing while an
// event runs suspends it until the new one finishes.
type EventStack struct {
	r eventRunner
}

// NewEventStack creates an empty stack.
func NewEventStack() *EventStack {
	return &EventStack{r: eventRunner{lifo: true}}
}

// Push puts an event on top of the stack.
func (s *EventStack) Push(ev Event) {
	s.r.entries = append(s.r.entries, &eventEntry{ev: ev})
}

// Update advances the top event by dt seconds.
func (s *EventStack) Update(dt float32) { s.r.update(dt) }

// Clear removes every event, ending the ones that have begun.
func (s *EventStack) Clear() { s.r.clear() }

// Pause stops the stack from advancing.
func (s *EventStack) Pause() { s.r.paused = true }

// Resume lets the stack advance again.
func (s *EventStack) Resume() { s.r.paused = false }

// Paused reports whether the stack is paused.
func (s *EventStack) Paused() bool { return s.r.paused }

// Current returns the top event, or nil when the stack is empty.
func (s *EventStack) Current() Event { return s.r.current() }

// Len returns the number of events on the stack.
func (s *EventStack) Len() int { return len(s.r.entries) }
