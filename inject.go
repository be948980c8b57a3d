package reel

// syntheticInput is a single injected button or axis event.
type syntheticInput struct {
	button string
	down   bool
	axis   string
	value  Vec2
}

// InjectPress queues a press of the named button. Injected events are
// consumed one per Update, before the devices are polled, and the button
// stays held until a matching InjectRelease is consumed. While recording,
// injected input is logged exactly like device input.
func (c *Controller) InjectPress(name string) {
	c.Button(name)
	c.injectQueue = append(c.injectQueue, syntheticInput{button: name, down: true})
}

// InjectRelease queues a release of the named button.
func (c *Controller) InjectRelease(name string) {
	c.Button(name)
	c.injectQueue = append(c.injectQueue, syntheticInput{button: name, down: false})
}

// InjectTap is a convenience that queues a press followed by a release.
// Consumes two ticks.
func (c *Controller) InjectTap(name string) {
	c.InjectPress(name)
	c.InjectRelease(name)
}

// InjectAxis queues an axis value. The axis holds the value until another
// InjectAxis is consumed; injecting (0, 0) hands the axis back to its
// devices.
func (c *Controller) InjectAxis(name string, x, y float64) {
	c.Axis(name)
	c.injectQueue = append(c.injectQueue, syntheticInput{axis: name, value: Vec2{x, y}})
}

// PendingInjections returns the number of queued synthetic events.
func (c *Controller) PendingInjections() int {
	return len(c.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it
// to its button or axis. Returns true if an event was consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.button != "" {
		b := c.Button(evt.button)
		b.injected = true
		b.injectedDown = evt.down
	} else {
		a := c.Axis(evt.axis)
		a.injected = true
		a.injectedValue = evt.value
	}
	return true
}
