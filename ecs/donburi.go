package ecs

import (
	"github.com/phanxgames/reel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ButtonEventType is the Donburi event type for controller button edges.
var ButtonEventType = events.NewEventType[reel.ButtonEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Button
// events are published to ButtonEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) reel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitButtonEvent(event reel.ButtonEvent) {
	ButtonEventType.Publish(s.world, event)
}

// ControllerData attaches a controller to an entity.
type ControllerData struct {
	Controller *reel.Controller
}

// ControllerComponent is the Donburi component holding ControllerData.
var ControllerComponent = donburi.NewComponentType[ControllerData]()

var controllerQuery = donburi.NewQuery(filter.Contains(ControllerComponent))

// UpdateControllers calls Update on every controller attached to an entity
// in world. Call it once per tick before systems that read input.
func UpdateControllers(world donburi.World) {
	controllerQuery.Each(world, func(entry *donburi.Entry) {
		if c := ControllerComponent.Get(entry).Controller; c != nil {
			c.Update()
		}
	})
}
