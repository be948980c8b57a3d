package ecs

import (
	"testing"

	"github.com/phanxgames/reel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitButtonEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []reel.ButtonEvent
	ButtonEventType.Subscribe(world, func(w donburi.World, e reel.ButtonEvent) {
		received = append(received, e)
	})

	sink.EmitButtonEvent(reel.ButtonEvent{Name: "jump", Pressed: true, Tick: 3})
	sink.EmitButtonEvent(reel.ButtonEvent{Name: "jump", Pressed: false, Tick: 8, Mode: reel.ModePlaying})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	ButtonEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Name != "jump" || !e.Pressed || e.Tick != 3 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Pressed || e.Tick != 8 || e.Mode != reel.ModePlaying {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink reel.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_ControllerEdges(t *testing.T) {
	world := donburi.NewWorld()
	c := reel.NewControllerWithSource(reel.NoInput{})
	c.AddButton("fire")
	c.SetEventSink(NewDonburiSink(world))

	var presses, releases int
	ButtonEventType.Subscribe(world, func(w donburi.World, e reel.ButtonEvent) {
		if e.Pressed {
			presses++
		} else {
			releases++
		}
	})

	c.InjectTap("fire")
	for range 3 {
		c.Update()
	}
	events.ProcessAllEvents(world)

	if presses != 1 || releases != 1 {
		t.Errorf("expected one press and one release, got %d and %d", presses, releases)
	}
}

func TestUpdateControllers(t *testing.T) {
	world := donburi.NewWorld()
	c := reel.NewControllerWithSource(reel.NoInput{})
	c.AddButton("fire")
	c.Record()

	entity := world.Create(ControllerComponent)
	ControllerComponent.Set(world.Entry(entity), &ControllerData{Controller: c})
	world.Create(ControllerComponent) // nil controller is skipped

	UpdateControllers(world)
	UpdateControllers(world)

	if c.Tick() != 2 {
		t.Errorf("expected tick 2, got %d", c.Tick())
	}
}
