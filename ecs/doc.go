// Package ecs provides ECS adapters for reel controllers.
//
// [NewDonburiSink] bridges controller button edges into a [Donburi] world as
// typed events. Subscribe to [ButtonEventType] in your ECS systems to receive
// them, whether the edge came from a device, injected input or a recording.
//
// Usage:
//
//	ctrl.SetEventSink(ecs.NewDonburiSink(world))
//
// Controllers can also live on entities through [ControllerComponent];
// [UpdateControllers] ticks every one of them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
