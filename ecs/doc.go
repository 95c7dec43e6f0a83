// Package ecs provides ECS adapters for tilecore's gameplay events.
//
// The primary adapter is [NewDonburiSink], which bridges tilecore events
// (jumps, landings, element changes, interactions) into a [Donburi] world as
// typed events. Subscribe to [GameEventType] in your ECS systems to receive
// them, and register an [EventPump] with the scene to deliver them every
// frame.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	scene.Add(ecs.NewEventPump(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
