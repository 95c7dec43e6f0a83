package ecs

import (
	"github.com/phanxgames/tilecore"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for tilecore gameplay events.
var GameEventType = events.NewEventType[tilecore.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to GameEventType and can be consumed with Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) tilecore.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event tilecore.Event) {
	GameEventType.Publish(s.world, event)
}

// EventPump delivers queued events to their subscribers once per frame. Add
// it to the scene after the objects that emit.
type EventPump struct {
	world donburi.World
}

// NewEventPump creates a pump for world.
func NewEventPump(world donburi.World) *EventPump {
	return &EventPump{world: world}
}

// Update implements tilecore.Updatable.
func (p *EventPump) Update(dt float64) {
	events.ProcessAllEvents(p.world)
}
