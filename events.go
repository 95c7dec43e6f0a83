package tilecore

// EventType identifies a kind of gameplay event.
type EventType uint8

const (
	EventJumped         EventType = iota // an actor left the ground with a jump impulse
	EventLanded                          // a falling actor snapped onto a surface
	EventHeadBump                        // a rising actor hit a ceiling
	EventElementChanged                  // an actor switched element
	EventInteracted                      // an interactable was used
	EventFellOut                         // an actor dropped below the map
)

func (t EventType) String() string {
	switch t {
	case EventJumped:
		return "jumped"
	case EventLanded:
		return "landed"
	case EventHeadBump:
		return "head-bump"
	case EventElementChanged:
		return "element-changed"
	case EventInteracted:
		return "interacted"
	case EventFellOut:
		return "fell-out"
	default:
		return "unknown"
	}
}

// Event carries gameplay event data to an EventSink.
type Event struct {
	Type    EventType
	Source  any // the emitting object
	X, Y    float32
	Element Element // valid for EventElementChanged
	Name    string  // interactable name for EventInteracted
}

// EventSink receives gameplay events. The ecs package provides a Donburi
// backed implementation; *Scene forwards to whichever sink is set on it.
type EventSink interface {
	EmitEvent(event Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

// EmitEvent calls f(event).
func (f EventFunc) EmitEvent(event Event) { f(event) }

// EventSinks fans each event out to every sink in order.
type EventSinks []EventSink

// EmitEvent forwards event to each non-nil sink.
func (s EventSinks) EmitEvent(event Event) {
	for _, sink := range s {
		if sink != nil {
			sink.EmitEvent(event)
		}
	}
}
