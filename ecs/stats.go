package ecs

import (
	"github.com/phanxgames/tilecore"

	"github.com/yohamta/donburi"
)

// StatsData counts gameplay events for a session.
type StatsData struct {
	Jumps        int
	Landings     int
	HeadBumps    int
	Interactions int
	Switches     int // element changes
	FellOut      int
	Talked       map[string]bool
}

// Stats is the component holding StatsData.
var Stats = donburi.NewComponentType[StatsData]()

// TrackStats creates an entity carrying a Stats component and subscribes it
// to GameEventType. Counts change when events are processed.
func TrackStats(world donburi.World) donburi.Entity {
	e := world.Create(Stats)
	Stats.Get(world.Entry(e)).Talked = make(map[string]bool)

	GameEventType.Subscribe(world, func(w donburi.World, ev tilecore.Event) {
		if !w.Valid(e) {
			return
		}
		s := Stats.Get(w.Entry(e))
		switch ev.Type {
		case tilecore.EventJumped:
			s.Jumps++
		case tilecore.EventLanded:
			s.Landings++
		case tilecore.EventHeadBump:
			s.HeadBumps++
		case tilecore.EventElementChanged:
			s.Switches++
		case tilecore.EventInteracted:
			s.Interactions++
			s.Talked[ev.Name] = true
		case tilecore.EventFellOut:
			s.FellOut++
		}
	})
	return e
}

// StatsOf returns the counts on entity e.
func StatsOf(world donburi.World, e donburi.Entity) *StatsData {
	return Stats.Get(world.Entry(e))
}
