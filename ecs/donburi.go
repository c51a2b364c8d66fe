// Package ecs forwards bongo avatar events into a Donburi world.
package ecs

import (
	"github.com/phanxgames/bongo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AvatarEventType is the Donburi event type for bongo avatar events.
// Subscribe to this in your ECS systems to receive key, face, mode and load
// events.
var AvatarEventType = events.NewEventType[bongo.AvatarEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to AvatarEventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) bongo.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) HandleAvatarEvent(event bongo.AvatarEvent) {
	AvatarEventType.Publish(s.world, event)
}
