package bongo

import "fmt"

// AvatarEventType identifies what an AvatarEvent reports.
type AvatarEventType uint8

const (
	EventKeyPressed   AvatarEventType = iota // Code, Key
	EventKeyReleased                         // Code, Key
	EventFaceChanged                         // Face ("" when cleared)
	EventModeChanged                         // Mode
	EventAvatarLoaded                        // Path, Avatar
	EventAvatarFailed                        // Path, Err
)

var avatarEventTypeNames = [...]string{
	EventKeyPressed:   "KeyPressed",
	EventKeyReleased:  "KeyReleased",
	EventFaceChanged:  "FaceChanged",
	EventModeChanged:  "ModeChanged",
	EventAvatarLoaded: "AvatarLoaded",
	EventAvatarFailed: "AvatarFailed",
}

func (t AvatarEventType) String() string {
	if int(t) < len(avatarEventTypeNames) {
		return avatarEventTypeNames[t]
	}
	return fmt.Sprintf("AvatarEventType(%d)", t)
}

// AvatarEvent is a notable state change of a Source.
type AvatarEvent struct {
	Type   AvatarEventType
	Code   uint32
	Key    string
	Face   string
	Mode   string
	Path   string
	Avatar *Avatar
	Err    error
}

// EventSink receives a Source's events synchronously, from inside the call
// that caused them.
type EventSink interface {
	HandleAvatarEvent(e AvatarEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(AvatarEvent)

// HandleAvatarEvent calls f(e).
func (f EventSinkFunc) HandleAvatarEvent(e AvatarEvent) { f(e) }
