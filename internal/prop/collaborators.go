package prop

import "github.com/go-gl/mathgl/mgl32"

// KeySource reports edge-triggered key presses. WasPressedThisFrame is true
// only on the frame the key goes down.
type KeySource interface {
	WasPressedThisFrame(key string) bool
}

// AudioSink plays a one-shot clip identified by an opaque handle.
type AudioSink interface {
	PlayOnce(clip string)
}

// Actor is anything that can walk into a trigger volume.
// Position is queried live, so it must reflect the actor's current location.
// Actors are compared by identity, so implementations should be pointer types.
type Actor interface {
	Tag() string
	Position() mgl32.Vec3
}
