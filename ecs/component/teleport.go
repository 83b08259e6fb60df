package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// TeleportState is the teleport controller state.
type TeleportState int

const (
	TeleportInactive TeleportState = iota
	TeleportSelecting
)

// Teleporter is the teleport controller of the player.
type Teleporter struct {
	State TeleportState
	// Marker is the live marker entity (an ecs.Entity), zero when inactive.
	Marker uint64
	Target mgl64.Vec3
	Valid  bool

	Range               float64
	FadeDuration        float64
	ActivationThreshold float64
	SeeThroughAlpha     uint8

	MarkerRadius float64
	ValidColor   color.NRGBA
	InvalidColor color.NRGBA
}

var TeleporterComponent = NewComponent[Teleporter]()

// TeleportMarker tags the transient target marker.
type TeleportMarker struct {
	Radius float64
}

var TeleportMarkerComponent = NewComponent[TeleportMarker]()
