package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space pose. Y is up; the X/Z plane is the floor.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()
