package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

type BillboardSystem struct{}

func NewBillboardSystem() *BillboardSystem {
	return &BillboardSystem{}
}

// Update turns every billboard to look along the line from the camera.
func (bs *BillboardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	view, ok := CameraView(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.BillboardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Billboard, transform *component.Transform) {
		transform.Rotation = LookAlong(transform.Position.Sub(view.Position))
	})
}

// LookAlong returns the rotation whose forward axis points along dir.
func LookAlong(dir mgl64.Vec3) mgl64.Quat {
	l := dir.Len()
	if l < 1e-9 {
		return mgl64.QuatIdent()
	}
	yaw := mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z()))
	pitch := mgl64.RadToDeg(math.Asin(mgl64.Clamp(-dir.Y()/l, -1, 1)))
	return common.LookRotation(yaw, pitch)
}
