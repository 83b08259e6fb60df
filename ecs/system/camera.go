package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
)

const maxPitch = 89.0

// View is the camera pose the controllers read.
type View struct {
	Entity   ecs.Entity
	Rig      *component.CameraRig
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	// Right is the horizontal right vector of the head.
	Right mgl64.Vec3
}

// CameraSystem turns look input into the head pose and keeps the camera at
// the player's eye.
type CameraSystem struct {
	source       InputSource
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(source InputSource) *CameraSystem {
	return &CameraSystem{source: source}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraRigComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	if !ecs.IsAlive(w, cs.targetEntity) {
		if target, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			cs.targetEntity = target
		}
	}

	rig, ok := ecs.Get(w, cs.camEntity, component.CameraRigComponent.Kind())
	if !ok {
		return
	}

	if cs.source != nil {
		dyaw, dpitch := cs.source.Look()
		speed := rig.LookSpeed
		if speed == 0 {
			speed = 1
		}
		rig.Yaw = common.NormalizeDegrees(rig.Yaw + dyaw*speed)
		pitch := mgl64.Clamp(common.SignedDegrees(rig.Pitch)+dpitch*speed, -maxPitch, maxPitch)
		rig.Pitch = common.NormalizeDegrees(pitch)
	}

	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform.Rotation = common.LookRotation(rig.Yaw, rig.Pitch)

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform.Position = targetTransform.Position.Add(common.Up.Mul(rig.EyeHeight))
	targetTransform.Rotation = common.YawRotation(rig.Yaw)
}

// CameraView returns the pose of the first camera rig in w.
func CameraView(w *ecs.World) (View, bool) {
	camEntity, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		return View{}, false
	}
	rig, ok := ecs.Get(w, camEntity, component.CameraRigComponent.Kind())
	if !ok {
		return View{}, false
	}
	transform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return View{}, false
	}
	return View{
		Entity:   camEntity,
		Rig:      rig,
		Position: transform.Position,
		Forward:  common.LookRotation(rig.Yaw, rig.Pitch).Rotate(common.Forward),
		Right:    common.YawRotation(rig.Yaw).Rotate(common.Right),
	}, true
}
